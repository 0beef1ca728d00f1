package layout

import "fmt"

// Direction is the flow of the rank axis.
type Direction string

const (
	TopBottom Direction = "TB"
	BottomTop Direction = "BT"
	LeftRight Direction = "LR"
	RightLeft Direction = "RL"
)

// ParseDirection converts s to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case TopBottom, BottomTop, LeftRight, RightLeft:
		return d, nil
	}
	return "", fmt.Errorf("unknown layout direction %q", s)
}

// Horizontal reports whether ranks advance along the x axis.
func (d Direction) Horizontal() bool { return d == LeftRight || d == RightLeft }

// Reversed reports whether rank 0 sits at the far end of the rank axis.
func (d Direction) Reversed() bool { return d == BottomTop || d == RightLeft }

// Options controls node geometry and spacing. Zero fields take the
// [DefaultOptions] values.
type Options struct {
	Direction  Direction
	NodeWidth  float64
	NodeHeight float64
	RankSep    float64 // gap between ranks
	NodeSep    float64 // gap between nodes in one rank, and between components
	MarginX    float64
	MarginY    float64
	Passes     int // barycenter down/up sweep pairs
}

const (
	DefaultNodeWidth  = 200
	DefaultNodeHeight = 60
	DefaultRankSep    = 100
	DefaultNodeSep    = 50
	DefaultMargin     = 50
	DefaultPasses     = 8
)

// DefaultOptions returns top-to-bottom layout with 200×60 nodes.
func DefaultOptions() Options {
	return Options{
		Direction:  TopBottom,
		NodeWidth:  DefaultNodeWidth,
		NodeHeight: DefaultNodeHeight,
		RankSep:    DefaultRankSep,
		NodeSep:    DefaultNodeSep,
		MarginX:    DefaultMargin,
		MarginY:    DefaultMargin,
		Passes:     DefaultPasses,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Direction == "" {
		o.Direction = d.Direction
	}
	if o.NodeWidth <= 0 {
		o.NodeWidth = d.NodeWidth
	}
	if o.NodeHeight <= 0 {
		o.NodeHeight = d.NodeHeight
	}
	if o.RankSep <= 0 {
		o.RankSep = d.RankSep
	}
	if o.NodeSep <= 0 {
		o.NodeSep = d.NodeSep
	}
	if o.MarginX <= 0 {
		o.MarginX = d.MarginX
	}
	if o.MarginY <= 0 {
		o.MarginY = d.MarginY
	}
	if o.Passes <= 0 {
		o.Passes = d.Passes
	}
	return o
}
