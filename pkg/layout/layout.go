package layout

import (
	"github.com/matzehuels/tldrviz/pkg/dag"
	"github.com/matzehuels/tldrviz/pkg/dag/transform"
	"github.com/matzehuels/tldrviz/pkg/graph"
)

// Result holds top-left positions keyed by node id plus the extent of the
// drawing, margins included.
type Result struct {
	Positions map[string]graph.Position
	Width     float64
	Height    float64
}

// Apply lays out g in place and returns the drawing extent. Edges are left
// unchanged. An empty graph is a no-op.
func Apply(g *graph.Graph, opts Options) Result {
	if g == nil || len(g.Nodes) == 0 {
		return Result{Positions: map[string]graph.Position{}}
	}
	res := Compute(g.NodeIDs(), g.Edges, opts)
	for i := range g.Nodes {
		g.Nodes[i].Position = res.Positions[g.Nodes[i].ID]
	}
	return res
}

// Compute positions every id in nodes. Duplicate ids, self-loops and edges
// with an unknown endpoint do not affect ranking.
func Compute(nodes []string, edges []graph.Edge, opts Options) Result {
	opts = opts.withDefaults()
	res := Result{Positions: make(map[string]graph.Position, len(nodes))}
	if len(nodes) == 0 {
		return res
	}

	g := buildDAG(nodes, edges)
	transform.BreakCycles(g)
	transform.AssignLayers(g)

	rankSize, crossSize := opts.NodeHeight, opts.NodeWidth
	rankMargin, crossMargin := opts.MarginY, opts.MarginX
	if opts.Direction.Horizontal() {
		rankSize, crossSize = opts.NodeWidth, opts.NodeHeight
		rankMargin, crossMargin = opts.MarginX, opts.MarginY
	}

	maxRank := g.MaxRow()
	crossStart := crossMargin
	var crossEnd float64

	for _, comp := range transform.Components(g) {
		rows := orderComponent(g, comp, opts.Passes)

		var span float64
		for _, row := range rows {
			span = max(span, rowSpan(len(row), crossSize, opts.NodeSep))
		}

		for r, row := range rows {
			rank := r
			if opts.Direction.Reversed() {
				rank = maxRank - r
			}
			rankCenter := rankMargin + float64(rank)*(rankSize+opts.RankSep) + rankSize/2
			offset := crossStart + (span-rowSpan(len(row), crossSize, opts.NodeSep))/2

			for i, id := range row {
				crossCenter := offset + float64(i)*(crossSize+opts.NodeSep) + crossSize/2
				cx, cy := crossCenter, rankCenter
				if opts.Direction.Horizontal() {
					cx, cy = rankCenter, crossCenter
				}
				res.Positions[id] = graph.Position{
					X: cx - opts.NodeWidth/2,
					Y: cy - opts.NodeHeight/2,
				}
			}
		}

		crossEnd = crossStart + span
		crossStart = crossEnd + opts.NodeSep
	}

	rankEnd := rankMargin + float64(maxRank+1)*rankSize + float64(maxRank)*opts.RankSep
	crossTotal, rankTotal := crossEnd+crossMargin, rankEnd+rankMargin
	if opts.Direction.Horizontal() {
		res.Width, res.Height = rankTotal, crossTotal
	} else {
		res.Width, res.Height = crossTotal, rankTotal
	}
	return res
}

func buildDAG(nodes []string, edges []graph.Edge) *dag.DAG {
	g := dag.New(nil)
	for _, id := range nodes {
		// AddNode rejects duplicate and empty ids.
		_ = g.AddNode(dag.Node{ID: id})
	}
	for _, e := range edges {
		if g.HasEdge(e.Source, e.Target) {
			continue
		}
		_ = g.AddEdge(dag.Edge{From: e.Source, To: e.Target})
	}
	return g
}

func rowSpan(n int, size, sep float64) float64 {
	if n == 0 {
		return 0
	}
	return float64(n)*size + float64(n-1)*sep
}
