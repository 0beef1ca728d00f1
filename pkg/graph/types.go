package graph

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// Constants
// =============================================================================

// View names a diagram.
type View string

const (
	ViewCalls     View = "calls"
	ViewStructure View = "structure"
	ViewArch      View = "arch"
)

// Views lists every valid [View].
var Views = []View{ViewCalls, ViewStructure, ViewArch}

// ParseView converts s to a View.
func ParseView(s string) (View, error) {
	for _, v := range Views {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view %q (want calls, structure or arch)", s)
}

// Kind discriminates node payloads.
type Kind string

const (
	KindFunction  Kind = "function"
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
)

// Heat is the presentational band of a function's incoming call count.
type Heat string

const (
	HeatLow    Heat = "low"
	HeatMedium Heat = "medium"
	HeatHigh   Heat = "high"
)

// Layer is an architectural band.
type Layer string

const (
	LayerHigh   Layer = "HIGH"
	LayerMiddle Layer = "MIDDLE"
	LayerLow    Layer = "LOW"
)

// =============================================================================
// Graph
// =============================================================================

// Graph is the output of one view transformation.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Empty reports whether the graph has no nodes.
func (g Graph) Empty() bool { return len(g.Nodes) == 0 }

// Node returns the node with the given id.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// NodeIDs returns node ids in output order.
func (g Graph) NodeIDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// Position is a node's top-left corner.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Node is a positioned vertex.
type Node struct {
	ID       string   `json:"id" bson:"id"`
	Kind     Kind     `json:"kind" bson:"kind"`
	Position Position `json:"position" bson:"position"`
	Data     Payload  `json:"data" bson:"data"`
}

// Label returns the payload's display label, or the ID without a payload.
func (n Node) Label() string {
	if n.Data == nil {
		return n.ID
	}
	return n.Data.DisplayLabel()
}

// UnmarshalJSON decodes the payload according to the node's kind.
func (n *Node) UnmarshalJSON(b []byte) error {
	var wire struct {
		ID       string          `json:"id"`
		Kind     Kind            `json:"kind"`
		Position Position        `json:"position"`
		Data     json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}

	var data Payload
	switch wire.Kind {
	case KindFunction:
		data = &FunctionData{}
	case KindFile:
		data = &FileData{}
	case KindDirectory:
		data = &DirectoryData{}
	default:
		return fmt.Errorf("node %s: unknown kind %q", wire.ID, wire.Kind)
	}
	if len(wire.Data) > 0 && string(wire.Data) != "null" {
		if err := json.Unmarshal(wire.Data, data); err != nil {
			return fmt.Errorf("node %s: decode %s data: %w", wire.ID, wire.Kind, err)
		}
	}

	*n = Node{ID: wire.ID, Kind: wire.Kind, Position: wire.Position, Data: data}
	return nil
}

// Edge is a directed connection.
type Edge struct {
	ID     string `json:"id" bson:"id"`
	Source string `json:"source" bson:"source"`
	Target string `json:"target" bson:"target"`
}

// EdgeID returns the identity of the edge source→target.
func EdgeID(source, target string) string { return source + "->" + target }

// NewEdge returns the edge source→target with its identity set.
func NewEdge(source, target string) Edge {
	return Edge{ID: EdgeID(source, target), Source: source, Target: target}
}

// =============================================================================
// Payloads
// =============================================================================

// Payload is the kind-specific data of a node.
type Payload interface {
	NodeKind() Kind
	DisplayLabel() string
}

// FunctionData describes a function in the call-graph view.
type FunctionData struct {
	Label     string `json:"label" bson:"label"`
	File      string `json:"file" bson:"file"`
	Function  string `json:"function" bson:"function"`
	CallCount int    `json:"callCount" bson:"callCount"`
	Heat      Heat   `json:"heat" bson:"heat"`
	IsEntry   bool   `json:"isEntry" bson:"isEntry"`
	IsLeaf    bool   `json:"isLeaf" bson:"isLeaf"`
}

func (*FunctionData) NodeKind() Kind         { return KindFunction }
func (d *FunctionData) DisplayLabel() string { return d.Label }

// FileData describes a file in the structure view. Imports is the raw import
// statement count, resolved or not.
type FileData struct {
	Label      string   `json:"label" bson:"label"`
	Path       string   `json:"path" bson:"path"`
	Functions  []string `json:"functions" bson:"functions"`
	Classes    []string `json:"classes" bson:"classes"`
	Imports    int      `json:"imports" bson:"imports"`
	IsIsolated bool     `json:"isIsolated" bson:"isIsolated"`
}

func (*FileData) NodeKind() Kind         { return KindFile }
func (d *FileData) DisplayLabel() string { return d.Label }

// DirectoryData describes a directory in the architecture view.
type DirectoryData struct {
	Label         string `json:"label" bson:"label"`
	Directory     string `json:"directory" bson:"directory"`
	CallsOut      int    `json:"callsOut" bson:"callsOut"`
	CallsIn       int    `json:"callsIn" bson:"callsIn"`
	InferredLayer string `json:"inferredLayer" bson:"inferredLayer"`
	Layer         Layer  `json:"layer" bson:"layer"`
	FunctionCount int    `json:"functionCount" bson:"functionCount"`
}

func (*DirectoryData) NodeKind() Kind         { return KindDirectory }
func (d *DirectoryData) DisplayLabel() string { return d.Label }
