package transform

import (
	"strings"

	"github.com/matzehuels/tldrviz/pkg/graph"
	"github.com/matzehuels/tldrviz/pkg/model"
)

// Band geometry of the architecture view.
const (
	ArchBandPitch = 280
	ArchHighY     = 0
	ArchMiddleY   = 200
	ArchLowY      = 400
)

var archBands = []struct {
	layer graph.Layer
	y     float64
}{
	{graph.LayerHigh, ArchHighY},
	{graph.LayerMiddle, ArchMiddleY},
	{graph.LayerLow, ArchLowY},
}

// LayerOf classifies inferred layer text. "HIGH" wins over "MIDDLE"; anything
// else is LOW.
func LayerOf(inferred string) graph.Layer {
	switch {
	case strings.Contains(inferred, "HIGH"):
		return graph.LayerHigh
	case strings.Contains(inferred, "MIDDLE"):
		return graph.LayerMiddle
	default:
		return graph.LayerLow
	}
}

// DirectoryLabel returns "root" for "." and the last path segment otherwise.
func DirectoryLabel(dir string) string {
	if dir == "." {
		return "root"
	}
	if i := strings.LastIndex(dir, "/"); i >= 0 && i < len(dir)-1 {
		return dir[i+1:]
	}
	return dir
}

// Arch builds the layered directory summary. Repeated directory records are
// merged into the first one, summing their counters. Each band is centered
// on x = 0 with ArchBandPitch spacing.
func Arch(data *model.ArchData) graph.Graph {
	if data == nil || len(data.DirectoryLayers) == 0 {
		return emptyGraph()
	}

	var b graph.Builder
	for _, d := range data.DirectoryLayers {
		n, added := b.AddNode(graph.Node{
			ID:   d.Directory,
			Kind: graph.KindDirectory,
			Data: &graph.DirectoryData{
				Label:         DirectoryLabel(d.Directory),
				Directory:     d.Directory,
				CallsOut:      d.CallsOut,
				CallsIn:       d.CallsIn,
				InferredLayer: d.InferredLayer,
				Layer:         LayerOf(d.InferredLayer),
				FunctionCount: d.FunctionCount,
			},
		})
		if !added {
			dd := n.Data.(*graph.DirectoryData)
			dd.CallsOut += d.CallsOut
			dd.CallsIn += d.CallsIn
			dd.FunctionCount += d.FunctionCount
		}
	}
	merged := b.Graph()

	g := graph.Graph{Nodes: make([]graph.Node, 0, len(merged.Nodes)), Edges: []graph.Edge{}}
	for _, band := range archBands {
		var members []graph.Node
		for _, n := range merged.Nodes {
			if n.Data.(*graph.DirectoryData).Layer == band.layer {
				members = append(members, n)
			}
		}
		startX := -float64(len(members)*ArchBandPitch) / 2
		for i, n := range members {
			n.Position = graph.Position{X: startX + float64(i*ArchBandPitch), Y: band.y}
			g.Nodes = append(g.Nodes, n)
		}
	}
	return g
}
