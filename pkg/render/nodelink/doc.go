// Package nodelink renders view graphs as node-link diagrams.
//
// # Usage
//
// Convert a graph to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{View: graph.ViewStructure})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Styling
//
// Styling follows the node payloads:
//
//   - function nodes are filled by heat band; entry points get a thick
//     green border and leaves a dashed one
//   - file nodes that import nothing and are never imported are greyed out
//   - directory nodes are coloured by layer, and each layer is pinned to
//     one rank so the diagram reads top (HIGH) to bottom (LOW)
//
// Graphviz computes its own coordinates; the positions stored on the
// graph are not used. Node order in the DOT source follows the graph, so
// output is stable for a given input.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
