// Package render turns view graphs into pictures.
//
// The HTTP API serves graphs as JSON for any interactive front end. For
// static output the [nodelink] subpackage converts a [graph.Graph] into
// Graphviz DOT and renders it to SVG in-process:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{View: graph.ViewCalls})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Rendering is the expensive step, so [nodelink.Renderer] puts a
// [cache.Cache] in front of it keyed by the DOT source.
//
// [nodelink]: github.com/matzehuels/tldrviz/pkg/render/nodelink
// [graph.Graph]: github.com/matzehuels/tldrviz/pkg/graph.Graph
// [nodelink.Renderer]: github.com/matzehuels/tldrviz/pkg/render/nodelink.Renderer
// [cache.Cache]: github.com/matzehuels/tldrviz/pkg/cache.Cache
package render
