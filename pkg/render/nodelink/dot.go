package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/tldrviz/pkg/graph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// View selects view-specific structure such as layer ranks.
	View graph.View

	// Direction is the Graphviz rankdir: TB (default), BT, LR or RL.
	Direction string

	// Detailed adds counters to node labels.
	Detailed bool
}

var (
	heatFill = map[graph.Heat]string{
		graph.HeatLow:    "#e8f4fd",
		graph.HeatMedium: "#fff3cd",
		graph.HeatHigh:   "#f8d7da",
	}
	layerFill = map[graph.Layer]string{
		graph.LayerHigh:   "#dbeafe",
		graph.LayerMiddle: "#dcfce7",
		graph.LayerLow:    "#fef3c7",
	}
	layerOrder = []graph.Layer{graph.LayerHigh, graph.LayerMiddle, graph.LayerLow}
)

// ToDOT converts a view graph to Graphviz DOT format.
func ToDOT(g graph.Graph, opts Options) string {
	dir := strings.ToUpper(opts.Direction)
	switch dir {
	case "TB", "BT", "LR", "RL":
	default:
		dir = "TB"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", dir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#64748b\", arrowsize=0.7];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
	}

	if opts.View == graph.ViewArch {
		writeLayerRanks(&buf, g)
	}

	if len(g.Edges) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// writeLayerRanks puts each layer on one rank and chains the bands with
// invisible edges so HIGH sits above MIDDLE above LOW.
func writeLayerRanks(buf *bytes.Buffer, g graph.Graph) {
	bands := make(map[graph.Layer][]string)
	for _, n := range g.Nodes {
		if d, ok := n.Data.(*graph.DirectoryData); ok {
			bands[d.Layer] = append(bands[d.Layer], n.ID)
		}
	}

	var prev string
	for _, layer := range layerOrder {
		ids := bands[layer]
		if len(ids) == 0 {
			continue
		}
		quoted := make([]string, len(ids))
		for i, id := range ids {
			quoted[i] = strconv.Quote(id)
		}
		fmt.Fprintf(buf, "\n  { rank=same; %s; }\n", strings.Join(quoted, "; "))
		if prev != "" {
			fmt.Fprintf(buf, "  %q -> %q [style=invis];\n", prev, ids[0])
		}
		prev = ids[0]
	}
}

func fmtAttrs(n graph.Node, detailed bool) []string {
	label := n.Label()
	var attrs []string

	switch d := n.Data.(type) {
	case *graph.FunctionData:
		if detailed {
			label += fmt.Sprintf("\n%s\ncalls: %d", d.File, d.CallCount)
		}
		if fill, ok := heatFill[d.Heat]; ok {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
		}
		switch {
		case d.IsEntry:
			attrs = append(attrs, "color=\"#16a34a\"", "penwidth=2.5")
		case d.IsLeaf:
			attrs = append(attrs, "style=\"rounded,filled,dashed\"")
		}
	case *graph.FileData:
		if detailed {
			label += fmt.Sprintf("\nfunctions: %d, classes: %d\nimports: %d", len(d.Functions), len(d.Classes), d.Imports)
		}
		if d.IsIsolated {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=\"#f1f5f9\"", "fontcolor=\"#64748b\"")
		}
	case *graph.DirectoryData:
		if detailed {
			label += fmt.Sprintf("\n%s\nout: %d, in: %d\nfunctions: %d", d.Layer, d.CallsOut, d.CallsIn, d.FunctionCount)
		}
		if fill, ok := layerFill[d.Layer]; ok {
			attrs = append(attrs, fmt.Sprintf("fillcolor=%q", fill))
		}
	}

	return append([]string{fmt.Sprintf("label=%q", label)}, attrs...)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one that
// scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
