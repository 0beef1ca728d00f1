package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/tldrviz/pkg/cache"
	"github.com/matzehuels/tldrviz/pkg/graph"
)

func callsGraph() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{
			{ID: "a.ts::main", Kind: graph.KindFunction, Data: &graph.FunctionData{
				Label: "main", File: "a.ts", Function: "main", Heat: graph.HeatLow, IsEntry: true,
			}},
			{ID: "b.ts::helper", Kind: graph.KindFunction, Data: &graph.FunctionData{
				Label: "helper", File: "b.ts", Function: "helper", CallCount: 2, Heat: graph.HeatHigh, IsLeaf: true,
			}},
		},
		Edges: []graph.Edge{graph.NewEdge("a.ts::main", "b.ts::helper")},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(callsGraph(), Options{View: graph.ViewCalls})

	for _, want := range []string{
		"digraph G {",
		"rankdir=TB;",
		`"a.ts::main" [label="main", fillcolor="#e8f4fd", color="#16a34a", penwidth=2.5];`,
		`"b.ts::helper" [label="helper", fillcolor="#f8d7da", style="rounded,filled,dashed"];`,
		`"a.ts::main" -> "b.ts::helper";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "rank=same") {
		t.Error("calls view should not pin ranks")
	}
}

func TestToDOTDetailedAndDirection(t *testing.T) {
	dot := ToDOT(callsGraph(), Options{Detailed: true, Direction: "lr"})
	if !strings.Contains(dot, "rankdir=LR;") {
		t.Errorf("direction not applied:\n%s", dot)
	}
	if !strings.Contains(dot, `label="helper\nb.ts\ncalls: 2"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}

	if dot := ToDOT(callsGraph(), Options{Direction: "sideways"}); !strings.Contains(dot, "rankdir=TB;") {
		t.Errorf("unknown direction should fall back to TB:\n%s", dot)
	}
}

func TestToDOTStructure(t *testing.T) {
	g := graph.Graph{Nodes: []graph.Node{
		{ID: "lonely.ts", Kind: graph.KindFile, Data: &graph.FileData{Label: "lonely.ts", Path: "lonely.ts", IsIsolated: true}},
	}}
	dot := ToDOT(g, Options{View: graph.ViewStructure})
	if !strings.Contains(dot, `"lonely.ts" [label="lonely.ts", style="rounded,filled,dashed"`) {
		t.Errorf("isolated file not greyed:\n%s", dot)
	}
}

func TestToDOTArchRanks(t *testing.T) {
	dir := func(id string, layer graph.Layer) graph.Node {
		return graph.Node{ID: id, Kind: graph.KindDirectory, Data: &graph.DirectoryData{Label: id, Directory: id, Layer: layer}}
	}
	g := graph.Graph{Nodes: []graph.Node{
		dir("util", graph.LayerLow),
		dir("cli", graph.LayerHigh),
		dir("cmd", graph.LayerHigh),
	}}
	dot := ToDOT(g, Options{View: graph.ViewArch})

	high := strings.Index(dot, `{ rank=same; "cli"; "cmd"; }`)
	low := strings.Index(dot, `{ rank=same; "util"; }`)
	if high < 0 || low < 0 || high > low {
		t.Errorf("layer ranks wrong:\n%s", dot)
	}
	if !strings.Contains(dot, `"cli" -> "util" [style=invis];`) {
		t.Errorf("bands not chained:\n%s", dot)
	}
	if strings.Contains(dot, "MIDDLE") {
		t.Errorf("empty band emitted:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox =\n%s\nwant\n%s", out, want)
	}

	plain := []byte("<svg><g/></svg>")
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Errorf("no viewBox should be untouched, got %s", got)
	}
}

func TestRendererCaches(t *testing.T) {
	mem, err := cache.NewMemoryCache(4)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRenderer(mem, 0, nil)
	ctx := context.Background()

	svg, cached, err := r.Render(ctx, callsGraph(), Options{View: graph.ViewCalls})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if cached {
		t.Error("first render reported cached")
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "helper") {
		t.Errorf("unexpected SVG: %.200s", svg)
	}

	again, cached, err := r.Render(ctx, callsGraph(), Options{View: graph.ViewCalls})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !cached || string(again) != string(svg) {
		t.Errorf("second render cached=%v, same=%v", cached, string(again) == string(svg))
	}
}

func TestRenderSVGInvalid(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("RenderSVG accepted malformed DOT")
	}
}
