package transform

import (
	"testing"

	"github.com/matzehuels/tldrviz/pkg/graph"
	"github.com/matzehuels/tldrviz/pkg/model"
)

func TestLayerOf(t *testing.T) {
	tests := map[string]graph.Layer{
		"HIGH (entry/controller)": graph.LayerHigh,
		"MIDDLE (service)":        graph.LayerMiddle,
		"HIGH/MIDDLE":             graph.LayerHigh,
		"LOW (utility)":           graph.LayerLow,
		"":                        graph.LayerLow,
		"high":                    graph.LayerLow,
	}
	for in, want := range tests {
		if got := LayerOf(in); got != want {
			t.Errorf("LayerOf(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestDirectoryLabel(t *testing.T) {
	tests := map[string]string{
		".":           "root",
		"src":         "src",
		"src/lib/api": "api",
		"src/":        "src/",
	}
	for in, want := range tests {
		if got := DirectoryLabel(in); got != want {
			t.Errorf("DirectoryLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestArch_Bands(t *testing.T) {
	data := &model.ArchData{DirectoryLayers: []model.DirectoryLayer{
		{Directory: "src/util", InferredLayer: "LOW"},
		{Directory: "src/cli", InferredLayer: "HIGH (entry)"},
		{Directory: "src/svc", InferredLayer: "MIDDLE"},
		{Directory: ".", InferredLayer: "HIGH"},
	}}

	g := Arch(data)

	if len(g.Edges) != 0 {
		t.Errorf("arch view should have no edges, got %v", g.Edges)
	}
	wantOrder := []string{"src/cli", ".", "src/svc", "src/util"}
	for i, id := range g.NodeIDs() {
		if id != wantOrder[i] {
			t.Fatalf("order = %v, want %v", g.NodeIDs(), wantOrder)
		}
	}

	wantPos := map[string]graph.Position{
		"src/cli":  {X: -280, Y: 0},
		".":        {X: 0, Y: 0},
		"src/svc":  {X: -140, Y: 200},
		"src/util": {X: -140, Y: 400},
	}
	for id, want := range wantPos {
		n, _ := g.Node(id)
		if n.Position != want {
			t.Errorf("position(%s) = %+v, want %+v", id, n.Position, want)
		}
	}

	root, _ := g.Node(".")
	if d := root.Data.(*graph.DirectoryData); d.Label != "root" || d.Layer != graph.LayerHigh {
		t.Errorf("root data = %+v", d)
	}
}

func TestArch_MergesDuplicateDirectories(t *testing.T) {
	data := &model.ArchData{DirectoryLayers: []model.DirectoryLayer{
		{Directory: "src", CallsOut: 2, CallsIn: 1, FunctionCount: 4, InferredLayer: "HIGH"},
		{Directory: "src", CallsOut: 3, CallsIn: 5, FunctionCount: 1, InferredLayer: "LOW"},
	}}
	g := Arch(data)
	if len(g.Nodes) != 1 {
		t.Fatalf("nodes = %v", g.NodeIDs())
	}
	d := g.Nodes[0].Data.(*graph.DirectoryData)
	if d.CallsOut != 5 || d.CallsIn != 6 || d.FunctionCount != 5 || d.Layer != graph.LayerHigh {
		t.Errorf("merged = %+v", d)
	}
}

func TestArch_Empty(t *testing.T) {
	if g := Arch(nil); !g.Empty() {
		t.Errorf("Arch(nil) = %+v", g)
	}
	if g := Arch(&model.ArchData{}); !g.Empty() {
		t.Errorf("Arch(empty) = %+v", g)
	}
}
