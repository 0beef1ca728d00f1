package transform

import (
	"reflect"
	"testing"

	"github.com/matzehuels/tldrviz/pkg/graph"
	"github.com/matzehuels/tldrviz/pkg/model"
)

func file(path string, imports ...string) model.FileRecord {
	f := model.FileRecord{Path: path, Functions: []string{"f"}}
	for _, m := range imports {
		f.Imports = append(f.Imports, model.Import{Module: m, IsFrom: true})
	}
	return f
}

func fileData(t *testing.T, g graph.Graph, id string) *graph.FileData {
	t.Helper()
	n, ok := g.Node(id)
	if !ok {
		t.Fatalf("node %s missing; have %v", id, g.NodeIDs())
	}
	return n.Data.(*graph.FileData)
}

func TestStructure_EndToEnd(t *testing.T) {
	data := &model.StructureData{Files: []model.FileRecord{
		{Path: "src/a.ts", Imports: []model.Import{{Module: `from "./b"`}}},
		{Path: "src/b.ts", Imports: []model.Import{}},
	}}

	g := Structure(data, StructureOptions{})

	if got, want := g.NodeIDs(), []string{"src/a.ts", "src/b.ts"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("nodes = %v, want %v", got, want)
	}
	want := []graph.Edge{{ID: "src/a.ts->src/b.ts", Source: "src/a.ts", Target: "src/b.ts"}}
	if !reflect.DeepEqual(g.Edges, want) {
		t.Errorf("edges = %v, want %v", g.Edges, want)
	}
	for _, id := range []string{"src/a.ts", "src/b.ts"} {
		if fileData(t, g, id).IsIsolated {
			t.Errorf("%s should not be isolated", id)
		}
	}
	a, _ := g.Node("src/a.ts")
	b, _ := g.Node("src/b.ts")
	if a.Position.Y >= b.Position.Y {
		t.Errorf("importer should sit above imported: a=%+v b=%+v", a.Position, b.Position)
	}
	if fd := fileData(t, g, "src/a.ts"); fd.Imports != 1 || fd.Label != "a.ts" || fd.Functions == nil || fd.Classes == nil {
		t.Errorf("a data = %+v", fd)
	}
}

func TestStructure_Isolation(t *testing.T) {
	data := &model.StructureData{Files: []model.FileRecord{
		file("src/a.ts", `React from "react"`, `x from "./missing"`),
		file("src/b.ts", `{ c } from "./c"`),
		file("src/c.ts"),
	}}
	g := Structure(data, StructureOptions{})

	if !fileData(t, g, "src/a.ts").IsIsolated {
		t.Error("a has only unresolved imports and should be isolated")
	}
	if fileData(t, g, "src/a.ts").Imports != 2 {
		t.Error("raw import count should still be reported")
	}
	if fileData(t, g, "src/b.ts").IsIsolated || fileData(t, g, "src/c.ts").IsIsolated {
		t.Error("b and c are connected")
	}
}

func TestStructure_CollisionLabels(t *testing.T) {
	data := &model.StructureData{Files: []model.FileRecord{
		file("src/api/utils.ts"),
		file("src/ui/utils.ts"),
		file("utils.ts"),
		file("src/main.ts"),
	}}
	g := Structure(data, StructureOptions{})

	tests := map[string]string{
		"src/api/utils.ts": "api/utils.ts",
		"src/ui/utils.ts":  "ui/utils.ts",
		"utils.ts":         "utils.ts",
		"src/main.ts":      "main.ts",
	}
	for id, want := range tests {
		if got := fileData(t, g, id).Label; got != want {
			t.Errorf("label(%s) = %q, want %q", id, got, want)
		}
	}
}

func TestStructure_ResolverPrecedence(t *testing.T) {
	data := &model.StructureData{Files: []model.FileRecord{
		file("a/foo.ts"),
		file("b/foo.ts"),
		file("b/main.ts", `{ foo } from "./foo"`),
	}}
	g := Structure(data, StructureOptions{})

	want := []string{"b/main.ts->b/foo.ts"}
	if got := edgeIDs(g); !reflect.DeepEqual(got, want) {
		t.Errorf("edges = %v, want %v", got, want)
	}
}

func TestStructure_FiltersBarrelsAndTests(t *testing.T) {
	data := &model.StructureData{Files: []model.FileRecord{
		{Path: "src/index.ts"},
		{Path: "src/lib/index.tsx", Imports: []model.Import{{Module: `"./x"`}}},
		file("src/a.test.ts", `from "./a"`),
		file("src/a.ts"),
	}}

	g := Structure(data, StructureOptions{HideTests: true})
	if got, want := g.NodeIDs(), []string{"src/lib/index.tsx", "src/a.ts"}; !reflect.DeepEqual(got, want) {
		t.Errorf("nodes = %v, want %v", got, want)
	}

	g = Structure(data, StructureOptions{})
	if _, ok := g.Node("src/a.test.ts"); !ok {
		t.Error("test file should be kept without HideTests")
	}
	if _, ok := g.Node("src/index.ts"); ok {
		t.Error("empty barrel should always be dropped")
	}
}

func TestStructure_DedupAndSelfImport(t *testing.T) {
	data := &model.StructureData{Files: []model.FileRecord{
		file("src/a.ts", `{ x } from "./b"`, `{ y } from "./b.ts"`, `{ z } from "./a"`),
		file("src/b.ts"),
	}}
	g := Structure(data, StructureOptions{})
	if got := edgeIDs(g); !reflect.DeepEqual(got, []string{"src/a.ts->src/b.ts"}) {
		t.Errorf("edges = %v", got)
	}
}

func TestStructure_Empty(t *testing.T) {
	if g := Structure(nil, StructureOptions{}); !g.Empty() {
		t.Errorf("Structure(nil) = %+v", g)
	}
	if g := Structure(&model.StructureData{}, StructureOptions{}); !g.Empty() {
		t.Errorf("Structure(empty) = %+v", g)
	}
}
