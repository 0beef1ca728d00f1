package transform

import (
	"github.com/matzehuels/tldrviz/pkg/graph"
	"github.com/matzehuels/tldrviz/pkg/layout"
	"github.com/matzehuels/tldrviz/pkg/model"
	"github.com/matzehuels/tldrviz/pkg/resolve"
)

// StructureLayout is the geometry of the structure view.
var StructureLayout = layout.Options{
	Direction:  layout.TopBottom,
	NodeWidth:  180,
	NodeHeight: 50,
	RankSep:    80,
	NodeSep:    30,
}

// StructureOptions filters the structure view.
type StructureOptions struct {
	HideTests bool
}

// Structure builds the file import graph.
func Structure(data *model.StructureData, opts StructureOptions) graph.Graph {
	if data == nil {
		return emptyGraph()
	}

	files := make([]model.FileRecord, 0, len(data.Files))
	for _, f := range data.Files {
		if opts.HideTests && IsTestFile(f.Path) {
			continue
		}
		if isBarrel(f) {
			continue
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return emptyGraph()
	}

	nameCount := make(map[string]int, len(files))
	paths := make([]string, len(files))
	for i, f := range files {
		nameCount[resolve.Filename(f.Path)]++
		paths[i] = f.Path
	}
	idx := resolve.NewIndex(paths)

	type link struct{ source, target string }
	var links []link
	seen := make(map[string]bool)
	connected := make(map[string]bool)
	for _, f := range files {
		for _, imp := range f.Imports {
			target, ok := idx.Resolve(imp.Module, f.Path)
			if !ok {
				continue
			}
			id := graph.EdgeID(f.Path, target)
			if seen[id] {
				continue
			}
			seen[id] = true
			links = append(links, link{f.Path, target})
			connected[f.Path] = true
			connected[target] = true
		}
	}

	var b graph.Builder
	for _, f := range files {
		name := resolve.Filename(f.Path)
		label := name
		if nameCount[name] > 1 {
			if parent := resolve.ParentFolder(f.Path); parent != "" {
				label = parent + "/" + name
			}
		}
		b.AddNode(graph.Node{
			ID:   f.Path,
			Kind: graph.KindFile,
			Data: &graph.FileData{
				Label:      label,
				Path:       f.Path,
				Functions:  nonNil(f.Functions),
				Classes:    nonNil(f.Classes),
				Imports:    len(f.Imports),
				IsIsolated: !connected[f.Path],
			},
		})
	}
	for _, l := range links {
		b.AddEdge(l.source, l.target)
	}

	g := b.Graph()
	layout.Apply(&g, StructureLayout)
	return g
}

// isBarrel reports whether f is an index file with no imports, functions or
// classes.
func isBarrel(f model.FileRecord) bool {
	return resolve.IsIndexFile(f.Path) &&
		len(f.Imports) == 0 && len(f.Functions) == 0 && len(f.Classes) == 0
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
