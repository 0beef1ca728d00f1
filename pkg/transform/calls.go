package transform

import (
	"github.com/matzehuels/tldrviz/pkg/graph"
	"github.com/matzehuels/tldrviz/pkg/layout"
	"github.com/matzehuels/tldrviz/pkg/model"
)

// Utility threshold bounds for [CallsOptions.UtilityThreshold].
const (
	MinUtilityThreshold     = 1
	MaxUtilityThreshold     = 20
	DefaultUtilityThreshold = 5
)

// CallsLayout is the geometry of the call-graph view.
var CallsLayout = layout.Options{
	Direction:  layout.TopBottom,
	NodeWidth:  200,
	NodeHeight: 60,
	RankSep:    80,
	NodeSep:    40,
}

// CallsOptions filters the call-graph view.
type CallsOptions struct {
	// HideTests drops every call with a test file at either end.
	HideTests bool
	// Arch marks entry and leaf functions. It never filters.
	Arch *model.ArchData
	// SelectedEntryPoint restricts the graph to calls reachable from this
	// function key. Empty means no restriction.
	SelectedEntryPoint string
	// HideUtilities drops functions called more than UtilityThreshold times.
	HideUtilities    bool
	UtilityThreshold int
}

// ClampUtilityThreshold bounds n to [MinUtilityThreshold, MaxUtilityThreshold].
func ClampUtilityThreshold(n int) int {
	return min(max(n, MinUtilityThreshold), MaxUtilityThreshold)
}

// Calls builds the function call graph.
func Calls(data *model.CallsData, opts CallsOptions) graph.Graph {
	if data == nil || len(data.Edges) == 0 {
		return emptyGraph()
	}

	entries, leaves := archSets(opts.Arch)

	edges := data.Edges
	if opts.HideTests {
		edges = filterEdges(edges, func(e model.CallEdge) bool {
			return !IsTestFile(e.FromFile) && !IsTestFile(e.ToFile)
		})
	}

	if opts.SelectedEntryPoint != "" {
		reachable := Reachable(edges, opts.SelectedEntryPoint)
		edges = filterEdges(edges, func(e model.CallEdge) bool {
			return reachable[e.SourceID()] && reachable[e.TargetID()]
		})
	}

	if opts.HideUtilities {
		threshold := ClampUtilityThreshold(opts.UtilityThreshold)
		incoming := incomingCounts(edges)
		edges = filterEdges(edges, func(e model.CallEdge) bool {
			return incoming[e.SourceID()] <= threshold && incoming[e.TargetID()] <= threshold
		})
	}

	if len(edges) == 0 {
		return emptyGraph()
	}

	// Nodes are grouped by file. Files, and functions within a file, keep
	// their order of first appearance.
	var files []string
	funcs := make(map[string][]string)
	seen := make(map[string]bool)
	callCounts := incomingCounts(edges)
	note := func(file, fn string) {
		id := model.FunctionID(file, fn)
		if seen[id] {
			return
		}
		seen[id] = true
		if _, ok := funcs[file]; !ok {
			files = append(files, file)
		}
		funcs[file] = append(funcs[file], fn)
	}
	for _, e := range edges {
		note(e.FromFile, e.FromFunc)
		note(e.ToFile, e.ToFunc)
	}

	var b graph.Builder
	for _, file := range files {
		for _, fn := range funcs[file] {
			id := model.FunctionID(file, fn)
			b.AddNode(graph.Node{
				ID:   id,
				Kind: graph.KindFunction,
				Data: &graph.FunctionData{
					Label:     fn,
					File:      file,
					Function:  fn,
					IsEntry:   entries[id],
					IsLeaf:    leaves[id],
					CallCount: callCounts[id],
				},
			})
		}
	}
	for _, e := range edges {
		b.AddEdge(e.SourceID(), e.TargetID())
	}

	g := b.Graph()

	maxCount := 1
	for _, n := range g.Nodes {
		maxCount = max(maxCount, n.Data.(*graph.FunctionData).CallCount)
	}
	for _, n := range g.Nodes {
		fd := n.Data.(*graph.FunctionData)
		fd.Heat = HeatFor(fd.CallCount, maxCount)
	}

	layout.Apply(&g, CallsLayout)
	return g
}

// Reachable returns the set of function keys reachable from start along
// edges, start included. Each node is expanded once, so cycles terminate.
func Reachable(edges []model.CallEdge, start string) map[string]bool {
	adjacency := make(map[string][]string)
	for _, e := range edges {
		src := e.SourceID()
		adjacency[src] = append(adjacency[src], e.TargetID())
	}

	reachable := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, next := range adjacency[curr] {
			if !reachable[next] {
				reachable[next] = true
				queue = append(queue, next)
			}
		}
	}
	return reachable
}

// MaxCallCount returns the largest incoming call count over all edges of
// data, at least 1.
func MaxCallCount(data *model.CallsData) int {
	m := 1
	if data == nil {
		return m
	}
	for _, c := range incomingCounts(data.Edges) {
		m = max(m, c)
	}
	return m
}

// OutgoingCalls returns up to limit call records leaving the function id,
// in input order. A non-positive limit returns all of them.
func OutgoingCalls(data *model.CallsData, id string, limit int) []model.CallEdge {
	if data == nil {
		return nil
	}
	var out []model.CallEdge
	for _, e := range data.Edges {
		if e.SourceID() != id {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func incomingCounts(edges []model.CallEdge) map[string]int {
	counts := make(map[string]int)
	for _, e := range edges {
		counts[e.TargetID()]++
	}
	return counts
}

func archSets(arch *model.ArchData) (entries, leaves map[string]bool) {
	entries, leaves = map[string]bool{}, map[string]bool{}
	if arch == nil {
		return entries, leaves
	}
	for _, f := range arch.EntryLayer {
		entries[f.ID()] = true
	}
	for _, f := range arch.LeafLayer {
		leaves[f.ID()] = true
	}
	return entries, leaves
}

func filterEdges(edges []model.CallEdge, keep func(model.CallEdge) bool) []model.CallEdge {
	out := make([]model.CallEdge, 0, len(edges))
	for _, e := range edges {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func emptyGraph() graph.Graph {
	return graph.Graph{Nodes: []graph.Node{}, Edges: []graph.Edge{}}
}
