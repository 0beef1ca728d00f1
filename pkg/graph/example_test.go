package graph_test

import (
	"fmt"

	"github.com/matzehuels/tldrviz/pkg/graph"
)

func ExampleBuilder() {
	var b graph.Builder
	b.AddNode(graph.Node{ID: "src/a.ts", Kind: graph.KindFile, Data: &graph.FileData{Label: "a.ts"}})
	b.AddNode(graph.Node{ID: "src/b.ts", Kind: graph.KindFile, Data: &graph.FileData{Label: "b.ts"}})
	b.AddEdge("src/a.ts", "src/b.ts")
	b.AddEdge("src/a.ts", "src/b.ts")
	b.AddEdge("src/a.ts", "lodash")

	g := b.Graph()
	fmt.Println("Nodes:", g.NodeIDs())
	for _, e := range g.Edges {
		fmt.Println("Edge:", e.ID)
	}
	// Output:
	// Nodes: [src/a.ts src/b.ts]
	// Edge: src/a.ts->src/b.ts
}
