package layout_test

import (
	"fmt"

	"github.com/matzehuels/tldrviz/pkg/graph"
	"github.com/matzehuels/tldrviz/pkg/layout"
)

func ExampleCompute() {
	res := layout.Compute(
		[]string{"main", "parse"},
		[]graph.Edge{graph.NewEdge("main", "parse")},
		layout.DefaultOptions(),
	)
	fmt.Println(res.Positions["main"])
	fmt.Println(res.Positions["parse"])
	// Output:
	// {50 50}
	// {50 210}
}
