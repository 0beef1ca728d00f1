package transform

import "github.com/matzehuels/tldrviz/pkg/dag"

// Components returns the weakly connected components of g as lists of node
// IDs. Components are ordered by their first node in insertion order, and
// each list is in insertion order as well.
func Components(g *dag.DAG) [][]string {
	nodes := g.Nodes()
	comp := make(map[string]int, len(nodes))
	var count int

	for _, n := range nodes {
		if _, seen := comp[n.ID]; seen {
			continue
		}
		comp[n.ID] = count
		stack := []string{n.ID}
		for len(stack) > 0 {
			curr := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, nb := range g.Neighbors(curr) {
				if _, seen := comp[nb]; !seen {
					comp[nb] = count
					stack = append(stack, nb)
				}
			}
		}
		count++
	}

	out := make([][]string, count)
	for _, n := range nodes {
		c := comp[n.ID]
		out[c] = append(out[c], n.ID)
	}
	return out
}
