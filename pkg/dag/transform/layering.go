package transform

import "github.com/matzehuels/tldrviz/pkg/dag"

// AssignLayers assigns rows by longest path from the sources using Kahn's
// algorithm. Sources are at row 0 and every other node sits one row below
// its deepest parent. Existing rows are overwritten.
//
// The graph must be acyclic; run [BreakCycles] first. Nodes left on a cycle
// never reach in-degree zero and keep whatever row their processed parents
// pushed them to.
func AssignLayers(g *dag.DAG) {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	rows := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		rows[n.ID] = 0
		degree := g.InDegree(n.ID)
		inDegree[n.ID] = degree
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.Children(curr) {
			if row := rows[curr] + 1; row > rows[child] {
				rows[child] = row
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	g.SetRows(rows)
}
