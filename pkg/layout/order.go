package layout

import (
	"slices"

	"github.com/matzehuels/tldrviz/pkg/dag"
)

// orderComponent groups the component's nodes by row and reorders each row
// with barycenter sweeps. Row r of the result holds the nodes ranked r,
// which is dense because every component contains a source at row 0.
func orderComponent(g *dag.DAG, comp []string, passes int) [][]string {
	var rows [][]string
	for _, id := range comp {
		n, _ := g.Node(id)
		for len(rows) <= n.Row {
			rows = append(rows, nil)
		}
		rows[n.Row] = append(rows[n.Row], id)
	}
	if len(rows) < 2 {
		return rows
	}

	best := cloneRows(rows)
	bestCrossings := crossings(g, rows)

	for p := 0; p < passes && bestCrossings > 0; p++ {
		for r := 1; r < len(rows); r++ {
			sortByBarycenter(rows[r], rows[r-1], g.Parents)
		}
		if c := crossings(g, rows); c < bestCrossings {
			best, bestCrossings = cloneRows(rows), c
		}

		for r := len(rows) - 2; r >= 0; r-- {
			sortByBarycenter(rows[r], rows[r+1], g.Children)
		}
		if c := crossings(g, rows); c < bestCrossings {
			best, bestCrossings = cloneRows(rows), c
		}
	}
	return best
}

// sortByBarycenter reorders row by the mean position of each node's
// neighbors in adj. Nodes without neighbors in adj keep their index as
// their weight; the sort is stable.
func sortByBarycenter(row, adj []string, neighbors func(string) []string) {
	pos := dag.PosMap(adj)
	weight := make(map[string]float64, len(row))
	for i, id := range row {
		var sum float64
		var n int
		for _, nb := range neighbors(id) {
			if p, ok := pos[nb]; ok {
				sum += float64(p)
				n++
			}
		}
		if n == 0 {
			weight[id] = float64(i)
			continue
		}
		weight[id] = sum / float64(n)
	}
	slices.SortStableFunc(row, func(a, b string) int {
		wa, wb := weight[a], weight[b]
		switch {
		case wa < wb:
			return -1
		case wa > wb:
			return 1
		}
		return 0
	})
}

func crossings(g *dag.DAG, rows [][]string) int {
	orders := make(map[int][]string, len(rows))
	for r, row := range rows {
		orders[r] = row
	}
	return dag.CountCrossings(g, orders)
}

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = slices.Clone(row)
	}
	return out
}
