package transform

import "github.com/matzehuels/tldrviz/pkg/dag"

// BreakCycles removes the back edges found by a depth-first search and
// returns how many distinct from→to pairs were removed.
//
// The search starts from sources in insertion order, then from any node left
// unvisited (nodes that only sit on cycles). Parallel back edges between the
// same pair are removed together. The walk keeps its own stack, so long call
// chains do not grow the goroutine stack.
func BreakCycles(g *dag.DAG) int {
	type frame struct {
		id       string
		children []string
		next     int
	}

	onPath := make(map[string]bool)
	done := make(map[string]bool, g.NodeCount())
	back := make(map[[2]string]bool)
	var order [][2]string

	walk := func(root string) {
		if done[root] {
			return
		}
		stack := []frame{{id: root, children: g.Children(root)}}
		onPath[root] = true
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(top.children) {
				onPath[top.id] = false
				done[top.id] = true
				stack = stack[:len(stack)-1]
				continue
			}
			child := top.children[top.next]
			top.next++
			switch {
			case onPath[child]:
				pair := [2]string{top.id, child}
				if !back[pair] {
					back[pair] = true
					order = append(order, pair)
				}
			case !done[child]:
				onPath[child] = true
				stack = append(stack, frame{id: child, children: g.Children(child)})
			}
		}
	}

	for _, n := range g.Sources() {
		walk(n.ID)
	}
	for _, n := range g.Nodes() {
		walk(n.ID)
	}

	for _, e := range order {
		g.RemoveEdge(e[0], e[1])
	}
	return len(order)
}
