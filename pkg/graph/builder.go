package graph

// Builder assembles a [Graph] in first-appearance order. Adding a node whose
// id already exists returns the existing node so callers can merge counters
// into it; adding a duplicate edge is a no-op.
//
// The zero value is ready to use.
type Builder struct {
	nodes   []*Node
	index   map[string]*Node
	edges   []Edge
	edgeSet map[string]struct{}
}

// AddNode inserts a node unless its id is present and returns the stored
// node along with whether it was newly added.
func (b *Builder) AddNode(n Node) (*Node, bool) {
	if b.index == nil {
		b.index = make(map[string]*Node)
	}
	if existing, ok := b.index[n.ID]; ok {
		return existing, false
	}
	node := &n
	b.index[n.ID] = node
	b.nodes = append(b.nodes, node)
	return node, true
}

// Node returns the stored node for id.
func (b *Builder) Node(id string) (*Node, bool) {
	n, ok := b.index[id]
	return n, ok
}

// HasNode reports whether id has been added.
func (b *Builder) HasNode(id string) bool {
	_, ok := b.index[id]
	return ok
}

// AddEdge records source→target once and reports whether it was new.
func (b *Builder) AddEdge(source, target string) bool {
	if b.edgeSet == nil {
		b.edgeSet = make(map[string]struct{})
	}
	e := NewEdge(source, target)
	if _, dup := b.edgeSet[e.ID]; dup {
		return false
	}
	b.edgeSet[e.ID] = struct{}{}
	b.edges = append(b.edges, e)
	return true
}

// NodeCount returns the number of distinct nodes added.
func (b *Builder) NodeCount() int { return len(b.nodes) }

// Graph returns the assembled graph. Edges referencing an id that was never
// added as a node are dropped.
func (b *Builder) Graph() Graph {
	g := Graph{
		Nodes: make([]Node, 0, len(b.nodes)),
		Edges: make([]Edge, 0, len(b.edges)),
	}
	for _, n := range b.nodes {
		g.Nodes = append(g.Nodes, *n)
	}
	for _, e := range b.edges {
		if b.HasNode(e.Source) && b.HasNode(e.Target) {
			g.Edges = append(g.Edges, e)
		}
	}
	return g
}
