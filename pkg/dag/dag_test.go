package dag

import (
	"errors"
	"slices"
	"testing"
)

func TestAddNode(t *testing.T) {
	g := New(nil)
	if err := g.AddNode(Node{ID: ""}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode(empty) = %v, want ErrInvalidNodeID", err)
	}
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode(a) = %v", err)
	}
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode(a) twice = %v, want ErrDuplicateNodeID", err)
	}
	n, ok := g.Node("a")
	if !ok || n.Meta == nil {
		t.Errorf("Node(a) = %+v, %v; want initialized metadata", n, ok)
	}
}

func TestAddEdge(t *testing.T) {
	g := New(nil)
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})

	tests := []struct {
		name string
		edge Edge
		want error
	}{
		{"ok", Edge{From: "a", To: "b"}, nil},
		{"parallel ok", Edge{From: "a", To: "b"}, nil},
		{"unknown source", Edge{From: "x", To: "b"}, ErrUnknownSourceNode},
		{"unknown target", Edge{From: "a", To: "x"}, ErrUnknownTargetNode},
		{"self loop", Edge{From: "a", To: "a"}, ErrSelfLoop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.AddEdge(tt.edge); !errors.Is(err, tt.want) {
				t.Errorf("AddEdge(%v) = %v, want %v", tt.edge, err, tt.want)
			}
		})
	}
	if g.EdgeCount() != 2 || g.OutDegree("a") != 2 || g.InDegree("b") != 2 {
		t.Errorf("edges = %v", g.Edges())
	}

	g.RemoveEdge("a", "b")
	if g.EdgeCount() != 0 || g.HasEdge("a", "b") {
		t.Errorf("after RemoveEdge edges = %v, want none", g.Edges())
	}
}

func TestInsertionOrder(t *testing.T) {
	g := New(nil)
	ids := []string{"zeta", "alpha", "mid", "beta"}
	for _, id := range ids {
		_ = g.AddNode(Node{ID: id})
	}
	_ = g.AddEdge(Edge{From: "zeta", To: "beta"})

	for i := 0; i < 5; i++ {
		if got := NodeIDs(g.Nodes()); !slices.Equal(got, ids) {
			t.Fatalf("Nodes() = %v, want %v", got, ids)
		}
	}
	if got := NodeIDs(g.Sources()); !slices.Equal(got, []string{"zeta", "alpha", "mid"}) {
		t.Errorf("Sources() = %v", got)
	}
	if got := NodeIDs(g.Sinks()); !slices.Equal(got, []string{"alpha", "mid", "beta"}) {
		t.Errorf("Sinks() = %v", got)
	}
	if got := g.Neighbors("beta"); !slices.Equal(got, []string{"zeta"}) {
		t.Errorf("Neighbors(beta) = %v", got)
	}
}

func TestSetRows(t *testing.T) {
	g := New(nil)
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})
	_ = g.AddNode(Node{ID: "c", Row: 4})
	g.SetRows(map[string]int{"a": 0, "b": 2})

	if got := g.RowIDs(); !slices.Equal(got, []int{0, 2, 4}) {
		t.Errorf("RowIDs() = %v", got)
	}
	if g.MaxRow() != 4 {
		t.Errorf("MaxRow() = %d, want 4", g.MaxRow())
	}
	if got := NodeIDs(g.NodesInRow(2)); !slices.Equal(got, []string{"b"}) {
		t.Errorf("NodesInRow(2) = %v", got)
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid skip edge", func(t *testing.T) {
		g := New(nil)
		_ = g.AddNode(Node{ID: "a", Row: 0})
		_ = g.AddNode(Node{ID: "b", Row: 3})
		_ = g.AddEdge(Edge{From: "a", To: "b"})
		if err := g.Validate(); err != nil {
			t.Errorf("Validate() = %v", err)
		}
	})
	t.Run("backward", func(t *testing.T) {
		g := New(nil)
		_ = g.AddNode(Node{ID: "a", Row: 1})
		_ = g.AddNode(Node{ID: "b", Row: 1})
		_ = g.AddEdge(Edge{From: "a", To: "b"})
		if err := g.Validate(); !errors.Is(err, ErrBackwardEdge) {
			t.Errorf("Validate() = %v, want ErrBackwardEdge", err)
		}
	})
	t.Run("cycle", func(t *testing.T) {
		g := New(nil)
		_ = g.AddNode(Node{ID: "a"})
		_ = g.AddNode(Node{ID: "b"})
		_ = g.AddEdge(Edge{From: "a", To: "b"})
		_ = g.AddEdge(Edge{From: "b", To: "a"})
		if err := g.detectCycles(); !errors.Is(err, ErrGraphHasCycle) {
			t.Errorf("detectCycles() = %v, want ErrGraphHasCycle", err)
		}
	})
}

func TestCountCrossings(t *testing.T) {
	g := New(nil)
	for _, id := range []string{"a", "b", "c", "x", "y", "z"} {
		_ = g.AddNode(Node{ID: id})
	}
	_ = g.AddEdge(Edge{From: "a", To: "z"})
	_ = g.AddEdge(Edge{From: "b", To: "y"})
	_ = g.AddEdge(Edge{From: "c", To: "x"})

	tests := []struct {
		name   string
		orders map[int][]string
		want   int
	}{
		{"fully reversed", map[int][]string{0: {"a", "b", "c"}, 1: {"x", "y", "z"}}, 3},
		{"aligned", map[int][]string{0: {"a", "b", "c"}, 1: {"z", "y", "x"}}, 0},
		{"non-adjacent rows", map[int][]string{0: {"a", "b", "c"}, 2: {"x", "y", "z"}}, 0},
		{"empty", map[int][]string{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountCrossings(g, tt.orders); got != tt.want {
				t.Errorf("CountCrossings() = %d, want %d", got, tt.want)
			}
		})
	}
}
