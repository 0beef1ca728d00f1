package layout

import (
	"reflect"
	"testing"

	"github.com/matzehuels/tldrviz/pkg/graph"
)

func edges(pairs ...[2]string) []graph.Edge {
	out := make([]graph.Edge, len(pairs))
	for i, p := range pairs {
		out[i] = graph.NewEdge(p[0], p[1])
	}
	return out
}

func TestCompute_Empty(t *testing.T) {
	res := Compute(nil, nil, DefaultOptions())
	if len(res.Positions) != 0 {
		t.Errorf("Positions = %v, want empty", res.Positions)
	}

	var g graph.Graph
	if res := Apply(&g, DefaultOptions()); len(res.Positions) != 0 {
		t.Errorf("Apply(empty) = %v", res.Positions)
	}
}

func TestCompute_SingleNodeTopLeft(t *testing.T) {
	res := Compute([]string{"a"}, nil, DefaultOptions())
	// Center is (50+100, 50+30); top-left subtracts half the size.
	want := graph.Position{X: 50, Y: 50}
	if got := res.Positions["a"]; got != want {
		t.Errorf("Positions[a] = %+v, want %+v", got, want)
	}
	if res.Width != 300 || res.Height != 160 {
		t.Errorf("extent = %vx%v, want 300x160", res.Width, res.Height)
	}
}

func TestCompute_ChainTopBottom(t *testing.T) {
	opts := Options{NodeWidth: 200, NodeHeight: 60, RankSep: 80, NodeSep: 40}
	res := Compute([]string{"a", "b", "c"}, edges([2]string{"a", "b"}, [2]string{"b", "c"}), opts)

	for i, id := range []string{"a", "b", "c"} {
		want := graph.Position{X: 50, Y: 50 + float64(i)*140}
		if got := res.Positions[id]; got != want {
			t.Errorf("Positions[%s] = %+v, want %+v", id, got, want)
		}
	}
}

func TestCompute_Directions(t *testing.T) {
	nodes := []string{"a", "b"}
	es := edges([2]string{"a", "b"})

	tests := []struct {
		dir  Direction
		a, b graph.Position
	}{
		{TopBottom, graph.Position{X: 50, Y: 50}, graph.Position{X: 50, Y: 210}},
		{BottomTop, graph.Position{X: 50, Y: 210}, graph.Position{X: 50, Y: 50}},
		{LeftRight, graph.Position{X: 50, Y: 50}, graph.Position{X: 350, Y: 50}},
		{RightLeft, graph.Position{X: 350, Y: 50}, graph.Position{X: 50, Y: 50}},
	}
	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			opts := DefaultOptions()
			opts.Direction = tt.dir
			res := Compute(nodes, es, opts)
			if got := res.Positions["a"]; got != tt.a {
				t.Errorf("a = %+v, want %+v", got, tt.a)
			}
			if got := res.Positions["b"]; got != tt.b {
				t.Errorf("b = %+v, want %+v", got, tt.b)
			}
		})
	}
}

func TestCompute_ComponentsSideBySide(t *testing.T) {
	res := Compute([]string{"a", "b", "x", "y"}, edges([2]string{"a", "b"}, [2]string{"x", "y"}), DefaultOptions())

	if res.Positions["a"].X != res.Positions["b"].X {
		t.Errorf("a and b should share a column: %+v %+v", res.Positions["a"], res.Positions["b"])
	}
	// Second component starts after width 200 plus NodeSep 50.
	if got, want := res.Positions["x"].X, res.Positions["a"].X+250; got != want {
		t.Errorf("x.X = %v, want %v", got, want)
	}
	if res.Positions["x"].Y != res.Positions["a"].Y {
		t.Errorf("component roots should share rank 0")
	}
}

func TestCompute_RowCenteredOnWidestRow(t *testing.T) {
	res := Compute([]string{"root", "l", "r"}, edges([2]string{"root", "l"}, [2]string{"root", "r"}), DefaultOptions())

	l, r, root := res.Positions["l"], res.Positions["r"], res.Positions["root"]
	if l.Y != r.Y || l.X >= r.X {
		t.Fatalf("children not side by side: l=%+v r=%+v", l, r)
	}
	if root.X != (l.X+r.X)/2 {
		t.Errorf("root.X = %v, want centered at %v", root.X, (l.X+r.X)/2)
	}
}

func TestCompute_Cycle(t *testing.T) {
	res := Compute([]string{"a", "b", "c"}, edges([2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "a"}), DefaultOptions())
	if len(res.Positions) != 3 {
		t.Fatalf("positions = %v", res.Positions)
	}
	if !(res.Positions["a"].Y < res.Positions["b"].Y && res.Positions["b"].Y < res.Positions["c"].Y) {
		t.Errorf("cycle should be ranked a, b, c: %v", res.Positions)
	}
}

func TestCompute_IgnoresSelfLoopAndDangling(t *testing.T) {
	res := Compute([]string{"a"}, edges([2]string{"a", "a"}, [2]string{"a", "ghost"}), DefaultOptions())
	if _, ok := res.Positions["ghost"]; ok {
		t.Error("dangling endpoint should not be positioned")
	}
	if got := res.Positions["a"]; got != (graph.Position{X: 50, Y: 50}) {
		t.Errorf("a = %+v", got)
	}
}

func TestCompute_ReducesCrossings(t *testing.T) {
	// Rows start as [r] [a b] [x y] with a→y crossing b→x.
	res := Compute([]string{"r", "a", "b", "x", "y"},
		edges([2]string{"r", "a"}, [2]string{"r", "b"}, [2]string{"a", "y"}, [2]string{"b", "x"}),
		DefaultOptions())

	p := res.Positions
	if p["a"].X >= p["b"].X {
		t.Fatalf("row 1 reordered unexpectedly: a=%+v b=%+v", p["a"], p["b"])
	}
	if p["y"].X >= p["x"].X {
		t.Errorf("edges a→y and b→x still cross: x=%+v y=%+v", p["x"], p["y"])
	}
}

func TestCompute_Deterministic(t *testing.T) {
	nodes := []string{"m", "a", "z", "k", "b", "q"}
	es := edges(
		[2]string{"m", "a"}, [2]string{"m", "z"}, [2]string{"a", "k"},
		[2]string{"z", "k"}, [2]string{"k", "m"}, [2]string{"b", "q"},
	)
	first := Compute(nodes, es, DefaultOptions())
	for i := 0; i < 20; i++ {
		if got := Compute(nodes, es, DefaultOptions()); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs:\n%v\n%v", i, got, first)
		}
	}
}

func TestApply_PassesEdgesThrough(t *testing.T) {
	g := graph.Graph{
		Nodes: []graph.Node{{ID: "a", Kind: graph.KindFile}, {ID: "b", Kind: graph.KindFile}},
		Edges: edges([2]string{"a", "b"}, [2]string{"a", "b"}),
	}
	before := append([]graph.Edge(nil), g.Edges...)
	Apply(&g, DefaultOptions())
	if !reflect.DeepEqual(g.Edges, before) {
		t.Errorf("edges changed: %v", g.Edges)
	}
	if g.Nodes[1].Position.Y <= g.Nodes[0].Position.Y {
		t.Errorf("b should be below a: %+v", g.Nodes)
	}
}

func TestParseDirection(t *testing.T) {
	for _, s := range []string{"TB", "BT", "LR", "RL"} {
		if _, err := ParseDirection(s); err != nil {
			t.Errorf("ParseDirection(%q) = %v", s, err)
		}
	}
	if _, err := ParseDirection("tb"); err == nil {
		t.Error("ParseDirection(tb) should fail")
	}
}
