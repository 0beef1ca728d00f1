// Package dag provides the directed graph that backs tldrviz's layered
// layout.
//
// # Overview
//
// Call graphs and import graphs are arbitrary directed graphs: they contain
// cycles, self-references, disconnected islands and nodes with no edges at
// all. The layout engine turns such a graph into ranks (rows) so that most
// edges point from one rank to a later one. This package holds that graph and
// the rank index; the algorithms that compute ranks live in
// [github.com/matzehuels/tldrviz/pkg/dag/transform].
//
// # Basic Usage
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "main"})
//	g.AddNode(dag.Node{ID: "parse"})
//	g.AddEdge(dag.Edge{From: "main", To: "parse"})
//
// Unlike a map-backed graph, [DAG.Nodes], [DAG.Sources] and [DAG.NodesInRow]
// return nodes in insertion order. Layouts must be identical across runs, so
// every traversal in this module starts from that order.
//
// # Edge Crossings
//
// [CountCrossings] and [CountLayerCrossings] count inversions with a Fenwick
// tree in O(E log V), which keeps evaluating candidate orderings during
// barycenter sweeps cheap.
//
// # Concurrency
//
// A DAG is not safe for concurrent mutation. Layouts build a private DAG per
// call, so concurrent layouts of different inputs are fine.
package dag
