// Package layout assigns 2D positions to graph nodes with a ranked
// (Sugiyama-style) algorithm.
//
// # Pipeline
//
//	graph.Graph ──► dag.DAG ──► BreakCycles ──► AssignLayers
//	                                                 │
//	   positions ◄── coordinates ◄── barycenter ◄── Components
//
// Ranking runs on a private [dag.DAG]: back edges are removed with
// [transform.BreakCycles], ranks come from [transform.AssignLayers], and each
// weakly connected component is ordered and positioned on its own. Components
// sit side by side along the cross axis.
//
// Within a component, rows are ordered by alternating barycenter sweeps. The
// ordering with the fewest crossings, as counted by [dag.CountCrossings], is
// kept; ties keep the earlier ordering.
//
// # Direction
//
// [TopBottom] places rank 0 at the top. [BottomTop] mirrors the rank axis,
// [LeftRight] and [RightLeft] turn it horizontal.
//
// # Coordinates
//
// The algorithm computes node centers. Stored positions are top-left
// corners, so each axis is shifted by half the node size.
//
// Layout is a pure function of its input: nodes and edges are visited in the
// order given, and no map iteration order leaks into the result.
package layout
