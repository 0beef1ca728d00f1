// Package transform provides the rank-preparation passes of the layered
// layout.
//
// # Pipeline
//
// The layout engine runs these passes on a private copy of the input graph:
//
//  1. [BreakCycles] removes DFS back edges so that ranking terminates.
//  2. [AssignLayers] places every node one row below its deepest parent.
//  3. [Components] splits the graph into weakly connected components, which
//     are ordered and positioned independently.
//
// All passes visit nodes in the graph's insertion order, so the same input
// always yields the same rows.
package transform
