// Package transform converts raw analysis datasets into the node/edge graph
// of one view.
//
// # Views
//
//   - [Calls]: function call graph, optional test filtering, entry-point
//     reachability and utility hiding; laid out top to bottom
//   - [Structure]: file import graph resolved with [resolve.Index]; laid out
//     top to bottom with importers above imported files
//   - [Arch]: directories in three fixed bands (HIGH, MIDDLE, LOW); no edges
//
// [Build] selects the transformer for a [graph.View]. Every transformer is a
// pure function of its inputs: the output is rebuilt from scratch on every
// call, node order follows first appearance in the input, and duplicate
// edges collapse to one.
//
// # Statistics
//
// [StructureStats] and [ArchStats] summarize the raw datasets for sidebars
// and the CLI stats command.
package transform
