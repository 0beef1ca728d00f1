// Package ingest turns analyzer output files into validated datasets.
//
// Three entry points cover the ways data reaches a session:
//
//   - [Ingest] routes a batch of uploaded files by name, decodes and
//     validates each independently, and reports per-file outcomes
//   - [LoadDir] reads structure.json, calls.json, arch.json and the stored
//     classifications from a data directory concurrently
//   - [Watch] reports debounced changes to the dataset files of a directory
//
// Routing is by filename substring, checked in order: "structure", then
// "calls", then "arch". A name matching none of them is ignored, never an
// error. One malformed file never prevents the others in its batch from
// loading.
package ingest
