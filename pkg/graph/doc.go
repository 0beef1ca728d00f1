// Package graph defines the derived node/edge graph that every tldrviz view
// produces.
//
// # Core Types
//
//   - [Graph]: nodes and edges of one view, in deterministic order
//   - [Node]: a positioned vertex with a kind-specific [Payload]
//   - [Edge]: a directed connection identified by "<source>-><target>"
//   - [Builder]: assembles a Graph while collapsing duplicate nodes and edges
//
// # Payloads
//
// Each node carries exactly one payload matching its [Kind]:
//
//	graph.KindFunction  → *FunctionData   (call-graph view)
//	graph.KindFile      → *FileData       (structure view)
//	graph.KindDirectory → *DirectoryData  (architecture view)
//
// JSON decoding dispatches on the "kind" field, so [ReadGraph] restores the
// concrete payload type.
//
// # Identity
//
// Function nodes key on "<file>::<function>", file nodes on the file path and
// directory nodes on the directory path. [EdgeID] builds edge identities.
// Edges whose endpoints are missing from the node set are discarded by
// [Builder.Graph].
package graph
