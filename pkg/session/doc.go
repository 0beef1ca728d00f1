// Package session holds the application state of one tldrviz session.
//
// A [State] owns the three raw datasets, the latest entry point
// classifications, and the view options a user adjusts while exploring. All
// mutation goes through setters guarded by a single RWMutex, so the HTTP
// server's handlers and the CLI can share one instance.
//
// Derived graphs are never stored. [State.Graph] rebuilds the active view
// from the current datasets and options on every call:
//
//	st := session.New()
//	st.SetDatasets(transform.Datasets{Calls: calls, Arch: arch})
//	st.SetSelectedEntryPoint("src/cli.ts::main")
//	g, err := st.Graph(ctx)
//
// Classification runs are serialized with [State.BeginAnalysis] and
// [State.EndAnalysis]; a second run while one is in flight is rejected with
// a CONFLICT error.
package session
