// Package pkg provides the core libraries for tldrviz codebase visualization.
//
// # Overview
//
// tldrviz turns the JSON output of the tldr code analyzer into node/edge
// diagrams: a function call graph, a file import graph, and a layered
// directory summary. Entry points of the call graph can be classified by a
// language model. The pkg directory is organized as follows:
//
//  1. [model] - Raw analyzer records with JSON and validation tags
//  2. [graph] - The derived node/edge graph and its JSON form
//  3. [dag] - Row-based directed graph used for hierarchical layout
//  4. [layout] - Layered (Sugiyama-style) coordinate assignment
//  5. [resolve] - Heuristic import path resolution
//  6. [transform] - The three view transformers and view dispatch
//  7. [ingest] - Dataset upload routing, data directory loading, watching
//  8. [session] - Explicit application state
//  9. [classify] - Entry point classification against LLM providers
//  10. [store] - Classification persistence (file, Redis, MongoDB)
//  11. [render] - DOT export and SVG rendering
//
// # Architecture
//
// The typical data flow:
//
//	structure.json / calls.json / arch.json
//	         ↓
//	    [ingest] package (decode, validate, route)
//	         ↓
//	    [session] package (datasets + view options)
//	         ↓
//	    [transform] package (view → graph.Graph, using [resolve] and [layout])
//	         ↓
//	    JSON over HTTP, or SVG via [render/nodelink]
//
// # Quick Start
//
//	data, _ := ingest.LoadDir(ctx, "tldr-output", nil)
//	g, _ := transform.Build(graph.ViewCalls, data.Datasets, transform.Options{
//	    HideTests: true,
//	})
//	graph.WriteGraph(os.Stdout, g)
//
// # Infrastructure
//
// [cache] - Rendered artifact caching (null, file, in-memory LRU).
//
// [config] - TOML configuration with .env and environment overrides.
//
// [errors] - Coded errors mapped to HTTP statuses and CLI messages.
//
// [observability] - Hook interfaces for metrics without hard dependencies.
//
// [buildinfo] - Version information injected via ldflags.
package pkg
