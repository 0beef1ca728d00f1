// Package model defines the raw analysis records consumed by tldrviz.
//
// The records mirror the JSON emitted by the external tldr analyzer:
//
//   - [StructureData]: files with their functions, classes and raw import text
//   - [CallsData]: function-to-function call edges
//   - [ArchData]: entry/leaf functions and directories bucketed into layers
//   - [ClassificationsData]: LLM classification of entry points
//
// Records are treated as immutable once loaded. Every external boundary
// (file ingestion, HTTP upload, classification responses) decodes into these
// types and then runs [Validate], which applies the `validate` struct tags
// via go-playground/validator.
//
// # Identity
//
// Functions are identified by [FunctionID], which joins a file path and a
// function name with "::". The same key is used for call-graph nodes,
// entry-point selection and classification lookup.
package model
