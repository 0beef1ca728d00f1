package model

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FunctionIDSeparator joins a file path and function name in a [FunctionID].
const FunctionIDSeparator = "::"

// FunctionID returns the canonical "<file>::<function>" key.
func FunctionID(file, function string) string {
	return file + FunctionIDSeparator + function
}

// SplitFunctionID splits a key produced by [FunctionID].
// The split happens at the last separator so that file paths containing
// "::" still round-trip. ok is false if id has no separator.
func SplitFunctionID(id string) (file, function string, ok bool) {
	i := strings.LastIndex(id, FunctionIDSeparator)
	if i < 0 {
		return "", "", false
	}
	return id[:i], id[i+len(FunctionIDSeparator):], true
}

// =============================================================================
// Structure
// =============================================================================

// Import is a single raw import statement as reported by the analyzer.
// Module holds the unparsed import text, e.g. `{ foo } from "./foo"`.
type Import struct {
	Module string   `json:"module"`
	Names  []string `json:"names"`
	IsFrom bool     `json:"is_from"`
}

// FileRecord describes one source file.
type FileRecord struct {
	Path      string   `json:"path" validate:"required"`
	Functions []string `json:"functions"`
	Classes   []string `json:"classes"`
	Methods   []string `json:"methods,omitempty"`
	Imports   []Import `json:"imports"`
}

// StructureData is the content of a structure.json dataset.
type StructureData struct {
	Root      string       `json:"root"`
	Languages []string     `json:"languages"`
	Files     []FileRecord `json:"files" validate:"dive"`
}

// =============================================================================
// Calls
// =============================================================================

// CallEdge is a directed call from one function to another. Identical
// records may occur once per call site.
type CallEdge struct {
	FromFile string `json:"from_file" validate:"required"`
	FromFunc string `json:"from_func" validate:"required"`
	ToFile   string `json:"to_file" validate:"required"`
	ToFunc   string `json:"to_func" validate:"required"`
}

// SourceID returns the caller's function key.
func (e CallEdge) SourceID() string { return FunctionID(e.FromFile, e.FromFunc) }

// TargetID returns the callee's function key.
func (e CallEdge) TargetID() string { return FunctionID(e.ToFile, e.ToFunc) }

// CallsData is the content of a calls.json dataset.
type CallsData struct {
	Edges []CallEdge `json:"edges" validate:"dive"`
}

// =============================================================================
// Architecture
// =============================================================================

// LayerFunction identifies a function classified as an entry or leaf.
type LayerFunction struct {
	File     string `json:"file" validate:"required"`
	Function string `json:"function" validate:"required"`
}

// ID returns the function key.
func (f LayerFunction) ID() string { return FunctionID(f.File, f.Function) }

// DirectoryLayer reports call statistics and the inferred architectural
// layer for one directory. InferredLayer is free text containing HIGH,
// MIDDLE or neither.
type DirectoryLayer struct {
	Directory     string `json:"directory" validate:"required"`
	CallsOut      int    `json:"calls_out"`
	CallsIn       int    `json:"calls_in"`
	InferredLayer string `json:"inferred_layer"`
	FunctionCount int    `json:"function_count"`
}

// ArchSummary holds the analyzer's precomputed counters.
type ArchSummary struct {
	EntryCount    int `json:"entry_count"`
	LeafCount     int `json:"leaf_count"`
	MiddleCount   int `json:"middle_count"`
	CircularCount int `json:"circular_count"`
}

// ArchData is the content of an arch.json dataset.
type ArchData struct {
	EntryLayer           []LayerFunction  `json:"entry_layer" validate:"dive"`
	LeafLayer            []LayerFunction  `json:"leaf_layer" validate:"dive"`
	MiddleLayerCount     int              `json:"middle_layer_count"`
	DirectoryLayers      []DirectoryLayer `json:"directory_layers" validate:"dive"`
	CircularDependencies []any            `json:"circular_dependencies"`
	Summary              ArchSummary      `json:"summary"`
}

// =============================================================================
// Classification
// =============================================================================

// EntryPointType enumerates how the LLM may classify an entry point.
type EntryPointType string

const (
	EntryCLICommand   EntryPointType = "cli-command"
	EntryAPIEndpoint  EntryPointType = "api-endpoint"
	EntryMain         EntryPointType = "main"
	EntryEventHandler EntryPointType = "event-handler"
	EntryExport       EntryPointType = "export"
	EntryInternal     EntryPointType = "internal"
	EntryTest         EntryPointType = "test"
)

// EntryPointTypes lists every valid [EntryPointType] in declaration order.
var EntryPointTypes = []EntryPointType{
	EntryCLICommand, EntryAPIEndpoint, EntryMain, EntryEventHandler,
	EntryExport, EntryInternal, EntryTest,
}

// EntryPointClassification is the LLM's verdict on one entry point.
type EntryPointClassification struct {
	File         string         `json:"file" bson:"file" validate:"required"`
	Function     string         `json:"function" bson:"function" validate:"required"`
	IsUserFacing bool           `json:"isUserFacing" bson:"isUserFacing"`
	Type         EntryPointType `json:"type" bson:"type" validate:"oneof=cli-command api-endpoint main event-handler export internal test"`
	Description  string         `json:"description" bson:"description"`
	UserAction   *string        `json:"userAction" bson:"userAction"`
	Confidence   float64        `json:"confidence" bson:"confidence" validate:"gte=0,lte=1"`
}

// ID returns the function key of the classified entry point.
func (c EntryPointClassification) ID() string { return FunctionID(c.File, c.Function) }

// ClassificationsData is the persisted result of one classification run.
// AnalyzedAt is an ISO-8601 timestamp.
type ClassificationsData struct {
	Classifications []EntryPointClassification `json:"classifications" bson:"classifications" validate:"dive"`
	AnalyzedAt      string                     `json:"analyzedAt" bson:"analyzedAt"`
}

// Lookup returns the classification for a function key.
func (d *ClassificationsData) Lookup(id string) (EntryPointClassification, bool) {
	if d == nil {
		return EntryPointClassification{}, false
	}
	for _, c := range d.Classifications {
		if c.ID() == id {
			return c, true
		}
	}
	return EntryPointClassification{}, false
}

// =============================================================================
// Validation
// =============================================================================

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate checks v against its `validate` struct tags.
func Validate(v any) error {
	return Validator().Struct(v)
}
