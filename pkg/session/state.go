package session

import (
	"context"
	"slices"
	"sync"
	"time"

	errs "github.com/matzehuels/tldrviz/pkg/errors"
	"github.com/matzehuels/tldrviz/pkg/graph"
	"github.com/matzehuels/tldrviz/pkg/model"
	"github.com/matzehuels/tldrviz/pkg/observability"
	"github.com/matzehuels/tldrviz/pkg/transform"
)

// Options are the user-adjustable view settings.
type Options struct {
	View               graph.View `json:"activeView"`
	HideTests          bool       `json:"hideTests"`
	SelectedEntryPoint string     `json:"selectedEntryPoint"`
	HideUtilities      bool       `json:"hideUtilities"`
	UtilityThreshold   int        `json:"utilityThreshold"`
	ShowOnlyUserFacing bool       `json:"showOnlyUserFacing"`
	SelectedNodeID     string     `json:"selectedNodeId"`
	SearchQuery        string     `json:"searchQuery"`
}

// DefaultOptions returns the settings of a fresh session: the calls view
// with test files hidden.
func DefaultOptions() Options {
	return Options{
		View:             graph.ViewCalls,
		HideTests:        true,
		UtilityThreshold: transform.DefaultUtilityThreshold,
	}
}

// TransformOptions converts o to the options understood by transform.Build.
func (o Options) TransformOptions() transform.Options {
	return transform.Options{
		HideTests:          o.HideTests,
		SelectedEntryPoint: o.SelectedEntryPoint,
		HideUtilities:      o.HideUtilities,
		UtilityThreshold:   o.UtilityThreshold,
	}
}

// State is the mutable state of one session. The zero value is not usable;
// call New.
type State struct {
	mu sync.RWMutex

	structure       *model.StructureData
	calls           *model.CallsData
	arch            *model.ArchData
	classifications *model.ClassificationsData

	opts     Options
	expanded map[string]bool

	analyzing   bool
	analysisErr string
}

// New returns a State with DefaultOptions and no data.
func New() *State {
	return &State{opts: DefaultOptions(), expanded: make(map[string]bool)}
}

// SetStructure replaces the structure dataset.
func (s *State) SetStructure(d *model.StructureData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.structure = d
}

// SetCalls replaces the calls dataset.
func (s *State) SetCalls(d *model.CallsData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = d
}

// SetArch replaces the architecture dataset.
func (s *State) SetArch(d *model.ArchData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.arch = d
}

// SetDatasets replaces every category that is non-nil in d and leaves the
// others untouched.
func (s *State) SetDatasets(d transform.Datasets) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.Structure != nil {
		s.structure = d.Structure
	}
	if d.Calls != nil {
		s.calls = d.Calls
	}
	if d.Arch != nil {
		s.arch = d.Arch
	}
}

// Datasets returns the current raw datasets.
func (s *State) Datasets() transform.Datasets {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return transform.Datasets{Structure: s.structure, Calls: s.calls, Arch: s.arch}
}

// SetClassifications replaces the stored classification result.
func (s *State) SetClassifications(c *model.ClassificationsData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.classifications = c
}

// Classifications returns the stored classification result, or nil.
func (s *State) Classifications() *model.ClassificationsData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.classifications
}

// ClearData drops all datasets together with the selections that refer to
// them. Classifications and view settings are kept.
func (s *State) ClearData() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.structure, s.calls, s.arch = nil, nil, nil
	s.opts.SelectedNodeID = ""
	s.opts.SelectedEntryPoint = ""
	s.expanded = make(map[string]bool)
}

// Options returns the current view settings.
func (s *State) Options() Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.opts
}

// SetActiveView switches the view and clears the node selection.
func (s *State) SetActiveView(v graph.View) error {
	if _, err := graph.ParseView(string(v)); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidView, err, "set view")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.View = v
	s.opts.SelectedNodeID = ""
	return nil
}

// SelectNode sets the selected node id; "" clears the selection.
func (s *State) SelectNode(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.SelectedNodeID = id
}

// SetSearchQuery sets the node search text.
func (s *State) SetSearchQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.SearchQuery = q
}

// SetHideTests toggles test file filtering.
func (s *State) SetHideTests(hide bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.HideTests = hide
}

// SetSelectedEntryPoint restricts the calls view to what id reaches; ""
// shows the whole graph.
func (s *State) SetSelectedEntryPoint(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.SelectedEntryPoint = id
}

// SetHideUtilities toggles utility function filtering.
func (s *State) SetHideUtilities(hide bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.HideUtilities = hide
}

// SetUtilityThreshold sets the incoming-call limit, clamped to the allowed
// range.
func (s *State) SetUtilityThreshold(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.UtilityThreshold = transform.ClampUtilityThreshold(n)
}

// SetShowOnlyUserFacing toggles the entry point list filter.
func (s *State) SetShowOnlyUserFacing(only bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.ShowOnlyUserFacing = only
}

// ToggleFileExpanded flips the expansion of a file node and reports the new
// state.
func (s *State) ToggleFileExpanded(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.expanded[id] {
		delete(s.expanded, id)
		return false
	}
	s.expanded[id] = true
	return true
}

// ExpandedFiles returns the expanded file ids in sorted order.
func (s *State) ExpandedFiles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.expanded))
	for id := range s.expanded {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// BeginAnalysis marks a classification run as in flight. It fails with
// CONFLICT if one already is. Callers must pair a successful call with
// EndAnalysis.
func (s *State) BeginAnalysis() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analyzing {
		return errs.New(errs.ErrCodeConflict, "classification already in progress")
	}
	s.analyzing = true
	s.analysisErr = ""
	return nil
}

// EndAnalysis clears the in-flight flag and records err as the last
// analysis error, or clears it when err is nil.
func (s *State) EndAnalysis(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyzing = false
	s.analysisErr = ""
	if err != nil {
		s.analysisErr = errs.UserMessage(err)
	}
}

// Analyzing reports whether a classification run is in flight.
func (s *State) Analyzing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.analyzing
}

// Graph builds the active view from the current datasets and options.
func (s *State) Graph(ctx context.Context) (graph.Graph, error) {
	s.mu.RLock()
	view := s.opts.View
	data := transform.Datasets{Structure: s.structure, Calls: s.calls, Arch: s.arch}
	opts := s.opts.TransformOptions()
	s.mu.RUnlock()

	return BuildGraph(ctx, view, data, opts)
}

// BuildGraph runs transform.Build wrapped in transform hooks.
func BuildGraph(ctx context.Context, view graph.View, data transform.Datasets, opts transform.Options) (graph.Graph, error) {
	hooks := observability.Transform()
	hooks.OnTransformStart(ctx, string(view))
	start := time.Now()
	g, err := transform.Build(view, data, opts)
	hooks.OnTransformComplete(ctx, string(view), len(g.Nodes), len(g.Edges), time.Since(start), err)
	return g, err
}
