package session

import (
	"github.com/matzehuels/tldrviz/pkg/graph"
	"github.com/matzehuels/tldrviz/pkg/model"
)

// Snapshot is a read-only copy of a State, shaped for JSON clients.
type Snapshot struct {
	Options
	ExpandedFiles   []string `json:"expandedFiles"`
	HasStructure    bool     `json:"hasStructure"`
	HasCalls        bool     `json:"hasCalls"`
	HasArch         bool     `json:"hasArch"`
	Classifications int      `json:"classifications"`
	AnalyzedAt      string   `json:"analyzedAt,omitempty"`
	IsAnalyzing     bool     `json:"isAnalyzing"`
	AnalysisError   string   `json:"analysisError,omitempty"`
}

// Snapshot captures the current state.
func (s *State) Snapshot() Snapshot {
	expanded := s.ExpandedFiles()

	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Options:       s.opts,
		ExpandedFiles: expanded,
		HasStructure:  s.structure != nil,
		HasCalls:      s.calls != nil,
		HasArch:       s.arch != nil,
		IsAnalyzing:   s.analyzing,
		AnalysisError: s.analysisErr,
	}
	if s.classifications != nil {
		snap.Classifications = len(s.classifications.Classifications)
		snap.AnalyzedAt = s.classifications.AnalyzedAt
	}
	return snap
}

// Update is a partial change to the view settings. Nil fields are left
// unchanged.
type Update struct {
	View               *string `json:"activeView"`
	HideTests          *bool   `json:"hideTests"`
	SelectedEntryPoint *string `json:"selectedEntryPoint"`
	HideUtilities      *bool   `json:"hideUtilities"`
	UtilityThreshold   *int    `json:"utilityThreshold"`
	ShowOnlyUserFacing *bool   `json:"showOnlyUserFacing"`
	SelectedNodeID     *string `json:"selectedNodeId"`
	SearchQuery        *string `json:"searchQuery"`
}

// Apply applies u through the setters. An invalid view is rejected before
// any field changes.
func (s *State) Apply(u Update) error {
	if u.View != nil {
		if err := s.SetActiveView(graph.View(*u.View)); err != nil {
			return err
		}
	}
	if u.HideTests != nil {
		s.SetHideTests(*u.HideTests)
	}
	if u.SelectedEntryPoint != nil {
		s.SetSelectedEntryPoint(*u.SelectedEntryPoint)
	}
	if u.HideUtilities != nil {
		s.SetHideUtilities(*u.HideUtilities)
	}
	if u.UtilityThreshold != nil {
		s.SetUtilityThreshold(*u.UtilityThreshold)
	}
	if u.ShowOnlyUserFacing != nil {
		s.SetShowOnlyUserFacing(*u.ShowOnlyUserFacing)
	}
	if u.SelectedNodeID != nil {
		s.SelectNode(*u.SelectedNodeID)
	}
	if u.SearchQuery != nil {
		s.SetSearchQuery(*u.SearchQuery)
	}
	return nil
}

// Entries lists the stored classifications with user-facing entries first,
// each group in stored order. With userFacingOnly, the others are omitted.
func (s *State) Entries(userFacingOnly bool) []model.EntryPointClassification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.EntryPointClassification{}
	if s.classifications == nil {
		return out
	}
	for _, c := range s.classifications.Classifications {
		if c.IsUserFacing {
			out = append(out, c)
		}
	}
	if userFacingOnly {
		return out
	}
	for _, c := range s.classifications.Classifications {
		if !c.IsUserFacing {
			out = append(out, c)
		}
	}
	return out
}

// Classification returns the stored classification for a function key.
func (s *State) Classification(id string) (model.EntryPointClassification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.classifications.Lookup(id)
}
