package session

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	errs "github.com/matzehuels/tldrviz/pkg/errors"
	"github.com/matzehuels/tldrviz/pkg/graph"
	"github.com/matzehuels/tldrviz/pkg/model"
	"github.com/matzehuels/tldrviz/pkg/transform"
)

func callsData() *model.CallsData {
	return &model.CallsData{Edges: []model.CallEdge{
		{FromFile: "src/cli.ts", FromFunc: "main", ToFile: "src/run.ts", ToFunc: "run"},
		{FromFile: "src/run.ts", FromFunc: "run", ToFile: "src/log.ts", ToFunc: "log"},
		{FromFile: "src/other.ts", FromFunc: "x", ToFile: "src/log.ts", ToFunc: "log"},
		{FromFile: "src/run.test.ts", FromFunc: "t", ToFile: "src/run.ts", ToFunc: "run"},
	}}
}

func TestNew_Defaults(t *testing.T) {
	s := New()
	want := Options{View: graph.ViewCalls, HideTests: true, UtilityThreshold: 5}
	if got := s.Options(); got != want {
		t.Errorf("Options() = %+v, want %+v", got, want)
	}
	if d := s.Datasets(); d.Structure != nil || d.Calls != nil || d.Arch != nil {
		t.Errorf("fresh state should hold no data: %+v", d)
	}
	if s.Analyzing() {
		t.Error("fresh state should not be analyzing")
	}
}

func TestGraph_FollowsOptions(t *testing.T) {
	ctx := context.Background()
	s := New()
	s.SetCalls(callsData())

	g, err := s.Graph(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Nodes) != 4 {
		t.Errorf("default view nodes = %v, want 4 without the test file", g.NodeIDs())
	}

	s.SetHideTests(false)
	g, _ = s.Graph(ctx)
	if len(g.Nodes) != 5 {
		t.Errorf("nodes with tests = %v, want 5", g.NodeIDs())
	}

	s.SetSelectedEntryPoint("src/cli.ts::main")
	g, _ = s.Graph(ctx)
	want := []string{"src/cli.ts::main", "src/run.ts::run", "src/log.ts::log"}
	if !reflect.DeepEqual(g.NodeIDs(), want) {
		t.Errorf("reachable nodes = %v, want %v", g.NodeIDs(), want)
	}

	if err := s.SetActiveView(graph.ViewStructure); err != nil {
		t.Fatal(err)
	}
	g, _ = s.Graph(ctx)
	if !g.Empty() {
		t.Errorf("structure view without data should be empty: %v", g.NodeIDs())
	}
}

func TestSetActiveView(t *testing.T) {
	s := New()
	s.SelectNode("src/a.ts")
	if err := s.SetActiveView(graph.ViewArch); err != nil {
		t.Fatal(err)
	}
	if o := s.Options(); o.View != graph.ViewArch || o.SelectedNodeID != "" {
		t.Errorf("after SetActiveView: %+v", o)
	}

	err := s.SetActiveView("tower")
	if !errs.Is(err, errs.ErrCodeInvalidView) {
		t.Errorf("SetActiveView(tower) error = %v, want INVALID_VIEW", err)
	}
	if s.Options().View != graph.ViewArch {
		t.Error("invalid view should leave the active view unchanged")
	}
}

func TestSetters(t *testing.T) {
	s := New()
	s.SetSearchQuery("log")
	s.SetHideUtilities(true)
	s.SetShowOnlyUserFacing(true)

	s.SetUtilityThreshold(50)
	if got := s.Options().UtilityThreshold; got != transform.MaxUtilityThreshold {
		t.Errorf("threshold = %d, want clamp to %d", got, transform.MaxUtilityThreshold)
	}
	s.SetUtilityThreshold(0)
	if got := s.Options().UtilityThreshold; got != transform.MinUtilityThreshold {
		t.Errorf("threshold = %d, want clamp to %d", got, transform.MinUtilityThreshold)
	}

	o := s.Options()
	if o.SearchQuery != "log" || !o.HideUtilities || !o.ShowOnlyUserFacing {
		t.Errorf("Options() = %+v", o)
	}
}

func TestToggleFileExpanded(t *testing.T) {
	s := New()
	if !s.ToggleFileExpanded("src/b.ts") || !s.ToggleFileExpanded("src/a.ts") {
		t.Fatal("first toggle should expand")
	}
	if got, want := s.ExpandedFiles(), []string{"src/a.ts", "src/b.ts"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ExpandedFiles() = %v, want %v", got, want)
	}
	if s.ToggleFileExpanded("src/a.ts") {
		t.Error("second toggle should collapse")
	}
	if got := s.ExpandedFiles(); !reflect.DeepEqual(got, []string{"src/b.ts"}) {
		t.Errorf("ExpandedFiles() = %v", got)
	}
}

func TestSetDatasetsAndClear(t *testing.T) {
	s := New()
	arch := &model.ArchData{}
	classes := &model.ClassificationsData{}
	s.SetArch(arch)
	s.SetClassifications(classes)
	s.SetDatasets(transform.Datasets{Calls: callsData()})

	d := s.Datasets()
	if d.Arch != arch || d.Calls == nil {
		t.Fatalf("SetDatasets should keep categories that are nil in the update: %+v", d)
	}

	s.SetSelectedEntryPoint("src/cli.ts::main")
	s.SelectNode("src/cli.ts::main")
	s.ToggleFileExpanded("src/cli.ts")
	s.SetHideTests(false)
	s.ClearData()

	d = s.Datasets()
	if d.Structure != nil || d.Calls != nil || d.Arch != nil {
		t.Errorf("ClearData left data: %+v", d)
	}
	o := s.Options()
	if o.SelectedEntryPoint != "" || o.SelectedNodeID != "" || len(s.ExpandedFiles()) != 0 {
		t.Errorf("ClearData left selections: %+v %v", o, s.ExpandedFiles())
	}
	if o.HideTests {
		t.Error("ClearData should keep view settings")
	}
	if s.Classifications() != classes {
		t.Error("ClearData should keep classifications")
	}
}

func TestAnalysisFlag(t *testing.T) {
	s := New()
	if err := s.BeginAnalysis(); err != nil {
		t.Fatalf("BeginAnalysis: %v", err)
	}
	if !s.Analyzing() {
		t.Error("Analyzing() should be true")
	}
	if err := s.BeginAnalysis(); !errs.Is(err, errs.ErrCodeConflict) {
		t.Errorf("second BeginAnalysis error = %v, want CONFLICT", err)
	}

	s.EndAnalysis(errs.Wrap(errs.ErrCodeNetwork, errors.New("dial tcp"), "classification request failed"))
	if s.Analyzing() {
		t.Error("EndAnalysis should clear the flag")
	}
	if got, want := s.Snapshot().AnalysisError, "classification request failed: dial tcp"; got != want {
		t.Errorf("AnalysisError = %q, want %q", got, want)
	}

	if err := s.BeginAnalysis(); err != nil {
		t.Fatalf("BeginAnalysis after End: %v", err)
	}
	if s.Snapshot().AnalysisError != "" {
		t.Error("BeginAnalysis should clear the previous error")
	}
	s.EndAnalysis(nil)
}

func TestBeginAnalysis_Concurrent(t *testing.T) {
	s := New()
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		won int
	)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.BeginAnalysis() == nil {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if won != 1 {
		t.Errorf("%d goroutines began analysis, want exactly 1", won)
	}
}
