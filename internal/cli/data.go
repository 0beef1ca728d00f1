package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/tldrviz/pkg/errors"
	"github.com/matzehuels/tldrviz/pkg/graph"
	"github.com/matzehuels/tldrviz/pkg/ingest"
	"github.com/matzehuels/tldrviz/pkg/session"
	"github.com/matzehuels/tldrviz/pkg/transform"
)

// =============================================================================
// Input
// =============================================================================

type dataFlags struct {
	dataDir string
}

func addDataFlags(cmd *cobra.Command, f *dataFlags) {
	cmd.Flags().StringVarP(&f.dataDir, "data-dir", "d", "", "directory holding structure.json, calls.json and arch.json (default from config)")
}

// dir returns the data directory: the flag, else the configured one.
func (c *CLI) dir(f dataFlags) string {
	if f.dataDir != "" {
		return f.dataDir
	}
	return c.settings().DataDir
}

// loadData reads datasets from explicit files or, without files, from the
// data directory. Stored classifications are loaded when withStore is set.
func (c *CLI) loadData(ctx context.Context, f dataFlags, files []string, withStore bool) (ingest.Data, error) {
	logger := loggerFromContext(ctx)

	var src ingest.ClassificationSource
	if withStore {
		s, err := c.openStore(ctx)
		if err != nil {
			return ingest.Data{}, err
		}
		defer s.Close()
		src = s
	}

	if len(files) == 0 {
		dir := c.dir(f)
		data, err := ingest.LoadDir(ctx, dir, src)
		if err != nil {
			return ingest.Data{}, err
		}
		for _, o := range data.Failed() {
			printWarning("%s: %s", o.Name, o.Error)
		}
		if data.Empty() {
			if err := data.Err(); err != nil {
				return ingest.Data{}, err
			}
			return ingest.Data{}, errs.New(errs.ErrCodeNotFound, "no datasets found in %s", dir)
		}
		logger.Debug("loaded data directory", "dir", dir,
			"structure", data.Structure != nil, "calls", data.Calls != nil, "arch", data.Arch != nil,
			"classifications", data.Classifications != nil)
		return data, nil
	}

	res := ingest.IngestPaths(files)
	for _, o := range res.Files {
		switch o.Status {
		case ingest.StatusFailed:
			printWarning("%s: %s", filepath.Base(o.Name), o.Error)
		case ingest.StatusIgnored:
			logger.Debug("ignored file", "file", o.Name)
		}
	}
	if res.Count(ingest.StatusAccepted) == 0 {
		if err := res.Err(); err != nil {
			return ingest.Data{}, err
		}
		return ingest.Data{}, errs.New(errs.ErrCodeInvalidInput, "no structure, calls or arch file among %d argument(s)", len(files))
	}

	data := ingest.Data{Datasets: res.Datasets}
	if src != nil {
		stored, err := src.Load(ctx)
		if err != nil {
			return ingest.Data{}, err
		}
		data.Classifications = stored
	}
	return data, nil
}

// newState seeds a session from loaded data.
func newState(data ingest.Data) *session.State {
	st := session.New()
	st.SetDatasets(data.Datasets)
	st.SetClassifications(data.Classifications)
	return st
}

// =============================================================================
// View Options
// =============================================================================

type viewFlags struct {
	hideTests        bool
	entry            string
	hideUtilities    bool
	utilityThreshold int
}

func addViewFlags(cmd *cobra.Command, f *viewFlags) {
	cmd.Flags().BoolVar(&f.hideTests, "hide-tests", true, "drop test files (.test., .spec., __tests__)")
	cmd.Flags().StringVar(&f.entry, "entry", "", "restrict the call graph to what <file>::<function> reaches")
	cmd.Flags().BoolVar(&f.hideUtilities, "hide-utilities", false, "drop functions called more than --utility-threshold times")
	cmd.Flags().IntVar(&f.utilityThreshold, "utility-threshold", transform.DefaultUtilityThreshold, "incoming call count above which a function counts as a utility (1-20)")
}

// options converts the flags. An entry that is not a function key is
// reported but still applied, so it selects nothing.
func (f viewFlags) options() transform.Options {
	if f.entry != "" {
		if err := errs.ValidateEntryPointID(f.entry); err != nil {
			printWarning("%s; the call graph will be empty", errs.UserMessage(err))
		}
	}
	return transform.Options{
		HideTests:          f.hideTests,
		SelectedEntryPoint: f.entry,
		HideUtilities:      f.hideUtilities,
		UtilityThreshold:   transform.ClampUtilityThreshold(f.utilityThreshold),
	}
}

// buildView parses the view argument and builds its graph.
func buildView(ctx context.Context, name string, data transform.Datasets, f viewFlags) (graph.Graph, graph.View, error) {
	view, err := graph.ParseView(name)
	if err != nil {
		return graph.Graph{}, "", errs.Wrap(errs.ErrCodeInvalidView, err, "invalid view")
	}
	prog := newProgress(loggerFromContext(ctx))
	g, err := session.BuildGraph(ctx, view, data, f.options())
	if err != nil {
		return graph.Graph{}, "", err
	}
	prog.done("built "+string(view)+" graph", "nodes", len(g.Nodes), "edges", len(g.Edges))
	return g, view, nil
}

// viewArgs completes the first positional argument with view names.
func viewArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	names := make([]string, len(graph.Views))
	for i, v := range graph.Views {
		names[i] = string(v)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
