package cli

import (
	"context"
	"errors"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tldrviz/internal/server"
	"github.com/matzehuels/tldrviz/pkg/cache"
	"github.com/matzehuels/tldrviz/pkg/classify"
	"github.com/matzehuels/tldrviz/pkg/config"
	"github.com/matzehuels/tldrviz/pkg/ingest"
	"github.com/matzehuels/tldrviz/pkg/observability"
	"github.com/matzehuels/tldrviz/pkg/render/nodelink"
	"github.com/matzehuels/tldrviz/pkg/session"
	"github.com/matzehuels/tldrviz/pkg/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		data  dataFlags
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve graphs, stats, classification and upload endpoints over HTTP.

The session starts from the data directory and the configured store; both
may be empty, in which case datasets can be uploaded to /api/upload. With
--watch, changes to dataset files in the data directory are reloaded.`,
		Example: `  tldrviz serve --addr :8080 --watch
  curl localhost:8080/api/graph/calls`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := c.settings()
			if addr == "" {
				addr = cfg.Addr
			}
			dir := c.dir(data)

			st, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			d, err := ingest.LoadDir(ctx, dir, st)
			if err != nil {
				return err
			}
			for _, o := range d.Failed() {
				logger.Warn("skipping dataset file", "file", o.Name, "err", o.Error)
			}
			state := newState(d)
			logger.Info("session ready", "dir", dir,
				"structure", d.Structure != nil, "calls", d.Calls != nil, "arch", d.Arch != nil,
				"classifications", d.Classifications != nil)

			var svc *classify.Service
			if m, err := c.newModel(ctx); err != nil {
				logger.Warn("classification disabled", "err", err)
			} else {
				svc = classify.NewService(classify.ServiceConfig{
					State:      state,
					Classifier: classify.NewClassifier(m, classify.WithLogger(logger)),
					Saver:      st,
					Timeout:    cfg.Timeout(),
					Logger:     logger,
				})
			}

			renderCache, err := cache.NewMemoryCache(cfg.Cache.MemoryEntries)
			if err != nil {
				return err
			}
			defer renderCache.Close()

			metrics := server.NewMetrics()
			metrics.Install()
			defer observability.Reset()

			if watch {
				go watchData(ctx, logger, dir, state, st)
			}

			srv := server.New(server.Config{
				State:      state,
				Classifier: svc,
				Store:      st,
				Renderer:   nodelink.NewRenderer(renderCache, cfg.CacheTTL(), logger),
				Metrics:    metrics,
				Logger:     logger,
			})
			printSuccess("Serving on http://%s", addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	addDataFlags(cmd, &data)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+config.DefaultAddr+")")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload datasets when files in the data directory change")

	return cmd
}

// watchData reloads the session whenever dataset files in dir change. A
// dataset whose file fails to load is nil in the reload, so SetDatasets
// keeps its previous value. Classifications
// are re-read from the store only when classifications.json changed.
func watchData(ctx context.Context, logger *log.Logger, dir string, state *session.State, st store.Store) {
	err := ingest.Watch(ctx, dir, ingest.WatchOptions{Logger: logger}, func(changed []string) {
		var src ingest.ClassificationSource
		if slices.Contains(changed, ingest.ClassificationsFile) {
			src = st
		}
		d, err := ingest.LoadDir(ctx, dir, src)
		if err != nil {
			logger.Warn("reload failed, keeping previous data", "files", changed, "err", err)
			return
		}
		for _, o := range d.Failed() {
			logger.Warn("reload failed, keeping previous dataset", "file", o.Name, "category", o.Category, "err", o.Error)
		}
		state.SetDatasets(d.Datasets)
		if d.Classifications != nil {
			state.SetClassifications(d.Classifications)
		}
		logger.Info("reloaded datasets", "files", changed)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("watcher stopped", "err", err)
	}
}
