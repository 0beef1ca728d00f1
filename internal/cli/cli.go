package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tldrviz/pkg/buildinfo"
	"github.com/matzehuels/tldrviz/pkg/cache"
	"github.com/matzehuels/tldrviz/pkg/classify"
	"github.com/matzehuels/tldrviz/pkg/config"
	errs "github.com/matzehuels/tldrviz/pkg/errors"
	"github.com/matzehuels/tldrviz/pkg/store"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "tldrviz",
		Short:        "tldrviz draws call graphs, file structure and architecture layers",
		Long:         `tldrviz turns the structure, call and architecture datasets produced by tldr into node-link diagrams, and classifies call-graph entry points with an LLM.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./"+config.DefaultFile+" if present)")

	root.AddCommand(c.graphCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.classifyCommand())
	root.AddCommand(c.entriesCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	if c.cfg != nil {
		return nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if cfg.Source != "" {
		c.Logger.Debug("loaded config", "file", cfg.Source)
	}
	c.cfg = cfg
	return nil
}

// settings returns the loaded configuration, or the defaults when a command
// runs without the root's pre-run (tests).
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// =============================================================================
// Factories
// =============================================================================

func (c *CLI) newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.Disabled
	}
	dir, err := c.settings().CacheDir()
	if err != nil {
		c.Logger.Debug("no cache directory, caching disabled", "err", err)
		return cache.Disabled
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("cannot open cache, caching disabled", "dir", dir, "err", err)
		return cache.Disabled
	}
	return fc
}

func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	s, err := store.Open(ctx, c.settings().StoreOptions())
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("opened classification store", "backend", s.Name())
	return s, nil
}

// newModel builds the configured LLM backend.
func (c *CLI) newModel(ctx context.Context) (classify.Model, error) {
	cfg := c.settings()
	switch cfg.Classify.Provider {
	case classify.ProviderGemini:
		return classify.NewGemini(ctx, classify.GeminiConfig{
			APIKey: cfg.Classify.GeminiAPIKey,
			Model:  cfg.Classify.Model,
		})
	case classify.ProviderOpenRouter:
		return classify.NewOpenRouter(classify.OpenRouterConfig{
			APIKey:  cfg.Classify.OpenRouterAPIKey,
			Model:   cfg.Classify.Model,
			BaseURL: cfg.Classify.BaseURL,
		})
	default:
		return nil, errs.New(errs.ErrCodeInvalidInput, "unknown classify provider %q", cfg.Classify.Provider)
	}
}
