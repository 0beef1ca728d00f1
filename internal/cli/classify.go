package cli

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tldrviz/pkg/classify"
	errs "github.com/matzehuels/tldrviz/pkg/errors"
	"github.com/matzehuels/tldrviz/pkg/model"
	"github.com/matzehuels/tldrviz/pkg/store"
)

// classifyCommand creates the classify command.
func (c *CLI) classifyCommand() *cobra.Command {
	var (
		data     dataFlags
		provider string
		modelID  string
		timeout  time.Duration
		noSave   bool
	)

	cmd := &cobra.Command{
		Use:   "classify [files...]",
		Short: "Classify call-graph entry points with an LLM",
		Long: `Send every entry point of the arch dataset, with up to 10 of its callees,
to the configured model and store the result.

Requires the arch and calls datasets and an API key for the provider
(OPENROUTER_API_KEY or GEMINI_API_KEY).`,
		Example: `  tldrviz classify
  tldrviz classify --provider gemini --model gemini-2.5-pro`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg := c.settings()
			if provider != "" {
				cfg.Classify.Provider = provider
			}
			if modelID != "" {
				cfg.Classify.Model = modelID
			}
			if timeout > 0 {
				cfg.Classify.TimeoutSeconds = int(timeout.Seconds())
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			d, err := c.loadData(ctx, data, args, false)
			if err != nil {
				return err
			}
			if d.Arch == nil || d.Calls == nil {
				return errs.New(errs.ErrCodeInvalidInput, "classification needs both the arch and calls datasets")
			}

			m, err := c.newModel(ctx)
			if err != nil {
				return err
			}

			var saver store.Store = store.NewMemoryStore()
			if !noSave {
				if saver, err = c.openStore(ctx); err != nil {
					return err
				}
			}
			defer saver.Close()

			svc := classify.NewService(classify.ServiceConfig{
				State:      newState(d),
				Classifier: classify.NewClassifier(m, classify.WithLogger(logger)),
				Saver:      saver,
				Timeout:    cfg.Timeout(),
				Logger:     logger,
			})

			spinner := newSpinner(ctx, fmt.Sprintf("Classifying %d entry points with %s...", len(d.Arch.EntryLayer), m.Name()))
			spinner.Start()
			res, err := svc.Analyze(ctx)
			if err != nil {
				spinner.StopWithError("Classification failed")
				return err
			}
			spinner.SetMessage("Saving...")
			svc.Wait()
			spinner.StopWithSuccess("Classified %d entry points", len(res.Classifications))

			printClassificationSummary(res)
			if !noSave {
				printDetail("Stored in %s backend", saver.Name())
			}
			printNextStep("Browse them", "tldrviz entries --pick")
			return nil
		},
	}

	addDataFlags(cmd, &data)
	cmd.Flags().StringVar(&provider, "provider", "", "model provider: openrouter or gemini (default from config)")
	cmd.Flags().StringVar(&modelID, "model", "", "model id (default per provider)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "classification timeout (default from config, 2m)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not write the result to the store")
	_ = cmd.RegisterFlagCompletionFunc("provider", cobra.FixedCompletions(
		[]string{classify.ProviderOpenRouter, classify.ProviderGemini}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func printClassificationSummary(res *model.ClassificationsData) {
	byType := make(map[model.EntryPointType]int)
	userFacing := 0
	for _, e := range res.Classifications {
		byType[e.Type]++
		if e.IsUserFacing {
			userFacing++
		}
	}
	printKeyValue("User-facing", strconv.Itoa(userFacing))
	for _, t := range slices.Sorted(maps.Keys(byType)) {
		printKeyValue(string(t), strconv.Itoa(byType[t]))
	}
}
