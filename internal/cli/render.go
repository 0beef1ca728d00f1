package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tldrviz/pkg/render/nodelink"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		data      dataFlags
		view      viewFlags
		output    string
		direction string
		detailed  bool
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "render <calls|structure|arch> [files...]",
		Short: "Render a view to SVG",
		Long: `Build one view and render it as an SVG node-link diagram with Graphviz.

Rendered diagrams are cached by their DOT source; use --no-cache to force a
fresh render.`,
		Example: `  tldrviz render calls -o calls.svg
  tldrviz render arch out/arch.json --detailed`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: viewArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			d, err := c.loadData(ctx, data, args[1:], false)
			if err != nil {
				return err
			}
			g, v, err := buildView(ctx, args[0], d.Datasets, view)
			if err != nil {
				return err
			}
			if g.Empty() {
				printWarning("The %s view is empty; check the datasets and filters", v)
			}

			rc := c.newCache(noCache)
			defer rc.Close()
			r := nodelink.NewRenderer(rc, c.settings().CacheTTL(), logger)

			prog := newProgress(logger)
			svg, cached, err := r.Render(ctx, g, nodelink.Options{View: v, Direction: direction, Detailed: detailed})
			if err != nil {
				return fmt.Errorf("render %s: %w", v, err)
			}
			prog.done("rendered svg", "bytes", len(svg), "cached", cached)

			if output == "" {
				output = string(v) + ".svg"
			}
			if output == "-" {
				_, err := os.Stdout.Write(svg)
				return err
			}
			if err := os.WriteFile(output, svg, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Rendered %s view", v)
			printFile(output)
			printStats(len(g.Nodes), len(g.Edges), cached)
			return nil
		},
	}

	addDataFlags(cmd, &data)
	addViewFlags(cmd, &view)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default <view>.svg)")
	cmd.Flags().StringVar(&direction, "direction", "TB", "rank direction: TB, BT, LR or RL")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include counters in node labels")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}
