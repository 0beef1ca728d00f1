package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tldrviz/pkg/graph"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		data   dataFlags
		view   viewFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "graph <calls|structure|arch> [files...]",
		Short: "Print a view as positioned graph JSON",
		Long: `Build one view and print its nodes and edges as JSON.

Datasets come from the file arguments (routed by name: *structure*, *calls*,
*arch*) or, without arguments, from the data directory.`,
		Example: `  tldrviz graph calls --entry src/cli.ts::main
  tldrviz graph structure out/structure.json -o structure-graph.json`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: viewArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := c.loadData(ctx, data, args[1:], false)
			if err != nil {
				return err
			}
			g, _, err := buildView(ctx, args[0], d.Datasets, view)
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				return graph.WriteGraph(g, os.Stdout)
			}
			if err := graph.WriteGraphFile(g, output); err != nil {
				return err
			}
			printSuccess("Wrote %s graph", args[0])
			printFile(output)
			printStats(len(g.Nodes), len(g.Edges), false)
			return nil
		},
	}

	addDataFlags(cmd, &data)
	addViewFlags(cmd, &view)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}
