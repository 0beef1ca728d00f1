package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tldrviz/pkg/graph"
	"github.com/matzehuels/tldrviz/pkg/model"
)

// entriesCommand creates the entries command.
func (c *CLI) entriesCommand() *cobra.Command {
	var (
		data       dataFlags
		userFacing bool
		pick       bool
		hideTests  bool
	)

	cmd := &cobra.Command{
		Use:   "entries [files...]",
		Short: "List classified entry points",
		Long: `List the stored classifications, user-facing entry points first.

With --pick, choose one interactively and print the part of the call graph
it reaches.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := c.loadData(ctx, data, args, true)
			if err != nil {
				return err
			}
			st := newState(d)
			list := st.Entries(userFacing)
			if len(list) == 0 {
				printInfo("No classified entry points")
				printNextStep("Run a classification", "tldrviz classify")
				return nil
			}

			if !pick {
				printEntries(list)
				return nil
			}

			final, err := tea.NewProgram(NewEntryListModel(list), tea.WithOutput(os.Stderr)).Run()
			if err != nil {
				return fmt.Errorf("entry picker: %w", err)
			}
			sel := final.(EntryListModel).Selected
			if sel == nil {
				return nil
			}

			g, _, err := buildView(ctx, string(graph.ViewCalls), d.Datasets, viewFlags{
				hideTests: hideTests,
				entry:     sel.ID(),
			})
			if err != nil {
				return err
			}
			printReach(sel, g, d.Classifications)
			printNextStep("Render it", "tldrviz render calls --entry "+sel.ID())
			return nil
		},
	}

	addDataFlags(cmd, &data)
	cmd.Flags().BoolVar(&userFacing, "user-facing", false, "only user-facing entry points")
	cmd.Flags().BoolVar(&pick, "pick", false, "pick an entry point interactively")
	cmd.Flags().BoolVar(&hideTests, "hide-tests", true, "drop test files from the reach graph")

	return cmd
}

func printEntries(list []model.EntryPointClassification) {
	for _, e := range list {
		mark := " "
		if e.IsUserFacing {
			mark = StyleSuccess.Render("✓")
		}
		fmt.Fprintf(statusOut, "%s %-28s %-14s %3.0f%%  %s\n",
			mark, StyleValue.Render(e.Function), string(e.Type), e.Confidence*100, StyleDim.Render(e.File))
		if e.Description != "" {
			printDetail("%s", e.Description)
		}
	}
}

// printReach prints the reachable calls grouped by caller, in graph order.
// Functions that are classified entry points carry their type.
func printReach(sel *model.EntryPointClassification, g graph.Graph, classes *model.ClassificationsData) {
	printTitle(sel.Function + " " + StyleDim.Render("("+sel.File+")"))
	if len(g.Edges) == 0 {
		printDetail("calls nothing in the loaded call graph")
		return
	}

	label := func(id string) string {
		text := id
		if n, ok := g.Node(id); ok {
			if d, ok := n.Data.(*graph.FunctionData); ok {
				text = d.Function + StyleDim.Render(" "+d.File)
			}
		}
		if c, ok := classes.Lookup(id); ok {
			text += " " + StyleWarning.Render("["+string(c.Type)+"]")
		}
		return text
	}

	var order []string
	callees := make(map[string][]string)
	for _, e := range g.Edges {
		if _, seen := callees[e.Source]; !seen {
			order = append(order, e.Source)
		}
		callees[e.Source] = append(callees[e.Source], e.Target)
	}
	for _, src := range order {
		fmt.Fprintln(statusOut, "  "+label(src))
		targets := make([]string, len(callees[src]))
		for i, t := range callees[src] {
			targets[i] = label(t)
		}
		fmt.Fprintln(statusOut, "    "+StyleDim.Render(iconArrow)+" "+strings.Join(targets, "\n    "+StyleDim.Render(iconArrow)+" "))
	}
	printStats(len(g.Nodes), len(g.Edges), false)
}
