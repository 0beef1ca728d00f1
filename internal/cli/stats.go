package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tldrviz/pkg/transform"
)

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var data dataFlags

	cmd := &cobra.Command{
		Use:   "stats [files...]",
		Short: "Summarize the loaded datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := c.loadData(cmd.Context(), data, args, true)
			if err != nil {
				return err
			}

			if d.Structure != nil {
				s := transform.StructureStats(d.Structure)
				printTitle("Structure")
				printKeyValue("Files", strconv.Itoa(s.TotalFiles))
				printKeyValue("Functions", strconv.Itoa(s.TotalFunctions))
				printKeyValue("Classes", strconv.Itoa(s.TotalClasses))
				printKeyValue("Imports", strconv.Itoa(s.TotalImports))
				if len(s.Languages) > 0 {
					printKeyValue("Languages", strings.Join(s.Languages, ", "))
				}
				printNewline()
			}
			if d.Calls != nil {
				printTitle("Calls")
				printKeyValue("Edges", strconv.Itoa(len(d.Calls.Edges)))
				printKeyValue("Max fan-in", strconv.Itoa(transform.MaxCallCount(d.Calls)))
				printNewline()
			}
			if d.Arch != nil {
				a := transform.ArchStats(d.Arch)
				printTitle("Architecture")
				printKeyValue("Entry", strconv.Itoa(a.EntryFunctions))
				printKeyValue("Middle", strconv.Itoa(a.MiddleFunctions))
				printKeyValue("Leaf", strconv.Itoa(a.LeafFunctions))
				printKeyValue("Directories", strconv.Itoa(a.TotalDirectories))
				printKeyValue("Circular", strconv.Itoa(a.CircularDeps))
				printNewline()
			}
			if cl := d.Classifications; cl != nil {
				userFacing := 0
				for _, e := range cl.Classifications {
					if e.IsUserFacing {
						userFacing++
					}
				}
				printTitle("Classifications")
				printKeyValue("Entries", strconv.Itoa(len(cl.Classifications)))
				printKeyValue("User-facing", strconv.Itoa(userFacing))
				printKeyValue("Analyzed", cl.AnalyzedAt)
			} else if d.Arch != nil && d.Calls != nil {
				printNextStep("Classify entry points", "tldrviz classify")
			}
			return nil
		},
	}

	addDataFlags(cmd, &data)
	return cmd
}
