package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/coursemap/pkg/layout"
)

// strategiesCommand lists the layout presets.
func (c *CLI) strategiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List available layout strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := layout.Names()
			rows := make([][]string, len(names))
			for i, name := range names {
				if name == layout.DefaultStrategy {
					name += " (default)"
				}
				rows[i] = []string{name, layout.Describe(names[i])}
			}
			printTable(c.Out, []string{"Strategy", "Placement"}, rows)
			return nil
		},
	}
}
