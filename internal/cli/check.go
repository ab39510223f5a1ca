package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/coursemap/pkg/pipeline"
)

// errNotClean fails check --strict. Quality findings are diagnostics, not
// input errors, so it carries no error code and exits with status 1.
var errNotClean = errors.New("layout is not clean")

// checkCommand creates the check command, which reports layout quality and
// data problems such as prerequisite cycles.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		flags  layoutFlags
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "check [program.json]",
		Short: "Report crossings, cycles and level violations",
		Long: `Report the quality of a program's layout.

Prints edge crossings before and after ordering, total edge length, and any
prerequisite cycles or edges that do not point to a higher level. With
--strict the command fails unless the layout is clean.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			res, err := c.runOnce(cmd.Context(), args[0], cfg, opts)
			if err != nil {
				return err
			}
			c.printReport(res)
			if strict && !res.Report.Clean() {
				return fmt.Errorf("%s: %w", args[0], errNotClean)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero on crossings, cycles or violations")
	return cmd
}

func (c *CLI) printReport(res *pipeline.Result) {
	r := res.Report
	printKeyValue(c.Out, "Strategy", res.Strategy)
	printKeyValue(c.Out, "Levels", StyleNumber.Render(fmt.Sprint(r.Levels)))
	printKeyValue(c.Out, "Courses", StyleNumber.Render(fmt.Sprint(r.Courses)))
	printKeyValue(c.Out, "Requisites", StyleNumber.Render(fmt.Sprint(r.Edges)))
	printKeyValue(c.Out, "Crossings (seed)", fmt.Sprint(r.InitialCrossings))
	printKeyValue(c.Out, "Crossings (final)", fmt.Sprint(r.FinalCrossings))
	printKeyValue(c.Out, "Improvement", fmt.Sprintf("%.0f%%", r.Improvement()*100))
	printKeyValue(c.Out, "Edge length", fmt.Sprintf("%.2f", r.EdgeLength))
	printNewline(c.Out)

	for _, e := range r.Cycles {
		printWarning(c.Out, "Cycle closed by %s → %s", e[0], e[1])
	}
	for _, v := range r.Violations {
		printWarning(c.Out, "%s (level %d) → %s (level %d)", v.From, v.FromLevel, v.To, v.ToLevel)
	}
	if len(r.Fallback) > 0 {
		printWarning(c.Out, "Placed by band: %s", joinIDs(r.Fallback, 0))
	}
	if r.Clean() {
		printSuccess(c.Out, "Layout is clean")
	}
}
