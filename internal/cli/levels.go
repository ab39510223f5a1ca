package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/coursemap/pkg/config"
	"github.com/matzehuels/coursemap/pkg/pipeline"
)

const (
	// levelRowLimit caps how many course IDs one table row shows.
	levelRowLimit = 12
	// implicitMark flags courses only known from a requisite.
	implicitMark = "*"
)

// levelsCommand creates the levels command, which prints each level's
// courses in their final order.
func (c *CLI) levelsCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "levels [program.json]",
		Short: "Show the computed level of every course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			res, err := c.runOnce(cmd.Context(), args[0], cfg, opts)
			if err != nil {
				return err
			}
			c.printLevels(res)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// runOnce loads input and runs the pipeline without writing output.
func (c *CLI) runOnce(ctx context.Context, input string, cfg config.Config, opts pipeline.Options) (*pipeline.Result, error) {
	ds, err := readDataset(input)
	if err != nil {
		return nil, err
	}
	runner, err := c.newRunner(ctx, cfg.Cache, opts.NoCache)
	if err != nil {
		return nil, err
	}
	defer runner.Close()
	return runner.Run(ctx, ds, opts)
}

func (c *CLI) printLevels(res *pipeline.Result) {
	layers := res.Layers()
	if len(layers) == 0 {
		printInfo(c.Out, "No courses")
		return
	}

	rows := make([][]string, 0, len(layers))
	implicit := 0
	for i := len(layers) - 1; i >= 0; i-- {
		layer := layers[i]
		labels := make([]string, len(layer))
		for j, id := range layer {
			labels[j] = id
			if n, ok := res.Graph.Node(id); ok && n.IsImplicit() {
				labels[j] += implicitMark
				implicit++
			}
		}
		rows = append(rows, []string{
			strconv.Itoa(res.Levels.Display[layer[0]]),
			strconv.Itoa(len(layer)),
			joinIDs(labels, levelRowLimit),
		})
	}
	printTable(c.Out, []string{"Level", "Courses", "Order"}, rows)
	printStats(c.Out, res.Graph.NodeCount(), res.Graph.EdgeCount(), res.CacheHit)
	if implicit > 0 {
		printDetail(c.Out, "%s %d course(s) not declared in the course table", implicitMark, implicit)
	}
	if len(res.Levels.Fallback) > 0 {
		printWarning(c.Out, "Placed by band (cycle): %s", joinIDs(res.Levels.Fallback, 0))
	}
}
