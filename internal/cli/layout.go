package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/coursemap/pkg/config"
	"github.com/matzehuels/coursemap/pkg/layout"
	"github.com/matzehuels/coursemap/pkg/observability"
	"github.com/matzehuels/coursemap/pkg/pipeline"
	"github.com/matzehuels/coursemap/pkg/records"
)

// layoutFlags are the command-line overrides shared by layout, levels and check.
type layoutFlags struct {
	strategy   string
	allEdges   bool
	missing    string
	iterations int
	split      bool
	noCache    bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.strategy, "strategy", "s", "",
		"layout strategy: "+strings.Join(layout.Names(), ", ")+" (default: config or "+layout.DefaultStrategy+")")
	cmd.Flags().BoolVar(&f.allEdges, "all-edges", false, "include non-primary requisites as edges")
	cmd.Flags().StringVar(&f.missing, "missing", "", "unknown requisite policy: reject, implicit, drop")
	cmd.Flags().IntVar(&f.iterations, "iterations", 0, "barycenter sweep iterations (default: config or 10)")
	cmd.Flags().BoolVar(&f.split, "split", false, "separate 300- and 400-band courses sharing a level")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the layout cache")
}

// apply overlays the flags the user actually set onto cfg.
func (f *layoutFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("strategy") {
		cfg.Layout.Strategy = f.strategy
	}
	if flags.Changed("all-edges") {
		cfg.Graph.AllEdges = f.allEdges
	}
	if flags.Changed("missing") {
		cfg.Graph.Missing = f.missing
	}
	if flags.Changed("iterations") {
		cfg.Ordering.Iterations = f.iterations
	}
	if flags.Changed("split") {
		cfg.Levels.Split = f.split
	}
}

// options loads the config, applies flag overrides and converts the result.
func (c *CLI) options(cmd *cobra.Command, f *layoutFlags) (config.Config, pipeline.Options, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return cfg, pipeline.Options{}, err
	}
	f.apply(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, pipeline.Options{}, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return cfg, opts, err
	}
	opts.NoCache = f.noCache
	opts.Logger = c.Logger
	return cfg, opts, nil
}

// layoutCommand creates the layout command for computing course coordinates.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags         layoutFlags
		output        string
		allStrategies bool
		metricsFile   string
	)

	cmd := &cobra.Command{
		Use:   "layout [program.json]",
		Short: "Compute course coordinates for a program",
		Long: `Compute course coordinates for a program.

The input is a JSON or YAML document whose course table lists the program's
courses and whose requisite tables list prerequisite pairs. The output is the
same document with x/y (and r/theta for polar strategies) merged into every
course record, plus a layout_metadata entry describing the run.

Orderings and coordinates are cached, so repeated runs over unchanged data
are fast.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, opts, err := c.options(cmd, &flags)
			if err != nil {
				return err
			}
			var strategies []layout.Strategy
			if allStrategies {
				if strategies, err = cfg.Layout.BuildAll(layout.Names()); err != nil {
					return err
				}
			}
			return c.runLayout(cmd.Context(), args[0], cfg, opts, strategies, output, metricsFile)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<strategy>.<ext>)")
	cmd.Flags().BoolVar(&allStrategies, "all-strategies", false, "write one layout per strategy")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")

	return cmd
}

// runLayout loads the dataset, runs the pipeline and writes every result.
func (c *CLI) runLayout(ctx context.Context, input string, cfg config.Config, opts pipeline.Options, strategies []layout.Strategy, output, metricsFile string) error {
	if len(strategies) > 1 && output != "" {
		return fmt.Errorf("--output cannot be combined with --all-strategies")
	}

	ds, err := readDataset(input)
	if err != nil {
		return err
	}

	var metrics *observability.PrometheusHooks
	if metricsFile != "" {
		metrics = observability.NewPrometheusHooks()
		observability.SetPipelineHooks(metrics)
		observability.SetCacheHooks(metrics)
		defer observability.Reset()
	}

	runner, err := c.newRunner(ctx, cfg.Cache, opts.NoCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, c.Out, "Computing layout...")
	spinner.Start()

	var results []*pipeline.Result
	if len(strategies) > 0 {
		results, err = runner.RunStrategies(ctx, ds, opts, strategies)
	} else {
		var res *pipeline.Result
		res, err = runner.Run(ctx, ds, opts)
		results = []*pipeline.Result{res}
	}
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Placed %d courses", results[0].Graph.NodeCount()))

	for _, res := range results {
		path := output
		if path == "" {
			path = defaultOutput(input, res.Strategy)
		}
		if err := records.WriteFile(path, res.Dataset); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printSuccess(c.Out, "Layout %s", StyleValue.Render(res.Strategy))
		printStats(c.Out, res.Graph.NodeCount(), res.Graph.EdgeCount(), res.CacheHit)
		printFile(c.Out, path)
	}

	report := results[0].Report
	if len(report.Cycles) > 0 {
		printWarning(c.Out, "%d prerequisite cycle(s); %d course(s) placed by band", len(report.Cycles), len(report.Fallback))
	}

	if metrics != nil {
		if err := metrics.WriteTextfile(metricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		printDetail(c.Out, "Metrics: %s", metricsFile)
	}

	printNewline(c.Out)
	printNextStep(c.Out, "Inspect levels", appName+" levels "+input)
	return nil
}

// defaultOutput derives "<stem>.<strategy><ext>" next to the input.
func defaultOutput(input, strategy string) string {
	ext := filepath.Ext(input)
	if ext == "" {
		ext = ".json"
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + strategy + ext
}
