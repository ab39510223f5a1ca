package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/coursemap/pkg/buildinfo"
	"github.com/matzehuels/coursemap/pkg/errors"
	"github.com/matzehuels/coursemap/pkg/layout"
	"github.com/matzehuels/coursemap/pkg/records"
)

// RunStrategies computes one layout per strategy. Leveling and ordering
// run once; the strategies then place in parallel over the shared,
// read-only level and position maps. Results are returned in the order of
// strategies. The first error cancels the remaining strategies.
//
// Strategies are used as given, so tuned parameters survive; use
// [layout.Presets] for the defaults.
func (r *Runner) RunStrategies(ctx context.Context, ds *records.Dataset, opts Options, strategies []layout.Strategy) ([]*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	runs := make([]Options, len(strategies))
	for i, s := range strategies {
		if s == nil {
			return nil, errors.New(errors.ErrCodeInvalidStrategy, "strategy %d is nil", i)
		}
		runs[i] = opts.withLayout(s)
		if err := runs[i].ValidateAndSetDefaults(); err != nil {
			return nil, err
		}
	}

	p, err := r.prepare(ctx, ds, &opts)
	if err != nil {
		return nil, err
	}
	order := sync.OnceValue(func() ordered { return r.order(ctx, p, &opts) })

	results := make([]*Result, len(strategies))
	g, gctx := errgroup.WithContext(ctx)
	for i := range runs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.finish(gctx, p, &runs[i], runs[i].strategy(), order)
			if err != nil {
				return fmt.Errorf("%s: %w", runs[i].Strategy, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// metadata describes a run for downstream consumers of the output dataset.
func metadata(res *Result, opts *Options) map[string]any {
	levels := make([]int, 0, res.Levels.Count())
	byLevel := make(map[string]any, res.Levels.Count())
	for _, layer := range res.Levels.Layers {
		display := res.Levels.Display[layer[0]]
		levels = append(levels, display)
		byLevel[strconv.Itoa(display)] = len(layer)
	}

	meta := map[string]any{
		"algorithm":         Algorithm,
		"generator":         buildinfo.Generator(),
		"strategy":          res.Strategy,
		"layout_id":         res.LayoutID,
		"levels":            levels,
		"num_levels":        len(levels),
		"total_courses":     res.Report.Courses,
		"total_requisites":  res.Report.Edges,
		"courses_by_level":  byLevel,
		"initial_crossings": res.Report.InitialCrossings,
		"edge_crossings":    res.Report.FinalCrossings,
		"edge_length":       res.Report.EdgeLength,
		"split_applied":     opts.Levels.Split != nil,
		"all_edges":         opts.AllEdges,
	}
	if n := len(res.Report.Fallback); n > 0 {
		meta["fallback_courses"] = res.Report.Fallback
	}
	if n := len(res.Report.Violations); n > 0 {
		meta["level_violations"] = n
	}
	if n := len(res.Report.Cycles); n > 0 {
		meta["cycles"] = n
	}
	return meta
}
