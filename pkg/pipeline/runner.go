package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/coursemap/pkg/cache"
	"github.com/matzehuels/coursemap/pkg/catalog"
	"github.com/matzehuels/coursemap/pkg/dag"
	"github.com/matzehuels/coursemap/pkg/dag/transform"
	"github.com/matzehuels/coursemap/pkg/layout"
	"github.com/matzehuels/coursemap/pkg/observability"
	"github.com/matzehuels/coursemap/pkg/ordering"
	"github.com/matzehuels/coursemap/pkg/quality"
	"github.com/matzehuels/coursemap/pkg/records"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// prepared is the strategy-independent part of a run: the graph and its
// levels, plus diagnostics about both.
type prepared struct {
	input      *records.Dataset
	hash       string
	graph      *dag.DAG
	levels     *transform.Levels
	cycles     [][2]string
	violations []quality.Violation
	stats      Stats
}

// ordered is the outcome of the barycenter pass.
type ordered struct {
	pos      ordering.Positions
	initial  int
	final    int
	duration time.Duration
}

// cachedLayout is what the cache stores per dataset, options and strategy.
type cachedLayout struct {
	Positions ordering.Positions `json:"positions"`
	Initial   int                `json:"initial_crossings"`
	Final     int                `json:"final_crossings"`
	Coords    layout.Coordinates `json:"coords"`
}

// Run computes a layout for ds with a single strategy. The input dataset is
// never modified.
func (r *Runner) Run(ctx context.Context, ds *records.Dataset, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	p, err := r.prepare(ctx, ds, &opts)
	if err != nil {
		return nil, err
	}
	order := func() ordered { return r.order(ctx, p, &opts) }
	return r.finish(ctx, p, &opts, opts.strategy(), order)
}

// prepare extracts, builds and levels the graph.
func (r *Runner) prepare(ctx context.Context, ds *records.Dataset, opts *Options) (*prepared, error) {
	logger := opts.Logger
	p := &prepared{input: ds}

	hash, err := cache.HashJSON(ds)
	if err != nil {
		return nil, fmt.Errorf("hash dataset: %w", err)
	}
	p.hash = hash

	start := time.Now()
	courses, reqs := records.Extract(ds, opts.Schema)
	g, err := catalog.Build(courses, reqs, opts.buildOptions())
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}
	p.graph = g
	p.stats.BuildTime = time.Since(start)
	logger.Debug("built graph",
		"courses", g.NodeCount(),
		"requisites", g.EdgeCount(),
		"missing", opts.Missing,
		"duration", p.stats.BuildTime)
	if n, _ := g.Meta()[dag.MetaSelfLoops].(int); n > 0 {
		logger.Warn("ignored self-referencing requisites", "count", n)
	}

	start = time.Now()
	levels, err := transform.AssignLevels(g, opts.Levels)
	if err != nil {
		return nil, fmt.Errorf("assign levels: %w", err)
	}
	p.levels = levels
	p.stats.LevelTime = time.Since(start)
	observability.Pipeline().OnLevelsAssigned(ctx, levels.Count(), len(levels.Fallback))
	logger.Info("assigned levels",
		"levels", levels.Count(),
		"fallback", len(levels.Fallback),
		"duration", p.stats.LevelTime)

	p.cycles = transform.BackEdges(g)
	if len(p.cycles) > 0 {
		logger.Warn("prerequisite cycles found", "back_edges", len(p.cycles), "first", p.cycles[0])
	}
	if len(levels.Fallback) > 0 {
		logger.Warn("courses leveled by band fallback", "courses", levels.Fallback)
	}
	p.violations = quality.LevelViolations(g, levels.Index)
	for _, v := range p.violations {
		logger.Warn("prerequisite not below dependent",
			"requisite", v.From, "course", v.To,
			"requisite_level", v.FromLevel, "course_level", v.ToLevel)
	}
	return p, nil
}

// order seeds every level and runs the barycenter sweeps.
func (r *Runner) order(ctx context.Context, p *prepared, opts *Options) ordered {
	start := time.Now()
	layers := p.levels.Layers
	seed := ordering.Seed(p.graph, layers, opts.Seed)
	o := ordered{initial: quality.CountCrossings(p.graph, layers, seed)}

	iterLog := opts.Logger
	orderer := opts.orderer()
	orderer.OnIteration = func(iter int, pos ordering.Positions) {
		iterLog.Debug("barycenter sweep", "iteration", iter+1, "crossings", quality.CountCrossings(p.graph, layers, pos))
	}
	o.pos = orderer.Order(p.graph, layers)
	o.final = quality.CountCrossings(p.graph, layers, o.pos)
	o.duration = time.Since(start)

	observability.Pipeline().OnOrderingComplete(ctx, o.initial, o.final, o.duration)
	opts.Logger.Info("ordered levels",
		"initial_crossings", o.initial,
		"final_crossings", o.final,
		"iterations", orderer.Iterations,
		"duration", o.duration)
	if o.final > 0 {
		opts.Logger.Warn("edge crossings remain", "crossings", o.final)
	}
	return o
}

// finish places one strategy, consulting the cache first, and merges the
// coordinates into a copy of the input. order is only called on a miss.
func (r *Runner) finish(ctx context.Context, p *prepared, opts *Options, strategy layout.Strategy, order func() ordered) (res *Result, err error) {
	name := strategy.Name()
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, name, p.graph.NodeCount())
	defer func() { hooks.OnLayoutComplete(ctx, name, time.Since(start), err) }()

	key := r.Keyer.LayoutKey(p.hash, cache.LayoutKeyOpts{
		Strategy: name,
		Settings: keySettings{Options: opts, Layout: strategy},
	})
	res = &Result{
		Graph:    p.graph,
		Levels:   p.levels,
		Strategy: name,
		LayoutID: uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String(),
		Stats:    p.stats,
	}

	entry, hit := r.lookup(ctx, key, opts)
	if !hit {
		o := order()
		res.Stats.OrderTime = o.duration

		placeStart := time.Now()
		if da, ok := strategy.(layout.DegreeAware); ok {
			strategy = da.WithDegrees(degrees(p.graph))
		}
		entry = cachedLayout{
			Positions: o.pos,
			Initial:   o.initial,
			Final:     o.final,
			Coords:    strategy.Place(p.levels.Layers, o.pos),
		}
		res.Stats.LayoutTime = time.Since(placeStart)
		r.store(ctx, key, entry, opts)
	}
	res.CacheHit = hit
	res.Positions = entry.Positions
	res.Coords = entry.Coords
	res.Report = quality.Report{
		Levels:           p.levels.Count(),
		Courses:          p.graph.NodeCount(),
		Edges:            p.graph.EdgeCount(),
		InitialCrossings: entry.Initial,
		FinalCrossings:   entry.Final,
		EdgeLength:       quality.TotalEdgeLength(entry.Coords, p.graph),
		Violations:       p.violations,
		Cycles:           p.cycles,
		Fallback:         p.levels.Fallback,
	}

	res.Dataset = records.Merge(p.input, res.Coords, opts.Schema)
	res.Dataset.Extra[MetadataKey] = metadata(res, opts)

	opts.Logger.Info("placed courses",
		"strategy", name,
		"courses", len(res.Coords),
		"edge_length", fmt.Sprintf("%.2f", res.Report.EdgeLength),
		"cached", hit)
	return res, nil
}

func (r *Runner) lookup(ctx context.Context, key string, opts *Options) (cachedLayout, bool) {
	var entry cachedLayout
	if opts.NoCache {
		return entry, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		opts.Logger.Warn("cache read failed", "error", err)
		return entry, false
	}
	if !hit || json.Unmarshal(data, &entry) != nil {
		observability.Cache().OnCacheMiss(ctx, "layout")
		return entry, false
	}
	observability.Cache().OnCacheHit(ctx, "layout")
	return entry, true
}

func (r *Runner) store(ctx context.Context, key string, entry cachedLayout, opts *Options) {
	if opts.NoCache {
		return
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, opts.CacheTTL); err != nil {
		opts.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "layout", len(data))
}

// degrees returns every node's total degree for degree-aware strategies.
func degrees(g *dag.DAG) map[string]int {
	out := make(map[string]int, g.NodeCount())
	for _, id := range g.NodeIDs() {
		out[id] = g.Degree(id)
	}
	return out
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
