// Package pipeline runs the complete course layout: records in, records with
// coordinates out.
//
// # Stages
//
//  1. Extract: read course identifiers and prerequisites from the dataset
//  2. Build: create the prerequisite graph (edge filter, missing policy)
//  3. Level: assign hierarchical levels and apply the level rules
//  4. Order: seed each level, then run barycenter sweeps
//  5. Place: turn (level, position) pairs into coordinates
//  6. Merge: attach coordinates to a copy of the dataset
//
// Ordering and placement results are cached by a hash of the dataset and
// the options, so unchanged inputs skip straight to the merge.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Strategy = "radial"
//	result, err := runner.Run(ctx, ds, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	records.WriteFile("out.json", result.Dataset)
//
// Several strategies can share one leveling and ordering pass:
//
//	strategies, _ := layout.Presets("linear", "arc")
//	results, err := runner.RunStrategies(ctx, ds, opts, strategies)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/coursemap/pkg/catalog"
	"github.com/matzehuels/coursemap/pkg/dag"
	"github.com/matzehuels/coursemap/pkg/dag/transform"
	"github.com/matzehuels/coursemap/pkg/errors"
	"github.com/matzehuels/coursemap/pkg/layout"
	"github.com/matzehuels/coursemap/pkg/ordering"
	"github.com/matzehuels/coursemap/pkg/quality"
	"github.com/matzehuels/coursemap/pkg/records"
)

// DefaultCacheTTL is how long computed layouts stay cached.
const DefaultCacheTTL = 30 * 24 * time.Hour

// MetadataKey is the top-level dataset key that receives run metadata.
const MetadataKey = "layout_metadata"

// Algorithm names the leveling and ordering method in the run metadata.
const Algorithm = "hierarchical_barycenter"

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for one layout run.
type Options struct {
	// Strategy names a layout preset. Ignored when Layout is set.
	Strategy string `json:"strategy"`
	// Layout overrides the preset with a fully configured strategy.
	Layout layout.Strategy `json:"-"`

	// AllEdges keeps non-primary requisites. By default only primary ones
	// become edges.
	AllEdges bool                  `json:"all_edges"`
	Missing  catalog.MissingPolicy `json:"missing"`

	Levels     transform.Rules         `json:"levels"`
	Seed       ordering.SeedRule       `json:"seed"`
	Iterations int                     `json:"iterations"`
	Neighbors  ordering.NeighborPolicy `json:"neighbors"`

	Schema records.Schema `json:"schema"`

	// Runtime options (not part of the cache key)
	NoCache  bool          `json:"-"`
	CacheTTL time.Duration `json:"-"`
	Logger   *log.Logger   `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// DefaultOptions returns options matching the planner's standard layout:
// primary edges only, unknown requisites rejected, display levels 100,
// 200, ..., the default seed rule and ten sweep iterations.
func DefaultOptions() Options {
	return Options{
		Strategy:   layout.DefaultStrategy,
		Levels:     transform.DefaultRules(),
		Seed:       ordering.DefaultSeedRule(),
		Iterations: ordering.DefaultIterations,
		Schema:     records.DefaultSchema(),
	}
}

// ValidateAndSetDefaults checks the options and fills unset fields.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Layout == nil {
		if o.Strategy == "" {
			o.Strategy = layout.DefaultStrategy
		}
		if _, err := layout.Preset(o.Strategy); err != nil {
			return err
		}
	}
	if o.Iterations < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "iterations must not be negative, got %d", o.Iterations)
	}
	if o.Iterations == 0 {
		o.Iterations = ordering.DefaultIterations
	}
	if s := o.Levels.Split; s != nil && s.Upper <= s.Lower {
		return errors.New(errors.ErrCodeInvalidConfig,
			"split upper band %d must exceed lower band %d", s.Upper, s.Lower)
	}
	if o.Schema.CourseField == "" {
		o.Schema = records.DefaultSchema()
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = DefaultCacheTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// strategy returns a fresh strategy for this run.
func (o *Options) strategy() layout.Strategy {
	if o.Layout != nil {
		return o.Layout
	}
	s, _ := layout.Preset(o.Strategy)
	return s
}

// withLayout returns a copy of o bound to s, revalidated on next use.
func (o Options) withLayout(s layout.Strategy) Options {
	o.Strategy = s.Name()
	o.Layout = s
	o.validated = false
	return o
}

// buildOptions converts the graph settings for the catalog builder.
func (o *Options) buildOptions() catalog.BuildOptions {
	filter := catalog.PrimaryOnly
	if o.AllEdges {
		filter = catalog.AllEdges
	}
	return catalog.BuildOptions{EdgeFilter: filter, Missing: o.Missing}
}

func (o *Options) orderer() ordering.Barycentric {
	return ordering.Barycentric{Iterations: o.Iterations, Neighbors: o.Neighbors, Seed: o.Seed}
}

// keySettings is everything besides the dataset that changes the cached
// ordering and coordinates.
type keySettings struct {
	Options *Options        `json:"options"`
	Layout  layout.Strategy `json:"layout"`
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of one layout run.
type Result struct {
	// Dataset is a copy of the input with coordinates and metadata merged in.
	Dataset *records.Dataset
	// Graph is the prerequisite graph, rows set to the dense level.
	Graph *dag.DAG
	// Levels holds raw, dense and display levels and the level membership.
	Levels *transform.Levels
	// Positions is each course's final ordinal within its level.
	Positions ordering.Positions
	// Coords maps each course to its placement.
	Coords layout.Coordinates
	// Report holds crossings, edge length and diagnostics.
	Report quality.Report
	// Strategy is the name of the strategy that placed the courses.
	Strategy string
	// LayoutID is a stable identifier derived from the cache key.
	LayoutID string
	// CacheHit is true when ordering and placement came from the cache.
	CacheHit bool
	Stats    Stats
}

// Stats contains pipeline timing information.
type Stats struct {
	BuildTime  time.Duration
	LevelTime  time.Duration
	OrderTime  time.Duration
	LayoutTime time.Duration
}

// Layers returns each dense level's courses in their final order.
func (r *Result) Layers() [][]string {
	return r.Positions.Layers(r.Levels.Layers)
}
