// Package config loads coursemap.toml.
//
// Every section is optional; missing keys keep the defaults of
// [pipeline.DefaultOptions]. Zero values in the [layout.*] subtables keep the
// selected preset's value.
//
//	[graph]
//	all_edges = false
//	missing = "implicit"
//
//	[levels]
//	pin_to_top = ["S499"]
//	equalize = [["M201", "S201"]]
//	split = true
//
//	[layout]
//	strategy = "radial"
//
//	[layout.radial]
//	base_radius = 3.0
package config

import (
	"math"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/coursemap/pkg/catalog"
	"github.com/matzehuels/coursemap/pkg/dag/transform"
	"github.com/matzehuels/coursemap/pkg/errors"
	"github.com/matzehuels/coursemap/pkg/layout"
	"github.com/matzehuels/coursemap/pkg/ordering"
	"github.com/matzehuels/coursemap/pkg/pipeline"
	"github.com/matzehuels/coursemap/pkg/records"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "coursemap.toml"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config mirrors coursemap.toml.
type Config struct {
	Graph    Graph          `toml:"graph"`
	Levels   Levels         `toml:"levels"`
	Ordering Ordering       `toml:"ordering"`
	Layout   Layout         `toml:"layout"`
	Records  records.Schema `toml:"records"`
	Cache    Cache          `toml:"cache"`
}

// Graph selects which requisites become edges.
type Graph struct {
	AllEdges bool   `toml:"all_edges"`
	Missing  string `toml:"missing" validate:"omitempty,oneof=reject implicit drop"`
}

// Levels holds the level post-processing rules.
type Levels struct {
	PinToTop       []string   `toml:"pin_to_top" validate:"dive,required"`
	Equalize       [][]string `toml:"equalize" validate:"dive,len=2,dive,required"`
	Split          bool       `toml:"split"`
	SplitLower     int        `toml:"split_lower" validate:"gte=0"`
	SplitUpper     int        `toml:"split_upper" validate:"gte=0"`
	DisplaySpacing int        `toml:"display_spacing" validate:"gte=0"`
	DisplayOffset  int        `toml:"display_offset" validate:"gte=0"`
}

// Ordering configures the seed and the barycenter sweeps.
type Ordering struct {
	Iterations      int        `toml:"iterations" validate:"gte=0,lte=1000"`
	Neighbors       string     `toml:"neighbors" validate:"omitempty,oneof=adjacent all"`
	DepartmentOrder []string   `toml:"department_order" validate:"dive,required"`
	KeepAdjacent    [][]string `toml:"keep_adjacent" validate:"dive,len=2,dive,required"`
}

// Layout selects and tunes the coordinate strategy.
type Layout struct {
	Strategy string         `toml:"strategy"`
	Linear   LinearParams   `toml:"linear"`
	Arc      ArcParams      `toml:"arc"`
	Circular CircularParams `toml:"circular"`
	Radial   RadialParams   `toml:"radial"`
}

// LinearParams tunes the linear preset. Unset fields keep the preset value.
type LinearParams struct {
	Axis         string   `toml:"axis" validate:"omitempty,oneof=vertical horizontal"`
	LevelSpacing *float64 `toml:"level_spacing" validate:"omitempty,gte=0"`
	NodeSpacing  *float64 `toml:"node_spacing" validate:"omitempty,gte=0"`
}

// ArcParams tunes the arc and arc-compact presets.
type ArcParams struct {
	LevelSpacing   *float64 `toml:"level_spacing" validate:"omitempty,gte=0"`
	NodeSpacing    *float64 `toml:"node_spacing" validate:"omitempty,gte=0"`
	Curvature      *float64 `toml:"curvature" validate:"omitempty,gte=0"`
	MinNodeSpacing *float64 `toml:"min_node_spacing" validate:"omitempty,gte=0"`
	MaxNodeSpacing *float64 `toml:"max_node_spacing" validate:"omitempty,gte=0"`
}

// CircularParams tunes the circular and fan presets. Angles are in degrees.
type CircularParams struct {
	BaseRadius  *float64 `toml:"base_radius" validate:"omitempty,gte=0"`
	RadiusStep  *float64 `toml:"radius_step" validate:"omitempty,gte=0"`
	SpanDegrees *float64 `toml:"span" validate:"omitempty,gt=0,lte=360"`
	Start       *float64 `toml:"start"`
}

// RadialParams tunes the radial preset. Start is in degrees.
type RadialParams struct {
	BaseRadius *float64 `toml:"base_radius" validate:"omitempty,gte=0"`
	RadiusStep *float64 `toml:"radius_step" validate:"omitempty,gte=0"`
	Start      *float64 `toml:"start"`
	Clockwise  *bool    `toml:"clockwise"`
}

// Cache selects the layout cache backend.
type Cache struct {
	Backend   string        `toml:"backend" validate:"omitempty,oneof=file redis none"`
	Dir       string        `toml:"dir"`
	RedisURL  string        `toml:"redis_url" validate:"required_if=Backend redis"`
	TTL       time.Duration `toml:"ttl" validate:"gte=0"`
	Namespace string        `toml:"namespace"`
}

// Default returns the configuration equivalent to an empty file.
func Default() Config {
	opts := pipeline.DefaultOptions()
	split := transform.DefaultSplitRule()
	return Config{
		Levels: Levels{
			SplitLower:     split.Lower,
			SplitUpper:     split.Upper,
			DisplaySpacing: opts.Levels.DisplaySpacing,
			DisplayOffset:  opts.Levels.DisplayOffset,
		},
		Ordering: Ordering{
			Iterations:      opts.Iterations,
			DepartmentOrder: opts.Seed.DepartmentOrder,
		},
		Layout:  Layout{Strategy: opts.Strategy},
		Records: opts.Schema,
		Cache:   Cache{Backend: BackendFile, TTL: pipeline.DefaultCacheTTL},
	}
}

// Load reads and validates a TOML file on top of [Default]. Unknown keys
// are rejected so that typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if isNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode parses TOML text on top of [Default] and validates it.
func Decode(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// Options converts the configuration into pipeline options. The strategy
// preset is tuned with the matching [layout.*] subtable.
func (c Config) Options() (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	opts.AllEdges = c.Graph.AllEdges
	missing, err := catalog.ParseMissingPolicy(c.Graph.Missing)
	if err != nil {
		return opts, err
	}
	opts.Missing = missing

	opts.Levels = transform.Rules{
		PinToMaxPlusOne: c.Levels.PinToTop,
		Equalize:        pairs(c.Levels.Equalize),
		DisplaySpacing:  c.Levels.DisplaySpacing,
		DisplayOffset:   c.Levels.DisplayOffset,
	}
	if c.Levels.Split {
		opts.Levels.Split = &transform.SplitRule{Lower: c.Levels.SplitLower, Upper: c.Levels.SplitUpper}
	}

	opts.Iterations = c.Ordering.Iterations
	if c.Ordering.Neighbors == ordering.NeighborsAll.String() {
		opts.Neighbors = ordering.NeighborsAll
	}
	opts.Seed = ordering.SeedRule{
		DepartmentOrder: c.Ordering.DepartmentOrder,
		KeepAdjacent:    pairs(c.Ordering.KeepAdjacent),
	}

	strategy, err := c.Layout.Build()
	if err != nil {
		return opts, err
	}
	opts.Strategy = strategy.Name()
	opts.Layout = strategy
	opts.Schema = c.Records
	opts.CacheTTL = c.Cache.TTL
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// Build returns the configured strategy: the preset named by Strategy with
// every set parameter of its subtable applied.
func (l Layout) Build() (layout.Strategy, error) {
	name := l.Strategy
	if name == "" {
		name = layout.DefaultStrategy
	}
	return l.BuildNamed(name)
}

// BuildNamed tunes the named preset with the matching subtable, whatever
// Strategy selects. Multi-strategy runs use it so every preset keeps its
// configured parameters.
func (l Layout) BuildNamed(name string) (layout.Strategy, error) {
	s, err := layout.Preset(name)
	if err != nil {
		return nil, err
	}

	switch st := s.(type) {
	case layout.Linear:
		p := l.Linear
		if p.Axis == layout.Horizontal.String() {
			st.Axis = layout.Horizontal
		}
		setFloat(&st.LevelSpacing, p.LevelSpacing)
		setFloat(&st.NodeSpacing, p.NodeSpacing)
		return st, nil
	case layout.Arc:
		p := l.Arc
		setFloat(&st.LevelSpacing, p.LevelSpacing)
		setFloat(&st.NodeSpacing, p.NodeSpacing)
		setFloat(&st.Curvature, p.Curvature)
		if st.MaxNodeSpacing > 0 {
			setFloat(&st.MinNodeSpacing, p.MinNodeSpacing)
			setFloat(&st.MaxNodeSpacing, p.MaxNodeSpacing)
		}
		return st, nil
	case layout.Circular:
		p := l.Circular
		setFloat(&st.BaseRadius, p.BaseRadius)
		setFloat(&st.RadiusStep, p.RadiusStep)
		if p.SpanDegrees != nil {
			mid := st.Start + st.Span/2
			st.Span = radians(*p.SpanDegrees)
			st.Start = mid - st.Span/2
		}
		if p.Start != nil {
			st.Start = radians(*p.Start)
		}
		return st, nil
	case layout.Radial:
		p := l.Radial
		setFloat(&st.BaseRadius, p.BaseRadius)
		setFloat(&st.RadiusStep, p.RadiusStep)
		if p.Start != nil {
			st.Start = radians(*p.Start)
		}
		if p.Clockwise != nil {
			st.Clockwise = *p.Clockwise
		}
		return st, nil
	}
	return s, nil
}

// BuildAll tunes every named preset, in order.
func (l Layout) BuildAll(names []string) ([]layout.Strategy, error) {
	out := make([]layout.Strategy, len(names))
	for i, name := range names {
		s, err := l.BuildNamed(name)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func setFloat(dst, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// pairs keeps the two-element entries of a TOML array of arrays.
func pairs(in [][]string) [][2]string {
	var out [][2]string
	for _, p := range in {
		if len(p) == 2 {
			out = append(out, [2]string{p[0], p[1]})
		}
	}
	return out
}
