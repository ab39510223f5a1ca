package pipeline

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/coursemap/pkg/buildinfo"
	"github.com/matzehuels/coursemap/pkg/cache"
	"github.com/matzehuels/coursemap/pkg/catalog"
	"github.com/matzehuels/coursemap/pkg/dag/transform"
	"github.com/matzehuels/coursemap/pkg/errors"
	"github.com/matzehuels/coursemap/pkg/layout"
	"github.com/matzehuels/coursemap/pkg/observability"
	"github.com/matzehuels/coursemap/pkg/records"
)

// program is S101 → S201 → S301 with M101 as a non-primary requisite of S301.
func program() *records.Dataset {
	ds := records.New()
	ds.Tables["courses"] = []records.Record{
		{"course_number": "S101", "title": "Biology I"},
		{"course_number": "S201", "title": "Biology II"},
		{"course_number": "M101", "title": "Calculus"},
		{"course_number": "S301", "title": "Genetics"},
	}
	ds.Tables["course_requisites"] = []records.Record{
		{"course_number": "S201", "requisite_number": "S101", "is_primary": 1},
		{"course_number": "S301", "requisite_number": "S201", "is_primary": 1},
		{"course_number": "S301", "requisite_number": "M101", "is_primary": 0},
	}
	ds.Extra["program"] = "Life Sciences"
	return ds
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	require.NoError(t, opts.ValidateAndSetDefaults())
	assert.Equal(t, "linear", opts.Strategy)
	assert.Equal(t, 10, opts.Iterations)
	assert.Equal(t, DefaultCacheTTL, opts.CacheTTL)
	assert.NotNil(t, opts.Logger)
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"zero value", Options{}, ""},
		{"unknown strategy", Options{Strategy: "spiral"}, errors.ErrCodeInvalidStrategy},
		{"negative iterations", Options{Iterations: -1}, errors.ErrCodeInvalidConfig},
		{"inverted split", Options{Levels: transform.Rules{Split: &transform.SplitRule{Lower: 400, Upper: 300}}}, errors.ErrCodeInvalidConfig},
		{"explicit layout ignores name", Options{Strategy: "spiral", Layout: layout.NewRadial()}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.code), "got %v, want %s", err, tt.code)
		})
	}
}

func TestRunLinear(t *testing.T) {
	ds := program()
	r := NewRunner(nil, nil, nil)

	res, err := r.Run(context.Background(), ds, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "linear", res.Strategy)
	assert.Len(t, res.Coords, 4)
	assert.Equal(t, map[string]int{"S101": 100, "M101": 100, "S201": 200, "S301": 300}, res.Levels.Display)
	assert.Equal(t, layout.Coord{X: 0, Y: 3}, res.Coords["S201"])
	assert.Equal(t, layout.Coord{X: 0, Y: 6}, res.Coords["S301"])
	assert.Zero(t, res.Report.FinalCrossings)
	assert.True(t, res.Report.Clean())
	assert.False(t, res.CacheHit)

	courses := res.Dataset.Table("courses")
	assert.Equal(t, "S201", courses[1]["course_number"])
	assert.Equal(t, 3.0, courses[1]["y"])
	assert.NotContains(t, courses[1], "r", "linear output has no polar fields")
	reqs := res.Dataset.Table("course_requisites")
	assert.Equal(t, 0.0, reqs[0]["requisite_y"])
	assert.Equal(t, 3.0, reqs[0]["course_y"])
	assert.Equal(t, "Life Sciences", res.Dataset.Extra["program"])

	meta, ok := res.Dataset.Extra[MetadataKey].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "linear", meta["strategy"])
	assert.Equal(t, buildinfo.Generator(), meta["generator"])
	assert.Equal(t, []int{100, 200, 300}, meta["levels"])
	assert.Equal(t, 4, meta["total_courses"])
	assert.Equal(t, res.LayoutID, meta["layout_id"])
	assert.Equal(t, map[string]any{"100": 2, "200": 1, "300": 1}, meta["courses_by_level"])

	// The input is never modified.
	assert.NotContains(t, ds.Table("courses")[0], "x")
	assert.NotContains(t, ds.Extra, MetadataKey)
}

func TestRunAllEdges(t *testing.T) {
	opts := DefaultOptions()
	opts.AllEdges = true
	res, err := NewRunner(nil, nil, nil).Run(context.Background(), program(), opts)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Graph.EdgeCount())
	assert.True(t, res.Graph.HasEdge("M101", "S301"))
	assert.Equal(t, 100, res.Levels.Display["M101"])
}

func TestRunMissingPolicy(t *testing.T) {
	ds := program()
	ds.Tables["course_requisites"] = append(ds.Tables["course_requisites"],
		records.Record{"course_number": "S301", "requisite_number": "D150"})
	ctx := context.Background()
	r := NewRunner(nil, nil, nil)

	_, err := r.Run(ctx, ds, DefaultOptions())
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidGraphInput), "got %v", err)

	opts := DefaultOptions()
	opts.Missing = catalog.MissingImplicit
	res, err := r.Run(ctx, ds, opts)
	require.NoError(t, err)
	n, ok := res.Graph.Node("D150")
	require.True(t, ok)
	assert.True(t, n.IsImplicit())
	assert.Contains(t, res.Coords, "D150")

	opts.Missing = catalog.MissingDrop
	res, err = r.Run(ctx, ds, opts)
	require.NoError(t, err)
	assert.NotContains(t, res.Coords, "D150")
}

func TestRunCycle(t *testing.T) {
	ds := records.New()
	ds.Tables["courses"] = []records.Record{
		{"course_number": "S100"}, {"course_number": "S200"},
		{"course_number": "S300"}, {"course_number": "S400"},
	}
	ds.Tables["course_requisites"] = []records.Record{
		{"course_number": "S200", "requisite_number": "S100"},
		{"course_number": "S300", "requisite_number": "S200"},
		{"course_number": "S400", "requisite_number": "S300"},
		{"course_number": "S100", "requisite_number": "S400"},
	}

	res, err := NewRunner(nil, nil, nil).Run(context.Background(), ds, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, res.Coords, 4)
	assert.Len(t, res.Levels.Fallback, 4)
	assert.NotEmpty(t, res.Report.Cycles)
	assert.False(t, res.Report.Clean())

	meta := res.Dataset.Extra[MetadataKey].(map[string]any)
	assert.Equal(t, 1, meta["cycles"])
}

func TestRunEmptyDataset(t *testing.T) {
	res, err := NewRunner(nil, nil, nil).Run(context.Background(), records.New(), DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, res.Coords)
	assert.Zero(t, res.Levels.Count())
}

func TestRunCache(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := NewRunner(fc, nil, nil)
	defer r.Close()

	opts := DefaultOptions()
	opts.Strategy = "radial"

	first, err := r.Run(ctx, program(), opts)
	require.NoError(t, err)
	assert.False(t, first.CacheHit)

	second, err := r.Run(ctx, program(), opts)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Coords, second.Coords)
	assert.Equal(t, first.Report, second.Report)
	assert.Equal(t, first.LayoutID, second.LayoutID)
	assert.Equal(t, first.Dataset, second.Dataset)

	opts.Iterations = 3
	third, err := r.Run(ctx, program(), opts)
	require.NoError(t, err)
	assert.False(t, third.CacheHit, "changed options must miss")
	assert.NotEqual(t, first.LayoutID, third.LayoutID)

	opts.NoCache = true
	fourth, err := r.Run(ctx, program(), opts)
	require.NoError(t, err)
	assert.False(t, fourth.CacheHit)
}

func TestRunStrategies(t *testing.T) {
	names := []string{"linear", "radial", "arc-compact", "fan"}
	strategies, err := layout.Presets(names...)
	require.NoError(t, err)
	results, err := NewRunner(nil, nil, nil).RunStrategies(context.Background(), program(), DefaultOptions(), strategies)
	require.NoError(t, err)
	require.Len(t, results, len(names))

	for i, res := range results {
		assert.Equal(t, names[i], res.Strategy)
		assert.Len(t, res.Coords, 4)
		assert.Equal(t, results[0].Positions, res.Positions)
	}
	assert.True(t, results[1].Coords["S101"].Polar)
	assert.False(t, results[0].Coords["S101"].Polar)
	assert.NotEqual(t, results[0].LayoutID, results[1].LayoutID)

	_, err = NewRunner(nil, nil, nil).RunStrategies(context.Background(), program(), DefaultOptions(),
		[]layout.Strategy{layout.NewLinear(), nil})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidStrategy))
}

func TestRunStrategiesKeepsTunedParameters(t *testing.T) {
	tuned := layout.NewRadial()
	tuned.BaseRadius = 7

	opts := DefaultOptions()
	opts.Layout = tuned
	single, err := NewRunner(nil, nil, nil).Run(context.Background(), program(), opts)
	require.NoError(t, err)

	results, err := NewRunner(nil, nil, nil).RunStrategies(context.Background(), program(), DefaultOptions(),
		[]layout.Strategy{tuned, layout.NewRadial()})
	require.NoError(t, err)

	assert.InDelta(t, 7.0, single.Coords["S101"].R, 1e-9)
	assert.InDelta(t, single.Coords["S101"].R, results[0].Coords["S101"].R, 1e-9)
	assert.InDelta(t, 2.0, results[1].Coords["S101"].R, 1e-9)
	assert.NotEqual(t, results[0].LayoutID, results[1].LayoutID)
}

func TestRunHooks(t *testing.T) {
	hooks := observability.NewPrometheusHooks()
	observability.SetPipelineHooks(hooks)
	observability.SetCacheHooks(hooks)
	defer observability.Reset()

	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := NewRunner(fc, nil, nil)
	ctx := context.Background()

	_, err = r.Run(ctx, program(), DefaultOptions())
	require.NoError(t, err)
	_, err = r.Run(ctx, program(), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(hooks.LayoutsTotal.WithLabelValues("linear", "ok")))
	assert.Equal(t, 3.0, testutil.ToFloat64(hooks.Levels))
	assert.Equal(t, 1.0, testutil.ToFloat64(hooks.CacheRequests.WithLabelValues("layout", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(hooks.CacheRequests.WithLabelValues("layout", "hit")))
}

func TestResultLayers(t *testing.T) {
	res, err := NewRunner(nil, nil, nil).Run(context.Background(), program(), DefaultOptions())
	require.NoError(t, err)

	layers := res.Layers()
	require.Len(t, layers, 3)
	assert.ElementsMatch(t, []string{"S101", "M101"}, layers[0])
	assert.Equal(t, []string{"S301"}, layers[2])
}
