package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusHooks implements [PipelineHooks] and [CacheHooks] on a private
// Prometheus registry. A CLI run is short-lived, so the registry is dumped to
// a node_exporter textfile with [PrometheusHooks.WriteTextfile] rather than
// scraped.
type PrometheusHooks struct {
	registry *prometheus.Registry

	LayoutsTotal     *prometheus.CounterVec
	LayoutDuration   *prometheus.HistogramVec
	Levels           prometheus.Gauge
	FallbackCourses  prometheus.Gauge
	CrossingsInitial prometheus.Gauge
	CrossingsFinal   prometheus.Gauge
	OrderingDuration prometheus.Histogram
	CacheRequests    *prometheus.CounterVec
	CacheWriteBytes  *prometheus.CounterVec
}

// NewPrometheusHooks creates hooks backed by a fresh registry.
func NewPrometheusHooks() *PrometheusHooks {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &PrometheusHooks{
		registry: reg,
		LayoutsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursemap_layouts_total",
				Help: "Total number of layouts computed",
			},
			[]string{"strategy", "status"},
		),
		LayoutDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "coursemap_layout_duration_seconds",
				Help:    "Layout computation duration in seconds",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"strategy"},
		),
		Levels: f.NewGauge(prometheus.GaugeOpts{
			Name: "coursemap_levels",
			Help: "Number of dense levels in the last layout",
		}),
		FallbackCourses: f.NewGauge(prometheus.GaugeOpts{
			Name: "coursemap_fallback_courses",
			Help: "Courses leveled by band fallback in the last layout",
		}),
		CrossingsInitial: f.NewGauge(prometheus.GaugeOpts{
			Name: "coursemap_crossings_initial",
			Help: "Edge crossings of the seed ordering",
		}),
		CrossingsFinal: f.NewGauge(prometheus.GaugeOpts{
			Name: "coursemap_crossings_final",
			Help: "Edge crossings after barycenter ordering",
		}),
		OrderingDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "coursemap_ordering_duration_seconds",
			Help:    "Barycenter ordering duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0},
		}),
		CacheRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursemap_cache_requests_total",
				Help: "Cache lookups by result",
			},
			[]string{"key_type", "result"},
		),
		CacheWriteBytes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursemap_cache_write_bytes_total",
				Help: "Bytes written to the cache",
			},
			[]string{"key_type"},
		),
	}
}

// Registry returns the underlying registry.
func (h *PrometheusHooks) Registry() *prometheus.Registry { return h.registry }

// WriteTextfile writes all metrics in the text exposition format.
func (h *PrometheusHooks) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, h.registry)
}

func (h *PrometheusHooks) OnLayoutStart(context.Context, string, int) {}

func (h *PrometheusHooks) OnLevelsAssigned(_ context.Context, levels, fallback int) {
	h.Levels.Set(float64(levels))
	h.FallbackCourses.Set(float64(fallback))
}

func (h *PrometheusHooks) OnOrderingComplete(_ context.Context, initial, final int, d time.Duration) {
	h.CrossingsInitial.Set(float64(initial))
	h.CrossingsFinal.Set(float64(final))
	h.OrderingDuration.Observe(d.Seconds())
}

func (h *PrometheusHooks) OnLayoutComplete(_ context.Context, strategy string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	h.LayoutsTotal.WithLabelValues(strategy, status).Inc()
	h.LayoutDuration.WithLabelValues(strategy).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.CacheRequests.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.CacheRequests.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.CacheWriteBytes.WithLabelValues(keyType).Add(float64(size))
}

var (
	_ PipelineHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
)
