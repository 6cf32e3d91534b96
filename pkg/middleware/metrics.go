package middleware

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/routematch/internal/errors"
	"github.com/vango-dev/routematch/pkg/router"
)

// Label values for the status label of resolutions_total.
const (
	StatusMatched   = "matched"
	StatusUnmatched = "unmatched"
)

// unmatchedRoute is the route label recorded for misses.
const unmatchedRoute = "-"

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "routematch").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for resolution duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
// Matching is fast, so the buckets start well below a millisecond.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "routematch",
		Buckets:   prometheus.ExponentialBuckets(0.000001, 4, 10), // 1µs to ~0.26s
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus collectors.
type metrics struct {
	resolutionsTotal *prometheus.CounterVec
	resolveDuration  *prometheus.HistogramVec
	compileErrors    *prometheus.CounterVec
	routes           prometheus.Gauge
}

// globalMetrics is the singleton metrics instance.
// Created on first call to Prometheus().
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

// initMetrics registers the collectors with config.Registry.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)
	opts := func(name, help string) prometheus.Opts {
		return prometheus.Opts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}
	}

	duration := opts("resolve_duration_seconds", "URL resolution duration in seconds")

	return &metrics{
		resolutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts(opts("resolutions_total", "Total number of URL resolutions by route and status")),
			[]string{"route", "status"},
		),
		resolveDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   duration.Namespace,
			Subsystem:   duration.Subsystem,
			Name:        duration.Name,
			Help:        duration.Help,
			ConstLabels: duration.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),
		compileErrors: factory.NewCounterVec(
			prometheus.CounterOpts(opts("compile_errors_total", "Total number of rejected route patterns by error code")),
			[]string{"code"},
		),
		routes: factory.NewGauge(
			prometheus.GaugeOpts(opts("routes", "Number of routes in the route table")),
		),
	}
}

// Prometheus creates middleware that collects Prometheus metrics for route
// resolution.
//
// Metrics collected:
//   - routematch_resolutions_total: Counter of resolutions by route and status
//   - routematch_resolve_duration_seconds: Histogram of resolution duration
//   - routematch_compile_errors_total: Counter of rejected patterns (RecordCompileError)
//   - routematch_routes: Gauge of the route table size (RecordRoutes)
//
// Misses are recorded under the route label "-".
//
// Example:
//
//	r := router.NewRouter(
//	    router.WithMiddleware(
//	        middleware.Prometheus(
//	            middleware.WithNamespace("myapp"),
//	        ),
//	    ),
//	)
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) router.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return router.MiddlewareFunc(func(ctx context.Context, url string, next router.Resolver) (*router.MatchResult, bool) {
		start := time.Now()

		result, ok := next(ctx, url)

		duration := time.Since(start).Seconds()
		route, status := unmatchedRoute, StatusUnmatched
		if ok {
			route, status = result.Route.Name, StatusMatched
		}
		m.resolveDuration.WithLabelValues(route).Observe(duration)
		m.resolutionsTotal.WithLabelValues(route, status).Inc()

		return result, ok
	})
}

// errorCode returns the label for a compile error. Only registered codes
// are used, which keeps the label cardinality bounded.
func errorCode(err error) string {
	var re *errors.RouteError
	if stderrors.As(err, &re) && re.Code != "" {
		return re.Code
	}
	return "unknown"
}

// RecordCompileError records a rejected route pattern.
// Call this wherever patterns from configuration are compiled.
func RecordCompileError(err error) {
	globalMetricsMu.Lock()
	m := globalMetrics
	globalMetricsMu.Unlock()
	if m != nil && err != nil {
		m.compileErrors.WithLabelValues(errorCode(err)).Inc()
	}
}

// RecordRoutes records the size of the route table.
func RecordRoutes(count int) {
	globalMetricsMu.Lock()
	m := globalMetrics
	globalMetricsMu.Unlock()
	if m != nil {
		m.routes.Set(float64(count))
	}
}
