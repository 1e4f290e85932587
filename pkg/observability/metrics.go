package observability

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run outcomes used as the status label of ktlint_runs_total
const (
	StatusSuccess    = "success"
	StatusViolations = "violations"
	StatusError      = "error"
	StatusSkipped    = "skipped"
)

// Metrics holds all Prometheus metrics of a run
type Metrics struct {
	registry *prometheus.Registry

	// Lint metrics
	FilesCheckedTotal prometheus.Counter
	ViolationsTotal   *prometheus.CounterVec
	FileLintDuration  prometheus.Histogram
	RunsTotal         *prometheus.CounterVec
	RunDuration       *prometheus.HistogramVec

	// Cache metrics
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,

		FilesCheckedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ktlint_files_checked_total",
				Help: "Total number of Kotlin files checked",
			},
		),
		ViolationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ktlint_violations_total",
				Help: "Total number of style violations found",
			},
			[]string{"rule"},
		),
		FileLintDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ktlint_file_lint_duration_seconds",
				Help:    "Time spent linting a single file",
				Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			},
		),
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ktlint_runs_total",
				Help: "Total number of goal executions",
			},
			[]string{"goal", "status"},
		),
		RunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ktlint_run_duration_seconds",
				Help:    "Goal execution duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"goal"},
		),

		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ktlint_cache_hits_total",
				Help: "Total number of lint results served from the cache",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ktlint_cache_misses_total",
				Help: "Total number of files linted because no cached result existed",
			},
		),

		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ktlint_http_requests_total",
				Help: "Total number of HTTP requests served by the report server",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ktlint_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	// Register all metrics
	registry.MustRegister(
		m.FilesCheckedTotal,
		m.ViolationsTotal,
		m.FileLintDuration,
		m.RunsTotal,
		m.RunDuration,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)

	return m
}

// Registry returns the registry the metrics are registered with
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordFile records one checked file and the rules of its violations
func (m *Metrics) RecordFile(duration time.Duration, rules []string) {
	m.FilesCheckedTotal.Inc()
	m.FileLintDuration.Observe(duration.Seconds())
	for _, rule := range rules {
		m.ViolationsTotal.WithLabelValues(rule).Inc()
	}
}

// RecordCache records a cache lookup
func (m *Metrics) RecordCache(hit bool) {
	if hit {
		m.CacheHitsTotal.Inc()
		return
	}
	m.CacheMissesTotal.Inc()
}

// RecordRun records a finished goal execution
func (m *Metrics) RecordRun(goal, status string, duration time.Duration) {
	m.RunsTotal.WithLabelValues(goal, status).Inc()
	m.RunDuration.WithLabelValues(goal).Observe(duration.Seconds())
}

// WriteTextfile writes the registry in the node exporter textfile format
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// HTTPMetricsMiddleware instruments HTTP requests with Prometheus metrics
func HTTPMetricsMiddleware(metrics *Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(rw.statusCode)

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
		})
	}
}

// MetricsHandler serves the registry in the Prometheus exposition format
func MetricsHandler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
