package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics holds OpenTelemetry metric instruments
type OTelMetrics struct {
	// Lint metrics
	filesChecked    metric.Int64Counter
	violationsTotal metric.Int64Counter
	lintDuration    metric.Float64Histogram

	// Cache metrics
	cacheHitsTotal   metric.Int64Counter
	cacheMissesTotal metric.Int64Counter

	// Publish metrics
	publishOperations metric.Int64Counter
	publishBytes      metric.Int64Histogram
	publishDuration   metric.Float64Histogram
}

// NewOTelMetrics creates the instruments on the global meter provider
func NewOTelMetrics() (*OTelMetrics, error) {
	return NewOTelMetricsWithMeter(otel.Meter(InstrumentationName))
}

// NewOTelMetricsWithMeter creates the instruments on meter
func NewOTelMetricsWithMeter(meter metric.Meter) (*OTelMetrics, error) {
	m := &OTelMetrics{}
	var err error

	m.filesChecked, err = meter.Int64Counter(
		"ktlint.files.checked",
		metric.WithDescription("Total number of Kotlin files checked"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create files_checked counter: %w", err)
	}

	m.violationsTotal, err = meter.Int64Counter(
		"ktlint.violations",
		metric.WithDescription("Total number of style violations found"),
		metric.WithUnit("{violation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create violations counter: %w", err)
	}

	m.lintDuration, err = meter.Float64Histogram(
		"ktlint.file.lint.duration",
		metric.WithDescription("Time spent linting a single file"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create lint_duration histogram: %w", err)
	}

	m.cacheHitsTotal, err = meter.Int64Counter(
		"ktlint.cache.hits",
		metric.WithDescription("Total number of lint result cache hits"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache_hits counter: %w", err)
	}

	m.cacheMissesTotal, err = meter.Int64Counter(
		"ktlint.cache.misses",
		metric.WithDescription("Total number of lint result cache misses"),
		metric.WithUnit("{miss}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache_misses counter: %w", err)
	}

	m.publishOperations, err = meter.Int64Counter(
		"ktlint.publish.operations",
		metric.WithDescription("Total number of report uploads"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create publish_operations counter: %w", err)
	}

	m.publishBytes, err = meter.Int64Histogram(
		"ktlint.publish.bytes",
		metric.WithDescription("Bytes uploaded per report file"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create publish_bytes histogram: %w", err)
	}

	m.publishDuration, err = meter.Float64Histogram(
		"ktlint.publish.duration",
		metric.WithDescription("Report upload duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create publish_duration histogram: %w", err)
	}

	return m, nil
}

// RecordFile records one checked file and the rules of its violations
func (m *OTelMetrics) RecordFile(ctx context.Context, duration time.Duration, rules []string) {
	m.filesChecked.Add(ctx, 1)
	m.lintDuration.Record(ctx, duration.Seconds())
	for _, rule := range rules {
		m.violationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("ktlint.rule", rule)))
	}
}

// RecordCache records a cache lookup
func (m *OTelMetrics) RecordCache(ctx context.Context, hit bool) {
	if hit {
		m.cacheHitsTotal.Add(ctx, 1)
		return
	}
	m.cacheMissesTotal.Add(ctx, 1)
}

// RecordPublish records one uploaded report file
func (m *OTelMetrics) RecordPublish(ctx context.Context, bytes int64, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.Bool("error", err != nil),
	}

	m.publishOperations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.publishDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	if bytes > 0 {
		m.publishBytes.Record(ctx, bytes, metric.WithAttributes(attrs...))
	}
}
