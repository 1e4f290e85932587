// Package observability provides Prometheus run metrics, OpenTelemetry tracing and
// metrics, health checks and graceful shutdown for the lint goals and the report server.
//
// # Overview
//
// Nothing in this package logs on the happy path of a goal: metrics are collected in
// memory and only written out at the end of a run, tracing is a no-op unless enabled.
//
// # Prometheus Metrics
//
// Each run owns a registry:
//
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry)
//	metrics.RecordFile(12*time.Millisecond, []string{"no-semi"})
//	metrics.RecordRun("report", observability.StatusSuccess, time.Second)
//	err := metrics.WriteTextfile("target/ktlint.prom")
//
// # Health Checks
//
// The report server exposes the state of the optional history database and redis cache:
//
//	checker := observability.NewHealthChecker(db, redisClient)
//	status := checker.Check(ctx)
//
// # OpenTelemetry
//
// Initialize tracing and OTLP metrics:
//
//	providers, err := observability.InitOTel(ctx, observability.OTelConfig{
//		Enabled:     true,
//		Endpoint:    "otel-collector:4317",
//		ServiceName: "ktlint-report",
//		Insecure:    true,
//	}, logger)
//	defer observability.ShutdownOTel(ctx, providers, logger)
//
// # Related Packages
//
//   - pkg/config: telemetry and metrics file configuration
//   - pkg/server: /metrics and /healthz endpoints
package observability
