// Package server serves the generated reports, run history, metrics and
// health endpoints over HTTP.
//
// Routes:
//
//	GET /healthz                       liveness
//	GET /readyz                        readiness of the history store and redis cache
//	GET /metrics                       prometheus metrics of the runs
//	GET /reports/...                   files of the report output directory
//	GET /api/runs?limit=N              recent runs, newest first
//	GET /api/runs/{id}/violations      violations recorded for a run
//
// Every request is traced with otelhttp and counted by the prometheus HTTP middleware.
package server
