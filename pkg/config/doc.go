// Package config loads the project model the lint goals run against.
//
// # Overview
//
// A project is a base directory plus the settings found in its ktlint.yaml (or
// ktlint.yml, .ktlint.yaml, .ktlint.yml). Missing files yield the defaults, which
// match a conventional Kotlin layout:
//
//	sourceRoots:     [src/main/kotlin]
//	testSourceRoots: [src/test/kotlin]
//	includes:        ["**/*.kt", "**/*.kts"]
//	outputDirectory: target/site
//
// # Environment
//
// Every setting that matters in CI can be overridden from the environment:
//
//	KTLINT_SKIP="true"
//	KTLINT_EXPERIMENTAL="true"
//	KTLINT_OUTPUT_DIR="build/reports"
//	KTLINT_LOG_LEVEL="debug"
//	KTLINT_REDIS_URL="redis://localhost:6379/0"
//	KTLINT_HISTORY_DSN="postgres://localhost/ktlint?sslmode=disable"
//	KTLINT_S3_BUCKET="lint-reports"
//	KTLINT_OTEL_ENABLED="true"
//	KTLINT_METRICS_FILE="/var/lib/node_exporter/ktlint.prom"
//
// # Usage
//
//	project, err := config.LoadFromDir(".")
//	if err != nil {
//		return err
//	}
//	if project.Skip {
//		return nil
//	}
package config
