// Package cli provides the ktlint-report command-line interface.
//
// # Overview
//
// The CLI runs the lint goals against a Kotlin project directory, prints the
// available rules, watches sources for changes, serves generated reports and
// lists the run history.
//
// # Commands
//
// report: Lint every source root and write the site report
//
//	ktlint-report report ./app --output-dir target/site
//
// check: Fail with exit status 1 when violations remain
//
//	ktlint-report check ./app --reporter plain --reporter checkstyle,output=target/ktlint.xml
//
// format: Rewrite sources, fixing what can be auto-corrected
//
//	ktlint-report format ./app
//
// rules: List rule sets and rules as a markdown table
//
//	ktlint-report rules
//
// watch: Run check now and after every change of a Kotlin source
//
//	ktlint-report watch ./app --debounce 300ms
//
// serve: Run the report once, then serve reports, metrics and history
//
//	ktlint-report serve ./app --addr :8080
//
// history: List recent runs
//
//	ktlint-report history ./app --limit 10
//
// # Configuration
//
// The project is read from ktlint.yaml in the project directory, then KTLINT_*
// environment variables apply, then command-line flags:
//
//	export KTLINT_HISTORY_DSN="sqlite://target/ktlint-history.db"
//	export KTLINT_REDIS_URL="redis://localhost:6379/0"
//
// Use -X/--debug to see every discovery step of a goal.
package cli
