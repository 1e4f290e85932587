// Command ktlint-report lints Kotlin sources and reports style violations.
//
// Usage:
//
//	ktlint-report report [project-dir]
//	ktlint-report check [project-dir]
//	ktlint-report format [project-dir]
//
// See --help for all available commands and options.
package main

import "github.com/platinummonkey/ktlint-report/pkg/cli"

func main() {
	cli.Execute()
}
