// Package mojo implements the lint goals: report, check and format.
//
// Every goal runs the same pipeline against a project:
//
//  1. load the .editorconfig chain of the base directory
//  2. resolve the rule sets, disabling the experimental set unless enabled
//  3. discover the reporters
//  4. walk the source roots, linting the files of each root concurrently
//
// and logs each step through the injected log.Log. The log output of the report goal
// is a compatibility contract:
//
//	Discovered .editorconfig ()
//	{charset=utf-8, indent_size=4, ...} loaded from .editorconfig
//	Discovered ruleset 'standard'
//	Discovered ruleset 'experimental'
//	Disabled ruleset 'experimental'
//	Discovered reporter 'maven'
//	...
//	checking: src/main/kotlin/example/Example.kt
//	Style error > src/main/kotlin/example/Example.kt:29:39: Unnecessary semicolon
//
// A goal with skip set, or whose project has no existing source root, returns without
// touching the log at all.
package mojo
