// Package linter runs Kotlin style rules over source files.
//
// # Overview
//
// Rules are grouped into rule sets ("standard", "experimental"). A static
// Registry holds the rule sets in a fixed order and decides which of them are
// enabled for a run. The Engine validates a file's syntax, runs every enabled
// rule, filters the findings through ktlint-disable directives and, in format
// mode, applies the rules' suggested fixes.
//
// # Usage Example
//
//	registry := rules.DefaultRegistry()
//	sets := registry.Resolve(project.Experimental, logger)
//
//	engine := linter.NewEngine(sets, linter.DefaultConfig())
//	file := linter.NewFile("src/main/kotlin/Example.kt", content, style, false)
//
//	result, err := engine.Lint(ctx, file)
//	if err != nil {
//		return err
//	}
//	for _, v := range result.Violations {
//		fmt.Printf("%s:%d:%d: %s\n", file.Path, v.Line, v.Column, v.Message)
//	}
//
// # Suppression
//
// A trailing "// ktlint-disable" comment silences every rule on its line, or
// only the listed rule ids. A "/* ktlint-disable ids */" block comment silences
// findings until the matching "/* ktlint-enable ids */".
//
// # Related Packages
//
//   - pkg/linter/rules: the built-in rule sets
//   - pkg/reporter: output formats for violations
package linter
