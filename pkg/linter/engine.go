package linter

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/platinummonkey/ktlint-report/pkg/kotlin"
)

// Engine orchestrates the linting process
type Engine struct {
	config *Config
	sets   []RuleSet
}

// NewEngine creates a lint engine running the given rule sets in order
func NewEngine(sets []RuleSet, config *Config) *Engine {
	if config == nil {
		config = DefaultConfig()
	}

	return &Engine{
		config: config,
		sets:   sets,
	}
}

// RuleSets returns the rule sets the engine runs
func (e *Engine) RuleSets() []RuleSet {
	return e.sets
}

// Signature identifies the engine's behavior for a given file: the enabled
// rules and the options they read. Equal signatures lint equal content alike.
func (e *Engine) Signature(f *File) string {
	disabled := e.disabled(f)

	var b strings.Builder
	for _, set := range e.sets {
		for _, rule := range set.Rules {
			id := set.Qualify(rule.Name())
			if disabled[id] {
				continue
			}
			b.WriteString(id)
			b.WriteByte(';')
		}
	}
	fmt.Fprintf(&b, "android=%t;%s", f.Android || e.config.Android, f.Style)
	return b.String()
}

func (e *Engine) disabled(f *File) map[string]bool {
	disabled := make(map[string]bool)
	for _, id := range f.Style.DisabledRules() {
		disabled[normalizeRuleID(id)] = true
	}
	for _, id := range e.config.DisabledRules {
		disabled[normalizeRuleID(id)] = true
	}
	return disabled
}

// LintResult contains the result of linting a single file
type LintResult struct {
	FilePath   string
	Violations []Violation
}

// Lint runs all enabled rules against a file. A file with a structural syntax
// error yields a single syntax violation and no rule runs.
func (e *Engine) Lint(ctx context.Context, f *File) (LintResult, error) {
	result := LintResult{
		FilePath:   f.Path,
		Violations: make([]Violation, 0),
	}

	syntaxErr, err := kotlin.ValidateSyntax(ctx, f.Content)
	if err != nil {
		return result, fmt.Errorf("failed to validate %s: %w", f.Path, err)
	}
	if syntaxErr != nil {
		result.Violations = append(result.Violations, Violation{
			Rule:    SyntaxRule,
			Line:    syntaxErr.Line,
			Column:  syntaxErr.Column,
			Message: fmt.Sprintf("Not a valid Kotlin file (%s)", syntaxErr),
		})
		return result, nil
	}

	if e.config.Android && !f.Android {
		android := *f
		android.Android = true
		f = &android
	}

	disabled := e.disabled(f)
	regions := suppressions(f)

	for _, set := range e.sets {
		for _, rule := range set.Rules {
			id := set.Qualify(rule.Name())
			if disabled[id] {
				continue
			}
			for _, v := range rule.Check(f) {
				v.Rule = id
				if !rule.CanAutoFix() {
					v.SuggestedFix = nil
				}
				if suppressed(regions, f.Offset(v.Line, v.Column), id) {
					continue
				}
				result.Violations = append(result.Violations, v)
			}
		}
	}

	SortViolations(result.Violations)
	return result, nil
}

// FormatResult contains the result of formatting a single file
type FormatResult struct {
	FilePath string
	Content  []byte
	Changed  bool
	// Violations holds the corrected violations, flagged Corrected, and the
	// ones left in Content
	Violations []Violation
}

// Format applies the suggested fixes of auto-fixable violations, re-linting
// between rounds, and returns the corrected content.
func (e *Engine) Format(ctx context.Context, f *File) (FormatResult, error) {
	current := f
	var corrected, remaining []Violation

	for pass := 0; ; pass++ {
		lint, err := e.Lint(ctx, current)
		if err != nil {
			return FormatResult{}, err
		}
		remaining = lint.Violations
		if pass == e.config.passes() {
			break
		}

		content, applied := applyFixes(current.Content, lint.Violations)
		if len(applied) == 0 {
			break
		}
		for _, v := range applied {
			v.Corrected = true
			v.SuggestedFix = nil
			corrected = append(corrected, v)
		}
		current = NewFile(f.Path, content, f.Style, f.Android)
	}

	violations := make([]Violation, 0, len(corrected)+len(remaining))
	violations = append(violations, corrected...)
	for _, v := range remaining {
		v.SuggestedFix = nil
		violations = append(violations, v)
	}
	SortViolations(violations)

	return FormatResult{
		FilePath:   f.Path,
		Content:    current.Content,
		Changed:    !bytes.Equal(current.Content, f.Content),
		Violations: violations,
	}, nil
}

type fixSpan struct {
	start, end int
	violation  Violation
}

// applyFixes applies every fix that does not overlap an earlier one and
// returns the new content with the violations it corrected
func applyFixes(content []byte, violations []Violation) ([]byte, []Violation) {
	var spans []fixSpan
	for _, v := range violations {
		if v.SuggestedFix == nil || len(v.SuggestedFix.Changes) == 0 {
			continue
		}
		span := fixSpan{start: len(content), end: -1, violation: v}
		valid := true
		for _, c := range v.SuggestedFix.Changes {
			if c.Start < 0 || c.End < c.Start || c.End > len(content) {
				valid = false
				break
			}
			if c.OldText != "" && string(content[c.Start:c.End]) != c.OldText {
				valid = false
				break
			}
			span.start = min(span.start, c.Start)
			span.end = max(span.end, c.End)
		}
		if valid {
			spans = append(spans, span)
		}
	}
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var (
		applied []Violation
		changes []Change
		lastEnd = -1
	)
	for _, s := range spans {
		if s.start < lastEnd || (s.start == lastEnd && s.start == s.end) {
			continue
		}
		applied = append(applied, s.violation)
		changes = append(changes, s.violation.SuggestedFix.Changes...)
		lastEnd = s.end
	}
	if len(applied) == 0 {
		return content, nil
	}

	sort.SliceStable(changes, func(i, j int) bool { return changes[i].Start < changes[j].Start })
	var out bytes.Buffer
	pos := 0
	for _, c := range changes {
		out.Write(content[pos:c.Start])
		out.WriteString(c.NewText)
		pos = c.End
	}
	out.Write(content[pos:])
	return out.Bytes(), applied
}

// SortViolations orders violations by position, then rule id
func SortViolations(violations []Violation) {
	sort.SliceStable(violations, func(i, j int) bool {
		a, b := violations[i], violations[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Rule < b.Rule
	})
}

// Summary provides an overview of all lint results
type Summary struct {
	TotalFiles      int
	FilesWithErrors int
	TotalViolations int
	ByRule          map[string]int
}

// GenerateSummary creates a summary of lint results
func GenerateSummary(results []LintResult) Summary {
	summary := Summary{
		TotalFiles: len(results),
		ByRule:     make(map[string]int),
	}

	for _, result := range results {
		if len(result.Violations) > 0 {
			summary.FilesWithErrors++
		}
		summary.TotalViolations += len(result.Violations)
		for _, v := range result.Violations {
			summary.ByRule[v.Rule]++
		}
	}

	return summary
}
