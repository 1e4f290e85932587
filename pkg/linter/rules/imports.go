package rules

import (
	"strings"

	"github.com/platinummonkey/ktlint-report/pkg/kotlin"
	"github.com/platinummonkey/ktlint-report/pkg/linter"
)

// importOnDemandKey lists packages allowed to be imported with a wildcard
const importOnDemandKey = "ij_kotlin_packages_to_use_import_on_demand"

// NoWildcardImportsRule flags star imports
type NoWildcardImportsRule struct {
	BaseRule
}

// NewNoWildcardImportsRule creates a new no-wildcard-imports rule
func NewNoWildcardImportsRule() *NoWildcardImportsRule {
	return &NoWildcardImportsRule{
		BaseRule: BaseRule{
			RuleName:        "no-wildcard-imports",
			RuleDescription: "Imports name each symbol instead of using *",
			AutoFixable:     false,
		},
	}
}

func (r *NoWildcardImportsRule) Check(f *linter.File) []linter.Violation {
	var violations []linter.Violation
	tokens := f.Tokens()

	var allowed []string
	if v, ok := f.Style.Get(importOnDemandKey); ok {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				allowed = append(allowed, p)
			}
		}
	}

	for i, tok := range tokens {
		if !tok.Is("import") || !kotlin.FirstOnLine(tokens, i) {
			continue
		}
		path := importPath(tokens, i)
		if !strings.HasSuffix(path, ".*") || wildcardAllowed(path, allowed) {
			continue
		}
		violations = append(violations, f.At(tok.Offset, "Wildcard import", nil))
	}

	return violations
}

func importPath(tokens []kotlin.Token, i int) string {
	var b strings.Builder
	for j := i + 1; j < len(tokens); j++ {
		t := tokens[j]
		if t.Kind == kotlin.Newline || t.Kind == kotlin.EOF || t.IsComment() || t.Is(";") || t.Is("as") {
			break
		}
		if t.Kind == kotlin.Whitespace {
			continue
		}
		b.WriteString(t.Text)
	}
	return b.String()
}

// wildcardAllowed matches "pkg.*" exactly and "pkg.**" against pkg and its subpackages
func wildcardAllowed(path string, allowed []string) bool {
	for _, a := range allowed {
		if prefix, ok := strings.CutSuffix(a, ".**"); ok {
			if path == prefix+".*" || strings.HasPrefix(path, prefix+".") {
				return true
			}
			continue
		}
		if path == a {
			return true
		}
	}
	return false
}
