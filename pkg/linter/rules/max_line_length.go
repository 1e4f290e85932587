package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/platinummonkey/ktlint-report/pkg/kotlin"
	"github.com/platinummonkey/ktlint-report/pkg/linter"
)

// MaxLineLengthRule enforces max_line_length
type MaxLineLengthRule struct {
	BaseRule
}

// NewMaxLineLengthRule creates a new max-line-length rule
func NewMaxLineLengthRule() *MaxLineLengthRule {
	return &MaxLineLengthRule{
		BaseRule: BaseRule{
			RuleName:        "max-line-length",
			RuleDescription: "Lines do not exceed max_line_length",
			AutoFixable:     false,
		},
	}
}

func (r *MaxLineLengthRule) Check(f *linter.File) []linter.Violation {
	limit := f.Style.MaxLineLength(f.Android)
	if limit <= 0 {
		return nil
	}

	var violations []linter.Violation
	for _, line := range f.Lines() {
		if utf8.RuneCountInString(line.Text) <= limit {
			continue
		}
		trimmed := strings.TrimSpace(line.Text)
		if strings.HasPrefix(trimmed, "package ") || strings.HasPrefix(trimmed, "import ") {
			continue
		}
		if tok, ok := f.TokenAt(line.Start); ok && tok.Kind == kotlin.String && line.Start > tok.Offset {
			continue
		}
		violations = append(violations, f.At(line.Start, fmt.Sprintf("Exceeded max line length (%d)", limit), nil))
	}

	return violations
}
