package rules

import (
	"fmt"
	"strings"

	"github.com/platinummonkey/ktlint-report/pkg/linter"
)

// IndentRule checks that indentation uses spaces in multiples of indent_size
type IndentRule struct {
	BaseRule
}

// NewIndentRule creates a new indent rule
func NewIndentRule() *IndentRule {
	return &IndentRule{
		BaseRule: BaseRule{
			RuleName:        "indent",
			RuleDescription: "Indentation is a multiple of indent_size (or continuation_indent_size)",
			AutoFixable:     false,
		},
	}
}

func (r *IndentRule) Check(f *linter.File) []linter.Violation {
	if f.Style.IndentStyle() == "tab" {
		return nil
	}

	size := f.Style.IndentSize()
	continuation := f.Style.ContinuationIndentSize()

	var violations []linter.Violation
	for _, line := range f.Lines() {
		if line.Blank() || f.InsideLiteral(line.Start) {
			continue
		}
		body := strings.TrimLeft(line.Text, " \t")
		indent := line.Text[:len(line.Text)-len(body)]
		if indent == "" {
			continue
		}

		if strings.ContainsRune(indent, '\t') {
			violations = append(violations, f.At(line.Start, "Unexpected Tab character(s)", nil))
			continue
		}

		n := len(indent)
		if n%size == 0 || n%continuation == 0 {
			continue
		}
		// block comment bodies align one column past the opening slash
		if strings.HasPrefix(body, "*") {
			continue
		}
		violations = append(violations, f.At(line.Start,
			fmt.Sprintf("Unexpected indentation (%d) (it should be %d)", n, n-n%size), nil))
	}

	return violations
}
