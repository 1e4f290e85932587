package rules

import (
	"strings"

	"github.com/platinummonkey/ktlint-report/pkg/editorconfig"
	"github.com/platinummonkey/ktlint-report/pkg/kotlin"
	"github.com/platinummonkey/ktlint-report/pkg/linter"
)

// NoTrailingSpacesRule flags whitespace at the end of a line
type NoTrailingSpacesRule struct {
	BaseRule
}

// NewNoTrailingSpacesRule creates a new no-trailing-spaces rule
func NewNoTrailingSpacesRule() *NoTrailingSpacesRule {
	return &NoTrailingSpacesRule{
		BaseRule: BaseRule{
			RuleName:        "no-trailing-spaces",
			RuleDescription: "Lines must not end with whitespace",
			AutoFixable:     true,
		},
	}
}

func (r *NoTrailingSpacesRule) Check(f *linter.File) []linter.Violation {
	var violations []linter.Violation

	for _, line := range f.Lines() {
		trimmed := strings.TrimRight(line.Text, " \t")
		if len(trimmed) == len(line.Text) {
			continue
		}
		start := line.Start + len(trimmed)
		// whitespace inside a multiline string is content
		if tok, ok := f.TokenAt(start); ok && tok.Kind == kotlin.String && start > tok.Offset {
			continue
		}
		violations = append(violations, f.At(start, "Trailing space(s)", linter.Delete(f, start, line.End)))
	}

	return violations
}

// FinalNewlineRule enforces insert_final_newline
type FinalNewlineRule struct {
	BaseRule
}

// NewFinalNewlineRule creates a new final-newline rule
func NewFinalNewlineRule() *FinalNewlineRule {
	return &FinalNewlineRule{
		BaseRule: BaseRule{
			RuleName:        "final-newline",
			RuleDescription: "Files end with a newline unless insert_final_newline is false",
			AutoFixable:     true,
		},
	}
}

func (r *FinalNewlineRule) Check(f *linter.File) []linter.Violation {
	content := f.Content
	if len(content) == 0 {
		return nil
	}

	insert := true
	if v, ok := f.Style.Bool(editorconfig.KeyInsertFinalNewline); ok {
		insert = v
	}

	end := len(content)
	for end > 0 && (content[end-1] == '\n' || content[end-1] == '\r') {
		end--
	}

	switch {
	case insert && end == len(content):
		return []linter.Violation{f.At(0, `File must end with a newline (\n)`, linter.Insert(len(content), "\n"))}
	case !insert && end < len(content):
		return []linter.Violation{f.At(end, `Redundant newline (\n) at the end of file`, linter.Delete(f, end, len(content)))}
	}
	return nil
}

// blankCode reports whether a line is blank and not part of a literal
func blankCode(f *linter.File, line linter.Line) bool {
	return line.Blank() && !f.InsideLiteral(line.Start)
}

// NoConsecutiveBlankLinesRule flags more than one blank line in a row
type NoConsecutiveBlankLinesRule struct {
	BaseRule
}

// NewNoConsecutiveBlankLinesRule creates a new no-consecutive-blank-lines rule
func NewNoConsecutiveBlankLinesRule() *NoConsecutiveBlankLinesRule {
	return &NoConsecutiveBlankLinesRule{
		BaseRule: BaseRule{
			RuleName:        "no-consecutive-blank-lines",
			RuleDescription: "At most one blank line separates code, none ends the file",
			AutoFixable:     true,
		},
	}
}

func (r *NoConsecutiveBlankLinesRule) Check(f *linter.File) []linter.Violation {
	var violations []linter.Violation
	lines := f.Lines()
	endsWithNewline := len(f.Content) > 0 && (f.Content[len(f.Content)-1] == '\n' || f.Content[len(f.Content)-1] == '\r')

	for i := 0; i < len(lines); {
		if !blankCode(f, lines[i]) {
			i++
			continue
		}
		j := i
		for j < len(lines) && blankCode(f, lines[j]) {
			j++
		}

		switch {
		case j == len(lines) && endsWithNewline:
			violations = append(violations, f.At(lines[i].Start, "Needless blank line(s)", linter.Delete(f, lines[i].Start, lines[j-1].Next)))
		case j-i >= 2:
			violations = append(violations, f.At(lines[i+1].Start, "Needless blank line(s)", linter.Delete(f, lines[i+1].Start, lines[j-1].Next)))
		}
		i = j
	}

	return violations
}

// NoBlankLineBeforeRbraceRule flags blank lines closing a block
type NoBlankLineBeforeRbraceRule struct {
	BaseRule
}

// NewNoBlankLineBeforeRbraceRule creates a new no-blank-line-before-rbrace rule
func NewNoBlankLineBeforeRbraceRule() *NoBlankLineBeforeRbraceRule {
	return &NoBlankLineBeforeRbraceRule{
		BaseRule: BaseRule{
			RuleName:        "no-blank-line-before-rbrace",
			RuleDescription: "A closing brace is not preceded by a blank line",
			AutoFixable:     true,
		},
	}
}

func (r *NoBlankLineBeforeRbraceRule) Check(f *linter.File) []linter.Violation {
	var violations []linter.Violation
	tokens := f.Tokens()
	lines := f.Lines()

	for i, tok := range tokens {
		if !tok.Is("}") || !kotlin.FirstOnLine(tokens, i) {
			continue
		}
		last := tok.Line - 2
		if last < 0 || !blankCode(f, lines[last]) {
			continue
		}
		first := last
		for first > 0 && blankCode(f, lines[first-1]) {
			first--
		}
		violations = append(violations, f.At(lines[first].Start, `Unexpected blank line(s) before "}"`,
			linter.Delete(f, lines[first].Start, lines[last].Next)))
	}

	return violations
}

// NoEmptyFirstLineInMethodBlockRule flags a blank line opening a function body
type NoEmptyFirstLineInMethodBlockRule struct {
	BaseRule
}

// NewNoEmptyFirstLineInMethodBlockRule creates a new no-empty-first-line-in-method-block rule
func NewNoEmptyFirstLineInMethodBlockRule() *NoEmptyFirstLineInMethodBlockRule {
	return &NoEmptyFirstLineInMethodBlockRule{
		BaseRule: BaseRule{
			RuleName:        "no-empty-first-line-in-method-block",
			RuleDescription: "Function bodies do not start with a blank line",
			AutoFixable:     true,
		},
	}
}

func (r *NoEmptyFirstLineInMethodBlockRule) Check(f *linter.File) []linter.Violation {
	var violations []linter.Violation
	tokens := f.Tokens()
	lines := f.Lines()

	for i, tok := range tokens {
		if !tok.Is("{") || kotlin.DeclarationKeyword(tokens, i) != "fun" {
			continue
		}
		if tokens[kotlin.NextOnLine(tokens, i)].Kind != kotlin.Newline {
			continue
		}
		if tokens[kotlin.NextSignificant(tokens, i)].Is("}") {
			continue
		}
		// lines are 1-based, so tok.Line indexes the following line
		next := tok.Line
		if next >= len(lines) || !lines[next].Blank() {
			continue
		}
		violations = append(violations, f.At(lines[next].Start, "First line in a method block should not be empty",
			linter.Delete(f, lines[next].Start, lines[next].Next)))
	}

	return violations
}
