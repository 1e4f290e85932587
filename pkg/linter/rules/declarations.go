package rules

import (
	"github.com/platinummonkey/ktlint-report/pkg/kotlin"
	"github.com/platinummonkey/ktlint-report/pkg/linter"
)

// NoUnitReturnRule flags an explicit Unit return type on block-bodied functions
type NoUnitReturnRule struct {
	BaseRule
}

// NewNoUnitReturnRule creates a new no-unit-return rule
func NewNoUnitReturnRule() *NoUnitReturnRule {
	return &NoUnitReturnRule{
		BaseRule: BaseRule{
			RuleName:        "no-unit-return",
			RuleDescription: "Block-bodied functions omit the Unit return type",
			AutoFixable:     true,
		},
	}
}

func (r *NoUnitReturnRule) Check(f *linter.File) []linter.Violation {
	var violations []linter.Violation
	tokens := f.Tokens()

	for i, tok := range tokens {
		if tok.Kind != kotlin.Identifier || tok.Text != "Unit" {
			continue
		}
		colon := kotlin.PrevSignificant(tokens, i)
		if colon < 0 || !tokens[colon].Is(":") {
			continue
		}
		paren := kotlin.PrevSignificant(tokens, colon)
		if paren < 0 || !tokens[paren].Is(")") {
			continue
		}
		brace := kotlin.NextSignificant(tokens, i)
		if !tokens[brace].Is("{") || kotlin.DeclarationKeyword(tokens, brace) != "fun" {
			continue
		}

		var fix *linter.Fix
		if !hasComment(tokens[paren+1 : i]) {
			fix = linter.Delete(f, tokens[paren].End(), tok.End())
		}
		violations = append(violations, f.At(tok.Offset, `Unnecessary "Unit" return type`, fix))
	}

	return violations
}

// NoEmptyClassBodyRule flags empty bodies of class, interface and object declarations
type NoEmptyClassBodyRule struct {
	BaseRule
}

// NewNoEmptyClassBodyRule creates a new no-empty-class-body rule
func NewNoEmptyClassBodyRule() *NoEmptyClassBodyRule {
	return &NoEmptyClassBodyRule{
		BaseRule: BaseRule{
			RuleName:        "no-empty-class-body",
			RuleDescription: "Declarations without members omit the braces",
			AutoFixable:     true,
		},
	}
}

func (r *NoEmptyClassBodyRule) Check(f *linter.File) []linter.Violation {
	var violations []linter.Violation
	tokens := f.Tokens()

	for i, tok := range tokens {
		if !tok.Is("{") {
			continue
		}
		closing := i + 1
		for closing < len(tokens) && (tokens[closing].Kind == kotlin.Whitespace || tokens[closing].Kind == kotlin.Newline) {
			closing++
		}
		if closing >= len(tokens) || !tokens[closing].Is("}") {
			continue
		}

		keyword, at := kotlin.Declaration(tokens, i)
		switch keyword {
		case "class", "enum", "interface":
		case "object":
			if objectLiteral(tokens, at) {
				continue
			}
		default:
			continue
		}

		start := tok.Offset
		if i > 0 && tokens[i-1].Kind == kotlin.Whitespace {
			start = tokens[i-1].Offset
		}
		violations = append(violations, f.At(tok.Offset, `Unnecessary block ("{}")`, linter.Delete(f, start, tokens[closing].End())))
	}

	return violations
}

// objectLiteral reports whether the object keyword at index at starts an
// object expression rather than a declaration
func objectLiteral(tokens []kotlin.Token, at int) bool {
	next := tokens[kotlin.NextSignificant(tokens, at)]
	if !next.Is(":") && !next.Is("{") {
		return false
	}
	prev := kotlin.PrevSignificant(tokens, at)
	return prev < 0 || !tokens[prev].Is("companion")
}

func hasComment(tokens []kotlin.Token) bool {
	for _, t := range tokens {
		if t.IsComment() {
			return true
		}
	}
	return false
}
