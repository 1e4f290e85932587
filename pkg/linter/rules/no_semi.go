package rules

import (
	"github.com/platinummonkey/ktlint-report/pkg/kotlin"
	"github.com/platinummonkey/ktlint-report/pkg/linter"
)

// NoSemiRule flags semicolons that do not separate statements
type NoSemiRule struct {
	BaseRule
}

// NewNoSemiRule creates a new no-semi rule
func NewNoSemiRule() *NoSemiRule {
	return &NoSemiRule{
		BaseRule: BaseRule{
			RuleName:        "no-semi",
			RuleDescription: "Semicolons are only used to separate statements on one line",
			AutoFixable:     true,
		},
	}
}

// Check scans the file's semicolons
func (r *NoSemiRule) Check(f *linter.File) []linter.Violation {
	var violations []linter.Violation
	tokens := f.Tokens()

	// declaration keyword of every open brace
	var blocks []string

	for i, tok := range tokens {
		switch {
		case tok.Is("{"):
			blocks = append(blocks, kotlin.DeclarationKeyword(tokens, i))
		case tok.Is("}"):
			if len(blocks) > 0 {
				blocks = blocks[:len(blocks)-1]
			}
		case tok.Is(";"):
			inEnum := len(blocks) > 0 && blocks[len(blocks)-1] == "enum"
			if !unnecessarySemicolon(tokens, i, inEnum) {
				continue
			}
			violations = append(violations, f.At(tok.Offset, "Unnecessary semicolon", linter.Delete(f, tok.Offset, tok.End())))
		}
	}

	return violations
}

func unnecessarySemicolon(tokens []kotlin.Token, i int, inEnum bool) bool {
	next := tokens[kotlin.NextOnLine(tokens, i)]
	switch {
	case next.Kind == kotlin.Newline, next.Kind == kotlin.EOF, next.Kind == kotlin.BlockComment, next.Is("}"):
	default:
		return false
	}

	// the semicolon ending enum entries is required when members follow
	if inEnum {
		return tokens[kotlin.NextSignificant(tokens, i)].Is("}")
	}
	return true
}
