package rules

import (
	"strings"

	"github.com/platinummonkey/ktlint-report/pkg/kotlin"
	"github.com/platinummonkey/ktlint-report/pkg/linter"
)

// commentSpacingExempt are line comment prefixes left as written
var commentSpacingExempt = []string{"//noinspection", "//region", "//endregion", "//language="}

// CommentSpacingRule requires whitespace around the // of line comments
type CommentSpacingRule struct {
	BaseRule
}

// NewCommentSpacingRule creates a new comment-spacing rule
func NewCommentSpacingRule() *CommentSpacingRule {
	return &CommentSpacingRule{
		BaseRule: BaseRule{
			RuleName:        "comment-spacing",
			RuleDescription: "Line comments are separated from code and text by a space",
			AutoFixable:     true,
		},
	}
}

func (r *CommentSpacingRule) Check(f *linter.File) []linter.Violation {
	var violations []linter.Violation
	tokens := f.Tokens()

	for i, tok := range tokens {
		if tok.Kind != kotlin.LineComment {
			continue
		}
		if i > 0 && tokens[i-1].Kind != kotlin.Whitespace && tokens[i-1].Kind != kotlin.Newline {
			violations = append(violations, f.At(tok.Offset, "Missing space before //", linter.Insert(tok.Offset, " ")))
		}
		if len(tok.Text) > 2 && tok.Text[2] != ' ' && !commentSpacingIgnored(tok.Text) {
			violations = append(violations, f.At(tok.Offset+2, "Missing space after //", linter.Insert(tok.Offset+2, " ")))
		}
	}

	return violations
}

func commentSpacingIgnored(text string) bool {
	for _, prefix := range commentSpacingExempt {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	return false
}
