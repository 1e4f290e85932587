package rules

import "github.com/platinummonkey/ktlint-report/pkg/linter"

// Rule set ids
const (
	StandardID     = "standard"
	ExperimentalID = "experimental"
)

// StandardRuleSet returns the rules enabled by default
func StandardRuleSet() linter.RuleSet {
	return linter.RuleSet{
		ID:       StandardID,
		Kind:     linter.Standard,
		Priority: 0,
		Rules: []linter.Rule{
			NewNoSemiRule(),
			NewNoTrailingSpacesRule(),
			NewFinalNewlineRule(),
			NewMaxLineLengthRule(),
			NewNoConsecutiveBlankLinesRule(),
			NewNoBlankLineBeforeRbraceRule(),
			NewNoWildcardImportsRule(),
			NewIndentRule(),
			NewNoUnitReturnRule(),
			NewNoEmptyClassBodyRule(),
		},
	}
}

// ExperimentalRuleSet returns the rules that only run when experimental rules are enabled
func ExperimentalRuleSet() linter.RuleSet {
	return linter.RuleSet{
		ID:       ExperimentalID,
		Kind:     linter.Experimental,
		Priority: 1,
		Rules: []linter.Rule{
			NewNoEmptyFirstLineInMethodBlockRule(),
			NewCommentSpacingRule(),
		},
	}
}

// Registry interface for registering rule sets
type Registry interface {
	Register(set linter.RuleSet)
}

// RegisterDefaultRuleSets registers all built-in rule sets
func RegisterDefaultRuleSets(registry Registry) {
	registry.Register(StandardRuleSet())
	registry.Register(ExperimentalRuleSet())
}

// DefaultRegistry returns a registry holding the built-in rule sets
func DefaultRegistry() *linter.Registry {
	registry := linter.NewRegistry()
	RegisterDefaultRuleSets(registry)
	return registry
}
