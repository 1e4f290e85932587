package cli

import (
	"fmt"
	"io"
	"strings"

	md "github.com/nao1215/markdown"
	"github.com/spf13/cobra"

	"github.com/platinummonkey/ktlint-report/pkg/linter"
	"github.com/platinummonkey/ktlint-report/pkg/linter/rules"
)

// NewRulesCmd creates the rules command
func NewRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List the available rule sets and rules",
		Long: `Rules prints every rule set and its rules as a markdown table, in the order
the goals discover them. Experimental rules only run with --experimental.

Given a rule id such as no-semi or experimental:comment-spacing, only that
rule is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := rules.DefaultRegistry()
			if len(args) == 1 {
				return writeRule(cmd.OutOrStdout(), registry, args[0])
			}
			return writeRules(cmd.OutOrStdout(), registry)
		},
	}
}

func writeRules(w io.Writer, registry *linter.Registry) error {
	var rows [][]string
	for _, set := range registry.All() {
		for _, rule := range set.Rules {
			rows = append(rows, ruleRow(set, rule))
		}
	}
	return writeRuleTable(w, rows)
}

func writeRule(w io.Writer, registry *linter.Registry, id string) error {
	rule, set, ok := registry.Rule(id)
	if !ok {
		return fmt.Errorf("unknown rule: %s", id)
	}
	return writeRuleTable(w, [][]string{ruleRow(set, rule)})
}

func ruleRow(set linter.RuleSet, rule linter.Rule) []string {
	autoCorrect := "no"
	if rule.CanAutoFix() {
		autoCorrect = "yes"
	}
	return []string{
		md.Code(set.Qualify(rule.Name())),
		set.ID,
		autoCorrect,
		strings.ReplaceAll(rule.Description(), "|", `\|`),
	}
}

func writeRuleTable(w io.Writer, rows [][]string) error {
	return md.NewMarkdown(w).
		H1("Ktlint Rules").
		Table(md.TableSet{
			Header:    []string{"Rule", "Rule set", "Auto-correct", "Description"},
			Rows:      rows,
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignCenter, md.AlignLeft},
		}).
		Build()
}
