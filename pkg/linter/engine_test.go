package linter

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/ktlint-report/pkg/editorconfig"
)

func standardSet(rules ...Rule) RuleSet {
	return RuleSet{ID: "standard", Kind: Standard, Rules: rules}
}

func TestEngine_Lint(t *testing.T) {
	src := "fun main() {\n" +
		"    val a = 1 // ktlint-disable\n" +
		"    val b = 2\n" +
		"    val c = 3 // ktlint-disable other\n" +
		"}\n"

	engine := NewEngine([]RuleSet{standardSet(tokenRule("mark", "val", false))}, nil)
	result, err := engine.Lint(context.Background(), newTestFile(src))
	require.NoError(t, err)

	require.Len(t, result.Violations, 2)
	assert.Equal(t, "Test.kt", result.FilePath)
	assert.Equal(t, Violation{Rule: "mark", Line: 3, Column: 5, Message: "found val"}, result.Violations[0])
	assert.Equal(t, 4, result.Violations[1].Line)
}

func TestEngine_LintBlockSuppression(t *testing.T) {
	src := "fun main() {\n" +
		"    /* ktlint-disable experimental:mark */\n" +
		"    val a = 1\n" +
		"    /* ktlint-enable experimental:mark */\n" +
		"    val b = 2\n" +
		"}\n"

	set := RuleSet{ID: "experimental", Kind: Experimental, Rules: []Rule{tokenRule("mark", "val", true)}}
	result, err := NewEngine([]RuleSet{set}, nil).Lint(context.Background(), newTestFile(src))
	require.NoError(t, err)

	require.Len(t, result.Violations, 1)
	assert.Equal(t, "experimental:mark", result.Violations[0].Rule)
	assert.Equal(t, 5, result.Violations[0].Line)
	assert.NotNil(t, result.Violations[0].SuggestedFix)
}

func TestEngine_LintDisabledRules(t *testing.T) {
	src := "fun main() {\n    val a = 1\n}\n"
	sets := []RuleSet{standardSet(tokenRule("mark", "val", false), tokenRule("other", "fun", false))}

	style := editorconfig.NewStyleConfig(map[string]string{"disabled_rules": "mark"})
	f := NewFile("Test.kt", []byte(src), style, false)

	result, err := NewEngine(sets, nil).Lint(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, result.Violations, 1)
	assert.Equal(t, "other", result.Violations[0].Rule)

	config := DefaultConfig()
	config.DisabledRules = []string{"standard:other"}
	result, err = NewEngine(sets, config).Lint(context.Background(), f)
	require.NoError(t, err)
	assert.Empty(t, result.Violations)
}

func TestEngine_LintSorted(t *testing.T) {
	src := "fun main() {\n    val a = 1\n}\n"
	sets := []RuleSet{standardSet(tokenRule("z", "fun", false), tokenRule("a", "val", false), tokenRule("b", "fun", false))}

	result, err := NewEngine(sets, nil).Lint(context.Background(), newTestFile(src))
	require.NoError(t, err)

	var rules []string
	for _, v := range result.Violations {
		rules = append(rules, v.Rule)
	}
	assert.Equal(t, []string{"b", "z", "a"}, rules)
}

func TestEngine_LintInvalidSyntax(t *testing.T) {
	engine := NewEngine([]RuleSet{standardSet(tokenRule("mark", "fun", false))}, nil)

	result, err := engine.Lint(context.Background(), newTestFile("fun main( {\n    val = \n"))
	require.NoError(t, err)

	require.Len(t, result.Violations, 1)
	v := result.Violations[0]
	assert.Equal(t, SyntaxRule, v.Rule)
	assert.True(t, strings.HasPrefix(v.Message, "Not a valid Kotlin file ("), v.Message)
	assert.True(t, strings.HasSuffix(v.Message, ")"), v.Message)
}

func TestEngine_LintFunInterface(t *testing.T) {
	src := "package example\n\nfun interface Action {\n    fun run();\n}\n"
	engine := NewEngine([]RuleSet{standardSet(tokenRule("semi", ";", true))}, nil)

	result, err := engine.Lint(context.Background(), newTestFile(src))
	require.NoError(t, err)

	require.Len(t, result.Violations, 1)
	assert.Equal(t, "semi", result.Violations[0].Rule)
	assert.Equal(t, 4, result.Violations[0].Line)
}

func TestEngine_Format(t *testing.T) {
	src := "fun main() {\n    val a = 1;\n    val b = 2;\n}\n"
	engine := NewEngine([]RuleSet{standardSet(tokenRule("semi", ";", true))}, nil)

	result, err := engine.Format(context.Background(), newTestFile(src))
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.Equal(t, "fun main() {\n    val a = 1\n    val b = 2\n}\n", string(result.Content))
	require.Len(t, result.Violations, 2)
	for _, v := range result.Violations {
		assert.True(t, v.Corrected)
		assert.Nil(t, v.SuggestedFix)
	}
	assert.Equal(t, 2, result.Violations[0].Line)
	assert.Equal(t, 3, result.Violations[1].Line)
}

func TestEngine_FormatWithoutAutoFix(t *testing.T) {
	src := "fun main() {\n    val a = 1;\n}\n"
	engine := NewEngine([]RuleSet{standardSet(tokenRule("semi", ";", false))}, nil)

	result, err := engine.Format(context.Background(), newTestFile(src))
	require.NoError(t, err)

	assert.False(t, result.Changed)
	assert.Equal(t, src, string(result.Content))
	require.Len(t, result.Violations, 1)
	assert.False(t, result.Violations[0].Corrected)
}

func TestApplyFixes_Overlap(t *testing.T) {
	content := []byte("abcdef")
	f := &File{Content: content}
	violations := []Violation{
		{Rule: "first", SuggestedFix: Delete(f, 1, 4)},
		{Rule: "overlapping", SuggestedFix: Delete(f, 2, 3)},
		{Rule: "insert", SuggestedFix: Insert(5, "X")},
		{Rule: "stale", SuggestedFix: &Fix{Changes: []Change{{Start: 0, End: 1, OldText: "z"}}}},
		{Rule: "none"},
	}

	out, applied := applyFixes(content, violations)
	assert.Equal(t, "aeXf", string(out))
	require.Len(t, applied, 2)
	assert.Equal(t, "first", applied[0].Rule)
	assert.Equal(t, "insert", applied[1].Rule)
}

func TestEngine_Signature(t *testing.T) {
	sets := []RuleSet{standardSet(tokenRule("a", "x", false), tokenRule("b", "y", false))}
	engine := NewEngine(sets, nil)

	plain := engine.Signature(newTestFile(""))
	styled := engine.Signature(NewFile("Test.kt", nil, editorconfig.NewStyleConfig(map[string]string{"disabled_rules": "b"}), false))

	assert.Contains(t, plain, "a;b;")
	assert.NotEqual(t, plain, styled)
	assert.NotContains(t, styled, "b;")
}

func TestGenerateSummary(t *testing.T) {
	summary := GenerateSummary([]LintResult{
		{FilePath: "a.kt", Violations: []Violation{{Rule: "no-semi"}, {Rule: "indent"}, {Rule: "no-semi"}}},
		{FilePath: "b.kt"},
	})

	assert.Equal(t, 2, summary.TotalFiles)
	assert.Equal(t, 1, summary.FilesWithErrors)
	assert.Equal(t, 3, summary.TotalViolations)
	assert.Equal(t, map[string]int{"no-semi": 2, "indent": 1}, summary.ByRule)
}
