package linter_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/ktlint-report/pkg/editorconfig"
	"github.com/platinummonkey/ktlint-report/pkg/linter"
	"github.com/platinummonkey/ktlint-report/pkg/linter/rules"
	"github.com/platinummonkey/ktlint-report/pkg/log"
)

const greeter = `package example

import java.util.*

class Greeter(private val name: String) {
    fun greet(): Unit {
        println("Hello, $name");   
    }

}
`

func describe(violations []linter.Violation) []string {
	out := make([]string, 0, len(violations))
	for _, v := range violations {
		out = append(out, fmt.Sprintf("%d:%d %s %s", v.Line, v.Column, v.Rule, v.Message))
	}
	return out
}

func newEngine(experimental bool) *linter.Engine {
	sets := rules.DefaultRegistry().Resolve(experimental, log.Discard())
	return linter.NewEngine(sets, linter.DefaultConfig())
}

func TestLintEngine_StandardRules(t *testing.T) {
	file := linter.NewFile("Greeter.kt", []byte(greeter), editorconfig.NewStyleConfig(nil), false)

	result, err := newEngine(false).Lint(context.Background(), file)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"3:1 no-wildcard-imports Wildcard import",
		`6:18 no-unit-return Unnecessary "Unit" return type`,
		"7:32 no-semi Unnecessary semicolon",
		"7:33 no-trailing-spaces Trailing space(s)",
		`9:1 no-blank-line-before-rbrace Unexpected blank line(s) before "}"`,
	}, describe(result.Violations))
}

func TestLintEngine_Format(t *testing.T) {
	file := linter.NewFile("Greeter.kt", []byte(greeter), editorconfig.NewStyleConfig(nil), false)

	result, err := newEngine(false).Format(context.Background(), file)
	require.NoError(t, err)

	assert.True(t, result.Changed)
	assert.Equal(t, `package example

import java.util.*

class Greeter(private val name: String) {
    fun greet() {
        println("Hello, $name")
    }
}
`, string(result.Content))

	var corrected, remaining []string
	for _, v := range result.Violations {
		if v.Corrected {
			corrected = append(corrected, v.Rule)
		} else {
			remaining = append(remaining, v.Rule)
		}
	}
	assert.ElementsMatch(t, []string{"no-unit-return", "no-semi", "no-trailing-spaces", "no-blank-line-before-rbrace"}, corrected)
	assert.Equal(t, []string{"no-wildcard-imports"}, remaining)
}

func TestLintEngine_ExperimentalRules(t *testing.T) {
	src := "fun main() {\n\n    //greeting\n    println(\"hi\")\n}\n"
	file := linter.NewFile("Main.kt", []byte(src), editorconfig.NewStyleConfig(nil), false)

	result, err := newEngine(false).Lint(context.Background(), file)
	require.NoError(t, err)
	assert.Empty(t, result.Violations)

	result, err = newEngine(true).Lint(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2:1 experimental:no-empty-first-line-in-method-block First line in a method block should not be empty",
		"3:7 experimental:comment-spacing Missing space after //",
	}, describe(result.Violations))
}

func TestLintEngine_EditorConfig(t *testing.T) {
	src := "fun main() {\n  val a = 1; // ktlint-disable no-semi\n}\n"

	style := editorconfig.NewStyleConfig(map[string]string{"indent_size": "2"})
	result, err := newEngine(false).Lint(context.Background(), linter.NewFile("Main.kt", []byte(src), style, false))
	require.NoError(t, err)
	assert.Empty(t, result.Violations)

	result, err = newEngine(false).Lint(context.Background(), linter.NewFile("Main.kt", []byte(src), editorconfig.NewStyleConfig(nil), false))
	require.NoError(t, err)
	assert.Equal(t, []string{"2:1 indent Unexpected indentation (2) (it should be 0)"}, describe(result.Violations))
}
