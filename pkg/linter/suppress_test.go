package linter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/ktlint-report/pkg/kotlin"
)

func TestParseDirective(t *testing.T) {
	tests := []struct {
		name      string
		tok       kotlin.Token
		directive string
		ids       []string
	}{
		{"line all", kotlin.Token{Kind: kotlin.LineComment, Text: "// ktlint-disable"}, "ktlint-disable", []string{}},
		{"line ids", kotlin.Token{Kind: kotlin.LineComment, Text: "// ktlint-disable no-semi standard:indent"}, "ktlint-disable", []string{"no-semi", "indent"}},
		{"comma ids", kotlin.Token{Kind: kotlin.BlockComment, Text: "/* ktlint-enable a,b */"}, "ktlint-enable", []string{"a", "b"}},
		{"other comment", kotlin.Token{Kind: kotlin.LineComment, Text: "// plain text"}, "", nil},
		{"not a comment", kotlin.Token{Kind: kotlin.Identifier, Text: "ktlint"}, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			directive, ids := parseDirective(tt.tok)
			assert.Equal(t, tt.directive, directive)
			assert.Equal(t, tt.ids, ids)
		})
	}
}

func TestSuppressions(t *testing.T) {
	src := "val a = 1 // ktlint-disable\n" +
		"/* ktlint-disable x */\n" +
		"val b = 2\n" +
		"/* ktlint-enable x */\n" +
		"// ktlint-disable\n" +
		"/* ktlint-disable */\n" +
		"val c = 3\n"
	f := newTestFile(src)
	regions := suppressions(f)

	require.Len(t, regions, 3)

	// trailing comment silences only its own line
	assert.True(t, suppressed(regions, f.Offset(1, 1), "any"))
	assert.False(t, suppressed(regions, f.Offset(3, 1), "any"))

	// block region silences only the listed rule
	assert.True(t, suppressed(regions, f.Offset(3, 1), "x"))
	assert.False(t, suppressed(regions, f.Offset(5, 1), "x"))

	// an unmatched block runs to the end of the file
	assert.True(t, suppressed(regions, f.Offset(7, 5), "y"))
}
