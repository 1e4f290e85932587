package mojo

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/ktlint-report/pkg/log/logtest"
)

func TestFormat_RewritesFile(t *testing.T) {
	project := fixture(t, "check-with-errors")
	path := filepath.Join(project.BaseDir, exampleFile)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	recorder := logtest.NewRecorder()
	outcome, err := NewFormat(Options{Project: project, Log: recorder}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{exampleFile}, outcome.Changed)
	assert.Equal(t, 0, outcome.Violations())
	assert.Contains(t, recorder.Messages("debug"), "Format error > "+exampleFile+":29:39: Unnecessary semicolon")
	assert.Empty(t, recorder.Messages("error"))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Replace(string(before), "event.guests.size;", "event.guests.size", 1), string(after))

	// a second pass has nothing left to do
	outcome, err = NewFormat(Options{Project: project}).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, outcome.Changed)
}

func TestFormat_LogsRemainingViolations(t *testing.T) {
	project := fixture(t, "check-with-errors")
	path := filepath.Join(project.BaseDir, exampleFile)
	require.NoError(t, os.WriteFile(path, []byte("package example\n\nimport java.util.*\n\nval x = 1;\n"), 0644))

	recorder := logtest.NewRecorder()
	outcome, err := NewFormat(Options{Project: project, Log: recorder}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, outcome.Violations())
	assert.Equal(t, []string{
		"Style error > " + exampleFile + ":3:1: Wildcard import",
	}, recorder.Messages("error"))
	assert.Contains(t, recorder.Messages("debug"), "Format error > "+exampleFile+":5:10: Unnecessary semicolon")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package example\n\nimport java.util.*\n\nval x = 1\n", string(after))
}

func TestFormat_PreservesEncoding(t *testing.T) {
	project := fixture(t, "check-with-errors")
	project.Encoding = "ISO-8859-1"
	path := filepath.Join(project.BaseDir, exampleFile)
	require.NoError(t, os.WriteFile(path, []byte("package example\n\nval s = \"caf\xe9\";\n"), 0644))

	outcome, err := NewFormat(Options{Project: project}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{exampleFile}, outcome.Changed)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("package example\n\nval s = \"caf\xe9\"\n"), after)
}

func TestFormat_Skip(t *testing.T) {
	project := fixture(t, "check-skip")
	path := filepath.Join(project.BaseDir, "src", "main", "kotlin", "example", "Skipped.kt")
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	logger := new(logtest.MockLog)
	logger.Test(t)

	outcome, err := NewFormat(Options{Project: project, Log: logger}).Run(context.Background())
	require.NoError(t, err)
	assert.Nil(t, outcome)
	assert.Empty(t, logger.Calls)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
