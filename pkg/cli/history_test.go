package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/ktlint-report/pkg/history"
)

type fakeRuns struct {
	runs       []history.Run
	violations map[string][]history.Violation
}

func (f *fakeRuns) Recent(ctx context.Context, limit int) ([]history.Run, error) {
	if limit < len(f.runs) {
		return f.runs[:limit], nil
	}
	return f.runs, nil
}

func (f *fakeRuns) ViolationsOf(ctx context.Context, runID string) ([]history.Violation, error) {
	v, ok := f.violations[runID]
	if !ok {
		return nil, history.ErrRunNotFound
	}
	return v, nil
}

func TestWriteRuns(t *testing.T) {
	runs := &fakeRuns{runs: []history.Run{
		{ID: "run-2", Goal: "check", StartedAt: time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC), Duration: 1234567 * time.Microsecond, Files: 3, Violations: 0},
		{ID: "run-1", Goal: "report", StartedAt: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC), Duration: 2 * time.Second, Files: 3, Violations: 2},
	}}

	var buf bytes.Buffer
	require.NoError(t, writeRuns(context.Background(), &buf, runs, 20))

	rows := tableRows(buf.String())
	assert.Equal(t, []string{"`run-2`", "check", "2026-10-18 10:00:00", "1.235s", "3", "0"}, rows[1])
	assert.Equal(t, []string{"`run-1`", "report", "2026-10-18 09:00:00", "2s", "3", "2"}, rows[2])
	assert.NotEqual(t, -1, rowIndex(rows, "Run", "Goal", "Started (UTC)", "Duration", "Files", "Violations"))

	buf.Reset()
	require.NoError(t, writeRuns(context.Background(), &buf, runs, 1))
	assert.NotContains(t, buf.String(), "run-1")
}

func TestWriteRuns_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeRuns(context.Background(), &buf, &fakeRuns{}, 20))
	assert.Equal(t, "No runs recorded.\n", buf.String())
}

func TestWriteViolations(t *testing.T) {
	runs := &fakeRuns{violations: map[string][]history.Violation{
		"run-1": {{File: "src/main/kotlin/example/Example.kt", Line: 29, Column: 39, Rule: "no-semi", Message: "Unnecessary semicolon"}},
		"run-2": {},
	}}

	var buf bytes.Buffer
	require.NoError(t, writeViolations(context.Background(), &buf, runs, "run-1"))
	assert.NotEqual(t, -1, rowIndex(tableRows(buf.String()),
		"src/main/kotlin/example/Example.kt", "29", "39", "`no-semi`", "Unnecessary semicolon"))

	buf.Reset()
	require.NoError(t, writeViolations(context.Background(), &buf, runs, "run-2"))
	assert.Equal(t, "No violations recorded for run run-2.\n", buf.String())

	err := writeViolations(context.Background(), &buf, runs, "missing")
	assert.ErrorIs(t, err, history.ErrRunNotFound)
}

func TestHistoryCmd_NotConfigured(t *testing.T) {
	dir := writeProject(t, map[string]string{})

	_, _, err := execute(t, "history", dir)
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestHistoryCmd_InvalidLimit(t *testing.T) {
	_, _, err := execute(t, "history", "--limit", "0")
	assert.ErrorContains(t, err, "limit must be positive")
}

func TestHistoryCmd_RunViolations(t *testing.T) {
	dir := semicolonProject(t)
	t.Setenv("KTLINT_HISTORY_DSN", "target/history.db")

	_, _, err := execute(t, "report", dir)
	require.NoError(t, err)

	store, err := history.Open(context.Background(), "sqlite://"+dir+"/target/history.db")
	require.NoError(t, err)
	recent, err := store.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.Len(t, recent, 1)

	stdout, _, err := execute(t, "history", dir, "--run", recent[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, -1, rowIndex(tableRows(stdout),
		"src/main/kotlin/example/Example.kt", "3", "10", "`no-semi`", "Unnecessary semicolon"))
}
