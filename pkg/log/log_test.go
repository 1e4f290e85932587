package log

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"", LevelInfo, false},
		{"info", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"trace", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogrus_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LevelInfo)
	logger.SetOutput(&buf)

	l := NewLogrus(logger).WithGoal("report")
	assert.False(t, l.IsDebugEnabled())

	l.Debug("hidden")
	l.Info("shown")
	l.Warn("careful")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "careful")
	assert.Contains(t, out, "goal=report")
}

func TestLogrus_DebugEnabled(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	assert.True(t, NewLogrus(logger).IsDebugEnabled())
	assert.NotNil(t, NewLogrus(nil))
}

func TestAt(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LevelDebug)
	logger.SetOutput(&buf)
	l := NewLogrus(logger)

	At(l, LevelError)("boom")
	At(l, LevelDebug)("details")

	assert.Contains(t, buf.String(), "level=error msg=boom")
	assert.Contains(t, buf.String(), "level=debug msg=details")
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Debug("x")
	l.Error("x")
	assert.False(t, l.IsDebugEnabled())
}
