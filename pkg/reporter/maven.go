package reporter

import (
	"fmt"
	"io"

	"github.com/platinummonkey/ktlint-report/pkg/linter"
	"github.com/platinummonkey/ktlint-report/pkg/log"
)

// Maven writes violations to the goal's log
type Maven struct {
	emit    func(string)
	verbose bool
}

// NewMaven creates a maven reporter. The writer is unused: output goes to
// opts.Log at opts.Level.
func NewMaven(_ io.Writer, opts Options) Reporter {
	l := opts.Log
	if l == nil {
		l = log.Discard()
	}
	level := opts.Level
	if level == "" {
		level = log.LevelDebug
	}
	return &Maven{emit: log.At(l, level), verbose: opts.Verbose}
}

func (m *Maven) OnLintError(file string, v linter.Violation, corrected bool) {
	prefix := "Style error"
	if corrected {
		prefix = "Format error"
	}
	msg := fmt.Sprintf("%s > %s:%d:%d: %s", prefix, file, v.Line, v.Column, v.Message)
	if m.verbose && v.Rule != "" {
		msg += " (" + v.Rule + ")"
	}
	m.emit(msg)
}

func (m *Maven) AfterFile(string) {}

func (m *Maven) AfterAll() error { return nil }
