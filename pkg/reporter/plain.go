package reporter

import (
	"fmt"
	"io"

	"github.com/platinummonkey/ktlint-report/pkg/linter"
)

// Plain writes one "path:line:col: message" line per violation
type Plain struct {
	out     io.Writer
	opts    Options
	pending []string
	err     error
}

// NewPlain creates a plain text reporter
func NewPlain(out io.Writer, opts Options) Reporter {
	return &Plain{out: out, opts: opts}
}

func (p *Plain) OnLintError(file string, v linter.Violation, corrected bool) {
	if corrected {
		return
	}

	suffix := ""
	if p.opts.Verbose && v.Rule != "" {
		suffix = " (" + v.Rule + ")"
	}

	if p.opts.GroupByFile {
		p.pending = append(p.pending, fmt.Sprintf("  %d:%d %s%s", v.Line, v.Column, v.Message, suffix))
		return
	}
	p.write(fmt.Sprintf("%s:%d:%d: %s%s\n", file, v.Line, v.Column, v.Message, suffix))
}

func (p *Plain) AfterFile(file string) {
	if len(p.pending) == 0 {
		return
	}
	p.write(file + "\n")
	for _, line := range p.pending {
		p.write(line + "\n")
	}
	p.pending = p.pending[:0]
}

func (p *Plain) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.out, s)
}

// AfterAll reports the first write error
func (p *Plain) AfterAll() error {
	if p.err != nil {
		return fmt.Errorf("failed to write plain report: %w", p.err)
	}
	return nil
}
