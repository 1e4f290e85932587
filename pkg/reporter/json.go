package reporter

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/platinummonkey/ktlint-report/pkg/linter"
)

// FileErrors is one entry of the JSON report
type FileErrors struct {
	File   string      `json:"file"`
	Errors []JSONError `json:"errors"`
}

// JSONError is one violation of the JSON report
type JSONError struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
	Rule    string `json:"rule"`
}

// JSON collects violations and writes them as a JSON array of files
type JSON struct {
	out     io.Writer
	files   []FileErrors
	current *FileErrors
}

// NewJSON creates a JSON reporter
func NewJSON(out io.Writer, _ Options) Reporter {
	return &JSON{out: out, files: make([]FileErrors, 0)}
}

func (j *JSON) OnLintError(file string, v linter.Violation, corrected bool) {
	if corrected {
		return
	}
	if j.current == nil || j.current.File != file {
		j.files = append(j.files, FileErrors{File: file})
		j.current = &j.files[len(j.files)-1]
	}
	j.current.Errors = append(j.current.Errors, JSONError{
		Line:    v.Line,
		Column:  v.Column,
		Message: v.Message,
		Rule:    v.Rule,
	})
}

func (j *JSON) AfterFile(string) {
	j.current = nil
}

// AfterAll writes the collected report
func (j *JSON) AfterAll() error {
	data, err := json.MarshalIndent(j.files, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode json report: %w", err)
	}
	if _, err := j.out.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write json report: %w", err)
	}
	return nil
}
