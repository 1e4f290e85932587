// Package editorconfig discovers .editorconfig files for a project and merges the
// options that apply to Kotlin sources.
package editorconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ec "github.com/editorconfig/editorconfig-core-go/v2"

	"github.com/platinummonkey/ktlint-report/pkg/log"
)

// FileName is the name of an editorconfig file
const FileName = ".editorconfig"

// kotlinSelectors are the section headers whose options apply to Kotlin sources
var kotlinSelectors = map[string]bool{
	"*":           true,
	"*.{kt,kts}":  true,
	"*.{kts,kt}":  true,
	"*.kt":        true,
	"*.kts":       true,
	"**":          true,
	"**.{kt,kts}": true,
}

// Location is a discovered .editorconfig file
type Location struct {
	// Path is the absolute file path
	Path string
	// Dir is the file's directory relative to the base directory, "" for the base directory itself
	Dir string
	// Root reports whether the file declares root = true
	Root bool
	// Malformed reports whether parsing failed; its options were ignored
	Malformed bool
}

// Result is the outcome of loading the editorconfig chain for a base directory
type Result struct {
	Style StyleConfig
	// Files lists discovered files, nearest first
	Files []Location
}

// Load discovers .editorconfig files from baseDir upwards and merges their Kotlin options.
// Missing or malformed files never fail the load. A malformed file contributes no
// options and ends the walk.
func Load(baseDir string) (*Result, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, err
	}

	var (
		files   []Location
		parsed  []*ec.Editorconfig
		current = abs
	)

	for {
		path := filepath.Join(current, FileName)
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			loc := Location{Path: path, Dir: relDir(abs, current)}
			config, parseErr := ec.Parse(bytes.NewReader(data))
			if parseErr != nil {
				loc.Malformed = true
				loc.Root = declaresRoot(data)
				config = nil
			} else {
				loc.Root = config.Root
			}
			files = append(files, loc)
			parsed = append(parsed, config)
		case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
			// keep walking
		default:
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		// a malformed file ends the walk so outer options never stand in for it
		if n := len(files); n > 0 && (files[n-1].Root || files[n-1].Malformed) {
			break
		}

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}

	return &Result{
		Style: merge(parsed),
		Files: files,
	}, nil
}

// declaresRoot scans the preamble of a file that failed to parse for root = true
func declaresRoot(data []byte) bool {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "[") {
			return false
		}
		key, value, ok := strings.Cut(line, "=")
		if ok && strings.EqualFold(strings.TrimSpace(key), "root") {
			return strings.EqualFold(strings.TrimSpace(value), "true")
		}
	}
	return false
}

// merge applies outer files first so that nearer files win
func merge(configs []*ec.Editorconfig) StyleConfig {
	values := make(map[string]string)
	for i := len(configs) - 1; i >= 0; i-- {
		if configs[i] == nil {
			continue
		}
		for _, def := range configs[i].Definitions {
			if !appliesToKotlin(def.Selector) {
				continue
			}
			for k, v := range def.Raw {
				values[strings.ToLower(k)] = v
			}
		}
	}
	return NewStyleConfig(values)
}

func appliesToKotlin(selector string) bool {
	return kotlinSelectors[strings.ReplaceAll(strings.TrimSpace(selector), " ", "")]
}

func relDir(base, dir string) string {
	rel, err := filepath.Rel(base, dir)
	if err != nil || rel == "." {
		return ""
	}
	return filepath.ToSlash(rel)
}

// Found reports whether any .editorconfig was discovered
func (r *Result) Found() bool {
	return len(r.Files) > 0
}

// LogTo announces every discovered file and, at debug level, the merged options
func (r *Result) LogTo(l log.Log) {
	for _, f := range r.Files {
		l.Debug("Discovered " + FileName + " (" + f.Dir + ")")
	}
	if r.Found() && l.IsDebugEnabled() {
		l.Debug(r.Style.String() + " loaded from " + FileName)
	}
}
