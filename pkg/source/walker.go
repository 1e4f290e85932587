// Package source enumerates the Kotlin files of a project's source roots.
package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/patternmatcher"

	"github.com/platinummonkey/ktlint-report/pkg/log"
)

// File is a source file found under a root
type File struct {
	// Abs is the file's path on disk
	Abs string
	// Rel is the slash-separated path relative to the walker's base directory
	Rel string
	// Root is the source root as configured
	Root string
}

// Walker enumerates files of source roots that match include patterns and no
// exclude pattern. Patterns are matched against the path relative to the root.
type Walker struct {
	BaseDir string

	include *patternmatcher.PatternMatcher
	exclude *patternmatcher.PatternMatcher
}

// NewWalker compiles the include and exclude patterns
func NewWalker(baseDir string, includes, excludes []string) (*Walker, error) {
	include, err := patternmatcher.New(includes)
	if err != nil {
		return nil, fmt.Errorf("invalid include pattern: %w", err)
	}
	exclude, err := patternmatcher.New(excludes)
	if err != nil {
		return nil, fmt.Errorf("invalid exclude pattern: %w", err)
	}

	return &Walker{
		BaseDir: baseDir,
		include: include,
		exclude: exclude,
	}, nil
}

// Resolve returns the directory of a root, relative roots being resolved
// against the base directory
func (w *Walker) Resolve(root string) string {
	if filepath.IsAbs(root) {
		return filepath.Clean(root)
	}
	return filepath.Join(w.BaseDir, filepath.FromSlash(root))
}

// Exists reports whether a root is an existing directory
func (w *Walker) Exists(root string) bool {
	info, err := os.Stat(w.Resolve(root))
	return err == nil && info.IsDir()
}

// AnyExists reports whether at least one root exists
func (w *Walker) AnyExists(roots []string) bool {
	for _, root := range roots {
		if w.Exists(root) {
			return true
		}
	}
	return false
}

// Files lists the matching files of one root in lexical order
func (w *Walker) Files(root string) ([]File, error) {
	dir := w.Resolve(root)
	var files []File

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		ok, err := w.matches(filepath.ToSlash(rel))
		if err != nil || !ok {
			return err
		}

		files = append(files, File{Abs: path, Rel: w.relative(path), Root: root})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return files, nil
}

func (w *Walker) matches(rel string) (bool, error) {
	included, err := w.include.MatchesOrParentMatches(rel)
	if err != nil || !included {
		return false, err
	}
	excluded, err := w.exclude.MatchesOrParentMatches(rel)
	if err != nil {
		return false, err
	}
	return !excluded, nil
}

// relative returns path relative to the base directory, or path itself when
// it lies outside
func (w *Walker) relative(path string) string {
	rel, err := filepath.Rel(w.BaseDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// Walk lists every root in order and hands each existing root's files to fn.
// A missing root is reported as a warning and skipped.
func (w *Walker) Walk(roots []string, l log.Log, fn func(root string, files []File) error) error {
	for _, root := range roots {
		if !w.Exists(root) {
			l.Warn(fmt.Sprintf("Source root doesn't exist: %s", root))
			continue
		}

		files, err := w.Files(root)
		if err != nil {
			return err
		}
		if err := fn(root, files); err != nil {
			return err
		}
	}
	return nil
}
