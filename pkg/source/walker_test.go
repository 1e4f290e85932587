package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/ktlint-report/pkg/log/logtest"
)

func writeFiles(t *testing.T, base string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(base, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("fun main() {}\n"), 0644))
	}
}

func rels(files []File) []string {
	var out []string
	for _, f := range files {
		out = append(out, f.Rel)
	}
	return out
}

func TestWalker_Files(t *testing.T) {
	base := t.TempDir()
	writeFiles(t, base,
		"src/main/kotlin/b/B.kt",
		"src/main/kotlin/a/A.kt",
		"src/main/kotlin/Top.kt",
		"src/main/kotlin/build.gradle.kts",
		"src/main/kotlin/README.md",
		"src/main/kotlin/.hidden/H.kt",
		"src/main/kotlin/generated/G.kt",
	)

	w, err := NewWalker(base, []string{"**/*.kt", "**/*.kts"}, []string{"generated/**"})
	require.NoError(t, err)

	files, err := w.Files("src/main/kotlin")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"src/main/kotlin/Top.kt",
		"src/main/kotlin/a/A.kt",
		"src/main/kotlin/b/B.kt",
		"src/main/kotlin/build.gradle.kts",
	}, rels(files))
	assert.Equal(t, filepath.Join(base, "src", "main", "kotlin", "Top.kt"), files[0].Abs)
	assert.Equal(t, "src/main/kotlin", files[0].Root)
}

func TestWalker_Walk(t *testing.T) {
	base := t.TempDir()
	writeFiles(t, base, "src/main/kotlin/A.kt", "src/other/B.kt")

	w, err := NewWalker(base, []string{"**/*.kt"}, nil)
	require.NoError(t, err)

	rec := logtest.NewRecorder()
	var visited []string
	err = w.Walk([]string{"src/main/kotlin", "src/test/kotlin", "src/other"}, rec, func(root string, files []File) error {
		visited = append(visited, root)
		visited = append(visited, rels(files)...)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"src/main/kotlin", "src/main/kotlin/A.kt", "src/other", "src/other/B.kt"}, visited)
	assert.Equal(t, []string{"Source root doesn't exist: src/test/kotlin"}, rec.Messages("warn"))
	assert.Len(t, rec.Entries(), 1)
}

func TestWalker_WalkStopsOnError(t *testing.T) {
	base := t.TempDir()
	writeFiles(t, base, "a/A.kt", "b/B.kt")

	w, err := NewWalker(base, []string{"**/*.kt"}, nil)
	require.NoError(t, err)

	boom := errors.New("boom")
	calls := 0
	err = w.Walk([]string{"a", "b"}, logtest.NewRecorder(), func(string, []File) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestWalker_Exists(t *testing.T) {
	base := t.TempDir()
	writeFiles(t, base, "src/main/kotlin/A.kt", "file.kt")

	w, err := NewWalker(base, []string{"**/*.kt"}, nil)
	require.NoError(t, err)

	assert.True(t, w.Exists("src/main/kotlin"))
	assert.True(t, w.Exists(filepath.Join(base, "src")))
	assert.False(t, w.Exists("src/test/kotlin"))
	assert.False(t, w.Exists("file.kt"))

	assert.True(t, w.AnyExists([]string{"missing", "src/main/kotlin"}))
	assert.False(t, w.AnyExists([]string{"missing"}))
	assert.False(t, w.AnyExists(nil))
}

func TestNewWalker_InvalidPattern(t *testing.T) {
	_, err := NewWalker(t.TempDir(), []string{"[a-"}, nil)
	assert.Error(t, err)
}
