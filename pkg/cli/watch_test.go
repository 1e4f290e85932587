package cli

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/ktlint-report/pkg/log"
)

func TestIsKotlinSource(t *testing.T) {
	assert.True(t, isKotlinSource("src/main/kotlin/Example.kt"))
	assert.True(t, isKotlinSource("build.gradle.kts"))
	assert.False(t, isKotlinSource("README.md"))
	assert.False(t, isKotlinSource("Example.kt.swp"))
}

func startWatch(t *testing.T, dir string) *atomic.Int32 {
	t.Helper()

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	t.Cleanup(func() { watcher.Close() })
	require.NoError(t, setupWatcher(watcher, dir))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})

	var runs atomic.Int32
	go func() {
		done <- watchLoop(ctx, watcher, 50*time.Millisecond, log.Discard(), func() { runs.Add(1) })
	}()
	return &runs
}

func TestWatchLoop_DebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	runs := startWatch(t, dir)

	path := filepath.Join(dir, "Example.kt")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("val x = 1;\n"), 0644))
	}

	require.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), runs.Load())
}

func TestWatchLoop_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	runs := startWatch(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("todo\n"), 0644))

	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(0), runs.Load())
}

func TestWatchLoop_WatchesNewDirectories(t *testing.T) {
	dir := t.TempDir()
	runs := startWatch(t, dir)

	sub := filepath.Join(dir, "example")
	require.NoError(t, os.Mkdir(sub, 0755))
	// give the loop time to add the new directory
	time.Sleep(200 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(sub, "Example.kt"), []byte("val x = 1\n"), 0644))
	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatchLoop_StopsWhenWatcherCloses(t *testing.T) {
	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- watchLoop(context.Background(), watcher, time.Second, log.Discard(), func() {})
	}()

	require.NoError(t, watcher.Close())
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not stop")
	}
}
