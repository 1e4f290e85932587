package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/platinummonkey/ktlint-report/pkg/log"
	"github.com/platinummonkey/ktlint-report/pkg/mojo"
)

// DefaultDebounce is the quiet period after a change before check runs again
const DefaultDebounce = 250 * time.Millisecond

// NewWatchCmd creates the watch command
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [project-dir]",
		Short: "Run check whenever a Kotlin source changes",
		Long: `Watch runs the check goal once, then again each time a .kt or .kts file
under an existing source root is written or created. Bursts of changes are
collapsed into a single run. Violations never stop the watch; press Ctrl+C to exit.

Examples:
  ktlint-report watch ./app
  ktlint-report watch ./app --debounce 1s`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWatchCmd,
	}
	addProjectFlags(cmd)
	cmd.Flags().Duration("debounce", DefaultDebounce, "Quiet period after a change before checking again")
	return cmd
}

func runWatchCmd(cmd *cobra.Command, args []string) error {
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return err
	}

	project, err := loadProject(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := newSession(ctx, cmd, project, mojo.GoalCheck)
	if err != nil {
		return err
	}
	defer s.Close(context.Background())

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	for _, root := range project.Roots() {
		dir := project.Resolve(root)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := setupWatcher(watcher, dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
	}

	check := func() {
		outcome, err := s.runGoal(ctx, mojo.GoalCheck)
		printOutcome(cmd.OutOrStdout(), project, outcome)
		if err != nil && !errors.Is(err, mojo.ErrViolations) {
			s.log.Error(err.Error())
		}
	}

	check()
	s.log.Info(fmt.Sprintf("Watching %s for Kotlin source changes", project.BaseDir))
	return watchLoop(ctx, watcher, debounce, s.log, check)
}

// setupWatcher recursively adds all directories to the watcher
func setupWatcher(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

// watchLoop calls onChange once the Kotlin sources have been quiet for
// debounce after a write or create. It returns when ctx is done.
func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, debounce time.Duration, l log.Log, onChange func()) error {
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Only care about write and create events for Kotlin sources
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 && isKotlinSource(event.Name) {
				l.Debug(fmt.Sprintf("Modified file: %s", event.Name))
				timer.Reset(debounce)
			}

			// Also watch new directories
			if event.Op&fsnotify.Create != 0 {
				fi, err := os.Stat(event.Name)
				if err == nil && fi.IsDir() {
					l.Debug(fmt.Sprintf("New directory: %s", event.Name))
					if err := setupWatcher(watcher, event.Name); err != nil {
						l.Warn(fmt.Sprintf("Error watching new directory: %v", err))
					}
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.Warn(fmt.Sprintf("Watcher error: %v", err))

		case <-timer.C:
			onChange()
		}
	}
}

func isKotlinSource(path string) bool {
	switch filepath.Ext(path) {
	case ".kt", ".kts":
		return true
	default:
		return false
	}
}
