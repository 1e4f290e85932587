package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	md "github.com/nao1215/markdown"
	"github.com/spf13/cobra"

	"github.com/platinummonkey/ktlint-report/pkg/history"
	"github.com/platinummonkey/ktlint-report/pkg/server"
)

// ErrNoHistory is returned when the project has no history DSN
var ErrNoHistory = errors.New("no run history configured: set history.dsn or KTLINT_HISTORY_DSN")

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [project-dir]",
		Short: "List recent runs, or the violations of one run",
		Long: `History prints the most recent runs recorded in the project's history
database as a markdown table, newest first. With --run it prints the
violations recorded for that run instead.

Examples:
  ktlint-report history ./app --limit 5
  ktlint-report history ./app --run 2f1c3a9e-8d0b-4a53-9d0e-3c1b7c6a1f00`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}
	cmd.Flags().Int("limit", 20, "Number of runs to list")
	cmd.Flags().String("run", "", "List the violations of this run")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	if limit <= 0 {
		return fmt.Errorf("limit must be positive")
	}
	runID, err := cmd.Flags().GetString("run")
	if err != nil {
		return err
	}

	project, err := loadProject(cmd, args)
	if err != nil {
		return err
	}
	if project.History.DSN == "" {
		return ErrNoHistory
	}

	ctx := commandContext(cmd)
	store, err := history.Open(ctx, historyDSN(project))
	if err != nil {
		return err
	}
	defer store.Close()

	if runID != "" {
		return writeViolations(ctx, cmd.OutOrStdout(), store, runID)
	}
	return writeRuns(ctx, cmd.OutOrStdout(), store, limit)
}

func writeRuns(ctx context.Context, w io.Writer, runs server.RunStore, limit int) error {
	recent, err := runs.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}

	rows := make([][]string, 0, len(recent))
	for _, run := range recent {
		rows = append(rows, []string{
			md.Code(run.ID),
			run.Goal,
			run.StartedAt.UTC().Format("2006-01-02 15:04:05"),
			run.Duration.Round(time.Millisecond).String(),
			strconv.Itoa(run.Files),
			strconv.Itoa(run.Violations),
		})
	}

	return md.NewMarkdown(w).
		Table(md.TableSet{
			Header:    []string{"Run", "Goal", "Started (UTC)", "Duration", "Files", "Violations"},
			Rows:      rows,
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		}).
		Build()
}

func writeViolations(ctx context.Context, w io.Writer, runs server.RunStore, runID string) error {
	violations, err := runs.ViolationsOf(ctx, runID)
	if err != nil {
		return err
	}
	if len(violations) == 0 {
		_, err := fmt.Fprintf(w, "No violations recorded for run %s.\n", runID)
		return err
	}

	rows := make([][]string, 0, len(violations))
	for _, v := range violations {
		rows = append(rows, []string{
			v.File,
			strconv.Itoa(v.Line),
			strconv.Itoa(v.Column),
			md.Code(v.Rule),
			v.Message,
		})
	}

	return md.NewMarkdown(w).
		Table(md.TableSet{
			Header:    []string{"File", "Line", "Column", "Rule", "Message"},
			Rows:      rows,
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft, md.AlignLeft},
		}).
		Build()
}
