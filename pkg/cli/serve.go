package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/platinummonkey/ktlint-report/pkg/mojo"
	"github.com/platinummonkey/ktlint-report/pkg/observability"
	"github.com/platinummonkey/ktlint-report/pkg/server"
)

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [project-dir]",
		Short: "Report once, then serve reports, metrics and run history",
		Long: `Serve runs the report goal once and then serves over HTTP:

  /reports/                    files of the report output directory
  /metrics                     Prometheus metrics of the runs
  /healthz, /readyz            liveness and readiness
  /api/runs                    recent runs (requires a history DSN)
  /api/runs/{id}/violations    violations of one run

With --schedule the report goal re-runs on a cron expression or descriptor,
so the served reports and history stay current.

Examples:
  ktlint-report serve ./app --addr :9090
  ktlint-report serve ./app --schedule "@every 10m"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runServeCmd,
	}
	addProjectFlags(cmd)
	cmd.Flags().String("addr", server.DefaultAddr, "Listen address")
	cmd.Flags().Duration("shutdown-timeout", 30*time.Second, "Graceful shutdown timeout")
	cmd.Flags().String("schedule", "", `Re-run the report on a cron schedule, e.g. "@every 10m"`)
	return cmd
}

func runServeCmd(cmd *cobra.Command, args []string) error {
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return err
	}
	timeout, err := cmd.Flags().GetDuration("shutdown-timeout")
	if err != nil {
		return err
	}
	schedule, err := cmd.Flags().GetString("schedule")
	if err != nil {
		return err
	}
	if schedule != "" {
		if err := parseSchedule(schedule); err != nil {
			return err
		}
	}

	project, err := loadProject(cmd, args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	s, err := newSession(ctx, cmd, project, mojo.GoalReport)
	if err != nil {
		return err
	}

	outcome, err := s.runGoal(ctx, mojo.GoalReport)
	if err != nil {
		s.Close(context.Background())
		return err
	}
	printOutcome(cmd.OutOrStdout(), project, outcome)

	var runs server.RunStore
	if s.history != nil {
		runs = s.history
	}
	srv := server.New(server.Config{
		Addr:       addr,
		ReportDir:  project.OutputDir(),
		SiteReport: mojo.SiteName + ".md",
	}, s.log, s.metrics, s.health(), runs)

	var scheduler *cron.Cron
	if schedule != "" {
		scheduler, err = startSchedule(schedule, s.log, func() {
			outcome, err := s.runGoal(ctx, mojo.GoalReport)
			if err != nil {
				s.log.Warn(fmt.Sprintf("Scheduled report failed: %v", err))
				return
			}
			printOutcome(cmd.OutOrStdout(), project, outcome)
		})
		if err != nil {
			s.Close(context.Background())
			return err
		}
	}

	httpServer := srv.HTTPServer()
	sm := observability.NewShutdownManager(s.log, httpServer, timeout)
	sm.RegisterShutdownFunc(func(ctx context.Context) error {
		if scheduler != nil {
			if err := stopSchedule(ctx, scheduler); err != nil {
				return err
			}
		}
		return s.Close(ctx)
	})

	errCh := make(chan error, 1)
	go func() {
		s.log.Info(fmt.Sprintf("Serving reports on %s", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			cancel()
		}
	}()

	shutdownErr := sm.WaitForShutdown(ctx)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	default:
		return shutdownErr
	}
}
