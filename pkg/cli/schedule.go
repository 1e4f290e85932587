package cli

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/platinummonkey/ktlint-report/pkg/log"
)

// parseSchedule validates a cron expression or descriptor such as "@every 10m"
func parseSchedule(expr string) error {
	if _, err := cron.ParseStandard(expr); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", expr, err)
	}
	return nil
}

// startSchedule runs job on the cron expression expr. A run still in progress
// when the next one is due makes the scheduler skip that tick.
func startSchedule(expr string, l log.Log, job func()) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(expr, job); err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", expr, err)
	}
	c.Start()
	l.Info(fmt.Sprintf("Report schedule: %s", expr))
	return c, nil
}

// stopSchedule stops c and waits for a running job, or for ctx
func stopSchedule(ctx context.Context, c *cron.Cron) error {
	select {
	case <-c.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
