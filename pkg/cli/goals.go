package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/platinummonkey/ktlint-report/pkg/config"
	"github.com/platinummonkey/ktlint-report/pkg/mojo"
)

// NewReportCmd creates the report command
func NewReportCmd() *cobra.Command {
	return newGoalCmd(mojo.GoalReport,
		"Lint Kotlin sources and write the site report",
		`Report lints every source root of the project and writes a markdown site
report to the output directory. Violations are logged at debug level and
never fail the command.

Examples:
  # Report on the project in the current directory
  ktlint-report report

  # Include experimental rules and show every discovery step
  ktlint-report report ./app --experimental -X`)
}

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	return newGoalCmd(mojo.GoalCheck,
		"Lint Kotlin sources and fail on violations",
		`Check lints every source root of the project, logs each violation at error
level and exits with status 1 when violations remain and the project sets
failOnViolation (the default).

Examples:
  ktlint-report check ./app
  ktlint-report check ./app --reporter checkstyle,output=target/ktlint.xml`)
}

// NewFormatCmd creates the format command
func NewFormatCmd() *cobra.Command {
	return newGoalCmd(mojo.GoalFormat,
		"Fix auto-correctable violations in place",
		`Format rewrites the Kotlin sources of the project, fixing every violation
that can be auto-corrected. Violations that remain are logged at error level
but do not fail the command.

Examples:
  ktlint-report format ./app`)
}

func newGoalCmd(goal mojo.Goal, short, long string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(goal) + " [project-dir]",
		Short: short,
		Long:  long,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGoalCmd(cmd, args, goal)
		},
	}
	addProjectFlags(cmd)
	return cmd
}

func runGoalCmd(cmd *cobra.Command, args []string, goal mojo.Goal) error {
	ctx := commandContext(cmd)

	project, err := loadProject(cmd, args)
	if err != nil {
		return err
	}

	s, err := newSession(ctx, cmd, project, goal)
	if err != nil {
		return err
	}
	defer s.Close(context.Background())

	outcome, err := s.runGoal(ctx, goal)
	printOutcome(cmd.OutOrStdout(), project, outcome)
	return err
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// printOutcome writes a one-line summary of a run, nothing when it was skipped
func printOutcome(w io.Writer, p *config.Project, outcome *mojo.Outcome) {
	if outcome == nil {
		return
	}

	fmt.Fprintf(w, "%s: %d files checked, %d violations\n",
		outcome.Goal, len(outcome.Results), outcome.Violations())
	switch outcome.Goal {
	case mojo.GoalReport:
		fmt.Fprintf(w, "site report: %s\n", mojo.SitePath(p))
	case mojo.GoalFormat:
		for _, file := range outcome.Changed {
			fmt.Fprintf(w, "formatted: %s\n", file)
		}
	}
}
