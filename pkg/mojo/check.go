package mojo

import (
	"context"
	"errors"
)

// ErrViolations is returned by the check goal when violations remain
var ErrViolations = errors.New("Kotlin source failed ktlint check.")

// Check is the check goal. Violations are logged at error level.
type Check struct {
	Options
}

// NewCheck creates the check goal
func NewCheck(opts Options) *Check {
	return &Check{Options: opts}
}

// Execute runs the check goal and returns ErrViolations when any violation
// is found and the project fails on violations
func (m *Check) Execute(ctx context.Context) error {
	_, err := m.Run(ctx)
	return err
}

// Run executes the goal and returns its outcome, nil when there was nothing to check
func (m *Check) Run(ctx context.Context) (*Outcome, error) {
	outcome, err := m.execute(ctx, GoalCheck)
	if err != nil || outcome == nil {
		return outcome, err
	}
	m.finish(ctx, outcome)

	if outcome.Violations() > 0 && m.Project.FailOnViolation {
		return outcome, ErrViolations
	}
	return outcome, nil
}
