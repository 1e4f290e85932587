package mojo

import "context"

// Format is the format goal. It rewrites every file whose auto-fixable
// violations could be corrected and logs the violations left behind.
type Format struct {
	Options
}

// NewFormat creates the format goal
func NewFormat(opts Options) *Format {
	return &Format{Options: opts}
}

// Execute runs the format goal
func (m *Format) Execute(ctx context.Context) error {
	_, err := m.Run(ctx)
	return err
}

// Run executes the goal and returns its outcome, nil when there was nothing to format
func (m *Format) Run(ctx context.Context) (*Outcome, error) {
	outcome, err := m.execute(ctx, GoalFormat)
	if err != nil || outcome == nil {
		return outcome, err
	}
	m.finish(ctx, outcome)
	return outcome, nil
}
