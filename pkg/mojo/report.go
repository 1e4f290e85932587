package mojo

import (
	"context"
	"fmt"

	"golang.org/x/text/language"

	"github.com/platinummonkey/ktlint-report/pkg/observability"
)

// Report is the report goal. It logs every violation at debug level and
// writes the site report; violations never fail it.
type Report struct {
	Options
}

// NewReport creates the report goal
func NewReport(opts Options) *Report {
	return &Report{Options: opts}
}

// Execute runs the report goal. A skipped project, or one without any existing
// source root, is a silent no-op.
func (m *Report) Execute(ctx context.Context) error {
	_, err := m.Run(ctx)
	return err
}

// Run executes the goal and returns its outcome, nil when there was nothing to report
func (m *Report) Run(ctx context.Context) (*Outcome, error) {
	outcome, err := m.execute(ctx, GoalReport)
	if err != nil || outcome == nil {
		return outcome, err
	}

	if err := writeSite(m.Project, outcome); err != nil {
		m.recordRun(GoalReport, observability.StatusError, outcome.StartedAt)
		return nil, err
	}

	if m.Publisher != nil {
		if _, err := m.Publisher.PublishDir(ctx, m.Project.OutputDir()); err != nil {
			m.logger().Warn(fmt.Sprintf("Failed to publish reports: %v", err))
		}
	}

	m.finish(ctx, outcome)
	return outcome, nil
}

// OutputName is the base name of the site report
func (m *Report) OutputName() string {
	return SiteName
}

// CanGenerateReport reports whether Execute would produce a report
func (m *Report) CanGenerateReport() bool {
	w, err := m.walker()
	return err == nil && w != nil
}

var (
	locales = []language.Tag{language.English, language.German}
	matcher = language.NewMatcher(locales)

	names = map[language.Tag]string{
		language.English: "Ktlint",
		language.German:  "Ktlint",
	}
	descriptions = map[language.Tag]string{
		language.English: "Report on coding style conventions.",
		language.German:  "Bericht über die Einhaltung der Programmierstil-Konventionen.",
	}
)

func localize(tag language.Tag, texts map[language.Tag]string) string {
	_, i, _ := matcher.Match(tag)
	return texts[locales[i]]
}

// Name returns the display name of the report. Unsupported locales fall back to English.
func (m *Report) Name(tag language.Tag) string {
	return localize(tag, names)
}

// Description returns the description of the report
func (m *Report) Description(tag language.Tag) string {
	return localize(tag, descriptions)
}
