package mojo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/platinummonkey/ktlint-report/pkg/cache"
	"github.com/platinummonkey/ktlint-report/pkg/config"
	"github.com/platinummonkey/ktlint-report/pkg/history"
	"github.com/platinummonkey/ktlint-report/pkg/linter"
	"github.com/platinummonkey/ktlint-report/pkg/linter/rules"
	"github.com/platinummonkey/ktlint-report/pkg/log"
	"github.com/platinummonkey/ktlint-report/pkg/observability"
	"github.com/platinummonkey/ktlint-report/pkg/reporter"
	"github.com/platinummonkey/ktlint-report/pkg/source"
)

// Goal names a lint goal
type Goal string

const (
	GoalReport Goal = "report"
	GoalCheck  Goal = "check"
	GoalFormat Goal = "format"
)

// HistoryRecorder stores finished runs
type HistoryRecorder interface {
	Record(ctx context.Context, run *history.Run) error
}

// Publisher uploads the report output directory
type Publisher interface {
	PublishDir(ctx context.Context, dir string) ([]string, error)
}

// Options are the project and collaborators of a goal. Only Project is
// required; every other field may be left nil.
type Options struct {
	Project *config.Project
	Log     log.Log

	Cache       cache.Cache
	Metrics     *observability.Metrics
	OTelMetrics *observability.OTelMetrics
	History     HistoryRecorder
	Publisher   Publisher
	Tracer      trace.Tracer

	// RuleSets and Reporters default to the built-in registries
	RuleSets  *linter.Registry
	Reporters *reporter.Registry

	// Stdout receives reporters configured without an output file
	Stdout io.Writer
}

func (o *Options) logger() log.Log {
	if o.Log == nil {
		return log.Discard()
	}
	return o.Log
}

func (o *Options) ruleSets() *linter.Registry {
	if o.RuleSets == nil {
		o.RuleSets = rules.DefaultRegistry()
	}
	return o.RuleSets
}

func (o *Options) reporters() *reporter.Registry {
	if o.Reporters == nil {
		o.Reporters = reporter.DefaultRegistry()
	}
	return o.Reporters
}

func (o *Options) tracer() trace.Tracer {
	if o.Tracer == nil {
		return observability.Tracer()
	}
	return o.Tracer
}

// walker returns nil when the goal has nothing to do: the project is missing,
// skipped or none of its roots exists
func (o *Options) walker() (*source.Walker, error) {
	p := o.Project
	if p == nil || p.Skip {
		return nil, nil
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	w, err := source.NewWalker(p.BaseDir, p.Includes, p.Excludes)
	if err != nil {
		return nil, err
	}
	if !w.AnyExists(p.Roots()) {
		return nil, nil
	}
	return w, nil
}

// execute runs the pipeline for goal. It returns a nil Outcome, without
// logging anything, when there is nothing to do.
func (o *Options) execute(ctx context.Context, goal Goal) (*Outcome, error) {
	started := time.Now()

	w, err := o.walker()
	if err != nil {
		o.recordRun(goal, observability.StatusError, started)
		return nil, err
	}
	if w == nil {
		o.recordRun(goal, observability.StatusSkipped, started)
		return nil, nil
	}

	enc, err := sourceEncoding(o.Project.Encoding)
	if err != nil {
		o.recordRun(goal, observability.StatusError, started)
		return nil, err
	}

	l := o.logger()
	out, closeReporters, err := o.openReporters(goal, l)
	if err != nil {
		o.recordRun(goal, observability.StatusError, started)
		return nil, err
	}

	r := &runner{
		goal:    goal,
		log:     l,
		walker:  w,
		android: o.Project.Android,
		enc:     enc,
		limit:   concurrency(o.Project.Concurrency),
		out:     out,
		opts:    o,
		tracer:  o.tracer(),
	}

	outcome := &Outcome{
		RunID:     uuid.NewString(),
		Goal:      goal,
		StartedAt: started,
	}
	runErr := r.run(ctx, outcome)
	closeErr := closeReporters()
	outcome.Duration = time.Since(started)

	if err := errors.Join(runErr, closeErr); err != nil {
		o.recordRun(goal, observability.StatusError, started)
		return nil, err
	}
	return outcome, nil
}

// openReporters returns the goal's maven reporter together with the
// configured reporters, and a function finishing and closing them all
func (o *Options) openReporters(goal Goal, l log.Log) (reporter.Reporter, func() error, error) {
	p := o.Project
	registry := o.reporters()

	mavenVerbose := p.Verbose
	var (
		configured []reporter.Reporter
		closers    []func() error
	)
	closeAll := func() error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c())
		}
		return errors.Join(errs...)
	}

	for _, rc := range p.Reporters {
		if rc.Name == reporter.KindMaven.String() {
			mavenVerbose = mavenVerbose || rc.Verbose
			continue
		}
		rep, closeFn, err := registry.Open(rc.Name, p.Resolve(rc.Output), reporter.Options{
			Verbose:     p.Verbose || rc.Verbose,
			GroupByFile: rc.GroupByFile,
			Stdout:      o.Stdout,
		})
		if err != nil {
			return nil, nil, errors.Join(err, closeAll())
		}
		configured = append(configured, rep)
		closers = append(closers, closeFn)
	}

	multi := reporter.NewMulti(mavenReporter(goal, l, mavenVerbose))
	for _, rep := range configured {
		multi.Add(rep)
	}

	return multi, func() error {
		return errors.Join(multi.AfterAll(), closeAll())
	}, nil
}

// mavenReporter streams violations to the log: at debug for report, at error
// for check. The format goal logs corrected violations at debug.
func mavenReporter(goal Goal, l log.Log, verbose bool) reporter.Reporter {
	at := func(level log.Level) reporter.Reporter {
		return reporter.NewMaven(nil, reporter.Options{Verbose: verbose, Log: l, Level: level})
	}

	switch goal {
	case GoalCheck:
		return at(log.LevelError)
	case GoalFormat:
		return &split{corrected: at(log.LevelDebug), remaining: at(log.LevelError)}
	default:
		return at(log.LevelDebug)
	}
}

// split routes corrected and remaining violations to different reporters
type split struct {
	corrected reporter.Reporter
	remaining reporter.Reporter
}

func (s *split) OnLintError(file string, v linter.Violation, corrected bool) {
	if corrected {
		s.corrected.OnLintError(file, v, corrected)
		return
	}
	s.remaining.OnLintError(file, v, corrected)
}

func (s *split) AfterFile(file string) {
	s.corrected.AfterFile(file)
	s.remaining.AfterFile(file)
}

func (s *split) AfterAll() error {
	return errors.Join(s.corrected.AfterAll(), s.remaining.AfterAll())
}

// finish records a successful run in the history store and the metrics.
// Failures of these optional sinks are logged as warnings and never fail the goal.
func (o *Options) finish(ctx context.Context, outcome *Outcome) {
	l := o.logger()

	if o.History != nil {
		if err := o.History.Record(ctx, historyRun(o.Project.BaseDir, outcome)); err != nil {
			l.Warn(fmt.Sprintf("Failed to record run history: %v", err))
		}
	}

	status := observability.StatusSuccess
	if outcome.Violations() > 0 {
		status = observability.StatusViolations
	}
	o.recordRun(outcome.Goal, status, outcome.StartedAt)

	if o.Metrics != nil && o.Project.MetricsFile != "" {
		if err := o.Metrics.WriteTextfile(o.Project.Resolve(o.Project.MetricsFile)); err != nil {
			l.Warn(fmt.Sprintf("Failed to write metrics: %v", err))
		}
	}
}

func (o *Options) recordRun(goal Goal, status string, started time.Time) {
	if o.Metrics != nil {
		o.Metrics.RecordRun(string(goal), status, time.Since(started))
	}
}

func historyRun(baseDir string, outcome *Outcome) *history.Run {
	run := &history.Run{
		ID:        outcome.RunID,
		Goal:      string(outcome.Goal),
		BaseDir:   baseDir,
		StartedAt: outcome.StartedAt,
		Duration:  outcome.Duration,
		Files:     len(outcome.Results),
	}
	for _, result := range outcome.Results {
		for _, v := range result.Violations {
			if v.Corrected {
				continue
			}
			run.Details = append(run.Details, history.Violation{
				File:    result.FilePath,
				Line:    v.Line,
				Column:  v.Column,
				Rule:    v.Rule,
				Message: v.Message,
			})
		}
	}
	run.Violations = len(run.Details)
	return run
}
