package mojo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding"

	"github.com/platinummonkey/ktlint-report/pkg/cache"
	"github.com/platinummonkey/ktlint-report/pkg/editorconfig"
	"github.com/platinummonkey/ktlint-report/pkg/linter"
	"github.com/platinummonkey/ktlint-report/pkg/log"
	"github.com/platinummonkey/ktlint-report/pkg/observability"
	"github.com/platinummonkey/ktlint-report/pkg/reporter"
	"github.com/platinummonkey/ktlint-report/pkg/source"
)

// runner lints the roots of one project
type runner struct {
	goal      Goal
	log       log.Log
	walker    *source.Walker
	android   bool
	enc       encoding.Encoding
	limit     int
	out       reporter.Reporter
	opts      *Options
	tracer    trace.Tracer
	engine    *linter.Engine
	style     editorconfig.StyleConfig
	signature string
}

type fileResult struct {
	file       source.File
	mode       os.FileMode
	violations []linter.Violation
	// formatted is set by the format goal
	formatted *linter.FormatResult
}

// Outcome is the result of a goal execution
type Outcome struct {
	RunID     string
	Goal      Goal
	StartedAt time.Time
	Duration  time.Duration
	// Results holds one entry per checked file in walk order, paths relative to the base directory
	Results []linter.LintResult
	// Changed lists the files rewritten by the format goal
	Changed []string
}

// Summary aggregates the results
func (o *Outcome) Summary() linter.Summary {
	return linter.GenerateSummary(o.Results)
}

// Violations counts the violations left in the sources
func (o *Outcome) Violations() int {
	n := 0
	for _, r := range o.Results {
		for _, v := range r.Violations {
			if !v.Corrected {
				n++
			}
		}
	}
	return n
}

// run executes the pipeline: editorconfig, rule sets, reporters, then the
// roots in order. Results are logged strictly in walk order.
func (r *runner) run(ctx context.Context, outcome *Outcome) error {
	ctx, span := r.tracer.Start(ctx, "mojo."+string(r.goal), trace.WithAttributes(
		attribute.String("ktlint.base_dir", r.walker.BaseDir),
	))
	defer span.End()

	ec, err := editorconfig.Load(r.walker.BaseDir)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to load editorconfig: %w", err)
	}
	ec.LogTo(r.log)
	r.style = ec.Style

	sets := r.opts.ruleSets().Resolve(r.opts.Project.Experimental, r.log)
	r.opts.reporters().Discover(r.log)

	r.engine = linter.NewEngine(sets, &linter.Config{
		Android:       r.android,
		DisabledRules: r.opts.Project.DisabledRules,
	})
	r.signature = r.engine.Signature(linter.NewFile("", nil, r.style, r.android))

	err = r.walker.Walk(r.opts.Project.Roots(), r.log, func(root string, files []source.File) error {
		results, err := r.lintRoot(ctx, files)
		if err != nil {
			return err
		}
		return r.emit(results, outcome)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(
		attribute.Int("ktlint.files", len(outcome.Results)),
		attribute.Int("ktlint.violations", outcome.Violations()),
	)
	return nil
}

// lintRoot lints the files of one root concurrently, keeping walk order
func (r *runner) lintRoot(ctx context.Context, files []source.File) ([]fileResult, error) {
	results := make([]fileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)
	for i, f := range files {
		g.Go(func() error {
			res, err := r.lintFile(ctx, f)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func (r *runner) lintFile(ctx context.Context, f source.File) (_ fileResult, err error) {
	ctx, span := r.tracer.Start(ctx, "lint.file", trace.WithAttributes(
		attribute.String("ktlint.file", f.Rel),
	))
	defer span.End()
	defer func() {
		if perr := observability.MustRecover(r.log, recover()); perr != nil {
			span.RecordError(perr)
			err = fmt.Errorf("rule panicked on %s: %w", f.Rel, perr)
		}
	}()

	start := time.Now()
	res := fileResult{file: f}

	info, err := os.Stat(f.Abs)
	if err != nil {
		span.RecordError(err)
		return res, fmt.Errorf("failed to stat %s: %w", f.Rel, err)
	}
	res.mode = info.Mode().Perm()

	raw, err := os.ReadFile(f.Abs)
	if err != nil {
		span.RecordError(err)
		return res, fmt.Errorf("failed to read %s: %w", f.Rel, err)
	}
	content, err := decode(r.enc, raw)
	if err != nil {
		span.RecordError(err)
		return res, fmt.Errorf("failed to decode %s: %w", f.Rel, err)
	}

	file := linter.NewFile(f.Rel, content, r.style, r.android)
	if r.goal == GoalFormat {
		formatted, err := r.engine.Format(ctx, file)
		if err != nil {
			span.RecordError(err)
			return res, err
		}
		res.formatted = &formatted
		res.violations = formatted.Violations
	} else {
		res.violations, err = r.cachedLint(ctx, span, file)
		if err != nil {
			span.RecordError(err)
			return res, err
		}
	}

	span.SetAttributes(attribute.Int("ktlint.violations", len(res.violations)))
	r.recordFile(ctx, time.Since(start), res.violations)
	return res, nil
}

// cachedLint serves a file's violations from the cache when its content and
// the engine signature are unchanged. Cache failures degrade to linting.
func (r *runner) cachedLint(ctx context.Context, span trace.Span, file *linter.File) ([]linter.Violation, error) {
	c := r.opts.Cache
	if c == nil {
		result, err := r.engine.Lint(ctx, file)
		return result.Violations, err
	}

	key := cache.Key(file.Content, r.signature)
	violations, err := c.Get(ctx, key)
	if err == nil {
		r.recordCache(ctx, true)
		span.SetAttributes(attribute.Bool("ktlint.cache_hit", true))
		return violations, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		span.RecordError(err)
	}
	r.recordCache(ctx, false)

	result, err := r.engine.Lint(ctx, file)
	if err != nil {
		return nil, err
	}
	if err := c.Set(ctx, key, result.Violations); err != nil {
		span.RecordError(err)
	}
	return result.Violations, nil
}

// emit logs and reports the results of one root, then writes formatted files
func (r *runner) emit(results []fileResult, outcome *Outcome) error {
	for _, res := range results {
		r.log.Debug("checking: " + res.file.Rel)
		for _, v := range res.violations {
			r.out.OnLintError(res.file.Rel, v, v.Corrected)
		}
		r.out.AfterFile(res.file.Rel)

		outcome.Results = append(outcome.Results, linter.LintResult{
			FilePath:   res.file.Rel,
			Violations: res.violations,
		})

		if res.formatted == nil || !res.formatted.Changed {
			continue
		}
		data, err := encode(r.enc, res.formatted.Content)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", res.file.Rel, err)
		}
		if err := os.WriteFile(res.file.Abs, data, res.mode); err != nil {
			return fmt.Errorf("failed to write %s: %w", res.file.Rel, err)
		}
		outcome.Changed = append(outcome.Changed, res.file.Rel)
	}
	return nil
}

func (r *runner) recordFile(ctx context.Context, d time.Duration, violations []linter.Violation) {
	if r.opts.Metrics == nil && r.opts.OTelMetrics == nil {
		return
	}
	rules := make([]string, 0, len(violations))
	for _, v := range violations {
		rules = append(rules, v.Rule)
	}
	if r.opts.Metrics != nil {
		r.opts.Metrics.RecordFile(d, rules)
	}
	if r.opts.OTelMetrics != nil {
		r.opts.OTelMetrics.RecordFile(ctx, d, rules)
	}
}

func (r *runner) recordCache(ctx context.Context, hit bool) {
	if r.opts.Metrics != nil {
		r.opts.Metrics.RecordCache(hit)
	}
	if r.opts.OTelMetrics != nil {
		r.opts.OTelMetrics.RecordCache(ctx, hit)
	}
}

func concurrency(n int) int {
	if n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}
