package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/platinummonkey/ktlint-report/pkg/cache"
	"github.com/platinummonkey/ktlint-report/pkg/config"
	"github.com/platinummonkey/ktlint-report/pkg/history"
	"github.com/platinummonkey/ktlint-report/pkg/log"
	"github.com/platinummonkey/ktlint-report/pkg/mojo"
	"github.com/platinummonkey/ktlint-report/pkg/observability"
	"github.com/platinummonkey/ktlint-report/pkg/publish"
)

// session holds the collaborators shared by the goal runs of one command
type session struct {
	log       log.Log
	options   mojo.Options
	metrics   *observability.Metrics
	cache     cache.Cache
	history   *history.Store
	providers *observability.OTelProviders
}

// newSession builds the logger, telemetry, cache, history store and publisher
// configured for project. Optional sinks that fail to open are left out with a warning.
func newSession(ctx context.Context, cmd *cobra.Command, project *config.Project, goal mojo.Goal) (*session, error) {
	level, err := logLevel(cmd, project)
	if err != nil {
		return nil, err
	}
	logger := log.NewLogger(level)
	logger.SetOutput(cmd.ErrOrStderr())
	l := log.NewLogrus(logger).WithGoal(string(goal))

	s := &session{log: l}

	s.providers, err = observability.InitOTel(ctx, observability.OTelConfig{
		Enabled:        project.Telemetry.Enabled,
		Endpoint:       project.Telemetry.Endpoint,
		ServiceName:    project.Telemetry.ServiceName,
		ServiceVersion: getVersion(),
		Insecure:       project.Telemetry.Insecure,
	}, l)
	if err != nil {
		return nil, err
	}

	s.metrics = observability.NewMetrics(prometheus.NewRegistry())
	otelMetrics, err := observability.NewOTelMetrics()
	if err != nil {
		s.Close(ctx)
		return nil, err
	}

	s.options = mojo.Options{
		Project:     project,
		Log:         l,
		Metrics:     s.metrics,
		OTelMetrics: otelMetrics,
		Stdout:      cmd.OutOrStdout(),
	}

	if project.Cache.Enabled {
		c, err := cache.Open(ctx, &cache.Config{Size: project.Cache.Size, TTL: project.Cache.TTL}, project.Cache.RedisURL)
		if err != nil {
			l.Warn(fmt.Sprintf("Failed to open cache: %v", err))
		} else {
			s.cache = c
			s.options.Cache = c
		}
	}

	if project.History.DSN != "" {
		store, err := history.Open(ctx, historyDSN(project))
		if err != nil {
			l.Warn(fmt.Sprintf("Failed to open run history: %v", err))
		} else {
			s.history = store
			s.options.History = store
		}
	}

	if project.Publish.Bucket != "" {
		publisher, err := publish.NewS3Publisher(ctx, publish.Config{
			Bucket:       project.Publish.Bucket,
			Prefix:       project.Publish.Prefix,
			Region:       project.Publish.Region,
			Endpoint:     project.Publish.Endpoint,
			AccessKey:    project.Publish.AccessKey,
			SecretKey:    project.Publish.SecretKey,
			UsePathStyle: project.Publish.UsePathStyle,
		})
		if err != nil {
			s.Close(ctx)
			return nil, err
		}
		s.options.Publisher = publisher.WithMetrics(otelMetrics)
	}

	return s, nil
}

// historyDSN resolves a relative sqlite path against the project directory
func historyDSN(p *config.Project) string {
	driver, source := history.Driver(p.History.DSN)
	if driver != "sqlite3" || source == ":memory:" {
		return p.History.DSN
	}
	return "sqlite://" + p.Resolve(source)
}

// health returns a checker over the session's history database and redis cache
func (s *session) health() *observability.HealthChecker {
	var checker *observability.HealthChecker
	if s.history != nil {
		checker = observability.NewHealthChecker(s.history.DB(), cache.RedisClient(s.cache))
	} else {
		checker = observability.NewHealthChecker(nil, cache.RedisClient(s.cache))
	}
	return checker.WithVersion(getVersion())
}

// Close releases the cache, the history store and the telemetry providers
func (s *session) Close(ctx context.Context) error {
	var errs []error
	if s.cache != nil {
		errs = append(errs, s.cache.Close())
	}
	if s.history != nil {
		errs = append(errs, s.history.Close())
	}
	errs = append(errs, observability.ShutdownOTel(ctx, s.providers, s.log))
	return errors.Join(errs...)
}

// runGoal executes goal once with the session's collaborators
func (s *session) runGoal(ctx context.Context, goal mojo.Goal) (*mojo.Outcome, error) {
	switch goal {
	case mojo.GoalCheck:
		return mojo.NewCheck(s.options).Run(ctx)
	case mojo.GoalFormat:
		return mojo.NewFormat(s.options).Run(ctx)
	default:
		return mojo.NewReport(s.options).Run(ctx)
	}
}
