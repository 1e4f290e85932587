package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/platinummonkey/ktlint-report/pkg/history"
	"github.com/platinummonkey/ktlint-report/pkg/log"
	"github.com/platinummonkey/ktlint-report/pkg/observability"
)

// DefaultAddr is the listen address used when none is configured
const DefaultAddr = ":8080"

// RunStore reads the run history
type RunStore interface {
	Recent(ctx context.Context, limit int) ([]history.Run, error)
	ViolationsOf(ctx context.Context, runID string) ([]history.Violation, error)
}

// Config configures the server
type Config struct {
	Addr string
	// ReportDir is served under /reports/
	ReportDir string
	// SiteReport is the path of the site report below ReportDir that / redirects to
	SiteReport string
}

// Server serves reports, history, metrics and health endpoints
type Server struct {
	config  Config
	log     log.Log
	router  *mux.Router
	metrics *observability.Metrics
	health  *observability.HealthChecker
	runs    RunStore
}

// New creates a server. metrics, health and runs may be nil; their routes are
// then not registered.
func New(config Config, l log.Log, metrics *observability.Metrics, health *observability.HealthChecker, runs RunStore) *Server {
	if config.Addr == "" {
		config.Addr = DefaultAddr
	}
	if l == nil {
		l = log.Discard()
	}

	s := &Server{
		config:  config,
		log:     l,
		router:  mux.NewRouter(),
		metrics: metrics,
		health:  health,
		runs:    runs,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	if s.health != nil {
		s.router.HandleFunc("/healthz", s.health.Liveness).Methods("GET")
		s.router.HandleFunc("/readyz", s.health.Readiness).Methods("GET")
	}
	if s.metrics != nil {
		s.router.Handle("/metrics", observability.MetricsHandler(s.metrics.Registry())).Methods("GET")
	}
	if s.runs != nil {
		s.router.HandleFunc("/api/runs", s.listRuns).Methods("GET")
		s.router.HandleFunc("/api/runs/{id}/violations", s.listViolations).Methods("GET")
	}
	if s.config.ReportDir != "" {
		s.router.PathPrefix("/reports/").Handler(
			http.StripPrefix("/reports/", http.FileServer(http.Dir(s.config.ReportDir))),
		).Methods("GET", "HEAD")
		s.router.HandleFunc("/", s.index).Methods("GET")
	}
}

// Handler returns the router wrapped with recovery, logging, metrics and tracing
func (s *Server) Handler() http.Handler {
	middlewares := []func(http.Handler) http.Handler{
		recoveryMiddleware(s.log),
		loggingMiddleware(s.log),
	}
	if s.metrics != nil {
		middlewares = append(middlewares, observability.HTTPMetricsMiddleware(s.metrics))
	}

	return otelhttp.NewHandler(chain(middlewares...)(s.router), "ktlint-report",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + routeName(r)
		}),
	)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Handler().ServeHTTP(w, r)
}

// HTTPServer returns an http.Server listening on the configured address
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	target := "/reports/"
	if s.config.SiteReport != "" {
		target += s.config.SiteReport
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 20)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
		return
	}
	if limit <= 0 || limit > 500 {
		writeErrorMessage(w, http.StatusBadRequest, "limit must be between 1 and 500")
		return
	}

	runs, err := s.runs.Recent(r.Context(), limit)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) listViolations(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	violations, err := s.runs.ViolationsOf(r.Context(), id)
	if errors.Is(err, history.ErrRunNotFound) {
		writeErrorMessage(w, http.StatusNotFound, err.Error())
		return
	} else if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, violations)
}

// routeName returns the matched route template, keeping span names bounded
func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}
