package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// ErrRunNotFound is returned when a run id is unknown
var ErrRunNotFound = errors.New("run not found")

// Run is one execution of a goal
type Run struct {
	ID         string        `json:"id"`
	Goal       string        `json:"goal"`
	BaseDir    string        `json:"base_dir"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
	Files      int           `json:"files"`
	Violations int           `json:"violations"`

	// Details are written by Record and only loaded by ViolationsOf
	Details []Violation `json:"details,omitempty"`
}

// Violation is a violation found during a run
type Violation struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS ktlint_runs (
		id VARCHAR(36) PRIMARY KEY,
		goal VARCHAR(32) NOT NULL,
		base_dir TEXT NOT NULL,
		started_at TIMESTAMP NOT NULL,
		duration_ms BIGINT NOT NULL,
		files INTEGER NOT NULL,
		violations INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ktlint_violations (
		run_id VARCHAR(36) NOT NULL REFERENCES ktlint_runs(id) ON DELETE CASCADE,
		file TEXT NOT NULL,
		line INTEGER NOT NULL,
		col INTEGER NOT NULL,
		rule VARCHAR(128) NOT NULL,
		message TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ktlint_runs_started_at ON ktlint_runs (started_at)`,
	`CREATE INDEX IF NOT EXISTS idx_ktlint_violations_run_id ON ktlint_violations (run_id)`,
}

// Store persists runs
type Store struct {
	db     *sql.DB
	driver string
}

// Driver returns the database/sql driver name for dsn and the data source to open
func Driver(dsn string) (string, string) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return "postgres", dsn
	case strings.HasPrefix(dsn, "sqlite://"):
		return "sqlite3", strings.TrimPrefix(dsn, "sqlite://")
	default:
		return "sqlite3", dsn
	}
}

// Open connects to the database behind dsn and creates the schema
func Open(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("history DSN is required")
	}

	driver, source := Driver(dsn)
	if driver == "sqlite3" && source != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(source), 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}
	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if driver == "sqlite3" {
		// SQLite allows a single writer
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(4)
		db.SetConnMaxIdleTime(10 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	s := &Store{db: db, driver: driver}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// New wraps an open database. The schema is expected to exist.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the tables if they do not exist
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate history schema: %w", err)
		}
	}
	return nil
}

// Record stores a run and its details in one transaction. An empty ID is filled in.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	runQuery := `
		INSERT INTO ktlint_runs (id, goal, base_dir, started_at, duration_ms, files, violations)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.ExecContext(ctx, runQuery,
		run.ID,
		run.Goal,
		run.BaseDir,
		run.StartedAt.UTC(),
		run.Duration.Milliseconds(),
		run.Files,
		run.Violations,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	violationQuery := `
		INSERT INTO ktlint_violations (run_id, file, line, col, rule, message)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, v := range run.Details {
		if _, err := tx.ExecContext(ctx, violationQuery, run.ID, v.File, v.Line, v.Column, v.Rule, v.Message); err != nil {
			return fmt.Errorf("failed to insert violation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}

	return nil
}

// Recent returns up to limit runs, newest first, without details
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, goal, base_dir, started_at, duration_ms, files, violations
		FROM ktlint_runs
		ORDER BY started_at DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		var run Run
		var durationMS int64
		if err := rows.Scan(&run.ID, &run.Goal, &run.BaseDir, &run.StartedAt, &durationMS, &run.Files, &run.Violations); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}

	return runs, nil
}

// ViolationsOf returns the violations recorded for a run
func (s *Store) ViolationsOf(ctx context.Context, runID string) ([]Violation, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM ktlint_runs WHERE id = $1", runID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	} else if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	query := `
		SELECT file, line, col, rule, message
		FROM ktlint_violations
		WHERE run_id = $1
		ORDER BY file, line, col, rule
	`

	rows, err := s.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query violations: %w", err)
	}
	defer rows.Close()

	violations := make([]Violation, 0)
	for rows.Next() {
		var v Violation
		if err := rows.Scan(&v.File, &v.Line, &v.Column, &v.Rule, &v.Message); err != nil {
			return nil, fmt.Errorf("failed to scan violation: %w", err)
		}
		violations = append(violations, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read violations: %w", err)
	}

	return violations, nil
}

// DB returns the underlying database for health checks
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}
