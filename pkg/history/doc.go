// Package history records lint runs in a SQL database so trends can be inspected
// across builds.
//
// The store works on PostgreSQL (lib/pq) and SQLite (mattn/go-sqlite3); the DSN scheme
// picks the driver:
//
//	store, err := history.Open(ctx, "postgres://ci@db/ktlint?sslmode=disable")
//	store, err := history.Open(ctx, "target/ktlint-history.db")
//
// Runs are written in a single transaction together with their violations.
package history
