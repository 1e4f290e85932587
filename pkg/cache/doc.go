// Package cache stores lint results keyed by file content and engine configuration.
//
// A result only depends on the bytes of a file and on the rules, style and mode the
// engine runs with, so the key is a hash over exactly those inputs (see Key). Unchanged
// files are never linted twice, neither within a run nor across runs when the redis
// tier is configured.
//
// Tiers:
//
//   - Memory: expirable LRU, process local
//   - Redis: shared between runs and machines, JSON encoded
//   - Tiered: Memory in front of Redis, redis failures degrade to misses
package cache
