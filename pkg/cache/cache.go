package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/platinummonkey/ktlint-report/pkg/linter"
)

// Cache stores the violations of a linted file
type Cache interface {
	// Get returns ErrCacheMiss when key is unknown
	Get(ctx context.Context, key string) ([]linter.Violation, error)
	Set(ctx context.Context, key string, violations []linter.Violation) error
	Stats(ctx context.Context) (*Stats, error)
	Close() error
}

// Stats holds cache statistics
type Stats struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	ItemCount int64   `json:"item_count"`
	HitRate   float64 `json:"hit_rate"`
}

// Config configures the memory tier
type Config struct {
	Size int
	TTL  time.Duration
}

// DefaultConfig returns the default memory cache configuration
func DefaultConfig() *Config {
	return &Config{
		Size: 4096,
		TTL:  24 * time.Hour,
	}
}

// MemoryCache is an in-memory LRU with per-entry expiry
type MemoryCache struct {
	config  *Config
	cache   *lru.LRU[string, []linter.Violation]
	metrics *metrics
}

// NewMemory creates a new memory cache
func NewMemory(config *Config) *MemoryCache {
	if config == nil {
		config = DefaultConfig()
	}

	size := config.Size
	if size < 1 {
		size = 1
	}

	return &MemoryCache{
		config:  config,
		cache:   lru.NewLRU[string, []linter.Violation](size, nil, config.TTL),
		metrics: newMetrics(),
	}
}

// Get retrieves cached violations
func (c *MemoryCache) Get(ctx context.Context, key string) ([]linter.Violation, error) {
	if key == "" {
		return nil, ErrInvalidCacheKey
	}

	violations, ok := c.cache.Get(key)
	if !ok {
		c.metrics.recordMiss()
		return nil, ErrCacheMiss
	}

	c.metrics.recordHit()
	return clone(violations), nil
}

// Set stores violations under key
func (c *MemoryCache) Set(ctx context.Context, key string, violations []linter.Violation) error {
	if key == "" {
		return ErrInvalidCacheKey
	}

	c.cache.Add(key, clone(violations))
	return nil
}

// Stats returns cache statistics
func (c *MemoryCache) Stats(ctx context.Context) (*Stats, error) {
	return c.metrics.stats(int64(c.cache.Len())), nil
}

// Close releases resources
func (c *MemoryCache) Close() error {
	c.cache.Purge()
	return nil
}

// clone copies violations without their fixes, which are never cached
func clone(violations []linter.Violation) []linter.Violation {
	out := make([]linter.Violation, len(violations))
	for i, v := range violations {
		v.SuggestedFix = nil
		out[i] = v
	}
	return out
}

// metrics tracks cache metrics
type metrics struct {
	hits   atomic.Int64
	misses atomic.Int64
}

func newMetrics() *metrics {
	return &metrics{}
}

func (m *metrics) recordHit() {
	m.hits.Add(1)
}

func (m *metrics) recordMiss() {
	m.misses.Add(1)
}

func (m *metrics) stats(items int64) *Stats {
	stats := &Stats{
		Hits:      m.hits.Load(),
		Misses:    m.misses.Load(),
		ItemCount: items,
	}

	total := stats.Hits + stats.Misses
	if total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total)
	}

	return stats
}

// Open builds the cache for the given settings: memory only, or memory in front of
// redis when redisURL is set
func Open(ctx context.Context, config *Config, redisURL string) (Cache, error) {
	memory := NewMemory(config)
	if redisURL == "" {
		return memory, nil
	}

	ttl := DefaultConfig().TTL
	if config != nil {
		ttl = config.TTL
	}

	shared, err := NewRedis(ctx, redisURL, ttl)
	if err != nil {
		return nil, err
	}
	return NewTiered(memory, shared), nil
}

// RedisClient returns the redis client behind c, or nil when c is memory only
func RedisClient(c Cache) *redis.Client {
	switch c := c.(type) {
	case *RedisCache:
		return c.Client()
	case *TieredCache:
		if client := RedisClient(c.l2); client != nil {
			return client
		}
		return RedisClient(c.l1)
	default:
		return nil
	}
}
