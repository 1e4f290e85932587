package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/platinummonkey/ktlint-report/pkg/linter"
)

// KeyPrefix namespaces every redis key written by the cache
const KeyPrefix = "ktlint:"

// RedisCache shares lint results between runs through redis
type RedisCache struct {
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics
}

// NewRedis connects to the redis server at url (redis://[:password@]host:port/db)
func NewRedis(ctx context.Context, url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolTimeout = 4 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: failed to connect to redis: %v", ErrCacheUnavailable, err)
	}

	return NewRedisWithClient(client, ttl), nil
}

// NewRedisWithClient wraps an existing client
func NewRedisWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client:  client,
		ttl:     ttl,
		metrics: newMetrics(),
	}
}

// Get retrieves cached violations
func (c *RedisCache) Get(ctx context.Context, key string) ([]linter.Violation, error) {
	if key == "" {
		return nil, ErrInvalidCacheKey
	}

	data, err := c.client.Get(ctx, KeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.metrics.recordMiss()
		return nil, ErrCacheMiss
	} else if err != nil {
		return nil, fmt.Errorf("%w: redis get failed: %v", ErrCacheUnavailable, err)
	}

	var violations []linter.Violation
	if err := json.Unmarshal(data, &violations); err != nil {
		// Drop corrupt entries so the next run rewrites them
		c.client.Del(ctx, KeyPrefix+key)
		c.metrics.recordMiss()
		return nil, ErrCacheMiss
	}

	c.metrics.recordHit()
	return violations, nil
}

// Set stores violations under key
func (c *RedisCache) Set(ctx context.Context, key string, violations []linter.Violation) error {
	if key == "" {
		return ErrInvalidCacheKey
	}
	if violations == nil {
		violations = []linter.Violation{}
	}

	data, err := json.Marshal(violations)
	if err != nil {
		return fmt.Errorf("failed to marshal violations: %w", err)
	}

	if err := c.client.Set(ctx, KeyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: redis set failed: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// Stats returns cache statistics. ItemCount is the number of keys under KeyPrefix.
func (c *RedisCache) Stats(ctx context.Context) (*Stats, error) {
	var items int64
	iter := c.client.Scan(ctx, 0, KeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		items++
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: scan failed: %v", ErrCacheUnavailable, err)
	}

	return c.metrics.stats(items), nil
}

// Client returns the underlying redis client for health checks
func (c *RedisCache) Client() *redis.Client {
	return c.client
}

// Close closes the redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
