package cache

import (
	"context"
	"errors"

	"github.com/platinummonkey/ktlint-report/pkg/linter"
)

// TieredCache puts a fast local cache in front of a shared one
type TieredCache struct {
	l1 Cache
	l2 Cache
}

// NewTiered creates a two-level cache
func NewTiered(l1, l2 Cache) *TieredCache {
	return &TieredCache{l1: l1, l2: l2}
}

// Get checks L1, then L2. L2 hits are copied into L1 and L2 failures count as misses.
func (c *TieredCache) Get(ctx context.Context, key string) ([]linter.Violation, error) {
	violations, err := c.l1.Get(ctx, key)
	if err == nil {
		return violations, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		return nil, err
	}

	violations, err = c.l2.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrInvalidCacheKey) {
			return nil, err
		}
		return nil, ErrCacheMiss
	}

	c.l1.Set(ctx, key, violations)
	return violations, nil
}

// Set writes through both levels; an L2 failure is returned after L1 was updated
func (c *TieredCache) Set(ctx context.Context, key string, violations []linter.Violation) error {
	if err := c.l1.Set(ctx, key, violations); err != nil {
		return err
	}
	return c.l2.Set(ctx, key, violations)
}

// Stats returns the L1 statistics
func (c *TieredCache) Stats(ctx context.Context) (*Stats, error) {
	return c.l1.Stats(ctx)
}

// Close closes both levels
func (c *TieredCache) Close() error {
	return errors.Join(c.l1.Close(), c.l2.Close())
}
