package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTieredCache_BackfillsL1(t *testing.T) {
	ctx := context.Background()
	l1 := NewMemory(nil)
	l2, _ := newTestRedis(t)
	c := NewTiered(l1, l2)

	require.NoError(t, l2.Set(ctx, "k", sampleViolations()))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	fromL1, err := l1.Get(ctx, "k")
	require.NoError(t, err)
	assert.Len(t, fromL1, 2)
}

func TestTieredCache_SetWritesBothLevels(t *testing.T) {
	ctx := context.Background()
	l1 := NewMemory(nil)
	l2, mr := newTestRedis(t)
	c := NewTiered(l1, l2)

	require.NoError(t, c.Set(ctx, "k", sampleViolations()))

	_, err := l1.Get(ctx, "k")
	assert.NoError(t, err)
	assert.True(t, mr.Exists("ktlint:k"))
}

func TestTieredCache_L2FailureIsAMiss(t *testing.T) {
	ctx := context.Background()
	l1 := NewMemory(nil)
	l2, mr := newTestRedis(t)
	c := NewTiered(l1, l2)
	mr.Close()

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	err = c.Set(ctx, "k", nil)
	assert.ErrorIs(t, err, ErrCacheUnavailable)

	// L1 was still updated
	_, err = c.Get(ctx, "k")
	assert.NoError(t, err)
}

func TestOpen_WithRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := Open(context.Background(), DefaultConfig(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer c.Close()

	assert.IsType(t, &TieredCache{}, c)
	assert.NotNil(t, RedisClient(c))
}
