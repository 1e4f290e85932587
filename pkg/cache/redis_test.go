package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	c := NewRedisWithClient(client, time.Hour)
	t.Cleanup(func() { c.Close() })

	return c, mr
}

func TestRedisCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	_, err := c.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "abc", sampleViolations()))

	assert.True(t, mr.Exists("ktlint:abc"))
	assert.Equal(t, time.Hour, mr.TTL("ktlint:abc"))

	got, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "no-semi", got[0].Rule)
	assert.Equal(t, 29, got[0].Line)
	assert.Equal(t, 39, got[0].Column)
	assert.Nil(t, got[0].SuggestedFix)
}

func TestRedisCache_EmptyResultIsAHit(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	require.NoError(t, c.Set(ctx, "clean", nil))

	value, err := mr.Get("ktlint:clean")
	require.NoError(t, err)
	assert.Equal(t, "[]", value)

	got, err := c.Get(ctx, "clean")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisCache_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	require.NoError(t, mr.Set("ktlint:bad", "{not json"))

	_, err := c.Get(ctx, "bad")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.False(t, mr.Exists("ktlint:bad"), "corrupt entries are deleted")
}

func TestRedisCache_Stats(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	require.NoError(t, mr.Set("other:key", "x"))
	require.NoError(t, c.Set(ctx, "a", nil))
	require.NoError(t, c.Set(ctx, "b", nil))

	_, _ = c.Get(ctx, "a")
	_, _ = c.Get(ctx, "missing")

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.ItemCount)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestRedisCache_Unavailable(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)
	mr.Close()

	_, err := c.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrCacheUnavailable)
	assert.ErrorIs(t, c.Set(ctx, "abc", nil), ErrCacheUnavailable)
}

func TestNewRedis(t *testing.T) {
	ctx := context.Background()

	t.Run("connects", func(t *testing.T) {
		mr := miniredis.RunT(t)

		c, err := NewRedis(ctx, "redis://"+mr.Addr(), time.Minute)
		require.NoError(t, err)
		defer c.Close()

		assert.NotNil(t, c.Client())
	})

	t.Run("invalid url", func(t *testing.T) {
		_, err := NewRedis(ctx, "http://localhost", time.Minute)
		assert.Error(t, err)
	})

	t.Run("unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := NewRedis(ctx, "redis://"+addr, time.Minute)
		assert.ErrorIs(t, err, ErrCacheUnavailable)
	})
}
