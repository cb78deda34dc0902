package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) Cache {
	t.Helper()
	c := NewMemoryCache(DefaultConfig(), zap.NewNop())
	t.Cleanup(func() { c.Close() })
	return c
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	value, found := c.Get(ctx, "k")
	require.True(t, found)
	assert.Equal(t, []byte("v"), value)

	_, found = c.Get(ctx, "missing")
	assert.False(t, found)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, found := c.Get(ctx, "k")
	assert.False(t, found)
}

func TestMemoryCacheDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))

	_, found := c.Get(ctx, "k")
	assert.False(t, found)
}

func TestMemoryCacheDeletePattern(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "leaderboard:global:all:25", []byte("a"), time.Minute))
	require.NoError(t, c.Set(ctx, "leaderboard:global:all:50", []byte("b"), time.Minute))
	require.NoError(t, c.Set(ctx, "leaderboard:institution:7:25", []byte("c"), time.Minute))

	require.NoError(t, c.DeletePattern(ctx, "leaderboard:global:*"))

	_, found := c.Get(ctx, "leaderboard:global:all:25")
	assert.False(t, found)
	_, found = c.Get(ctx, "leaderboard:global:all:50")
	assert.False(t, found)
	_, found = c.Get(ctx, "leaderboard:institution:7:25")
	assert.True(t, found)
}

func TestMemoryCacheStats(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	c.Get(ctx, "k")
	c.Get(ctx, "missing")

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
}
