package ptero_test

import (
	"context"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/ptero/pkg/ptero"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	t.Parallel()

	cache := ptero.NewMemoryCache(10)
	ctx := context.Background()

	entry := &ptero.CacheEntry{
		Status:    200,
		Header:    map[string][]string{"Content-Type": {"application/json"}},
		Data:      []byte(`{"data":[]}`),
		ExpiresAt: time.Now().Add(time.Hour),
		ETag:      "abc123",
	}

	require.NoError(t, cache.Set(ctx, "key1", entry))

	retrieved, err := cache.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)
	assert.Equal(t, entry.ETag, retrieved.ETag)
	assert.True(t, cache.Has(ctx, "key1"))
}

func TestMemoryCache_Misses(t *testing.T) {
	t.Parallel()

	cache := ptero.NewMemoryCache(10)
	ctx := context.Background()

	_, err := cache.Get(ctx, "nonexistent")
	require.ErrorIs(t, err, ptero.ErrCacheKeyNotFound)
	assert.Contains(t, err.Error(), "key not found")

	require.NoError(t, cache.Set(ctx, "old", &ptero.CacheEntry{ExpiresAt: time.Now().Add(-time.Hour)}))

	_, err = cache.Get(ctx, "old")
	require.ErrorIs(t, err, ptero.ErrCacheEntryExpired)
	assert.False(t, cache.Has(ctx, "old"))
	assert.Equal(t, 1, cache.Len())

	cache.Cleanup()
	assert.Zero(t, cache.Len())
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	t.Parallel()

	cache := ptero.NewMemoryCache(10)
	ctx := context.Background()

	for i := range 3 {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("k%d", i), &ptero.CacheEntry{ExpiresAt: time.Now().Add(time.Hour)}))
	}

	require.NoError(t, cache.Delete(ctx, "k0"))
	assert.False(t, cache.Has(ctx, "k0"))
	assert.Equal(t, 2, cache.Len())

	require.NoError(t, cache.Clear(ctx))
	assert.Zero(t, cache.Len())
}

func TestMemoryCache_EvictsClosestToExpiry(t *testing.T) {
	t.Parallel()

	cache := ptero.NewMemoryCache(2)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, cache.Set(ctx, "soon", &ptero.CacheEntry{ExpiresAt: now.Add(time.Minute)}))
	require.NoError(t, cache.Set(ctx, "later", &ptero.CacheEntry{ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, cache.Set(ctx, "soon", &ptero.CacheEntry{ExpiresAt: now.Add(2 * time.Minute)}))
	assert.Equal(t, 2, cache.Len(), "overwriting does not evict")

	require.NoError(t, cache.Set(ctx, "new", &ptero.CacheEntry{ExpiresAt: now.Add(time.Hour)}))
	assert.Equal(t, 2, cache.Len())
	assert.False(t, cache.Has(ctx, "soon"))
	assert.True(t, cache.Has(ctx, "later"))
	assert.True(t, cache.Has(ctx, "new"))
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	cache := ptero.NewNoOpCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", &ptero.CacheEntry{}))

	_, err := cache.Get(ctx, "k")
	require.ErrorIs(t, err, ptero.ErrCacheDisabled)
	assert.False(t, cache.Has(ctx, "k"))
	require.NoError(t, cache.Delete(ctx, "k"))
	require.NoError(t, cache.Clear(ctx))
}

func TestCacheKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "GET:api/client", ptero.CacheKey("GET", "api/client", nil))
	assert.Equal(t,
		ptero.CacheKey("GET", "api/client", url.Values{"b": {"2"}, "a": {"1"}}),
		ptero.CacheKey("GET", "api/client", url.Values{"a": {"1"}, "b": {"2"}}),
	)
	assert.Equal(t, "GET:api/client:page=2", ptero.CacheKey("GET", "api/client", url.Values{"page": {"2"}}))
}

func TestCacheStats_GetHitRate(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.0, ptero.CacheStats{}.GetHitRate(), 0)
	assert.InDelta(t, 0.75, ptero.CacheStats{Hits: 3, Misses: 1}.GetHitRate(), 0.0001)
}

func TestCacheEntry_Expired(t *testing.T) {
	t.Parallel()

	assert.False(t, (&ptero.CacheEntry{}).Expired(), "zero expiry never expires")
	assert.True(t, (&ptero.CacheEntry{ExpiresAt: time.Now().Add(-time.Second)}).Expired())
	assert.False(t, (&ptero.CacheEntry{ExpiresAt: time.Now().Add(time.Second)}).Expired())
}

func TestNewCacheFromConfig(t *testing.T) {
	t.Parallel()

	memory, err := ptero.NewCacheFromConfig(ptero.CacheConfig{})
	require.NoError(t, err)
	assert.IsType(t, &ptero.MemoryCache{}, memory)

	none, err := ptero.NewCacheFromConfig(ptero.CacheConfig{Type: ptero.CacheTypeNone})
	require.NoError(t, err)
	assert.IsType(t, &ptero.NoOpCache{}, none)

	_, err = ptero.NewCacheFromConfig(ptero.CacheConfig{Type: ptero.CacheTypeNATS})
	require.ErrorIs(t, err, ptero.ErrNATSConfigRequired)

	_, err = ptero.NewCacheFromConfig(ptero.CacheConfig{Type: "redis"})
	require.ErrorIs(t, err, ptero.ErrUnsupportedCacheType)
}
