package permcache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/accesskit/pkg/permcache"
	"github.com/dmitrymomot/accesskit/pkg/permission"
)

func perms(values ...string) []permission.Permission {
	out := make([]permission.Permission, len(values))
	for i, v := range values {
		out[i] = permission.Permission(v)
	}
	return out
}

func TestMemory_GetFill(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cache := permcache.NewMemory(64)

	_, ok := cache.Get(ctx, "t1", "u1")
	assert.False(t, ok)

	cache.Fill(ctx, "t1", "u1", perms("invoice:read"))

	got, ok := cache.Get(ctx, "t1", "u1")
	require.True(t, ok)
	assert.Equal(t, perms("invoice:read"), got)
}

func TestMemory_FillReplacesWholesale(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cache := permcache.NewMemory(64)
	cache.Fill(ctx, "t1", "u1", perms("invoice:read", "invoice:write"))
	cache.Fill(ctx, "t1", "u1", perms("report:export"))

	got, ok := cache.Get(ctx, "t1", "u1")
	require.True(t, ok)
	assert.Equal(t, perms("report:export"), got)
	assert.Equal(t, 1, cache.Len())
}

func TestMemory_LRUEviction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// A single shard preserves strict global LRU order for the test.
	cache := permcache.NewMemory(2, permcache.WithShards(1))

	cache.Fill(ctx, "t1", "u_a", perms("invoice:read"))
	cache.Fill(ctx, "t1", "u_b", perms("invoice:write"))

	// Touch u_a so u_b becomes the eviction candidate.
	_, ok := cache.Get(ctx, "t1", "u_a")
	require.True(t, ok)

	cache.Fill(ctx, "t1", "u_c", perms("invoice:delete"))

	_, ok = cache.Get(ctx, "t1", "u_b")
	assert.False(t, ok)
	_, ok = cache.Get(ctx, "t1", "u_a")
	assert.True(t, ok)
	_, ok = cache.Get(ctx, "t1", "u_c")
	assert.True(t, ok)
}

func TestMemory_TTLExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cache := permcache.NewMemory(8, permcache.WithTTL(10*time.Millisecond))
	cache.Fill(ctx, "t1", "u1", perms("invoice:read"))

	_, ok := cache.Get(ctx, "t1", "u1")
	require.True(t, ok)

	time.Sleep(25 * time.Millisecond)

	_, ok = cache.Get(ctx, "t1", "u1")
	assert.False(t, ok)
	// The expired entry was removed, not just hidden.
	assert.Zero(t, cache.Len())
}

func TestMemory_TTLMeasuredFromInsertion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cache := permcache.NewMemory(8, permcache.WithTTL(100*time.Millisecond))
	cache.Fill(ctx, "t1", "u1", perms("invoice:read"))

	// Reads refresh LRU position but not the TTL clock.
	time.Sleep(40 * time.Millisecond)
	_, ok := cache.Get(ctx, "t1", "u1")
	require.True(t, ok)

	time.Sleep(80 * time.Millisecond)
	_, ok = cache.Get(ctx, "t1", "u1")
	assert.False(t, ok)
}

func TestMemory_Invalidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	seed := func() *permcache.Memory {
		cache := permcache.NewMemory(64)
		cache.Fill(ctx, "t1", "u1", perms("invoice:read"))
		cache.Fill(ctx, "t1", "u2", perms("invoice:write"))
		cache.Fill(ctx, "t2", "u1", perms("report:export"))
		return cache
	}

	t.Run("principal", func(t *testing.T) {
		t.Parallel()

		cache := seed()
		cache.InvalidatePrincipal(ctx, "t1", "u1")

		_, ok := cache.Get(ctx, "t1", "u1")
		assert.False(t, ok)
		_, ok = cache.Get(ctx, "t1", "u2")
		assert.True(t, ok)
		_, ok = cache.Get(ctx, "t2", "u1")
		assert.True(t, ok)
	})

	t.Run("tenant", func(t *testing.T) {
		t.Parallel()

		cache := seed()
		cache.InvalidateTenant(ctx, "t1")

		_, ok := cache.Get(ctx, "t1", "u1")
		assert.False(t, ok)
		_, ok = cache.Get(ctx, "t1", "u2")
		assert.False(t, ok)
		_, ok = cache.Get(ctx, "t2", "u1")
		assert.True(t, ok)
	})

	t.Run("role drops the whole tenant", func(t *testing.T) {
		t.Parallel()

		cache := seed()
		cache.InvalidateRole(ctx, "t1", "r1")

		_, ok := cache.Get(ctx, "t1", "u1")
		assert.False(t, ok)
		_, ok = cache.Get(ctx, "t1", "u2")
		assert.False(t, ok)
		_, ok = cache.Get(ctx, "t2", "u1")
		assert.True(t, ok)
	})
}

func TestMemory_ZeroCapacityDisablesCaching(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cache := permcache.NewMemory(0)
	cache.Fill(ctx, "t1", "u1", perms("invoice:read"))

	_, ok := cache.Get(ctx, "t1", "u1")
	assert.False(t, ok)
	assert.Zero(t, cache.Len())
}

func TestMemory_ShardOptionRoundsUp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// 5 rounds up to 8 shards; behavior stays correct either way.
	cache := permcache.NewMemory(64, permcache.WithShards(5))

	for _, tenant := range []permission.TenantID{"t1", "t2", "t3"} {
		cache.Fill(ctx, tenant, "u1", perms("invoice:read"))
	}
	assert.Equal(t, 3, cache.Len())
}
