package rbac_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/accesskit/pkg/permcache"
	"github.com/dmitrymomot/accesskit/pkg/rbac"
)

func TestEngine_CacheHitSkipsStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := activeStore()
	store.AddPrincipalRole("t1", "u1", "r1")
	store.AddRolePermission("t1", "r1", "invoice:read")

	engine := rbac.New(store, rbac.WithCache(permcache.NewMemory(64)))

	for range 5 {
		decision, err := engine.Authorize(ctx, "t1", "u1", "invoice:read")
		require.NoError(t, err)
		assert.Equal(t, rbac.Allow, decision)
	}

	// One traversal on the first miss; the rest are cache hits.
	assert.Equal(t, 1, store.callCount("principal_roles"))
	assert.Equal(t, 1, store.callCount("role_permissions"))
}

func TestEngine_InvalidationObservesStoreState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := activeStore()
	store.AddPrincipalRole("t1", "u1", "r1")
	store.AddRolePermission("t1", "r1", "invoice:read")

	engine := rbac.New(store, rbac.WithCache(permcache.NewMemory(64)))

	decision, err := engine.Authorize(ctx, "t1", "u1", "invoice:write")
	require.NoError(t, err)
	assert.Equal(t, rbac.Deny, decision)

	// The store changes underneath; the cached set still denies.
	store.AddRolePermission("t1", "r1", "invoice:write")
	decision, err = engine.Authorize(ctx, "t1", "u1", "invoice:write")
	require.NoError(t, err)
	assert.Equal(t, rbac.Deny, decision)

	t.Run("invalidate tenant", func(t *testing.T) {
		engine.InvalidateTenant(ctx, "t1")
		decision, err := engine.Authorize(ctx, "t1", "u1", "invoice:write")
		require.NoError(t, err)
		assert.Equal(t, rbac.Allow, decision)
	})
}

func TestEngine_InvalidatePrincipalAndRole(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := activeStore()
	store.AddPrincipalRole("t1", "u1", "r1")
	store.AddRolePermission("t1", "r1", "invoice:read")

	engine := rbac.New(store, rbac.WithCache(permcache.NewMemory(64)))

	_, err := engine.Authorize(ctx, "t1", "u1", "invoice:read")
	require.NoError(t, err)
	require.Equal(t, 1, store.callCount("principal_roles"))

	engine.InvalidatePrincipal(ctx, "t1", "u1")
	_, err = engine.Authorize(ctx, "t1", "u1", "invoice:read")
	require.NoError(t, err)
	assert.Equal(t, 2, store.callCount("principal_roles"))

	engine.InvalidateRole(ctx, "t1", "r1")
	_, err = engine.Authorize(ctx, "t1", "u1", "invoice:read")
	require.NoError(t, err)
	assert.Equal(t, 3, store.callCount("principal_roles"))
}

func TestEngine_SharedCacheIsolatesConfigs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := activeStore()
	store.AddPrincipalRole("t1", "u1", "r1")
	store.AddRolePermission("t1", "r1", "invoice:*")

	// Two engines with different flag sets share one cache. Each must
	// treat the other's entries as misses rather than reuse a set that
	// was resolved under different rules.
	cache := permcache.NewMemory(64)
	wildcardEngine := rbac.New(store, rbac.WithWildcard(true), rbac.WithCache(cache))
	strictEngine := rbac.New(store, rbac.WithCache(cache))

	decision, err := wildcardEngine.Authorize(ctx, "t1", "u1", "invoice:read")
	require.NoError(t, err)
	assert.Equal(t, rbac.Allow, decision)

	decision, err = strictEngine.Authorize(ctx, "t1", "u1", "invoice:read")
	require.NoError(t, err)
	assert.Equal(t, rbac.Deny, decision)
}

func TestEngine_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := activeStore()
	store.AddPrincipalRole("t1", "u1", "r1")
	store.AddRoleInherit("t1", "r1", "r2")
	store.AddRoleInherit("t1", "r2", "r1")

	cache := permcache.NewMemory(64)
	engine := rbac.New(store, rbac.WithRoleHierarchy(true), rbac.WithCache(cache))

	_, err := engine.Authorize(ctx, "t1", "u1", "invoice:read")
	require.ErrorIs(t, err, rbac.ErrRoleCycle)
	assert.Zero(t, cache.Len())

	// Every retry re-resolves and fails the same way.
	_, err = engine.Authorize(ctx, "t1", "u1", "invoice:read")
	require.ErrorIs(t, err, rbac.ErrRoleCycle)
	assert.Equal(t, 2, store.callCount("principal_roles"))
}
