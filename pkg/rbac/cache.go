package rbac

import (
	"context"

	"github.com/dmitrymomot/accesskit/pkg/permission"
)

// Cache stores effective permission sets keyed by (tenant, principal).
// Implementations are shared by concurrent engine callers and must be
// safe for parallel use. Lookups and invalidations are best-effort:
// a failing cache behaves as a miss, never as an authorization error.
type Cache interface {
	// Get returns the cached permission set for the key, if present.
	Get(ctx context.Context, tenant permission.TenantID, principal permission.PrincipalID) ([]permission.Permission, bool)

	// Fill replaces the cached permission set for the key wholesale.
	// Partial sets are never published.
	Fill(ctx context.Context, tenant permission.TenantID, principal permission.PrincipalID, perms []permission.Permission)

	// InvalidatePrincipal drops the entry for one (tenant, principal) key.
	InvalidatePrincipal(ctx context.Context, tenant permission.TenantID, principal permission.PrincipalID)

	// InvalidateRole drops any entry whose computation could have
	// depended on the role. Without a reverse index this is every entry
	// under the same tenant.
	InvalidateRole(ctx context.Context, tenant permission.TenantID, role permission.RoleID)

	// InvalidateTenant drops all entries under the tenant.
	InvalidateTenant(ctx context.Context, tenant permission.TenantID)
}

// NoopCache caches nothing. It is the default when no cache is attached.
type NoopCache struct{}

func (NoopCache) Get(context.Context, permission.TenantID, permission.PrincipalID) ([]permission.Permission, bool) {
	return nil, false
}

func (NoopCache) Fill(context.Context, permission.TenantID, permission.PrincipalID, []permission.Permission) {
}

func (NoopCache) InvalidatePrincipal(context.Context, permission.TenantID, permission.PrincipalID) {}

func (NoopCache) InvalidateRole(context.Context, permission.TenantID, permission.RoleID) {}

func (NoopCache) InvalidateTenant(context.Context, permission.TenantID) {}
