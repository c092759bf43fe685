package rbac

import (
	"context"

	"github.com/dmitrymomot/accesskit/pkg/permission"
)

// TenantStore answers tenant and principal lifecycle questions.
type TenantStore interface {
	// TenantActive reports whether a tenant is active.
	TenantActive(ctx context.Context, tenant permission.TenantID) (bool, error)

	// PrincipalActive reports whether a principal is active within a tenant.
	PrincipalActive(ctx context.Context, tenant permission.TenantID, principal permission.PrincipalID) (bool, error)
}

// RoleStore provides tenant-scoped role data.
type RoleStore interface {
	// PrincipalRoles returns the roles directly assigned to a principal
	// within a tenant.
	PrincipalRoles(ctx context.Context, tenant permission.TenantID, principal permission.PrincipalID) ([]permission.RoleID, error)

	// RolePermissions returns the permissions directly bound to a role.
	RolePermissions(ctx context.Context, tenant permission.TenantID, role permission.RoleID) ([]permission.Permission, error)

	// RoleInherits returns the direct parent roles used for inheritance
	// traversal. It is never called while role hierarchy is disabled.
	RoleInherits(ctx context.Context, tenant permission.TenantID, role permission.RoleID) ([]permission.RoleID, error)
}

// GlobalRoleStore provides tenant-independent role data and the
// super-admin lookup.
type GlobalRoleStore interface {
	// GlobalRoles returns the global roles assigned to a principal.
	GlobalRoles(ctx context.Context, principal permission.PrincipalID) ([]permission.GlobalRoleID, error)

	// GlobalRolePermissions returns the permissions bound to a global role.
	GlobalRolePermissions(ctx context.Context, role permission.GlobalRoleID) ([]permission.Permission, error)

	// IsSuperAdmin reports whether a principal is a platform operator.
	IsSuperAdmin(ctx context.Context, principal permission.PrincipalID) (bool, error)
}

// Store is the read-side contract the engine consumes. The engine never
// writes through it and assumes returned permissions are already in the
// same normalization the engine queries with; it does not re-normalize
// store data.
type Store interface {
	TenantStore
	RoleStore
	GlobalRoleStore
}
