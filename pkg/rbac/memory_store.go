package rbac

import (
	"context"
	"sync"

	"github.com/dmitrymomot/accesskit/pkg/permission"
)

type tenantPrincipalKey struct {
	tenant    permission.TenantID
	principal permission.PrincipalID
}

type tenantRoleKey struct {
	tenant permission.TenantID
	role   permission.RoleID
}

// MemoryStore is an in-memory Store for tests and demos. Unknown tenants
// and principals read as inactive, so the zero store denies everything.
// It is safe for concurrent use.
type MemoryStore struct {
	mu sync.RWMutex

	tenants        map[permission.TenantID]bool
	principals     map[tenantPrincipalKey]bool
	principalRoles map[tenantPrincipalKey][]permission.RoleID
	rolePerms      map[tenantRoleKey][]permission.Permission
	roleParents    map[tenantRoleKey][]permission.RoleID
	globalRoles    map[permission.PrincipalID][]permission.GlobalRoleID
	globalPerms    map[permission.GlobalRoleID][]permission.Permission
	superAdmins    map[permission.PrincipalID]bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tenants:        make(map[permission.TenantID]bool),
		principals:     make(map[tenantPrincipalKey]bool),
		principalRoles: make(map[tenantPrincipalKey][]permission.RoleID),
		rolePerms:      make(map[tenantRoleKey][]permission.Permission),
		roleParents:    make(map[tenantRoleKey][]permission.RoleID),
		globalRoles:    make(map[permission.PrincipalID][]permission.GlobalRoleID),
		globalPerms:    make(map[permission.GlobalRoleID][]permission.Permission),
		superAdmins:    make(map[permission.PrincipalID]bool),
	}
}

// SetTenantActive sets a tenant's active flag.
func (s *MemoryStore) SetTenantActive(tenant permission.TenantID, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tenants[tenant] = active
}

// SetPrincipalActive sets a principal's active flag within a tenant.
func (s *MemoryStore) SetPrincipalActive(tenant permission.TenantID, principal permission.PrincipalID, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principals[tenantPrincipalKey{tenant, principal}] = active
}

// AddPrincipalRole assigns a role to a principal within a tenant.
func (s *MemoryStore) AddPrincipalRole(tenant permission.TenantID, principal permission.PrincipalID, role permission.RoleID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := tenantPrincipalKey{tenant, principal}
	s.principalRoles[key] = appendUnique(s.principalRoles[key], role)
}

// AddRolePermission binds a permission to a role within a tenant.
func (s *MemoryStore) AddRolePermission(tenant permission.TenantID, role permission.RoleID, perm permission.Permission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := tenantRoleKey{tenant, role}
	s.rolePerms[key] = appendUnique(s.rolePerms[key], perm)
}

// AddRoleInherit adds an inheritance edge from role to parent.
func (s *MemoryStore) AddRoleInherit(tenant permission.TenantID, role, parent permission.RoleID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := tenantRoleKey{tenant, role}
	s.roleParents[key] = appendUnique(s.roleParents[key], parent)
}

// AddGlobalRole assigns a global role to a principal.
func (s *MemoryStore) AddGlobalRole(principal permission.PrincipalID, role permission.GlobalRoleID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globalRoles[principal] = appendUnique(s.globalRoles[principal], role)
}

// AddGlobalRolePermission binds a permission to a global role.
func (s *MemoryStore) AddGlobalRolePermission(role permission.GlobalRoleID, perm permission.Permission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globalPerms[role] = appendUnique(s.globalPerms[role], perm)
}

// SetSuperAdmin flags a principal as a platform operator.
func (s *MemoryStore) SetSuperAdmin(principal permission.PrincipalID, admin bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.superAdmins[principal] = admin
}

func (s *MemoryStore) TenantActive(_ context.Context, tenant permission.TenantID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tenants[tenant], nil
}

func (s *MemoryStore) PrincipalActive(_ context.Context, tenant permission.TenantID, principal permission.PrincipalID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principals[tenantPrincipalKey{tenant, principal}], nil
}

func (s *MemoryStore) PrincipalRoles(_ context.Context, tenant permission.TenantID, principal permission.PrincipalID) ([]permission.RoleID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.principalRoles[tenantPrincipalKey{tenant, principal}]), nil
}

func (s *MemoryStore) RolePermissions(_ context.Context, tenant permission.TenantID, role permission.RoleID) ([]permission.Permission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.rolePerms[tenantRoleKey{tenant, role}]), nil
}

func (s *MemoryStore) RoleInherits(_ context.Context, tenant permission.TenantID, role permission.RoleID) ([]permission.RoleID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.roleParents[tenantRoleKey{tenant, role}]), nil
}

func (s *MemoryStore) GlobalRoles(_ context.Context, principal permission.PrincipalID) ([]permission.GlobalRoleID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.globalRoles[principal]), nil
}

func (s *MemoryStore) GlobalRolePermissions(_ context.Context, role permission.GlobalRoleID) ([]permission.Permission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.globalPerms[role]), nil
}

func (s *MemoryStore) IsSuperAdmin(_ context.Context, principal permission.PrincipalID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.superAdmins[principal], nil
}

func appendUnique[T comparable](list []T, value T) []T {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}

func cloneSlice[T any](list []T) []T {
	if len(list) == 0 {
		return nil
	}
	out := make([]T, len(list))
	copy(out, list)
	return out
}
