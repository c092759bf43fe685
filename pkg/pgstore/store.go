package pgstore

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/accesskit/pkg/permission"
	"github.com/dmitrymomot/accesskit/pkg/rbac"
)

// Store reads authorization data from PostgreSQL. It implements
// rbac.Store and is read-only: role management happens through whatever
// writes the tables, never through the engine.
//
// Permission strings are returned as stored; they are expected to have
// been normalized on write (see permission.New).
type Store struct {
	pool *pgxpool.Pool
}

var _ rbac.Store = (*Store)(nil)

// New creates a store around an established connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) TenantActive(ctx context.Context, tenant permission.TenantID) (bool, error) {
	var active bool
	err := s.pool.QueryRow(ctx,
		`SELECT active FROM tenants WHERE id = $1`,
		string(tenant),
	).Scan(&active)
	if errors.Is(err, pgx.ErrNoRows) {
		// Unknown tenants read as inactive: deny-by-default.
		return false, nil
	}
	if err != nil {
		return false, errors.Join(ErrQueryFailed, err)
	}
	return active, nil
}

func (s *Store) PrincipalActive(ctx context.Context, tenant permission.TenantID, principal permission.PrincipalID) (bool, error) {
	var active bool
	err := s.pool.QueryRow(ctx,
		`SELECT active FROM principals WHERE tenant_id = $1 AND id = $2`,
		string(tenant), string(principal),
	).Scan(&active)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, errors.Join(ErrQueryFailed, err)
	}
	return active, nil
}

func (s *Store) PrincipalRoles(ctx context.Context, tenant permission.TenantID, principal permission.PrincipalID) ([]permission.RoleID, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT role_id FROM principal_roles WHERE tenant_id = $1 AND principal_id = $2`,
		string(tenant), string(principal),
	)
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	values, err := collectStrings(rows)
	if err != nil {
		return nil, err
	}
	roles := make([]permission.RoleID, len(values))
	for i, v := range values {
		roles[i] = permission.RoleID(v)
	}
	return roles, nil
}

func (s *Store) RolePermissions(ctx context.Context, tenant permission.TenantID, role permission.RoleID) ([]permission.Permission, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT perm FROM role_permissions WHERE tenant_id = $1 AND role_id = $2`,
		string(tenant), string(role),
	)
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	values, err := collectStrings(rows)
	if err != nil {
		return nil, err
	}
	perms := make([]permission.Permission, len(values))
	for i, v := range values {
		perms[i] = permission.Permission(v)
	}
	return perms, nil
}

func (s *Store) RoleInherits(ctx context.Context, tenant permission.TenantID, role permission.RoleID) ([]permission.RoleID, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT parent_role_id FROM role_inherits WHERE tenant_id = $1 AND role_id = $2`,
		string(tenant), string(role),
	)
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	values, err := collectStrings(rows)
	if err != nil {
		return nil, err
	}
	parents := make([]permission.RoleID, len(values))
	for i, v := range values {
		parents[i] = permission.RoleID(v)
	}
	return parents, nil
}

func (s *Store) GlobalRoles(ctx context.Context, principal permission.PrincipalID) ([]permission.GlobalRoleID, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT global_role_id FROM principal_global_roles WHERE principal_id = $1`,
		string(principal),
	)
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	values, err := collectStrings(rows)
	if err != nil {
		return nil, err
	}
	roles := make([]permission.GlobalRoleID, len(values))
	for i, v := range values {
		roles[i] = permission.GlobalRoleID(v)
	}
	return roles, nil
}

func (s *Store) GlobalRolePermissions(ctx context.Context, role permission.GlobalRoleID) ([]permission.Permission, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT perm FROM global_role_permissions WHERE global_role_id = $1`,
		string(role),
	)
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	values, err := collectStrings(rows)
	if err != nil {
		return nil, err
	}
	perms := make([]permission.Permission, len(values))
	for i, v := range values {
		perms[i] = permission.Permission(v)
	}
	return perms, nil
}

func (s *Store) IsSuperAdmin(ctx context.Context, principal permission.PrincipalID) (bool, error) {
	var admin bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM super_admins WHERE principal_id = $1)`,
		string(principal),
	).Scan(&admin)
	if err != nil {
		return false, errors.Join(ErrQueryFailed, err)
	}
	return admin, nil
}

func collectStrings(rows pgx.Rows) ([]string, error) {
	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	return values, nil
}
