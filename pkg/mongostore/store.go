package mongostore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/accesskit/pkg/permission"
	"github.com/dmitrymomot/accesskit/pkg/rbac"
)

// Collection names used by the store.
const (
	collTenants         = "tenants"
	collPrincipals      = "principals"
	collPrincipalRoles  = "principal_roles"
	collRolePermissions = "role_permissions"
	collRoleInherits    = "role_inherits"
	collGlobalRoles     = "principal_global_roles"
	collGlobalRolePerms = "global_role_permissions"
	collSuperAdmins     = "super_admins"
)

// Store reads authorization data from MongoDB. It implements rbac.Store
// and mirrors the relational layout: one document per assignment edge,
// which keeps invalidation and backfills trivial at the cost of a few
// extra indexes.
type Store struct {
	db *mongo.Database
}

var _ rbac.Store = (*Store)(nil)

// New creates a store around an established database handle.
func New(db *mongo.Database) *Store {
	return &Store{db: db}
}

type tenantDoc struct {
	ID     string `bson:"_id"`
	Active bool   `bson:"active"`
}

type principalDoc struct {
	TenantID    string `bson:"tenant_id"`
	PrincipalID string `bson:"principal_id"`
	Active      bool   `bson:"active"`
}

type principalRoleDoc struct {
	RoleID string `bson:"role_id"`
}

type rolePermissionDoc struct {
	Perm string `bson:"perm"`
}

type roleInheritDoc struct {
	ParentRoleID string `bson:"parent_role_id"`
}

type globalRoleDoc struct {
	GlobalRoleID string `bson:"global_role_id"`
}

func (s *Store) TenantActive(ctx context.Context, tenant permission.TenantID) (bool, error) {
	var doc tenantDoc
	err := s.db.Collection(collTenants).
		FindOne(ctx, bson.D{{Key: "_id", Value: string(tenant)}}).
		Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Unknown tenants read as inactive: deny-by-default.
		return false, nil
	}
	if err != nil {
		return false, errors.Join(ErrQueryFailed, err)
	}
	return doc.Active, nil
}

func (s *Store) PrincipalActive(ctx context.Context, tenant permission.TenantID, principal permission.PrincipalID) (bool, error) {
	var doc principalDoc
	err := s.db.Collection(collPrincipals).
		FindOne(ctx, bson.D{
			{Key: "tenant_id", Value: string(tenant)},
			{Key: "principal_id", Value: string(principal)},
		}).
		Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, errors.Join(ErrQueryFailed, err)
	}
	return doc.Active, nil
}

func (s *Store) PrincipalRoles(ctx context.Context, tenant permission.TenantID, principal permission.PrincipalID) ([]permission.RoleID, error) {
	var docs []principalRoleDoc
	if err := s.find(ctx, collPrincipalRoles, bson.D{
		{Key: "tenant_id", Value: string(tenant)},
		{Key: "principal_id", Value: string(principal)},
	}, &docs); err != nil {
		return nil, err
	}

	roles := make([]permission.RoleID, len(docs))
	for i, doc := range docs {
		roles[i] = permission.RoleID(doc.RoleID)
	}
	return roles, nil
}

func (s *Store) RolePermissions(ctx context.Context, tenant permission.TenantID, role permission.RoleID) ([]permission.Permission, error) {
	var docs []rolePermissionDoc
	if err := s.find(ctx, collRolePermissions, bson.D{
		{Key: "tenant_id", Value: string(tenant)},
		{Key: "role_id", Value: string(role)},
	}, &docs); err != nil {
		return nil, err
	}

	perms := make([]permission.Permission, len(docs))
	for i, doc := range docs {
		perms[i] = permission.Permission(doc.Perm)
	}
	return perms, nil
}

func (s *Store) RoleInherits(ctx context.Context, tenant permission.TenantID, role permission.RoleID) ([]permission.RoleID, error) {
	var docs []roleInheritDoc
	if err := s.find(ctx, collRoleInherits, bson.D{
		{Key: "tenant_id", Value: string(tenant)},
		{Key: "role_id", Value: string(role)},
	}, &docs); err != nil {
		return nil, err
	}

	parents := make([]permission.RoleID, len(docs))
	for i, doc := range docs {
		parents[i] = permission.RoleID(doc.ParentRoleID)
	}
	return parents, nil
}

func (s *Store) GlobalRoles(ctx context.Context, principal permission.PrincipalID) ([]permission.GlobalRoleID, error) {
	var docs []globalRoleDoc
	if err := s.find(ctx, collGlobalRoles, bson.D{
		{Key: "principal_id", Value: string(principal)},
	}, &docs); err != nil {
		return nil, err
	}

	roles := make([]permission.GlobalRoleID, len(docs))
	for i, doc := range docs {
		roles[i] = permission.GlobalRoleID(doc.GlobalRoleID)
	}
	return roles, nil
}

func (s *Store) GlobalRolePermissions(ctx context.Context, role permission.GlobalRoleID) ([]permission.Permission, error) {
	var docs []rolePermissionDoc
	if err := s.find(ctx, collGlobalRolePerms, bson.D{
		{Key: "global_role_id", Value: string(role)},
	}, &docs); err != nil {
		return nil, err
	}

	perms := make([]permission.Permission, len(docs))
	for i, doc := range docs {
		perms[i] = permission.Permission(doc.Perm)
	}
	return perms, nil
}

func (s *Store) IsSuperAdmin(ctx context.Context, principal permission.PrincipalID) (bool, error) {
	err := s.db.Collection(collSuperAdmins).
		FindOne(ctx, bson.D{{Key: "_id", Value: string(principal)}}).
		Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, errors.Join(ErrQueryFailed, err)
	}
	return true, nil
}

func (s *Store) find(ctx context.Context, collection string, filter bson.D, out any) error {
	cursor, err := s.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return errors.Join(ErrQueryFailed, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return errors.Join(ErrQueryFailed, err)
	}
	return nil
}
