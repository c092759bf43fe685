// Package pgstore implements the rbac.Store contract on PostgreSQL.
//
// The schema keeps one table per relation in the authorization model:
// tenants, principals, role assignments, role permissions, inheritance
// edges, global roles, and super-admins. All access is read-only; the
// goose migrations in the migrations directory create the schema.
//
//	pool, err := pgstore.Connect(ctx, cfg)
//	if err != nil { ... }
//	if err := pgstore.Migrate(ctx, pool, cfg, logger); err != nil { ... }
//	engine := rbac.New(pgstore.New(pool))
//
// Identifier and permission columns are expected to hold normalized
// values (lowercase, validated); write paths should build them through
// the permission package constructors.
package pgstore
