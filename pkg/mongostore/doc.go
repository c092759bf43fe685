// Package mongostore implements the rbac.Store contract on MongoDB.
//
// The document layout mirrors the relational store: one document per
// assignment edge (principal role, role permission, inheritance edge,
// global role), plus lifecycle documents for tenants and principals.
// All access is read-only.
//
//	db, err := mongostore.Connect(ctx, cfg)
//	if err != nil { ... }
//	engine := rbac.New(mongostore.New(db))
package mongostore
