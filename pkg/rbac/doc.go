// Package rbac provides a multi-tenant, role-based authorization engine
// with pluggable storage and caching.
//
// The engine answers two questions per request: whether a principal may
// perform an action on a resource within a tenant (Authorize), and how
// far a principal may see resources of a type within a tenant (Scope).
// Decisions are computed from role graphs and permission assignments
// read through the Store contract; the engine itself does no I/O and
// performs no store-side writes.
//
// Authorization is deny-by-default. Checks run in a fixed order: tenant
// lifecycle first (a disabled tenant shuts out everyone, platform
// operators included), then the optional super-admin short-circuit, then
// principal lifecycle, then the effective permission set. Role
// inheritance is expanded breadth-first with hard failures on cycles and
// on crossing the configured depth ceiling; errors are surfaced to the
// caller and never absorbed into a deny.
//
// Basic usage:
//
//	store := rbac.NewMemoryStore()
//	store.SetTenantActive("acme", true)
//	store.SetPrincipalActive("acme", "user_1", true)
//	store.AddPrincipalRole("acme", "user_1", "billing")
//	store.AddRolePermission("acme", "billing", "invoice:read")
//
//	engine := rbac.New(store,
//	    rbac.WithRoleHierarchy(true),
//	    rbac.WithWildcard(true),
//	    rbac.WithCache(permcache.NewMemory(1024)),
//	)
//
//	decision, err := engine.Authorize(ctx, "acme", "user_1", "invoice:read")
//	if err != nil {
//	    // store failure or graph misconfiguration; map to deny explicitly
//	    // if fail-closed behavior is wanted
//	}
//	if decision == rbac.Allow {
//	    // proceed
//	}
//
// Concurrent misses for the same (tenant, principal) key share one store
// traversal: the engine coalesces them with a single-flight group, and
// every waiter observes the same fill result. Invalidation is explicit
// via InvalidatePrincipal, InvalidateRole, and InvalidateTenant; there is
// no hot-reload of role graphs.
//
// The engine assumes store data was normalized the same way queries are
// (see permission.New versus permission.NewRaw). It does not re-normalize
// permissions returned by the store; mixing normalized and raw inputs
// yields a false Deny.
package rbac
