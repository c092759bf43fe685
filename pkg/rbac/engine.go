package rbac

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/accesskit/pkg/permission"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	// Deny is the default outcome; unknown principals, inactive tenants,
	// and unmatched permissions all land here.
	Deny Decision = iota
	// Allow is returned only when a granted permission matches or the
	// super-admin short-circuit fires.
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// ScopeKind discriminates scope results.
type ScopeKind int

const (
	// ScopeNone means the principal has no visibility into the resource.
	ScopeNone ScopeKind = iota
	// ScopeTenantOnly limits visibility to a single tenant.
	ScopeTenantOnly
)

// Scope is a query-time hint consumed by downstream query layers.
// Results are tenant-bounded: the engine never emits a scope wider
// than one tenant.
type Scope struct {
	Kind   ScopeKind
	Tenant permission.TenantID
}

// NoScope returns the empty scope.
func NoScope() Scope { return Scope{Kind: ScopeNone} }

// TenantOnlyScope returns a scope limited to the given tenant.
func TenantOnlyScope(tenant permission.TenantID) Scope {
	return Scope{Kind: ScopeTenantOnly, Tenant: tenant}
}

// Engine answers authorization and scope questions from role graphs and
// permission assignments held by a pluggable Store. It is safe for
// concurrent use; all mutable shared state lives in the attached Cache.
type Engine struct {
	store   Store
	cache   Cache
	matcher permission.Matcher

	roleHierarchy   bool
	superAdmin      bool
	maxInheritDepth int

	sig     permission.Permission
	group   singleflight.Group
	log     *slog.Logger
	auditor Auditor
}

// DefaultMaxInheritDepth is the default edge-count limit for role
// inheritance expansion.
const DefaultMaxInheritDepth = 16

// New assembles an engine around a store. Role hierarchy, wildcard
// matching, and the super-admin short-circuit are off by default;
// permissions are normalized; no cache is attached.
func New(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:           store,
		cache:           NoopCache{},
		matcher:         permission.Matcher{Normalize: true},
		maxInheritDepth: DefaultMaxInheritDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.sig = e.signature()
	return e
}

// Authorize reports whether principal may perform the required permission
// within tenant. Check order: tenant lifecycle, super-admin short-circuit,
// principal lifecycle, effective permission set. A disabled tenant shuts
// out even platform operators; a super-admin may act against a quarantined
// principal's tenant, so the principal check comes after the short-circuit.
// Store and graph failures are returned as errors, never absorbed into Deny.
func (e *Engine) Authorize(ctx context.Context, tenant permission.TenantID, principal permission.PrincipalID, required permission.Permission) (Decision, error) {
	active, err := e.store.TenantActive(ctx, tenant)
	if err != nil {
		return Deny, storeError(err)
	}
	if !active {
		return e.decide(ctx, tenant, principal, required, Deny), nil
	}

	if e.superAdmin {
		admin, err := e.store.IsSuperAdmin(ctx, principal)
		if err != nil {
			return Deny, storeError(err)
		}
		if admin {
			return e.decide(ctx, tenant, principal, required, Allow), nil
		}
	}

	active, err = e.store.PrincipalActive(ctx, tenant, principal)
	if err != nil {
		return Deny, storeError(err)
	}
	if !active {
		return e.decide(ctx, tenant, principal, required, Deny), nil
	}

	perms, err := e.effectivePermissions(ctx, tenant, principal)
	if err != nil {
		return Deny, err
	}
	if e.matcher.AuthorizeSet(required, perms) {
		return e.decide(ctx, tenant, principal, required, Allow), nil
	}
	return e.decide(ctx, tenant, principal, required, Deny), nil
}

// Scope reports how far principal may see resources of the given type
// within tenant. The check order mirrors Authorize; the super-admin
// short-circuit yields TenantOnly, never anything broader.
func (e *Engine) Scope(ctx context.Context, tenant permission.TenantID, principal permission.PrincipalID, resource permission.ResourceName) (Scope, error) {
	active, err := e.store.TenantActive(ctx, tenant)
	if err != nil {
		return NoScope(), storeError(err)
	}
	if !active {
		return NoScope(), nil
	}

	if e.superAdmin {
		admin, err := e.store.IsSuperAdmin(ctx, principal)
		if err != nil {
			return NoScope(), storeError(err)
		}
		if admin {
			return TenantOnlyScope(tenant), nil
		}
	}

	active, err = e.store.PrincipalActive(ctx, tenant, principal)
	if err != nil {
		return NoScope(), storeError(err)
	}
	if !active {
		return NoScope(), nil
	}

	perms, err := e.effectivePermissions(ctx, tenant, principal)
	if err != nil {
		return NoScope(), err
	}
	if e.matcher.CoversResourceSet(resource, perms) {
		return TenantOnlyScope(tenant), nil
	}
	return NoScope(), nil
}

// InvalidatePrincipal drops the cached permission set for one principal.
func (e *Engine) InvalidatePrincipal(ctx context.Context, tenant permission.TenantID, principal permission.PrincipalID) {
	e.cache.InvalidatePrincipal(ctx, tenant, principal)
}

// InvalidateRole drops cached permission sets that could depend on a role.
func (e *Engine) InvalidateRole(ctx context.Context, tenant permission.TenantID, role permission.RoleID) {
	e.cache.InvalidateRole(ctx, tenant, role)
}

// InvalidateTenant drops all cached permission sets under a tenant.
func (e *Engine) InvalidateTenant(ctx context.Context, tenant permission.TenantID) {
	e.cache.InvalidateTenant(ctx, tenant)
}

// effectivePermissions returns the cached set for the key or resolves it
// from the store under single-flight: concurrent misses on one key share
// a single store traversal and observe the same fill result. Resolution
// errors propagate to every waiter and are never cached.
func (e *Engine) effectivePermissions(ctx context.Context, tenant permission.TenantID, principal permission.PrincipalID) ([]permission.Permission, error) {
	if cached, ok := e.cache.Get(ctx, tenant, principal); ok {
		if perms, ok := e.decodeCached(cached); ok {
			return perms, nil
		}
	}

	key := string(tenant) + "\x1f" + string(principal)
	ch := e.group.DoChan(key, func() (any, error) {
		// The fill runs detached from the triggering caller: a cancelled
		// leader still completes, so waiters are never stranded and only
		// complete sets are published.
		fillCtx := context.WithoutCancel(ctx)
		perms, err := e.resolvePermissions(fillCtx, tenant, principal)
		if err != nil {
			return nil, err
		}
		e.cache.Fill(fillCtx, tenant, principal, e.encodeCached(perms))
		return perms, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]permission.Permission), nil
	}
}

// resolvePermissions computes the effective permission set: the union of
// the tenant role graph (expanded when hierarchy is enabled) and the
// principal's global roles, de-duplicated.
func (e *Engine) resolvePermissions(ctx context.Context, tenant permission.TenantID, principal permission.PrincipalID) ([]permission.Permission, error) {
	direct, err := e.store.PrincipalRoles(ctx, tenant, principal)
	if err != nil {
		return nil, storeError(err)
	}

	roles := direct
	if e.roleHierarchy {
		roles, err = e.expandRoles(ctx, tenant, direct)
		if err != nil {
			return nil, err
		}
	}

	set := make(map[permission.Permission]struct{})
	for _, role := range roles {
		perms, err := e.store.RolePermissions(ctx, tenant, role)
		if err != nil {
			return nil, storeError(err)
		}
		for _, p := range perms {
			set[p] = struct{}{}
		}
	}

	globals, err := e.store.GlobalRoles(ctx, principal)
	if err != nil {
		return nil, storeError(err)
	}
	for _, role := range globals {
		perms, err := e.store.GlobalRolePermissions(ctx, role)
		if err != nil {
			return nil, storeError(err)
		}
		for _, p := range perms {
			set[p] = struct{}{}
		}
	}

	out := make([]permission.Permission, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	slices.Sort(out)
	return out, nil
}

// signature fingerprints the flags that shape a resolved set. Cached sets
// carry it so engines with different configurations sharing one cache
// treat each other's entries as misses instead of cross-contaminating.
func (e *Engine) signature() permission.Permission {
	return permission.Permission(fmt.Sprintf("__accesskit_cache_sig__=rh:%t;wc:%t;depth:%d;norm:%t",
		e.roleHierarchy, e.matcher.Wildcard, e.maxInheritDepth, e.matcher.Normalize))
}

func (e *Engine) encodeCached(perms []permission.Permission) []permission.Permission {
	encoded := make([]permission.Permission, 0, len(perms)+1)
	encoded = append(encoded, e.sig)
	return append(encoded, perms...)
}

func (e *Engine) decodeCached(cached []permission.Permission) ([]permission.Permission, bool) {
	if len(cached) == 0 || cached[0] != e.sig {
		return nil, false
	}
	return cached[1:], true
}

// decide emits the audit event and debug log for a terminal decision.
func (e *Engine) decide(ctx context.Context, tenant permission.TenantID, principal permission.PrincipalID, required permission.Permission, d Decision) Decision {
	if e.auditor != nil {
		e.auditor.Record(ctx, newEvent(tenant, principal, required, d))
	}
	if e.log != nil {
		e.log.DebugContext(ctx, "authorization decision",
			"tenant", tenant.String(),
			"principal", principal.String(),
			"permission", required.String(),
			"decision", d.String(),
		)
	}
	return d
}
