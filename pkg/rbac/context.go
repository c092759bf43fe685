package rbac

import (
	"context"

	"github.com/dmitrymomot/accesskit/pkg/permission"
)

// Actor identifies who a request acts as: a principal within a tenant.
type Actor struct {
	Tenant    permission.TenantID
	Principal permission.PrincipalID
}

type actorCtxKey struct{}

type scopeCtxKey struct{}

// WithActor stores the acting tenant and principal in the context.
func WithActor(ctx context.Context, tenant permission.TenantID, principal permission.PrincipalID) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, Actor{Tenant: tenant, Principal: principal})
}

// ActorFromContext retrieves the actor placed by WithActor.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorCtxKey{}).(Actor)
	return actor, ok
}

// WithScope stores a computed scope in the context for downstream
// query layers.
func WithScope(ctx context.Context, scope Scope) context.Context {
	return context.WithValue(ctx, scopeCtxKey{}, scope)
}

// ScopeFromContext retrieves the scope placed by WithScope.
func ScopeFromContext(ctx context.Context) (Scope, bool) {
	scope, ok := ctx.Value(scopeCtxKey{}).(Scope)
	return scope, ok
}
