package rbac

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/accesskit/pkg/permission"
)

// ErrorHandler handles authorization failures in the HTTP middleware.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type middlewareConfig struct {
	errorHandler ErrorHandler
}

// MiddlewareOption configures the HTTP middleware.
type MiddlewareOption func(*middlewareConfig)

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(handler ErrorHandler) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.errorHandler = handler
	}
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrActorNotInContext):
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrAccessDenied):
		http.Error(w, "Forbidden", http.StatusForbidden)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// RequirePermission creates HTTP middleware that authorizes the request's
// actor for the given permission. The actor is read from the request
// context (see WithActor); requests without one are rejected as
// unauthorized. Store or graph failures surface through the error
// handler rather than being mapped to a deny.
func RequirePermission(engine *Engine, required permission.Permission, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{errorHandler: defaultErrorHandler}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				cfg.errorHandler(w, r, ErrActorNotInContext)
				return
			}

			decision, err := engine.Authorize(r.Context(), actor.Tenant, actor.Principal, required)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}
			if decision != Allow {
				cfg.errorHandler(w, r, ErrAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireScope creates HTTP middleware that computes the actor's scope
// for a resource type and stores it in the request context for
// downstream query layers. Requests whose scope is empty are rejected
// as forbidden.
func RequireScope(engine *Engine, resource permission.ResourceName, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{errorHandler: defaultErrorHandler}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				cfg.errorHandler(w, r, ErrActorNotInContext)
				return
			}

			scope, err := engine.Scope(r.Context(), actor.Tenant, actor.Principal, resource)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}
			if scope.Kind == ScopeNone {
				cfg.errorHandler(w, r, ErrAccessDenied)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithScope(r.Context(), scope)))
		})
	}
}
