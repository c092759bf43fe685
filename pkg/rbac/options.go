package rbac

import "log/slog"

// Option configures the engine at assembly time. The configuration is
// immutable once New returns.
type Option func(*Engine)

// WithRoleHierarchy turns parent expansion in the role graph resolver
// on or off.
func WithRoleHierarchy(on bool) Option {
	return func(e *Engine) {
		e.roleHierarchy = on
	}
}

// WithWildcard allows "*" segments to match at query time.
func WithWildcard(on bool) Option {
	return func(e *Engine) {
		e.matcher.Wildcard = on
	}
}

// WithSuperAdmin enables the super-admin short-circuit. The tenant
// lifecycle check still applies: a super-admin is shut out of a
// disabled tenant.
func WithSuperAdmin(on bool) Option {
	return func(e *Engine) {
		e.superAdmin = on
	}
}

// WithMaxInheritDepth sets the edge-count limit for graph expansion.
// Non-positive values are ignored.
func WithMaxInheritDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.maxInheritDepth = depth
		}
	}
}

// WithPermissionNormalize controls case-folding at match time. Disable
// it only when every store-side permission was built with NewRaw.
func WithPermissionNormalize(on bool) Option {
	return func(e *Engine) {
		e.matcher.Normalize = on
	}
}

// WithCache attaches a cache for effective permission sets.
func WithCache(cache Cache) Option {
	return func(e *Engine) {
		if cache != nil {
			e.cache = cache
		}
	}
}

// WithLogger sets a logger for decision-level debug logging.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithAuditor attaches an audit recorder that receives one event per
// authorization decision.
func WithAuditor(auditor Auditor) Option {
	return func(e *Engine) {
		e.auditor = auditor
	}
}
