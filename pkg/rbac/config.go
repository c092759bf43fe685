package rbac

// Config carries the engine flags in env-loadable form. Use
// config.Load to populate it and NewFromConfig to build an engine.
type Config struct {
	RoleHierarchy       bool `env:"RBAC_ROLE_HIERARCHY" envDefault:"false"`       // RoleHierarchy turns on parent expansion in the role graph resolver.
	Wildcard            bool `env:"RBAC_WILDCARD" envDefault:"false"`             // Wildcard allows "*" segments to match at query time.
	SuperAdmin          bool `env:"RBAC_SUPER_ADMIN" envDefault:"false"`          // SuperAdmin enables the platform-operator short-circuit.
	MaxInheritDepth     int  `env:"RBAC_MAX_INHERIT_DEPTH" envDefault:"16"`       // MaxInheritDepth is the edge-count limit for graph expansion.
	PermissionNormalize bool `env:"RBAC_PERMISSION_NORMALIZE" envDefault:"true"`  // PermissionNormalize case-folds permissions at match time.
}

// NewFromConfig builds an engine from an env-loaded Config. Additional
// options (cache, logger, auditor) apply on top of the config flags.
func NewFromConfig(store Store, cfg Config, opts ...Option) *Engine {
	base := []Option{
		WithRoleHierarchy(cfg.RoleHierarchy),
		WithWildcard(cfg.Wildcard),
		WithSuperAdmin(cfg.SuperAdmin),
		WithMaxInheritDepth(cfg.MaxInheritDepth),
		WithPermissionNormalize(cfg.PermissionNormalize),
	}
	return New(store, append(base, opts...)...)
}
