package rbac

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/accesskit/pkg/permission"
)

// Domain errors for authorization operations.
var (
	// ErrStore wraps any downstream data-layer failure.
	ErrStore = errors.New("rbac.store_error")

	// ErrRoleCycle is returned when role inheritance reaches a role
	// already on the expansion path.
	ErrRoleCycle = errors.New("rbac.role_cycle_detected")

	// ErrRoleDepth is returned when the inheritance frontier would cross
	// the configured depth ceiling.
	ErrRoleDepth = errors.New("rbac.role_depth_exceeded")

	// ErrActorNotInContext is returned by the middleware when no actor
	// is present in the request context.
	ErrActorNotInContext = errors.New("rbac.actor_not_in_context")

	// ErrAccessDenied is passed to the middleware error handler when the
	// engine denies a request.
	ErrAccessDenied = errors.New("rbac.access_denied")
)

// RoleCycleError reports the tenant and role at which an inheritance
// cycle was detected. It unwraps to ErrRoleCycle.
type RoleCycleError struct {
	Tenant permission.TenantID
	Role   permission.RoleID
}

func (e *RoleCycleError) Error() string {
	return fmt.Sprintf("role cycle detected for tenant %s at role %s", e.Tenant, e.Role)
}

func (e *RoleCycleError) Unwrap() error { return ErrRoleCycle }

// RoleDepthError reports the tenant, role, and configured ceiling at
// which inheritance expansion was cut off. It unwraps to ErrRoleDepth.
type RoleDepthError struct {
	Tenant   permission.TenantID
	Role     permission.RoleID
	MaxDepth int
}

func (e *RoleDepthError) Error() string {
	return fmt.Sprintf("role inheritance depth exceeded for tenant %s at role %s; max depth %d",
		e.Tenant, e.Role, e.MaxDepth)
}

func (e *RoleDepthError) Unwrap() error { return ErrRoleDepth }

// storeError wraps a store failure so callers can detect the layer with
// errors.Is(err, ErrStore) while keeping the original reason.
func storeError(err error) error {
	return errors.Join(ErrStore, err)
}
