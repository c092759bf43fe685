package rbac

import (
	"context"

	"github.com/dmitrymomot/accesskit/pkg/permission"
)

// expandRoles walks the inheritance graph breadth-first from the seed
// roles and returns every reachable role. A seed sits at depth 0; depth
// counts edges from there. A parent that was already reached on this
// expansion raises RoleCycleError rather than being de-duplicated:
// silently dropping the edge could mask a misconfiguration that intended
// to grant something the admin did not realize. A frontier that would
// cross maxInheritDepth raises RoleDepthError rather than truncating,
// because truncation drops genuinely granted permissions and produces a
// surprise Deny.
func (e *Engine) expandRoles(ctx context.Context, tenant permission.TenantID, seeds []permission.RoleID) ([]permission.RoleID, error) {
	visited := make(map[permission.RoleID]struct{}, len(seeds))
	order := make([]permission.RoleID, 0, len(seeds))
	frontier := make([]permission.RoleID, 0, len(seeds))

	// Duplicate seed assignments are not inheritance edges; fold them.
	for _, role := range seeds {
		if _, ok := visited[role]; ok {
			continue
		}
		visited[role] = struct{}{}
		order = append(order, role)
		frontier = append(frontier, role)
	}

	for depth := 0; len(frontier) > 0; depth++ {
		var next []permission.RoleID
		for _, role := range frontier {
			parents, err := e.store.RoleInherits(ctx, tenant, role)
			if err != nil {
				return nil, storeError(err)
			}
			for _, parent := range parents {
				if _, ok := visited[parent]; ok {
					return nil, &RoleCycleError{Tenant: tenant, Role: parent}
				}
				if depth+1 > e.maxInheritDepth {
					return nil, &RoleDepthError{Tenant: tenant, Role: parent, MaxDepth: e.maxInheritDepth}
				}
				visited[parent] = struct{}{}
				order = append(order, parent)
				next = append(next, parent)
			}
		}
		frontier = next
	}

	return order, nil
}
