package rbac

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/accesskit/pkg/permission"
)

// Event records one authorization decision.
type Event struct {
	ID         string
	Tenant     permission.TenantID
	Principal  permission.PrincipalID
	Permission permission.Permission
	Decision   Decision
	At         time.Time
}

// Auditor receives authorization decisions. Implementations must not
// block the request path; buffer or drop instead.
type Auditor interface {
	Record(ctx context.Context, event Event)
}

func newEvent(tenant permission.TenantID, principal permission.PrincipalID, required permission.Permission, d Decision) Event {
	return Event{
		ID:         uuid.New().String(),
		Tenant:     tenant,
		Principal:  principal,
		Permission: required,
		Decision:   d,
		At:         time.Now().UTC(),
	}
}

// SlogAuditor writes decisions to a structured logger.
type SlogAuditor struct {
	log *slog.Logger
}

// NewSlogAuditor creates an auditor backed by the given logger.
// A nil logger falls back to slog.Default.
func NewSlogAuditor(log *slog.Logger) *SlogAuditor {
	if log == nil {
		log = slog.Default()
	}
	return &SlogAuditor{log: log}
}

func (a *SlogAuditor) Record(ctx context.Context, event Event) {
	a.log.InfoContext(ctx, "authorization decision",
		"event_id", event.ID,
		"tenant", event.Tenant.String(),
		"principal", event.Principal.String(),
		"permission", event.Permission.String(),
		"decision", event.Decision.String(),
		"at", event.At,
	)
}

// AuditorFunc adapts a function to the Auditor interface.
type AuditorFunc func(ctx context.Context, event Event)

func (f AuditorFunc) Record(ctx context.Context, event Event) { f(ctx, event) }
