package audit

import (
	"context"
	"fmt"

	"github.com/careloop/careloop-backend/internal/domain"
	"github.com/careloop/careloop-backend/pkg/ctxutil"
)

// List returns audit events for a circle, newest first. Admin-only: the
// ledger records sensitive actions and is not a general member surface.
func (s *Service) List(ctx context.Context, input ListInput) ([]domain.AuditEvent, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	allowed, err := s.access.HasRole(ctx, input.CircleID, actorID, domain.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("check role: %w", err)
	}
	if !allowed {
		return nil, domain.ErrForbidden
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	events, err := s.events.List(ctx, domain.AuditFilter{
		CircleID:  &input.CircleID,
		ActorID:   input.ActorID,
		EventType: input.EventType,
		Since:     input.Since,
		Until:     input.Until,
		Limit:     limit,
		Offset:    input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	if events == nil {
		events = []domain.AuditEvent{}
	}

	return events, nil
}
