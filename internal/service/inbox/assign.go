package inbox

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/careloop/careloop-backend/internal/domain"
	auditsvc "github.com/careloop/careloop-backend/internal/service/audit"
	"github.com/careloop/careloop-backend/pkg/ctxutil"
)

// Assign routes an untriaged item to a circle member for follow-up. The item
// moves to ASSIGNED and may be re-assigned any number of times before triage;
// a terminal item surfaces domain.ErrAlreadyTriaged.
func (s *Service) Assign(ctx context.Context, input AssignInput) error {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	item, err := s.items.GetByID(ctx, input.ItemID)
	if err != nil {
		return fmt.Errorf("get inbox item: %w", err)
	}

	allowed, err := s.access.HasRole(ctx, item.CircleID, actorID, domain.RoleContributor)
	if err != nil {
		return fmt.Errorf("check role: %w", err)
	}
	if !allowed {
		return domain.ErrForbidden
	}

	assigneeMember, err := s.access.IsMember(ctx, item.CircleID, input.AssigneeID)
	if err != nil {
		return fmt.Errorf("check assignee membership: %w", err)
	}
	if !assigneeMember {
		return domain.NewValidationError("assignee_id", "not an active circle member")
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.items.SetAssignee(txCtx, input.ItemID, input.AssigneeID, s.now()); err != nil {
			return fmt.Errorf("assign inbox item: %w", err)
		}

		itemID := input.ItemID
		_, err := s.audit.Record(txCtx, auditsvc.RecordInput{
			CircleID:   item.CircleID,
			ActorID:    actorID,
			EventType:  domain.AuditEventInboxItemAssigned,
			ObjectType: objectTypeInboxItem,
			ObjectID:   &itemID,
			Metadata:   map[string]any{"assignee_id": input.AssigneeID.String()},
		})
		if err != nil {
			return fmt.Errorf("audit: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "inbox item assigned",
		slog.String("item_id", input.ItemID.String()),
		slog.String("assignee_id", input.AssigneeID.String()),
		slog.String("actor_id", actorID.String()),
	)

	return nil
}
