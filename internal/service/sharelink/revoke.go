package sharelink

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	auditsvc "github.com/careloop/careloop-backend/internal/service/audit"
	"github.com/careloop/careloop-backend/pkg/ctxutil"
)

// Revoke invalidates a share link immediately. Revocation is repeatable:
// only the first call flips the link and records an audit event.
func (s *Service) Revoke(ctx context.Context, linkID uuid.UUID) error {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if linkID == uuid.Nil {
		return domain.NewValidationError("link_id", "required")
	}

	link, err := s.links.GetByID(ctx, linkID)
	if err != nil {
		return fmt.Errorf("get share link: %w", err)
	}

	member, err := s.access.IsMember(ctx, link.CircleID, actorID)
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	if !member {
		return domain.ErrForbidden
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		revoked, err := s.links.Revoke(txCtx, linkID, s.now())
		if err != nil {
			return fmt.Errorf("revoke share link: %w", err)
		}
		if !revoked {
			return nil
		}

		id := linkID
		_, err = s.audit.Record(txCtx, auditsvc.RecordInput{
			CircleID:   link.CircleID,
			ActorID:    actorID,
			EventType:  domain.AuditEventShareLinkRevoked,
			ObjectType: objectTypeShareLink,
			ObjectID:   &id,
			Metadata: map[string]any{
				"object_type": link.ObjectType,
				"object_id":   link.ObjectID.String(),
			},
		})
		if err != nil {
			return fmt.Errorf("audit: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "share link revoked",
		slog.String("link_id", linkID.String()),
		slog.String("actor_id", actorID.String()),
	)

	return nil
}

// ListAccessLog returns the resolution history of a link, oldest first.
func (s *Service) ListAccessLog(ctx context.Context, linkID uuid.UUID) ([]domain.ShareLinkAccess, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if linkID == uuid.Nil {
		return nil, domain.NewValidationError("link_id", "required")
	}

	link, err := s.links.GetByID(ctx, linkID)
	if err != nil {
		return nil, fmt.Errorf("get share link: %w", err)
	}

	member, err := s.access.IsMember(ctx, link.CircleID, actorID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if !member {
		return nil, domain.ErrForbidden
	}

	accesses, err := s.links.ListAccessLog(ctx, linkID)
	if err != nil {
		return nil, fmt.Errorf("list access log: %w", err)
	}
	if accesses == nil {
		accesses = []domain.ShareLinkAccess{}
	}

	return accesses, nil
}
