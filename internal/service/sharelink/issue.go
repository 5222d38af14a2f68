package sharelink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	auditsvc "github.com/careloop/careloop-backend/internal/service/audit"
	"github.com/careloop/careloop-backend/pkg/ctxutil"
)

// Issue mints a new share link for an object in the actor's circle. A token
// collision, while astronomically unlikely, is retried once with fresh
// randomness before the error surfaces.
func (s *Service) Issue(ctx context.Context, input IssueInput) (*domain.ShareLink, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	member, err := s.access.IsMember(ctx, input.CircleID, actorID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if !member {
		return nil, domain.ErrForbidden
	}

	link, err := s.createLink(ctx, input, actorID)
	if err != nil && errors.Is(err, domain.ErrAlreadyExists) {
		link, err = s.createLink(ctx, input, actorID)
	}
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "share link issued",
		slog.String("link_id", link.ID.String()),
		slog.String("circle_id", link.CircleID.String()),
		slog.String("object_type", link.ObjectType),
	)

	return link, nil
}

// createLink runs one attempt at minting and persisting a link.
func (s *Service) createLink(ctx context.Context, input IssueInput, actorID uuid.UUID) (*domain.ShareLink, error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	ttl := input.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	now := s.now()
	link := &domain.ShareLink{
		ID:             uuid.New(),
		CircleID:       input.CircleID,
		ObjectType:     input.ObjectType,
		ObjectID:       input.ObjectID,
		Token:          token,
		ExpiresAt:      now.Add(ttl),
		MaxAccessCount: input.MaxAccessCount,
		CreatedBy:      actorID,
		CreatedAt:      now,
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.links.Create(txCtx, link); err != nil {
			return fmt.Errorf("create share link: %w", err)
		}

		linkID := link.ID
		_, err := s.audit.Record(txCtx, auditsvc.RecordInput{
			CircleID:   link.CircleID,
			ActorID:    actorID,
			EventType:  domain.AuditEventShareLinkIssued,
			ObjectType: objectTypeShareLink,
			ObjectID:   &linkID,
			Metadata: map[string]any{
				"object_type": link.ObjectType,
				"object_id":   link.ObjectID.String(),
				"expires_at":  link.ExpiresAt,
			},
		})
		if err != nil {
			return fmt.Errorf("audit: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return link, nil
}
