package sharelink

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	auditsvc "github.com/careloop/careloop-backend/internal/service/audit"
)

// Resolve redeems a share token. There is no actor: the token IS the
// credential. A usable link has its access count bumped atomically, one
// access-log row written with the hashed requester fingerprint, and an audit
// event recorded, all in one transaction. Unusable links surface
// domain.ErrNotFound, ErrExpired, ErrRevoked or ErrAccessLimitReached.
func (s *Service) Resolve(ctx context.Context, input ResolveInput) (*domain.ShareLink, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var link *domain.ShareLink

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		now := s.now()

		consumed, err := s.links.ConsumeAccess(txCtx, input.Token, now)
		if err != nil {
			return err
		}

		err = s.links.InsertAccessLog(txCtx, domain.ShareLinkAccess{
			ID:            uuid.New(),
			LinkID:        consumed.ID,
			RequesterHash: requesterHash(input.RequesterIP, input.RequesterUserAgent),
			AccessedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("insert access log: %w", err)
		}

		// Resolution is anonymous, so the audit trail attributes the event
		// to the issuing member and keeps the requester as a hash.
		linkID := consumed.ID
		_, err = s.audit.Record(txCtx, auditsvc.RecordInput{
			CircleID:   consumed.CircleID,
			ActorID:    consumed.CreatedBy,
			EventType:  domain.AuditEventShareLinkResolved,
			ObjectType: objectTypeShareLink,
			ObjectID:   &linkID,
			Metadata: map[string]any{
				"access_count":   consumed.AccessCount,
				"requester_hash": requesterHash(input.RequesterIP, input.RequesterUserAgent),
			},
		})
		if err != nil {
			return fmt.Errorf("audit: %w", err)
		}

		link = consumed
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "share link resolved",
		slog.String("link_id", link.ID.String()),
		slog.Int("access_count", link.AccessCount),
	)

	return link, nil
}
