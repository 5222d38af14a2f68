package document

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

// Update applies a content and/or metadata change to a document and returns
// the document's revision number after the change.
//
// Content identical to the current content is a no-op with respect to
// history: no revision row is written, though title and status changes still
// apply. Otherwise one revision row snapshots the content being replaced and
// the document's revision pointer advances by exactly one, all in one
// transaction. A revision-number race is retried once with fresh state
// before surfacing domain.ErrConflict.
func (s *Service) Update(ctx context.Context, input UpdateInput) (int, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return 0, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return 0, err
	}

	doc, err := s.docs.GetByID(ctx, input.DocID)
	if err != nil {
		return 0, fmt.Errorf("get document: %w", err)
	}

	allowed, err := s.access.HasRole(ctx, doc.CircleID, actorID, domain.RoleContributor)
	if err != nil {
		return 0, fmt.Errorf("check role: %w", err)
	}
	if !allowed {
		return 0, domain.ErrForbidden
	}

	newRevision, err := s.applyUpdate(ctx, input, actorID)
	if err != nil && (errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrAlreadyExists)) {
		// Lost a revision-number race; one retry with fresh state.
		newRevision, err = s.applyUpdate(ctx, input, actorID)
	}
	if err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "document updated",
		slog.String("document_id", input.DocID.String()),
		slog.String("actor_id", actorID.String()),
		slog.Int("revision", newRevision),
	)

	return newRevision, nil
}

// applyUpdate runs one transactional attempt of the update.
func (s *Service) applyUpdate(ctx context.Context, input UpdateInput, actorID uuid.UUID) (int, error) {
	var newRevision int

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		doc, err := s.docs.GetForUpdate(txCtx, input.DocID)
		if err != nil {
			return fmt.Errorf("lock document: %w", err)
		}

		now := s.now()
		newRevision = doc.CurrentRevision
		contentChanged := input.Content != nil && !domain.ContentEqual(doc.Content, input.Content)

		if contentChanged {
			newRevision = doc.CurrentRevision + 1
			if err := s.docs.InsertRevision(txCtx, domain.Revision{
				ID:         uuid.New(),
				DocumentID: doc.ID,
				Revision:   newRevision,
				Content:    doc.Content,
				EditedBy:   actorID,
				CreatedAt:  now,
			}); err != nil {
				return fmt.Errorf("insert revision: %w", err)
			}
			if err := s.docs.UpdateContent(txCtx, doc.ID, input.Content, newRevision, now); err != nil {
				return fmt.Errorf("update content: %w", err)
			}
		}

		if input.Title != nil || input.Status != nil {
			if err := s.docs.UpdateMeta(txCtx, doc.ID, input.Title, input.Status, now); err != nil {
				return fmt.Errorf("update meta: %w", err)
			}
		}

		if !contentChanged && input.Title == nil && input.Status == nil {
			return nil
		}

		docID := doc.ID
		_, err = s.audit.Record(txCtx, auditsvc.RecordInput{
			CircleID:   doc.CircleID,
			ActorID:    actorID,
			EventType:  domain.AuditEventDocumentUpdated,
			ObjectType: objectTypeDocument,
			ObjectID:   &docID,
			Metadata: map[string]any{
				"revision":        newRevision,
				"content_changed": contentChanged,
			},
		})
		if err != nil {
			return fmt.Errorf("audit: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return newRevision, nil
}
