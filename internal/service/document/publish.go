package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	auditsvc "github.com/careloop/careloop-backend/internal/service/audit"
	outboxsvc "github.com/careloop/careloop-backend/internal/service/outbox"
	"github.com/careloop/careloop-backend/pkg/ctxutil"
)

// Publish publishes a handoff, optionally saving new content in the same
// transaction. The first publish moves the handoff DRAFT -> PUBLISHED and
// sets publishedAt exactly once; later publishes only bump the revision when
// content changed and never touch publishedAt. Every publish fans a
// notification out to the other active circle members.
func (s *Service) Publish(ctx context.Context, input PublishInput) (*domain.Document, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	doc, err := s.docs.GetByID(ctx, input.DocID)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if doc.Kind != domain.DocumentKindHandoff {
		return nil, domain.NewValidationError("doc_id", "only handoffs can be published")
	}

	allowed, err := s.access.HasRole(ctx, doc.CircleID, actorID, domain.RoleContributor)
	if err != nil {
		return nil, fmt.Errorf("check role: %w", err)
	}
	if !allowed {
		return nil, domain.ErrForbidden
	}

	published, err := s.applyPublish(ctx, input, actorID)
	if err != nil && (errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrAlreadyExists)) {
		published, err = s.applyPublish(ctx, input, actorID)
	}
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "handoff published",
		slog.String("document_id", published.ID.String()),
		slog.String("actor_id", actorID.String()),
		slog.Int("revision", published.CurrentRevision),
	)

	return published, nil
}

// applyPublish runs one transactional attempt of the publish.
func (s *Service) applyPublish(ctx context.Context, input PublishInput, actorID uuid.UUID) (*domain.Document, error) {
	var published *domain.Document

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		doc, err := s.docs.GetForUpdate(txCtx, input.DocID)
		if err != nil {
			return fmt.Errorf("lock document: %w", err)
		}

		now := s.now()

		if input.Content != nil && !domain.ContentEqual(doc.Content, input.Content) {
			newRevision := doc.CurrentRevision + 1
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
			doc.Content = input.Content
			doc.CurrentRevision = newRevision
		}

		first, err := s.docs.MarkPublished(txCtx, doc.ID, now)
		if err != nil {
			return fmt.Errorf("mark published: %w", err)
		}
		if first {
			doc.Status = domain.DocumentStatusPublished
			doc.PublishedAt = &now
		}

		docID := doc.ID
		_, err = s.audit.Record(txCtx, auditsvc.RecordInput{
			CircleID:   doc.CircleID,
			ActorID:    actorID,
			EventType:  domain.AuditEventHandoffPublished,
			ObjectType: objectTypeDocument,
			ObjectID:   &docID,
			Metadata: map[string]any{
				"revision":      doc.CurrentRevision,
				"first_publish": first,
			},
		})
		if err != nil {
			return fmt.Errorf("audit: %w", err)
		}

		_, err = s.notifier.FanOut(txCtx, outboxsvc.FanOutInput{
			CircleID:      doc.CircleID,
			ExcludeUserID: actorID,
			Type:          domain.AuditEventHandoffPublished,
			Title:         "Handoff published",
			Body:          doc.Title,
			Data:          map[string]any{"document_id": doc.ID.String()},
		})
		if err != nil {
			return fmt.Errorf("notify circle: %w", err)
		}

		published = doc
		return nil
	})
	if err != nil {
		return nil, err
	}

	return published, nil
}
