package document

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	"github.com/careloop/careloop-backend/pkg/ctxutil"
)

// Get returns a document the actor is allowed to see.
func (s *Service) Get(ctx context.Context, docID uuid.UUID) (*domain.Document, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if docID == uuid.Nil {
		return nil, domain.NewValidationError("doc_id", "required")
	}

	doc, err := s.docs.GetByID(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}

	member, err := s.access.IsMember(ctx, doc.CircleID, actorID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if !member {
		return nil, domain.ErrForbidden
	}

	return doc, nil
}

// GetRevision returns one historical revision of a document.
func (s *Service) GetRevision(ctx context.Context, docID uuid.UUID, revision int) (*domain.Revision, error) {
	if revision < 1 {
		return nil, domain.NewValidationError("revision", "must be positive")
	}

	// Get performs the membership check.
	if _, err := s.Get(ctx, docID); err != nil {
		return nil, err
	}

	rev, err := s.docs.GetRevision(ctx, docID, revision)
	if err != nil {
		return nil, fmt.Errorf("get revision: %w", err)
	}

	return rev, nil
}

// ListRevisions returns a document's full revision history in ascending order.
func (s *Service) ListRevisions(ctx context.Context, docID uuid.UUID) ([]domain.Revision, error) {
	if _, err := s.Get(ctx, docID); err != nil {
		return nil, err
	}

	revs, err := s.docs.ListRevisions(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("list revisions: %w", err)
	}
	if revs == nil {
		revs = []domain.Revision{}
	}

	return revs, nil
}

// List returns documents of one kind in a circle, most recently updated first.
func (s *Service) List(ctx context.Context, input ListInput) ([]*domain.Document, error) {
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

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	docs, err := s.docs.ListByCircle(ctx, input.CircleID, input.Kind, limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	if docs == nil {
		docs = []*domain.Document{}
	}

	return docs, nil
}
