package inbox

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	"github.com/careloop/careloop-backend/pkg/ctxutil"
)

// Get returns an inbox item the actor is allowed to see.
func (s *Service) Get(ctx context.Context, itemID uuid.UUID) (*domain.InboxItem, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if itemID == uuid.Nil {
		return nil, domain.NewValidationError("item_id", "required")
	}

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("get inbox item: %w", err)
	}

	member, err := s.access.IsMember(ctx, item.CircleID, actorID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if !member {
		return nil, domain.ErrForbidden
	}

	return item, nil
}

// List returns a circle's inbox items, newest first, optionally filtered by
// status.
func (s *Service) List(ctx context.Context, input ListInput) ([]*domain.InboxItem, error) {
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

	items, err := s.items.ListByCircle(ctx, input.CircleID, input.Status, limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list inbox items: %w", err)
	}
	if items == nil {
		items = []*domain.InboxItem{}
	}

	return items, nil
}

// ListTriageLog returns the triage decisions recorded for an item, oldest
// first. Get performs the membership check.
func (s *Service) ListTriageLog(ctx context.Context, itemID uuid.UUID) ([]domain.TriageLogEntry, error) {
	if _, err := s.Get(ctx, itemID); err != nil {
		return nil, err
	}

	entries, err := s.items.ListTriageLog(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("list triage log: %w", err)
	}
	if entries == nil {
		entries = []domain.TriageLogEntry{}
	}

	return entries, nil
}
