package inbox

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	"github.com/careloop/careloop-backend/pkg/ctxutil"
)

// Capture records a new inbox item in NEW status. Any active circle member
// can capture; triage happens later and separately.
func (s *Service) Capture(ctx context.Context, input CaptureInput) (*domain.InboxItem, error) {
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

	now := s.now()
	item := &domain.InboxItem{
		ID:           uuid.New(),
		CircleID:     input.CircleID,
		CapturedBy:   actorID,
		Kind:         input.Kind,
		Title:        input.Title,
		Note:         input.Note,
		AttachmentID: input.AttachmentID,
		PatientID:    input.PatientID,
		Status:       domain.InboxStatusNew,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create inbox item: %w", err)
	}

	s.log.InfoContext(ctx, "inbox item captured",
		slog.String("item_id", item.ID.String()),
		slog.String("circle_id", item.CircleID.String()),
		slog.String("kind", item.Kind.String()),
	)

	return item, nil
}
