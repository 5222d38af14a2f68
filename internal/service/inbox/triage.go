package inbox

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	auditsvc "github.com/careloop/careloop-backend/internal/service/audit"
	outboxsvc "github.com/careloop/careloop-backend/internal/service/outbox"
	"github.com/careloop/careloop-backend/pkg/ctxutil"
)

// Triage routes an untriaged item to its destination exactly once. HANDOFF
// seeds a draft handoff document, TASK creates a task, BINDER creates a
// binder item, ARCHIVE creates nothing. The destination entity, the status
// flip, the triage log entry, the audit event and the notification fan-out
// commit in one transaction; a second triage of the same item surfaces
// domain.ErrAlreadyTriaged.
func (s *Service) Triage(ctx context.Context, input TriageInput) (*domain.TriageLogEntry, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	item, err := s.items.GetByID(ctx, input.ItemID)
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

	var entry *domain.TriageLogEntry

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		locked, err := s.items.GetForUpdate(txCtx, input.ItemID)
		if err != nil {
			return fmt.Errorf("lock inbox item: %w", err)
		}
		if !locked.Status.Triageable() {
			return fmt.Errorf("inbox_item %s: %w", locked.ID, domain.ErrAlreadyTriaged)
		}

		now := s.now()

		var destinationID *uuid.UUID
		terminal := domain.InboxStatusTriaged

		switch input.Destination {
		case domain.TriageDestinationHandoff:
			destinationID, err = s.triageToHandoff(txCtx, locked, input, actorID)
		case domain.TriageDestinationTask:
			destinationID, err = s.triageToTask(txCtx, locked, input, actorID)
		case domain.TriageDestinationBinder:
			destinationID, err = s.triageToBinder(txCtx, locked, input, actorID)
		case domain.TriageDestinationArchive:
			terminal = domain.InboxStatusArchived
		}
		if err != nil {
			return err
		}

		if err := s.items.MarkTriaged(txCtx, locked.ID, terminal, now); err != nil {
			return fmt.Errorf("mark triaged: %w", err)
		}

		entry = &domain.TriageLogEntry{
			ID:            uuid.New(),
			ItemID:        locked.ID,
			ActorID:       actorID,
			Destination:   input.Destination,
			DestinationID: destinationID,
			Note:          input.Note,
			CreatedAt:     now,
		}
		if err := s.items.InsertTriageLog(txCtx, *entry); err != nil {
			return fmt.Errorf("insert triage log: %w", err)
		}

		metadata := map[string]any{"destination": input.Destination.String()}
		if destinationID != nil {
			metadata["destination_id"] = destinationID.String()
		}
		itemID := locked.ID
		_, err = s.audit.Record(txCtx, auditsvc.RecordInput{
			CircleID:   locked.CircleID,
			ActorID:    actorID,
			EventType:  domain.AuditEventInboxItemTriaged,
			ObjectType: objectTypeInboxItem,
			ObjectID:   &itemID,
			Metadata:   metadata,
		})
		if err != nil {
			return fmt.Errorf("audit: %w", err)
		}

		_, err = s.notifier.FanOut(txCtx, outboxsvc.FanOutInput{
			CircleID:      locked.CircleID,
			ExcludeUserID: actorID,
			Type:          domain.AuditEventInboxItemTriaged,
			Title:         "Inbox item triaged",
			Body:          titleOr(locked.Title, "Captured item"),
			Data:          metadata,
		})
		if err != nil {
			return fmt.Errorf("notify circle: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "inbox item triaged",
		slog.String("item_id", input.ItemID.String()),
		slog.String("destination", input.Destination.String()),
		slog.String("actor_id", actorID.String()),
	)

	return entry, nil
}

// triageToHandoff seeds a draft handoff from the item. The item's patient
// wins over a caller-supplied one.
func (s *Service) triageToHandoff(ctx context.Context, item *domain.InboxItem, input TriageInput, actorID uuid.UUID) (*uuid.UUID, error) {
	patientID := item.PatientID
	if patientID == nil {
		patientID = input.PatientID
	}

	content := map[string]any{}
	if item.Note != nil {
		content["text"] = *item.Note
	}

	now := s.now()
	doc := &domain.Document{
		ID:        uuid.New(),
		CircleID:  item.CircleID,
		PatientID: patientID,
		Kind:      domain.DocumentKindHandoff,
		Title:     titleOr(item.Title, "Handoff"),
		Content:   content,
		Status:    domain.DocumentStatusDraft,
		CreatedBy: actorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create handoff draft: %w", err)
	}

	if err := s.reparent(ctx, item, doc.ID); err != nil {
		return nil, err
	}

	return &doc.ID, nil
}

// triageToTask creates a task from the item. The assignee falls back to the
// item's assignee and finally to the triaging actor.
func (s *Service) triageToTask(ctx context.Context, item *domain.InboxItem, input TriageInput, actorID uuid.UUID) (*uuid.UUID, error) {
	assigneeID := actorID
	if item.AssigneeID != nil {
		assigneeID = *item.AssigneeID
	}
	if input.AssigneeID != nil {
		assigneeID = *input.AssigneeID
	}

	if assigneeID != actorID {
		member, err := s.access.IsMember(ctx, item.CircleID, assigneeID)
		if err != nil {
			return nil, fmt.Errorf("check assignee membership: %w", err)
		}
		if !member {
			return nil, domain.NewValidationError("assignee_id", "not an active circle member")
		}
	}

	priority := domain.TaskPriorityMed
	if input.Priority != nil {
		priority = *input.Priority
	}

	description := titleOr(item.Note, "")
	if description == "" {
		description = titleOr(item.Title, "Follow up on captured item")
	}

	now := s.now()
	task := &domain.Task{
		ID:          uuid.New(),
		CircleID:    item.CircleID,
		AssigneeID:  assigneeID,
		CreatedBy:   actorID,
		Description: description,
		DueDate:     input.DueDate,
		Priority:    priority,
		Status:      domain.TaskStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return &task.ID, nil
}

// triageToBinder creates a binder item from the item. File captures become
// DOC entries carrying the attachment reference; everything else becomes a
// NOTE.
func (s *Service) triageToBinder(ctx context.Context, item *domain.InboxItem, input TriageInput, actorID uuid.UUID) (*uuid.UUID, error) {
	binderType := domain.BinderItemTypeNote
	if item.Kind.IsFile() {
		binderType = domain.BinderItemTypeDoc
	}

	content := map[string]any{"source": "inbox"}
	if item.Note != nil {
		content["text"] = *item.Note
	}
	if item.AttachmentID != nil {
		content["attachment_id"] = item.AttachmentID.String()
	}

	now := s.now()
	doc := &domain.Document{
		ID:         uuid.New(),
		CircleID:   item.CircleID,
		PatientID:  item.PatientID,
		Kind:       domain.DocumentKindBinder,
		BinderType: &binderType,
		Title:      titleOr(item.Title, "Binder item"),
		Content:    content,
		Status:     domain.DocumentStatusActive,
		CreatedBy:  actorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("create binder item: %w", err)
	}

	if err := s.reparent(ctx, item, doc.ID); err != nil {
		return nil, err
	}

	return &doc.ID, nil
}

// reparent moves the item's attachment, if any, under the created document.
// The attachment store is external, so this call is not covered by the
// surrounding transaction: if a later step rolls the transaction back, the
// attachment stays under the new parent until the triage is retried.
func (s *Service) reparent(ctx context.Context, item *domain.InboxItem, docID uuid.UUID) error {
	if item.AttachmentID == nil {
		return nil
	}
	if err := s.attachments.ReparentAttachment(ctx, *item.AttachmentID, parentTypeDocument, docID); err != nil {
		return fmt.Errorf("reparent attachment: %w", err)
	}
	return nil
}

func titleOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
