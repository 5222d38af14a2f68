package inbox

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
)

// CaptureInput holds the parameters for capturing a new inbox item.
type CaptureInput struct {
	CircleID     uuid.UUID
	Kind         domain.InboxKind
	Title        *string
	Note         *string
	AttachmentID *uuid.UUID
	PatientID    *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i CaptureInput) Validate() error {
	var errs []domain.FieldError

	if i.CircleID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "circle_id", Message: "required"})
	}
	if !i.Kind.IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "invalid kind"})
	}
	if i.Kind.IsValid() && i.Kind.IsFile() && i.AttachmentID == nil {
		errs = append(errs, domain.FieldError{Field: "attachment_id", Message: "required for file captures"})
	}
	if i.Kind == domain.InboxKindText && emptyPtr(i.Title) && emptyPtr(i.Note) {
		errs = append(errs, domain.FieldError{Field: "note", Message: "text capture needs a title or a note"})
	}
	if i.Title != nil && len(*i.Title) > 200 {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput holds the parameters for listing a circle's inbox.
type ListInput struct {
	CircleID uuid.UUID
	Status   *domain.InboxStatus
	Limit    int
	Offset   int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.CircleID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "circle_id", Message: "required"})
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid status"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must not be negative"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AssignInput holds the parameters for assigning an untriaged item.
type AssignInput struct {
	ItemID     uuid.UUID
	AssigneeID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i AssignInput) Validate() error {
	var errs []domain.FieldError

	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "item_id", Message: "required"})
	}
	if i.AssigneeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "assignee_id", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// TriageInput holds the parameters for a triage decision. The destination
// selects which of the optional fields apply: PatientID for HANDOFF,
// AssigneeID, Priority and DueDate for TASK. ARCHIVE takes none.
type TriageInput struct {
	ItemID      uuid.UUID
	Destination domain.TriageDestination
	Note        *string

	PatientID *uuid.UUID

	AssigneeID *uuid.UUID
	Priority   *domain.TaskPriority
	DueDate    *time.Time
}

// Validate checks all fields and collects all errors.
func (i TriageInput) Validate() error {
	var errs []domain.FieldError

	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "item_id", Message: "required"})
	}
	if !i.Destination.IsValid() {
		errs = append(errs, domain.FieldError{Field: "destination", Message: "invalid destination"})
	}
	if i.Priority != nil && !i.Priority.IsValid() {
		errs = append(errs, domain.FieldError{Field: "priority", Message: "invalid priority"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func emptyPtr(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
