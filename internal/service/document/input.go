package document

import (
	"strings"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
)

// UpdateInput holds the parameters for updating a document.
// Content nil means "leave content alone"; likewise Title and Status.
type UpdateInput struct {
	DocID   uuid.UUID
	Content map[string]any
	Title   *string
	Status  *domain.DocumentStatus
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.DocID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "doc_id", Message: "required"})
	}
	if i.Content == nil && i.Title == nil && i.Status == nil {
		errs = append(errs, domain.FieldError{Field: "input", Message: "at least one field must be provided"})
	}
	if i.Title != nil {
		title := strings.TrimSpace(*i.Title)
		if title == "" {
			errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
		}
		if len(title) > 200 {
			errs = append(errs, domain.FieldError{Field: "title", Message: "max 200 characters"})
		}
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid status"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// PublishInput holds the parameters for publishing a handoff.
// Content, when set, is saved in the same transaction as the publish.
type PublishInput struct {
	DocID   uuid.UUID
	Content map[string]any
}

// Validate checks all fields and collects all errors.
func (i PublishInput) Validate() error {
	if i.DocID == uuid.Nil {
		return domain.NewValidationError("doc_id", "required")
	}
	return nil
}

// ListInput holds the parameters for listing documents in a circle.
type ListInput struct {
	CircleID uuid.UUID
	Kind     domain.DocumentKind
	Limit    int
	Offset   int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.CircleID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "circle_id", Message: "required"})
	}
	if !i.Kind.IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "invalid kind"})
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
