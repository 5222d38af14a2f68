package domain

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Document is a revisioned record shared by handoffs and binder items.
// CurrentRevision is the only mutable pointer into its history: every
// committed content change appends exactly one Revision row snapshotting
// the content as it was before the change.
type Document struct {
	ID              uuid.UUID
	CircleID        uuid.UUID
	PatientID       *uuid.UUID
	Kind            DocumentKind
	BinderType      *BinderItemType // set for BINDER kind only
	Title           string
	Content         map[string]any
	CurrentRevision int
	Status          DocumentStatus
	PublishedAt     *time.Time
	CreatedBy       uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsPublished returns true once the handoff has been published.
func (d *Document) IsPublished() bool {
	return d.PublishedAt != nil
}

// Revision is an immutable content snapshot. Revision numbers are strictly
// increasing per document, unique per (document, revision), never mutated
// or deleted.
type Revision struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	Revision   int
	Content    map[string]any
	EditedBy   uuid.UUID
	CreatedAt  time.Time
}

// ContentEqual reports whether two content blobs are semantically identical.
// Both sides come from JSONB round-trips, so deep equality on the decoded
// form is the comparison (key order and whitespace never survive decoding).
func ContentEqual(a, b map[string]any) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}
