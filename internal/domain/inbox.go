package domain

import (
	"time"

	"github.com/google/uuid"
)

// InboxItem is a quick-capture record awaiting triage.
type InboxItem struct {
	ID           uuid.UUID
	CircleID     uuid.UUID
	CapturedBy   uuid.UUID
	Kind         InboxKind
	Title        *string
	Note         *string
	AttachmentID *uuid.UUID
	PatientID    *uuid.UUID
	AssigneeID   *uuid.UUID
	Status       InboxStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TriageLogEntry is the immutable record of a triage decision.
// DestinationID is nil for the ARCHIVE destination: no entity is created,
// but the decision is still logged.
type TriageLogEntry struct {
	ID            uuid.UUID
	ItemID        uuid.UUID
	ActorID       uuid.UUID
	Destination   TriageDestination
	DestinationID *uuid.UUID
	Note          *string
	CreatedAt     time.Time
}
