package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit event types emitted by the core. The column is an open string enum:
// new producers add types without a migration.
const (
	AuditEventDocumentUpdated   = "DOCUMENT_UPDATED"
	AuditEventHandoffPublished  = "HANDOFF_PUBLISHED"
	AuditEventInboxItemTriaged  = "INBOX_ITEM_TRIAGED"
	AuditEventInboxItemAssigned = "INBOX_ITEM_ASSIGNED"
	AuditEventShareLinkIssued   = "SHARE_LINK_ISSUED"
	AuditEventShareLinkResolved = "SHARE_LINK_RESOLVED"
	AuditEventShareLinkRevoked  = "SHARE_LINK_REVOKED"
)

// AuditEvent is an append-only record of a sensitive action. Audit events
// are never updated or deleted by application code; no purge path exists.
type AuditEvent struct {
	ID         uuid.UUID
	CircleID   uuid.UUID
	ActorID    uuid.UUID
	EventType  string
	ObjectType string
	ObjectID   *uuid.UUID
	Metadata   map[string]any
	CreatedAt  time.Time
}

// AuditFilter narrows the admin read surface over audit events.
// Nil fields are not applied.
type AuditFilter struct {
	CircleID  *uuid.UUID
	ActorID   *uuid.UUID
	EventType *string
	Since     *time.Time
	Until     *time.Time
	Limit     int
	Offset    int
}
