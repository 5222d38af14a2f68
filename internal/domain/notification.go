package domain

import (
	"time"

	"github.com/google/uuid"
)

// OutboxEntry is a durable notification awaiting delivery by the external
// worker. Producers insert PENDING rows; only the worker transitions them
// to SENT or FAILED.
type OutboxEntry struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	CircleID      uuid.UUID
	Type          string
	Title         string
	Body          string
	Data          map[string]any
	Status        OutboxStatus
	Attempts      int
	LastAttemptAt *time.Time
	LastError     *string
	CreatedAt     time.Time
}
