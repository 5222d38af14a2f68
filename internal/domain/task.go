package domain

import (
	"time"

	"github.com/google/uuid"
)

// Task is a care task, typically created by triaging an inbox item.
type Task struct {
	ID          uuid.UUID
	CircleID    uuid.UUID
	AssigneeID  uuid.UUID
	CreatedBy   uuid.UUID
	Description string
	DueDate     *time.Time
	Priority    TaskPriority
	Status      TaskStatus
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
