package domain

import (
	"time"

	"github.com/google/uuid"
)

// Member is a user's membership in a circle.
type Member struct {
	CircleID  uuid.UUID
	UserID    uuid.UUID
	Role      Role
	Status    MemberStatus
	CreatedAt time.Time
}
