package domain

import (
	"time"

	"github.com/google/uuid"
)

// ShareLink is a capability token: an unguessable bearer credential granting
// time- and count-bounded access to one object without account login.
type ShareLink struct {
	ID             uuid.UUID
	CircleID       uuid.UUID
	ObjectType     string
	ObjectID       uuid.UUID
	Token          string
	ExpiresAt      time.Time
	RevokedAt      *time.Time
	MaxAccessCount *int
	AccessCount    int
	LastAccessedAt *time.Time
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
}

// UsableAt reports whether the link can be resolved at the given instant,
// returning the matching sentinel error when it cannot. Check order is
// expiry, revocation, access limit.
func (l *ShareLink) UsableAt(now time.Time) error {
	if !now.Before(l.ExpiresAt) {
		return ErrExpired
	}
	if l.RevokedAt != nil {
		return ErrRevoked
	}
	if l.MaxAccessCount != nil && l.AccessCount >= *l.MaxAccessCount {
		return ErrAccessLimitReached
	}
	return nil
}

// ShareLinkAccess is one successful resolution of a link. RequesterHash is
// a hash of the requester metadata; raw IPs or user agents are never stored.
type ShareLinkAccess struct {
	ID            uuid.UUID
	LinkID        uuid.UUID
	RequesterHash string
	AccessedAt    time.Time
}
