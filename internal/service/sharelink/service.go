// Package sharelink provides capability tokens: unguessable bearer links
// granting time- and count-bounded read access to one object without login.
package sharelink

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	auditsvc "github.com/careloop/careloop-backend/internal/service/audit"
)

type linkRepo interface {
	Create(ctx context.Context, link *domain.ShareLink) error
	GetByID(ctx context.Context, linkID uuid.UUID) (*domain.ShareLink, error)
	GetByToken(ctx context.Context, token string) (*domain.ShareLink, error)
	ConsumeAccess(ctx context.Context, token string, now time.Time) (*domain.ShareLink, error)
	Revoke(ctx context.Context, linkID uuid.UUID, revokedAt time.Time) (bool, error)
	InsertAccessLog(ctx context.Context, access domain.ShareLinkAccess) error
	ListAccessLog(ctx context.Context, linkID uuid.UUID) ([]domain.ShareLinkAccess, error)
}

type accessPredicate interface {
	HasRole(ctx context.Context, circleID, userID uuid.UUID, minRole domain.Role) (bool, error)
	IsMember(ctx context.Context, circleID, userID uuid.UUID) (bool, error)
}

type auditRecorder interface {
	Record(ctx context.Context, input auditsvc.RecordInput) (uuid.UUID, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const (
	// DefaultTTL bounds links whose caller did not pick an expiry.
	DefaultTTL = 7 * 24 * time.Hour
	// MaxTTL caps how far out any link may expire.
	MaxTTL = 90 * 24 * time.Hour

	objectTypeShareLink = "SHARE_LINK"
)

// Service provides share link issuance, resolution and revocation.
type Service struct {
	links  linkRepo
	access accessPredicate
	audit  auditRecorder
	tx     txManager
	now    func() time.Time
	log    *slog.Logger
}

// NewService creates a new ShareLink service.
func NewService(
	log *slog.Logger,
	links linkRepo,
	access accessPredicate,
	audit auditRecorder,
	tx txManager,
) *Service {
	return &Service{
		links:  links,
		access: access,
		audit:  audit,
		tx:     tx,
		now:    func() time.Time { return time.Now().UTC() },
		log:    log.With("service", "sharelink"),
	}
}
