// Package membership implements the circle membership reads backing the
// access predicate. Membership administration (joining, role changes) lives
// in another system; this repository only answers authorization questions.
package membership

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/careloop/careloop-backend/internal/adapter/postgres"
	"github.com/careloop/careloop-backend/internal/domain"
)

// Repo provides circle membership reads backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new membership repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getMemberSQL = `SELECT circle_id, user_id, role, status, created_at
	FROM circle_members
	WHERE circle_id = $1 AND user_id = $2`

// Get returns the membership row for a user in a circle.
// Returns domain.ErrNotFound when the user has no membership at all.
func (r *Repo) Get(ctx context.Context, circleID, userID uuid.UUID) (*domain.Member, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var member domain.Member
	err := querier.QueryRow(ctx, getMemberSQL, circleID, userID).Scan(
		&member.CircleID, &member.UserID, &member.Role, &member.Status, &member.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("membership %s/%s: %w", circleID, userID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("membership %s/%s: %w", circleID, userID, err)
	}

	return &member, nil
}

// IsMember reports whether the user is an ACTIVE member of the circle.
func (r *Repo) IsMember(ctx context.Context, circleID, userID uuid.UUID) (bool, error) {
	member, err := r.Get(ctx, circleID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return member.Status == domain.MemberStatusActive, nil
}

// HasRole reports whether the user is an ACTIVE member holding at least the
// given role.
func (r *Repo) HasRole(ctx context.Context, circleID, userID uuid.UUID, minRole domain.Role) (bool, error) {
	member, err := r.Get(ctx, circleID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if member.Status != domain.MemberStatusActive {
		return false, nil
	}

	return member.Role.AtLeast(minRole), nil
}
