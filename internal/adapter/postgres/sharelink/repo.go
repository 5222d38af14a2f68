// Package sharelink implements capability-token persistence using PostgreSQL.
package sharelink

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/careloop/careloop-backend/internal/adapter/postgres"
	"github.com/careloop/careloop-backend/internal/domain"
)

// Repo provides share link and access log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new share link repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const linkColumns = `id, circle_id, object_type, object_id, token, expires_at, revoked_at,
	max_access_count, access_count, last_accessed_at, created_by, created_at`

const createLinkSQL = `INSERT INTO share_links
	(id, circle_id, object_type, object_id, token, expires_at, max_access_count, access_count, created_by, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9)`

// Create inserts a new share link. A token collision surfaces as
// domain.ErrAlreadyExists via the unique constraint.
func (r *Repo) Create(ctx context.Context, link *domain.ShareLink) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createLinkSQL,
		link.ID, link.CircleID, link.ObjectType, link.ObjectID, link.Token,
		link.ExpiresAt, link.MaxAccessCount, link.CreatedBy, link.CreatedAt,
	)
	if err != nil {
		return mapError(err, link.ID.String())
	}

	return nil
}

const getByIDSQL = `SELECT ` + linkColumns + ` FROM share_links WHERE id = $1`

// GetByID returns a share link by primary key.
func (r *Repo) GetByID(ctx context.Context, linkID uuid.UUID) (*domain.ShareLink, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	link, err := scanLink(querier.QueryRow(ctx, getByIDSQL, linkID))
	if err != nil {
		return nil, mapError(err, linkID.String())
	}

	return link, nil
}

const getByTokenSQL = `SELECT ` + linkColumns + ` FROM share_links WHERE token = $1`

// GetByToken returns a share link by its opaque token.
// Returns domain.ErrNotFound if no link carries the token.
func (r *Repo) GetByToken(ctx context.Context, token string) (*domain.ShareLink, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	link, err := scanLink(querier.QueryRow(ctx, getByTokenSQL, token))
	if err != nil {
		return nil, mapError(err, "by token")
	}

	return link, nil
}

// consumeAccessSQL re-checks every usability condition in the same statement
// as the increment, so two concurrent resolutions of a nearly-exhausted link
// cannot both pass the limit check.
const consumeAccessSQL = `UPDATE share_links
	SET access_count = access_count + 1, last_accessed_at = $2
	WHERE token = $1
	  AND revoked_at IS NULL
	  AND expires_at > $2
	  AND (max_access_count IS NULL OR access_count < max_access_count)
	RETURNING ` + linkColumns

// ConsumeAccess atomically records one successful resolution of the token.
// When the guarded update misses, the link is re-read to classify the
// failure: ErrNotFound, ErrExpired, ErrRevoked, or ErrAccessLimitReached.
func (r *Repo) ConsumeAccess(ctx context.Context, token string, now time.Time) (*domain.ShareLink, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	link, err := scanLink(querier.QueryRow(ctx, consumeAccessSQL, token, now))
	if err == nil {
		return link, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, mapError(err, "by token")
	}

	// Zero rows: the link is missing or unusable. Classify.
	link, err = r.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if usabilityErr := link.UsableAt(now); usabilityErr != nil {
		return nil, fmt.Errorf("share link %s: %w", link.ID, usabilityErr)
	}
	// Usable on re-read but the update missed: lost a race with another
	// resolution that exhausted the limit in between.
	return nil, fmt.Errorf("share link %s: %w", link.ID, domain.ErrAccessLimitReached)
}

const revokeSQL = `UPDATE share_links
	SET revoked_at = $2
	WHERE id = $1 AND revoked_at IS NULL`

// Revoke sets revoked_at exactly once. Returns true if this call performed
// the revocation; revoking twice is a no-op.
func (r *Repo) Revoke(ctx context.Context, linkID uuid.UUID, revokedAt time.Time) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, revokeSQL, linkID, revokedAt)
	if err != nil {
		return false, mapError(err, linkID.String())
	}

	return tag.RowsAffected() > 0, nil
}

const insertAccessLogSQL = `INSERT INTO share_link_access_log
	(id, link_id, requester_hash, accessed_at)
	VALUES ($1, $2, $3, $4)`

// InsertAccessLog appends one access-log row. RequesterHash must already be
// a fingerprint; this layer never sees raw requester metadata.
func (r *Repo) InsertAccessLog(ctx context.Context, access domain.ShareLinkAccess) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, insertAccessLogSQL,
		access.ID, access.LinkID, access.RequesterHash, access.AccessedAt,
	)
	if err != nil {
		return mapError(err, access.ID.String())
	}

	return nil
}

const listAccessLogSQL = `SELECT id, link_id, requester_hash, accessed_at
	FROM share_link_access_log
	WHERE link_id = $1
	ORDER BY accessed_at`

// ListAccessLog returns the recorded resolutions of a link, oldest first.
func (r *Repo) ListAccessLog(ctx context.Context, linkID uuid.UUID) ([]domain.ShareLinkAccess, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listAccessLogSQL, linkID)
	if err != nil {
		return nil, fmt.Errorf("list share_link_access_log: %w", err)
	}
	defer rows.Close()

	var accesses []domain.ShareLinkAccess
	for rows.Next() {
		var access domain.ShareLinkAccess
		if err := rows.Scan(&access.ID, &access.LinkID, &access.RequesterHash, &access.AccessedAt); err != nil {
			return nil, fmt.Errorf("scan share_link_access: %w", err)
		}
		accesses = append(accesses, access)
	}

	return accesses, rows.Err()
}

const deleteExpiredSQL = `DELETE FROM share_links WHERE expires_at < $1`

// DeleteExpired removes links whose expiry is before the cutoff. Access log
// rows follow via cascade.
func (r *Repo) DeleteExpired(ctx context.Context, cutoff time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteExpiredSQL, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired share links: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, ref string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("share link %s: %w", ref, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("share link %s: %w", ref, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("share link %s: %w", ref, domain.ErrAlreadyExists)
		case "23503":
			return fmt.Errorf("share link %s: %w", ref, domain.ErrNotFound)
		case "23514":
			return fmt.Errorf("share link %s: %w", ref, domain.ErrValidation)
		case "40001", "40P01":
			return fmt.Errorf("share link %s: %w", ref, domain.ErrConflict)
		}
	}

	return fmt.Errorf("share link %s: %w", ref, err)
}

// scanLink reads one share link row from a pgx.Row or pgx.Rows.
func scanLink(row pgx.Row) (*domain.ShareLink, error) {
	var (
		link           domain.ShareLink
		revokedAt      pgtype.Timestamptz
		maxAccessCount pgtype.Int4
		lastAccessedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&link.ID, &link.CircleID, &link.ObjectType, &link.ObjectID, &link.Token,
		&link.ExpiresAt, &revokedAt, &maxAccessCount, &link.AccessCount,
		&lastAccessedAt, &link.CreatedBy, &link.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if revokedAt.Valid {
		ts := revokedAt.Time
		link.RevokedAt = &ts
	}
	if maxAccessCount.Valid {
		n := int(maxAccessCount.Int32)
		link.MaxAccessCount = &n
	}
	if lastAccessedAt.Valid {
		ts := lastAccessedAt.Time
		link.LastAccessedAt = &ts
	}

	return &link, nil
}
