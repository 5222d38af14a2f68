// Package audit implements the append-only audit ledger using PostgreSQL.
// The repository exposes Append and List only: no update or delete path
// exists, and no retention job touches the table.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/careloop/careloop-backend/internal/adapter/postgres"
	"github.com/careloop/careloop-backend/internal/domain"
)

// Repo provides audit event persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const appendSQL = `INSERT INTO audit_events
	(id, circle_id, actor_id, event_type, object_type, object_id, metadata, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// Append inserts one audit event.
func (r *Repo) Append(ctx context.Context, event domain.AuditEvent) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	metadataJSON, err := json.Marshal(event.Metadata)
	if err != nil {
		return fmt.Errorf("audit_event marshal metadata: %w", err)
	}

	var objectID pgtype.UUID
	if event.ObjectID != nil {
		objectID = pgtype.UUID{Bytes: *event.ObjectID, Valid: true}
	}

	_, err = querier.Exec(ctx, appendSQL,
		event.ID, event.CircleID, event.ActorID, event.EventType,
		event.ObjectType, objectID, metadataJSON, event.CreatedAt,
	)
	if err != nil {
		return mapError(err, event.ID)
	}

	return nil
}

// List returns audit events matching the filter, newest first. Filter fields
// are combined with AND; nil fields are skipped.
func (r *Repo) List(ctx context.Context, filter domain.AuditFilter) ([]domain.AuditEvent, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	builder := sq.Select("id", "circle_id", "actor_id", "event_type", "object_type", "object_id", "metadata", "created_at").
		From("audit_events").
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.CircleID != nil {
		builder = builder.Where(sq.Eq{"circle_id": *filter.CircleID})
	}
	if filter.ActorID != nil {
		builder = builder.Where(sq.Eq{"actor_id": *filter.ActorID})
	}
	if filter.EventType != nil {
		builder = builder.Where(sq.Eq{"event_type": *filter.EventType})
	}
	if filter.Since != nil {
		builder = builder.Where(sq.GtOrEq{"created_at": *filter.Since})
	}
	if filter.Until != nil {
		builder = builder.Where(sq.Lt{"created_at": *filter.Until})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build audit query: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit_events: %w", err)
	}
	defer rows.Close()

	var events []domain.AuditEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan audit_event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("audit_event %s: %w", id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("audit_event %s: %w", id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("audit_event %s: %w", id, domain.ErrAlreadyExists)
		case "23514":
			return fmt.Errorf("audit_event %s: %w", id, domain.ErrValidation)
		case "40001", "40P01":
			return fmt.Errorf("audit_event %s: %w", id, domain.ErrConflict)
		}
	}

	return fmt.Errorf("audit_event %s: %w", id, err)
}

// scanEvent reads one audit event row from a pgx.Row or pgx.Rows.
func scanEvent(row pgx.Row) (domain.AuditEvent, error) {
	var (
		event        domain.AuditEvent
		objectID     pgtype.UUID
		metadataJSON []byte
	)

	err := row.Scan(
		&event.ID, &event.CircleID, &event.ActorID, &event.EventType,
		&event.ObjectType, &objectID, &metadataJSON, &event.CreatedAt,
	)
	if err != nil {
		return domain.AuditEvent{}, err
	}

	if objectID.Valid {
		id := uuid.UUID(objectID.Bytes)
		event.ObjectID = &id
	}
	if len(metadataJSON) > 0 {
		event.Metadata = make(map[string]any)
		if err := json.Unmarshal(metadataJSON, &event.Metadata); err != nil {
			return domain.AuditEvent{}, fmt.Errorf("audit_event %s unmarshal metadata: %w", event.ID, err)
		}
	}

	return event, nil
}
