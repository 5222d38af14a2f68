// Package inbox implements persistence for quick-capture inbox items and the
// triage log using PostgreSQL.
package inbox

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

// Repo provides inbox item and triage log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new inbox repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const inboxColumns = `id, circle_id, captured_by, kind, title, note, attachment_id,
	patient_id, assignee_id, status, created_at, updated_at`

const createItemSQL = `INSERT INTO inbox_items
	(id, circle_id, captured_by, kind, title, note, attachment_id, patient_id, assignee_id, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

// Create inserts a new inbox item.
func (r *Repo) Create(ctx context.Context, item *domain.InboxItem) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createItemSQL,
		item.ID, item.CircleID, item.CapturedBy, string(item.Kind),
		item.Title, item.Note,
		uuidPtrToPgUUID(item.AttachmentID), uuidPtrToPgUUID(item.PatientID), uuidPtrToPgUUID(item.AssigneeID),
		string(item.Status), item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "inbox_item", item.ID)
	}

	return nil
}

const getItemSQL = `SELECT ` + inboxColumns + ` FROM inbox_items WHERE id = $1`

// GetByID returns an inbox item by primary key.
// Returns domain.ErrNotFound if the item does not exist.
func (r *Repo) GetByID(ctx context.Context, itemID uuid.UUID) (*domain.InboxItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	item, err := scanItem(querier.QueryRow(ctx, getItemSQL, itemID))
	if err != nil {
		return nil, mapError(err, "inbox_item", itemID)
	}

	return item, nil
}

const getItemForUpdateSQL = getItemSQL + ` FOR UPDATE`

// GetForUpdate returns an inbox item by primary key, taking a row lock so that
// concurrent triage attempts serialize. Only meaningful inside a transaction.
func (r *Repo) GetForUpdate(ctx context.Context, itemID uuid.UUID) (*domain.InboxItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	item, err := scanItem(querier.QueryRow(ctx, getItemForUpdateSQL, itemID))
	if err != nil {
		return nil, mapError(err, "inbox_item", itemID)
	}

	return item, nil
}

const listByCircleSQL = `SELECT ` + inboxColumns + `
	FROM inbox_items
	WHERE circle_id = $1 AND ($2::text IS NULL OR status = $2)
	ORDER BY created_at DESC
	LIMIT $3 OFFSET $4`

// ListByCircle returns inbox items in a circle, newest first, optionally
// filtered by status.
func (r *Repo) ListByCircle(ctx context.Context, circleID uuid.UUID, status *domain.InboxStatus, limit, offset int) ([]*domain.InboxItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var statusArg pgtype.Text
	if status != nil {
		statusArg = pgtype.Text{String: string(*status), Valid: true}
	}

	rows, err := querier.Query(ctx, listByCircleSQL, circleID, statusArg, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inbox_items: %w", err)
	}
	defer rows.Close()

	var items []*domain.InboxItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inbox_item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

const setAssigneeSQL = `UPDATE inbox_items
	SET assignee_id = $2, status = $3, updated_at = $4
	WHERE id = $1 AND status IN ('NEW', 'ASSIGNED')`

// SetAssignee assigns (or re-assigns) an item that has not been triaged yet.
// Returns domain.ErrAlreadyTriaged when the item is already terminal.
func (r *Repo) SetAssignee(ctx context.Context, itemID, assigneeID uuid.UUID, updatedAt time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, setAssigneeSQL, itemID, assigneeID, string(domain.InboxStatusAssigned), updatedAt)
	if err != nil {
		return mapError(err, "inbox_item", itemID)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMissedUpdate(ctx, itemID)
	}

	return nil
}

const markTriagedSQL = `UPDATE inbox_items
	SET status = $2, updated_at = $3
	WHERE id = $1 AND status IN ('NEW', 'ASSIGNED')`

// MarkTriaged flips an untriaged item into a terminal status (TRIAGED, or
// ARCHIVED for the archive destination). The status guard in the WHERE clause
// makes the flip one-shot: a retry or a lost race affects zero rows and
// surfaces as domain.ErrAlreadyTriaged.
func (r *Repo) MarkTriaged(ctx context.Context, itemID uuid.UUID, status domain.InboxStatus, updatedAt time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markTriagedSQL, itemID, string(status), updatedAt)
	if err != nil {
		return mapError(err, "inbox_item", itemID)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMissedUpdate(ctx, itemID)
	}

	return nil
}

// classifyMissedUpdate distinguishes "item gone" from "item already terminal"
// after a zero-row conditional update.
func (r *Repo) classifyMissedUpdate(ctx context.Context, itemID uuid.UUID) error {
	item, err := r.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if !item.Status.Triageable() {
		return fmt.Errorf("inbox_item %s: %w", itemID, domain.ErrAlreadyTriaged)
	}
	return fmt.Errorf("inbox_item %s: %w", itemID, domain.ErrConflict)
}

const insertTriageLogSQL = `INSERT INTO triage_log
	(id, item_id, actor_id, destination, destination_id, note, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

// InsertTriageLog appends an immutable triage decision record.
func (r *Repo) InsertTriageLog(ctx context.Context, entry domain.TriageLogEntry) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, insertTriageLogSQL,
		entry.ID, entry.ItemID, entry.ActorID, string(entry.Destination),
		uuidPtrToPgUUID(entry.DestinationID), entry.Note, entry.CreatedAt,
	)
	if err != nil {
		return mapError(err, "triage_log", entry.ID)
	}

	return nil
}

const listTriageLogSQL = `SELECT id, item_id, actor_id, destination, destination_id, note, created_at
	FROM triage_log
	WHERE item_id = $1
	ORDER BY created_at`

// ListTriageLog returns the triage decisions recorded for an item, oldest first.
func (r *Repo) ListTriageLog(ctx context.Context, itemID uuid.UUID) ([]domain.TriageLogEntry, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listTriageLogSQL, itemID)
	if err != nil {
		return nil, fmt.Errorf("list triage_log: %w", err)
	}
	defer rows.Close()

	var entries []domain.TriageLogEntry
	for rows.Next() {
		var (
			entry  domain.TriageLogEntry
			destID pgtype.UUID
		)
		err := rows.Scan(&entry.ID, &entry.ItemID, &entry.ActorID, &entry.Destination, &destID, &entry.Note, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan triage_log: %w", err)
		}
		if destID.Valid {
			id := uuid.UUID(destID.Bytes)
			entry.DestinationID = &id
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503":
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514":
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		case "40001", "40P01":
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrConflict)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}

// scanItem reads one inbox item row from a pgx.Row or pgx.Rows.
func scanItem(row pgx.Row) (*domain.InboxItem, error) {
	var (
		item         domain.InboxItem
		attachmentID pgtype.UUID
		patientID    pgtype.UUID
		assigneeID   pgtype.UUID
	)

	err := row.Scan(
		&item.ID, &item.CircleID, &item.CapturedBy, &item.Kind, &item.Title, &item.Note,
		&attachmentID, &patientID, &assigneeID, &item.Status, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if attachmentID.Valid {
		id := uuid.UUID(attachmentID.Bytes)
		item.AttachmentID = &id
	}
	if patientID.Valid {
		id := uuid.UUID(patientID.Bytes)
		item.PatientID = &id
	}
	if assigneeID.Valid {
		id := uuid.UUID(assigneeID.Bytes)
		item.AssigneeID = &id
	}

	return &item, nil
}

// uuidPtrToPgUUID converts a *uuid.UUID to pgtype.UUID (nil -> NULL).
func uuidPtrToPgUUID(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}
