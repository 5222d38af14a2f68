// Package document implements the revisioned-document repository using
// PostgreSQL. Documents (handoffs and binder items) carry a current_revision
// pointer; every committed content change appends one immutable revision row.
package document

import (
	"context"
	"encoding/json"
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

// Repo provides document and revision persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new document repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const documentColumns = `id, circle_id, patient_id, kind, binder_type, title, content,
	current_revision, status, published_at, created_by, created_at, updated_at`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const getDocumentSQL = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`

// GetByID returns a document by primary key.
// Returns domain.ErrNotFound if the document does not exist.
func (r *Repo) GetByID(ctx context.Context, docID uuid.UUID) (*domain.Document, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	doc, err := scanDocument(querier.QueryRow(ctx, getDocumentSQL, docID))
	if err != nil {
		return nil, mapError(err, "document", docID)
	}

	return doc, nil
}

const getDocumentForUpdateSQL = getDocumentSQL + ` FOR UPDATE`

// GetForUpdate returns a document by primary key, taking a row lock so that
// concurrent revision-number assignment serializes per document. Only
// meaningful inside a transaction.
func (r *Repo) GetForUpdate(ctx context.Context, docID uuid.UUID) (*domain.Document, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	doc, err := scanDocument(querier.QueryRow(ctx, getDocumentForUpdateSQL, docID))
	if err != nil {
		return nil, mapError(err, "document", docID)
	}

	return doc, nil
}

const listByCircleSQL = `SELECT ` + documentColumns + `
	FROM documents
	WHERE circle_id = $1 AND kind = $2
	ORDER BY updated_at DESC
	LIMIT $3 OFFSET $4`

// ListByCircle returns documents of one kind in a circle, most recently
// updated first.
func (r *Repo) ListByCircle(ctx context.Context, circleID uuid.UUID, kind domain.DocumentKind, limit, offset int) ([]*domain.Document, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByCircleSQL, circleID, string(kind), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []*domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

const listRevisionsSQL = `SELECT id, document_id, revision, content, edited_by, created_at
	FROM document_revisions
	WHERE document_id = $1
	ORDER BY revision`

// ListRevisions returns all revisions of a document in ascending order.
func (r *Repo) ListRevisions(ctx context.Context, docID uuid.UUID) ([]domain.Revision, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listRevisionsSQL, docID)
	if err != nil {
		return nil, fmt.Errorf("list document_revisions: %w", err)
	}
	defer rows.Close()

	var revs []domain.Revision
	for rows.Next() {
		rev, err := scanRevision(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document_revision: %w", err)
		}
		revs = append(revs, rev)
	}

	return revs, rows.Err()
}

const getRevisionSQL = `SELECT id, document_id, revision, content, edited_by, created_at
	FROM document_revisions
	WHERE document_id = $1 AND revision = $2`

// GetRevision returns a single revision of a document.
// Returns domain.ErrNotFound if no such revision exists.
func (r *Repo) GetRevision(ctx context.Context, docID uuid.UUID, revision int) (*domain.Revision, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rev, err := scanRevision(querier.QueryRow(ctx, getRevisionSQL, docID, revision))
	if err != nil {
		return nil, mapError(err, "document_revision", docID)
	}

	return &rev, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const createDocumentSQL = `INSERT INTO documents
	(id, circle_id, patient_id, kind, binder_type, title, content, current_revision, status, published_at, created_by, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

// Create inserts a new document.
func (r *Repo) Create(ctx context.Context, doc *domain.Document) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	contentJSON, err := json.Marshal(doc.Content)
	if err != nil {
		return fmt.Errorf("document marshal content: %w", err)
	}

	_, err = querier.Exec(ctx, createDocumentSQL,
		doc.ID, doc.CircleID, uuidPtrToPgUUID(doc.PatientID), string(doc.Kind),
		binderTypePtrToPgText(doc.BinderType), doc.Title, contentJSON,
		doc.CurrentRevision, string(doc.Status), doc.PublishedAt,
		doc.CreatedBy, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "document", doc.ID)
	}

	return nil
}

const insertRevisionSQL = `INSERT INTO document_revisions
	(id, document_id, revision, content, edited_by, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)`

// InsertRevision appends an immutable revision row. The unique constraint on
// (document_id, revision) turns a lost race into domain.ErrAlreadyExists.
func (r *Repo) InsertRevision(ctx context.Context, rev domain.Revision) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	contentJSON, err := json.Marshal(rev.Content)
	if err != nil {
		return fmt.Errorf("document_revision marshal content: %w", err)
	}

	_, err = querier.Exec(ctx, insertRevisionSQL,
		rev.ID, rev.DocumentID, rev.Revision, contentJSON, rev.EditedBy, rev.CreatedAt,
	)
	if err != nil {
		return mapError(err, "document_revision", rev.ID)
	}

	return nil
}

const updateContentSQL = `UPDATE documents
	SET content = $2, current_revision = $3, updated_at = $4
	WHERE id = $1`

// UpdateContent writes new content and bumps the current_revision pointer.
func (r *Repo) UpdateContent(ctx context.Context, docID uuid.UUID, content map[string]any, revision int, updatedAt time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	contentJSON, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("document marshal content: %w", err)
	}

	tag, err := querier.Exec(ctx, updateContentSQL, docID, contentJSON, revision, updatedAt)
	if err != nil {
		return mapError(err, "document", docID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", docID, domain.ErrNotFound)
	}

	return nil
}

const updateMetaSQL = `UPDATE documents
	SET title = COALESCE($2, title), status = COALESCE($3, status), updated_at = $4
	WHERE id = $1`

// UpdateMeta updates title and/or status without touching content or history.
func (r *Repo) UpdateMeta(ctx context.Context, docID uuid.UUID, title *string, status *domain.DocumentStatus, updatedAt time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, updateMetaSQL, docID, title, statusPtrToPgText(status), updatedAt)
	if err != nil {
		return mapError(err, "document", docID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("document %s: %w", docID, domain.ErrNotFound)
	}

	return nil
}

const markPublishedSQL = `UPDATE documents
	SET status = 'PUBLISHED', published_at = $2, updated_at = $2
	WHERE id = $1 AND published_at IS NULL`

// MarkPublished sets published_at exactly once: the conditional update makes
// repeated publishes no-ops with respect to the timestamp.
// Returns true if this call performed the transition.
func (r *Repo) MarkPublished(ctx context.Context, docID uuid.UUID, publishedAt time.Time) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, markPublishedSQL, docID, publishedAt)
	if err != nil {
		return false, mapError(err, "document", docID)
	}

	return tag.RowsAffected() > 0, nil
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	// context errors pass through as-is
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	// pgx.ErrNoRows -> domain.ErrNotFound
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	// PgError codes
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrConflict)
		}
	}

	// Everything else: wrap with context
	return fmt.Errorf("%s %s: %w", entity, id, err)
}

// ---------------------------------------------------------------------------
// Scan helpers
// ---------------------------------------------------------------------------

// scanDocument reads one document row from a pgx.Row or pgx.Rows.
func scanDocument(row pgx.Row) (*domain.Document, error) {
	var (
		doc         domain.Document
		patientID   pgtype.UUID
		binderType  pgtype.Text
		contentJSON []byte
		publishedAt pgtype.Timestamptz
	)

	err := row.Scan(
		&doc.ID, &doc.CircleID, &patientID, &doc.Kind, &binderType, &doc.Title,
		&contentJSON, &doc.CurrentRevision, &doc.Status, &publishedAt,
		&doc.CreatedBy, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if patientID.Valid {
		id := uuid.UUID(patientID.Bytes)
		doc.PatientID = &id
	}
	if binderType.Valid {
		bt := domain.BinderItemType(binderType.String)
		doc.BinderType = &bt
	}
	if publishedAt.Valid {
		ts := publishedAt.Time
		doc.PublishedAt = &ts
	}
	if len(contentJSON) > 0 {
		doc.Content = make(map[string]any)
		if err := json.Unmarshal(contentJSON, &doc.Content); err != nil {
			return nil, fmt.Errorf("document %s unmarshal content: %w", doc.ID, err)
		}
	}

	return &doc, nil
}

// scanRevision reads one revision row from a pgx.Row or pgx.Rows.
func scanRevision(row pgx.Row) (domain.Revision, error) {
	var (
		rev         domain.Revision
		contentJSON []byte
	)

	err := row.Scan(&rev.ID, &rev.DocumentID, &rev.Revision, &contentJSON, &rev.EditedBy, &rev.CreatedAt)
	if err != nil {
		return domain.Revision{}, err
	}

	if len(contentJSON) > 0 {
		rev.Content = make(map[string]any)
		if err := json.Unmarshal(contentJSON, &rev.Content); err != nil {
			return domain.Revision{}, fmt.Errorf("document_revision %s unmarshal content: %w", rev.ID, err)
		}
	}

	return rev, nil
}

// ---------------------------------------------------------------------------
// pgtype helpers
// ---------------------------------------------------------------------------

// uuidPtrToPgUUID converts a *uuid.UUID to pgtype.UUID (nil -> NULL).
func uuidPtrToPgUUID(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

// binderTypePtrToPgText converts a *domain.BinderItemType to pgtype.Text (nil -> NULL).
func binderTypePtrToPgText(t *domain.BinderItemType) pgtype.Text {
	if t == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: string(*t), Valid: true}
}

// statusPtrToPgText converts a *domain.DocumentStatus to pgtype.Text (nil -> NULL).
func statusPtrToPgText(s *domain.DocumentStatus) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: string(*s), Valid: true}
}
