package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careloop/careloop-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user row and returns its id.
func SeedUser(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	id := uuid.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, display_name, created_at) VALUES ($1, $2, now())`,
		id, "Test User "+uniqueSuffix(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return id
}

// SeedCircle creates a circle row and returns its id.
func SeedCircle(t *testing.T, pool *pgxpool.Pool) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	id := uuid.New()
	_, err := pool.Exec(ctx,
		`INSERT INTO circles (id, name, created_at) VALUES ($1, $2, now())`,
		id, "Circle "+uniqueSuffix(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCircle: %v", err)
	}

	return id
}

// SeedMember adds a user to a circle with the given role and ACTIVE status.
func SeedMember(t *testing.T, pool *pgxpool.Pool, circleID, userID uuid.UUID, role domain.Role) {
	t.Helper()
	SeedMemberWithStatus(t, pool, circleID, userID, role, domain.MemberStatusActive)
}

// SeedMemberWithStatus adds a user to a circle with an explicit status.
func SeedMemberWithStatus(t *testing.T, pool *pgxpool.Pool, circleID, userID uuid.UUID, role domain.Role, status domain.MemberStatus) {
	t.Helper()
	ctx := context.Background()

	_, err := pool.Exec(ctx,
		`INSERT INTO circle_members (circle_id, user_id, role, status, created_at)
		 VALUES ($1, $2, $3, $4, now())`,
		circleID, userID, string(role), string(status),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedMemberWithStatus: %v", err)
	}
}

// SeedCircleWithMember creates a circle plus one ACTIVE member with the given
// role. Returns (circleID, userID).
func SeedCircleWithMember(t *testing.T, pool *pgxpool.Pool, role domain.Role) (uuid.UUID, uuid.UUID) {
	t.Helper()

	circleID := SeedCircle(t, pool)
	userID := SeedUser(t, pool)
	SeedMember(t, pool, circleID, userID, role)

	return circleID, userID
}

// SeedDocument creates a draft handoff document owned by the circle.
func SeedDocument(t *testing.T, pool *pgxpool.Pool, circleID, createdBy uuid.UUID) domain.Document {
	t.Helper()
	return SeedDocumentWithKind(t, pool, circleID, createdBy, domain.DocumentKindHandoff, domain.DocumentStatusDraft)
}

// SeedDocumentWithKind creates a document with an explicit kind and status.
func SeedDocumentWithKind(t *testing.T, pool *pgxpool.Pool, circleID, createdBy uuid.UUID, kind domain.DocumentKind, status domain.DocumentStatus) domain.Document {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	doc := domain.Document{
		ID:        uuid.New(),
		CircleID:  circleID,
		Kind:      kind,
		Title:     "Doc " + uniqueSuffix(),
		Content:   map[string]any{"text": "initial"},
		Status:    status,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO documents (id, circle_id, kind, title, content, current_revision, status, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8, $9)`,
		doc.ID, doc.CircleID, string(doc.Kind), doc.Title, doc.Content, string(doc.Status), doc.CreatedBy, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDocumentWithKind: %v", err)
	}

	return doc
}

// SeedInboxItem creates a NEW inbox item of the given kind.
func SeedInboxItem(t *testing.T, pool *pgxpool.Pool, circleID, capturedBy uuid.UUID, kind domain.InboxKind) domain.InboxItem {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	note := "captured " + uniqueSuffix()
	item := domain.InboxItem{
		ID:         uuid.New(),
		CircleID:   circleID,
		CapturedBy: capturedBy,
		Kind:       kind,
		Note:       &note,
		Status:     domain.InboxStatusNew,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO inbox_items (id, circle_id, captured_by, kind, note, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		item.ID, item.CircleID, item.CapturedBy, string(item.Kind), item.Note, string(item.Status), item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedInboxItem: %v", err)
	}

	return item
}

// SeedShareLink creates a share link with the given token and expiry.
func SeedShareLink(t *testing.T, pool *pgxpool.Pool, circleID, createdBy uuid.UUID, token string, expiresAt time.Time, maxAccess *int) domain.ShareLink {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	link := domain.ShareLink{
		ID:             uuid.New(),
		CircleID:       circleID,
		ObjectType:     "DOCUMENT",
		ObjectID:       uuid.New(),
		Token:          token,
		ExpiresAt:      expiresAt,
		MaxAccessCount: maxAccess,
		CreatedBy:      createdBy,
		CreatedAt:      now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO share_links (id, circle_id, object_type, object_id, token, expires_at, max_access_count, access_count, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, 0, $8, $9)`,
		link.ID, link.CircleID, link.ObjectType, link.ObjectID, link.Token, link.ExpiresAt, link.MaxAccessCount, link.CreatedBy, link.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedShareLink: %v", err)
	}

	return link
}
