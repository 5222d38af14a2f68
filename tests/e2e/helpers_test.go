//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/careloop/careloop-backend/internal/adapter/attachmentapi"
	"github.com/careloop/careloop-backend/internal/adapter/postgres"
	auditrepo "github.com/careloop/careloop-backend/internal/adapter/postgres/audit"
	documentrepo "github.com/careloop/careloop-backend/internal/adapter/postgres/document"
	inboxrepo "github.com/careloop/careloop-backend/internal/adapter/postgres/inbox"
	membershiprepo "github.com/careloop/careloop-backend/internal/adapter/postgres/membership"
	outboxrepo "github.com/careloop/careloop-backend/internal/adapter/postgres/outbox"
	ratelimitrepo "github.com/careloop/careloop-backend/internal/adapter/postgres/ratelimit"
	sharelinkrepo "github.com/careloop/careloop-backend/internal/adapter/postgres/sharelink"
	taskrepo "github.com/careloop/careloop-backend/internal/adapter/postgres/task"
	"github.com/careloop/careloop-backend/internal/adapter/postgres/testhelper"
	authpkg "github.com/careloop/careloop-backend/internal/auth"
	"github.com/careloop/careloop-backend/internal/config"
	auditsvc "github.com/careloop/careloop-backend/internal/service/audit"
	documentsvc "github.com/careloop/careloop-backend/internal/service/document"
	inboxsvc "github.com/careloop/careloop-backend/internal/service/inbox"
	outboxsvc "github.com/careloop/careloop-backend/internal/service/outbox"
	ratelimitsvc "github.com/careloop/careloop-backend/internal/service/ratelimit"
	sharelinksvc "github.com/careloop/careloop-backend/internal/service/sharelink"
	tasksvc "github.com/careloop/careloop-backend/internal/service/task"
	"github.com/careloop/careloop-backend/internal/transport/middleware"
	"github.com/careloop/careloop-backend/internal/transport/rest"
)

// resolveQuota is the rate limit quota wired in tests: small enough to hit
// in a test, large enough not to trip the other scenarios.
const resolveQuota = 5

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper) plus a stub attachment store.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	members := membershiprepo.New(pool)
	audits := auditrepo.New(pool)
	outboxEntries := outboxrepo.New(pool)
	documents := documentrepo.New(pool)
	inboxItems := inboxrepo.New(pool)
	tasks := taskrepo.New(pool)
	shareLinks := sharelinkrepo.New(pool)
	rateCounters := ratelimitrepo.New(pool)

	// Stub attachment store: accepts every re-parent request.
	attachmentStore := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(attachmentStore.Close)

	attachments := attachmentapi.NewClient(config.AttachmentsConfig{
		BaseURL: attachmentStore.URL,
		Timeout: 5 * time.Second,
	}, logger)

	auditService := auditsvc.NewService(logger, audits, members)
	outboxService := outboxsvc.NewService(logger, outboxEntries, txm, 720*time.Hour)
	documentService := documentsvc.NewService(logger, documents, members, auditService, outboxService, txm)
	inboxService := inboxsvc.NewService(logger, inboxItems, documents, tasks, members, auditService, outboxService, attachments, txm)
	taskService := tasksvc.NewService(logger, tasks, members)
	shareLinkService := sharelinksvc.NewService(logger, shareLinks, members, auditService, txm)
	rateLimitService := ratelimitsvc.NewService(logger, rateCounters)

	jwtMgr := authpkg.NewJWTManager("test-secret-at-least-32-chars-long!!", "test-issuer", 15*time.Minute)

	resolveLimit := middleware.RateLimit(logger, rateLimitService, "share.resolve", resolveQuota, time.Minute)

	router := rest.NewRouter(rest.Handlers{
		Health:       rest.NewHealthHandler(pool, "test-version"),
		Share:        rest.NewShareHandler(shareLinkService),
		Documents:    rest.NewDocumentHandler(documentService, logger),
		Inbox:        rest.NewInboxHandler(inboxService, logger),
		Tasks:        rest.NewTaskHandler(taskService, logger),
		Links:        rest.NewLinkHandler(shareLinkService, logger),
		Audit:        rest.NewAuditHandler(auditService, logger),
		ResolveLimit: resolveLimit,
	})

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.CORS(config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,PATCH,DELETE,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		}),
		middleware.Auth(jwtMgr),
	)(router)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		jwt:    jwtMgr,
	}
}

// tokenFor mints an access token for the given user.
func (ts *testServer) tokenFor(t *testing.T, userID uuid.UUID) string {
	t.Helper()

	token, err := ts.jwt.GenerateAccessToken(userID)
	require.NoError(t, err)
	return token
}

// doJSON sends a request with an optional bearer token and JSON body, and
// decodes the JSON response into out (when out is non-nil and the body is
// non-empty). Returns the status code.
func (ts *testServer) doJSON(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if out != nil && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, out), "response body: %s", raw)
	}

	return resp.StatusCode
}
