package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

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
	"github.com/careloop/careloop-backend/internal/auth"
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

// Run is the application entry point. It loads configuration, connects to
// the database, assembles repositories, services and the HTTP surface, and
// serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)

	members := membershiprepo.New(pool)
	audits := auditrepo.New(pool)
	outboxEntries := outboxrepo.New(pool)
	documents := documentrepo.New(pool)
	inboxItems := inboxrepo.New(pool)
	tasks := taskrepo.New(pool)
	shareLinks := sharelinkrepo.New(pool)
	rateCounters := ratelimitrepo.New(pool)

	attachments := attachmentapi.NewClient(cfg.Attachments, logger)

	auditService := auditsvc.NewService(logger, audits, members)
	outboxService := outboxsvc.NewService(logger, outboxEntries, txManager, cfg.Outbox.Retention)
	documentService := documentsvc.NewService(logger, documents, members, auditService, outboxService, txManager)
	inboxService := inboxsvc.NewService(logger, inboxItems, documents, tasks, members, auditService, outboxService, attachments, txManager)
	taskService := tasksvc.NewService(logger, tasks, members)
	shareLinkService := sharelinksvc.NewService(logger, shareLinks, members, auditService, txManager)
	rateLimitService := ratelimitsvc.NewService(logger, rateCounters)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	resolveLimit := middleware.RateLimit(
		logger,
		rateLimitService,
		"share.resolve",
		cfg.RateLimit.ResolveMaxRequests,
		cfg.RateLimit.ResolveWindow,
	)

	router := rest.NewRouter(rest.Handlers{
		Health:       rest.NewHealthHandler(pool, BuildVersion()),
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
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
	)(router)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	logger.Info("stopped")
	return nil
}
