// Command cleanup runs the retention sweeps: resolved notification outbox
// entries past retention, share links past expiry and grace, and idle rate
// limit windows. It is intended to be invoked by an external cron job, not as
// an in-process goroutine. Audit events are never swept.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/careloop/careloop-backend/internal/adapter/postgres"
	outboxrepo "github.com/careloop/careloop-backend/internal/adapter/postgres/outbox"
	ratelimitrepo "github.com/careloop/careloop-backend/internal/adapter/postgres/ratelimit"
	sharelinkrepo "github.com/careloop/careloop-backend/internal/adapter/postgres/sharelink"
	"github.com/careloop/careloop-backend/internal/app"
	"github.com/careloop/careloop-backend/internal/config"
	outboxsvc "github.com/careloop/careloop-backend/internal/service/outbox"
	ratelimitsvc "github.com/careloop/careloop-backend/internal/service/ratelimit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	failed := false

	outboxService := outboxsvc.NewService(logger, outboxrepo.New(pool), txManager, cfg.Outbox.Retention)
	purged, err := outboxService.PurgeResolved(ctx)
	if err != nil {
		logger.Error("purge resolved notifications", slog.String("error", err.Error()))
		failed = true
	} else {
		logger.Info("resolved notifications purged", slog.Int("count", purged))
	}

	// Expired links stay queryable (and auditable) for a grace period before
	// the rows go away; access log rows cascade with them.
	linkCutoff := time.Now().UTC().Add(-cfg.ShareLink.PurgeAfterExpiry)
	deleted, err := sharelinkrepo.New(pool).DeleteExpired(ctx, linkCutoff)
	if err != nil {
		logger.Error("delete expired share links",
			slog.String("error", err.Error()),
			slog.Time("cutoff", linkCutoff),
		)
		failed = true
	} else {
		logger.Info("expired share links deleted",
			slog.Int("count", deleted),
			slog.Time("cutoff", linkCutoff),
		)
	}

	rateLimitService := ratelimitsvc.NewService(logger, ratelimitrepo.New(pool))
	swept, err := rateLimitService.Sweep(ctx, cfg.RateLimit.SweepIdleAfter)
	if err != nil {
		logger.Error("sweep idle rate limit windows", slog.String("error", err.Error()))
		failed = true
	} else {
		logger.Info("idle rate limit windows swept", slog.Int("count", swept))
	}

	if failed {
		os.Exit(1)
	}
}
