package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/internal/domain"
	"github.com/careloop/careloop-backend/pkg/ctxutil"
)

type limiter interface {
	Allow(ctx context.Context, subjectID uuid.UUID, endpoint string, maxRequests int, windowSeconds int) error
}

// ipNamespace derives stable subject IDs for anonymous clients, so the same
// address always counts against the same window on every replica.
var ipNamespace = uuid.MustParse("c9a9e3a0-0f5b-4f4e-9c36-7a1c64d20d11")

// RateLimit enforces a fixed-window quota per subject on one endpoint. The
// subject is the authenticated user when present, otherwise the client IP.
// A limiter failure fails open: throttling never takes the endpoint down.
func RateLimit(log *slog.Logger, lim limiter, endpoint string, maxRequests int, window time.Duration) Middleware {
	windowSeconds := int(window.Seconds())

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subjectID, ok := ctxutil.UserIDFromCtx(r.Context())
			if !ok {
				subjectID = uuid.NewSHA1(ipNamespace, []byte(clientIP(r)))
			}

			err := lim.Allow(r.Context(), subjectID, endpoint, maxRequests, windowSeconds)
			if errors.Is(err, domain.ErrRateLimited) {
				w.Header().Set("Retry-After", strconv.Itoa(windowSeconds))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			if err != nil {
				log.ErrorContext(r.Context(), "rate limiter unavailable",
					slog.String("endpoint", endpoint),
					slog.Any("error", err),
				)
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
