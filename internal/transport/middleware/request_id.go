package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/careloop/careloop-backend/pkg/ctxutil"
)

// RequestID propagates an incoming X-Request-Id or mints a fresh UUID, puts
// it in the context for downstream logging, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}

		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(ctxutil.WithRequestID(r.Context(), id)))
	})
}
