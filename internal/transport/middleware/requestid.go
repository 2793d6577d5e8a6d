package middleware

import (
	"context"
	"net/http"

	"github.com/reformtrack/reform-management/pkg/logger"

	"github.com/google/uuid"
)

type traceIDKey struct{}

// TraceID returns the request trace ID stored by the RequestID middleware,
// or an empty string outside a request.
func TraceID(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey{}).(string); ok {
		return id
	}
	return ""
}

// RequestID assigns each request a trace ID, honoring an incoming X-Trace-ID
// header so callers can correlate across services. The ID is stored on the
// context, attached to the request logger and echoed in the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), traceIDKey{}, traceID)
		ctx = logger.With(ctx, "traceID", traceID)

		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
