package logger

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// With stores a logger carrying the given fields in the context. Subsequent
// From calls on derived contexts see the enriched logger.
func With(ctx context.Context, fields ...any) context.Context {
	return context.WithValue(ctx, contextKey{}, From(ctx).With(fields...))
}

// From returns the logger stored in the context, falling back to the
// process-wide logger when none is set.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return l
	}
	return LoggerWrapper()
}
