package logger

import (
	"context"
	"log/slog"
)

// contextKey is an unexported type so no other package can collide with the
// logger's context value.
type contextKey struct{}

// WithLogger returns a copy of ctx carrying the given logger. Middleware uses
// this to make a request-scoped logger (e.g. one tagged with a trace ID)
// available to everything downstream.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext retrieves the logger stored in ctx, if any.
func FromContext(ctx context.Context) (*slog.Logger, bool) {
	logger, ok := ctx.Value(contextKey{}).(*slog.Logger)
	return logger, ok
}

// FromContextOrDefault retrieves the logger stored in ctx, falling back to
// the provided logger, and finally to slog.Default. Callers always get a
// usable logger back.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := FromContext(ctx); ok {
		return logger
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}
