package middleware

import (
	"log/slog"
	"net/http"

	"github.com/FavasCherukunnu/ecomm-api/internal/api/shared"
	"github.com/FavasCherukunnu/ecomm-api/internal/platform/logger"
)

// TraceMiddleware assigns each request a trace ID and binds a logger
// carrying it into the request context, so every log line downstream of
// this middleware correlates with the X-Trace-ID the client receives.
// Apply it early in the chain.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		log := logger.FromContextOrDefault(ctx, slog.Default()).
			With(slog.String("trace_id", traceID))
		ctx = logger.WithLogger(ctx, log)

		w.Header().Set("X-Trace-ID", traceID)

		log.Debug("request started",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
