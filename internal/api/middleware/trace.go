package middleware

import (
	"log/slog"
	"net/http"

	"github.com/plankhq/plank-api/internal/api/shared"
	"github.com/plankhq/plank-api/internal/platform/logger"
)

// TraceMiddleware attaches a trace ID to every request and puts a logger
// carrying it into the request context. Apply it first so every downstream
// handler logs under the same trace ID.
func TraceMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			requestLog := log.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, requestLog)

			requestLog.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
