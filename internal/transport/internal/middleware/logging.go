package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jamesprial/greeter/internal/transport/transportcore"
)

// NewLoggingMiddleware creates middleware that logs HTTP requests.
// It logs the request method, path, status code, duration, request ID and
// matched route using structured logging.
// If logger is nil, it uses the default slog logger.
func NewLoggingMiddleware(logger *slog.Logger) transportcore.Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			r, info := withRouteInfo(r)
			wrapped := newResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			duration := time.Since(start)

			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"duration_ms", duration.Milliseconds(),
				"remote_addr", r.RemoteAddr,
				"request_id", transportcore.RequestIDFromContext(r.Context()),
				"route", info.Pattern,
			)
		})
	}
}
