package middleware

import (
	"net/http"

	"github.com/jamesprial/greeter/internal/transport/transportcore"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

// WriteHeader captures the status code before writing it.
func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
		rw.ResponseWriter.WriteHeader(code)
	}
}

// Write ensures status code is captured even if WriteHeader is not called explicitly.
func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// withRouteInfo returns r with a RouteInfo the router can fill in.
// An existing RouteInfo from an outer middleware is reused.
func withRouteInfo(r *http.Request) (*http.Request, *transportcore.RouteInfo) {
	if info, ok := transportcore.RouteInfoFromContext(r.Context()); ok {
		return r, info
	}
	info := &transportcore.RouteInfo{}
	return r.WithContext(transportcore.ContextWithRouteInfo(r.Context(), info)), info
}
