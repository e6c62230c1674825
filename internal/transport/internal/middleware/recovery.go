package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	ierrors "github.com/jamesprial/greeter/internal/errors"
	"github.com/jamesprial/greeter/internal/transport/transportcore"
)

// NewRecoveryMiddleware creates middleware that recovers from panics.
// It logs the panic with a stack trace and returns a 500 Internal Server Error
// to the client to prevent connection termination.
// http.ErrAbortHandler is re-panicked so net/http can abort the response.
// If logger is nil, it uses the default slog logger.
func NewRecoveryMiddleware(responder transportcore.ErrorResponder, logger *slog.Logger) transportcore.Middleware {
	if responder == nil {
		panic("responder cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				logger.Error("panic recovered",
					"panic", recovered,
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", transportcore.RequestIDFromContext(r.Context()),
					"stack", string(debug.Stack()),
				)

				responder.InternalError(w, ierrors.New(domainTransport, "Recover", ierrors.ErrInternal,
					fmt.Errorf("panic: %v", recovered)))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
