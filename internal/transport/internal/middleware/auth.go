// Package middleware provides HTTP middleware and route guards for the transport layer.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/jamesprial/greeter/internal/auth"
	ierrors "github.com/jamesprial/greeter/internal/errors"
	"github.com/jamesprial/greeter/internal/transport/transportcore"
	"github.com/jamesprial/greeter/pkg/greeter"
)

// domainTransport identifies transport errors in DomainError.
const domainTransport = "transport"

// authMiddleware implements transportcore.AuthMiddleware.
type authMiddleware struct {
	validator auth.TokenValidator
	responder transportcore.ErrorResponder
	logger    *slog.Logger
}

// NewAuthMiddleware creates bearer token authentication middleware.
// It validates tokens using the provided TokenValidator and stores the
// authenticated user in the request context.
// If logger is nil, it uses the default slog logger.
func NewAuthMiddleware(
	validator auth.TokenValidator,
	responder transportcore.ErrorResponder,
	logger *slog.Logger,
) transportcore.AuthMiddleware {
	if validator == nil {
		panic("validator cannot be nil")
	}
	if responder == nil {
		panic("responder cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &authMiddleware{
		validator: validator,
		responder: responder,
		logger:    logger,
	}
}

// Authenticate validates the bearer token and adds the user to the context.
//
// Returns 401 Unauthorized with WWW-Authenticate header if validation fails;
// the next handler is not called in that case.
func (m *authMiddleware) Authenticate() transportcore.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := extractBearerToken(r.Header)
			if err != nil {
				m.responder.Unauthorized(w, ierrors.New(domainTransport, "Authenticate", ierrors.ErrUnauthorized, err))
				return
			}

			user, err := m.validator.Validate(r.Context(), token)
			if err != nil || user == nil {
				if err == nil {
					err = auth.ErrInvalidToken
				}
				m.logger.Debug("token rejected", "error", err)
				m.responder.Unauthorized(w, ierrors.New(domainTransport, "Authenticate", ierrors.ErrUnauthorized,
					fmt.Errorf("%w: %w", transportcore.ErrInvalidAuthHeader, err)))
				return
			}

			ctx := transportcore.ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken extracts the token from the Authorization header.
//
// An absent header, or one that is not valid UTF-8, is ErrMissingAuthHeader.
// A header not starting with exactly "Bearer " is ErrInvalidAuthHeader.
// The token is everything after the prefix and may be empty; it is up to
// the validator to reject it.
func extractBearerToken(header http.Header) (string, error) {
	values, ok := header[greeter.HeaderAuthorization]
	if !ok || len(values) == 0 {
		return "", transportcore.ErrMissingAuthHeader
	}

	value := values[0]
	if !utf8.ValidString(value) {
		return "", transportcore.ErrMissingAuthHeader
	}

	if !strings.HasPrefix(value, greeter.BearerPrefix) {
		return "", transportcore.ErrInvalidAuthHeader
	}

	return strings.TrimPrefix(value, greeter.BearerPrefix), nil
}
