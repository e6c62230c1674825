// Package http provides the HTTP server, router and error responses for the transport layer.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	ierrors "github.com/jamesprial/greeter/internal/errors"
	"github.com/jamesprial/greeter/internal/transport/transportcore"
	"github.com/jamesprial/greeter/pkg/greeter"
)

// Error codes used in JSON error bodies.
const (
	codeMissingAuthHeader = "missing_auth_header"
	codeInvalidAuthHeader = "invalid_auth_header"
	codeBadRequest        = "bad_request"
	codeNotFound          = "not_found"
	codeMethodNotAllowed  = "method_not_allowed"
	codeInternalError     = "internal_error"
)

// errorResponse represents a JSON error response body.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// errorResponder implements transportcore.ErrorResponder.
type errorResponder struct {
	realm  string
	logger *slog.Logger
}

// NewErrorResponder creates a new error responder.
// The realm is advertised in WWW-Authenticate challenges.
// If logger is nil, it uses the default slog logger.
func NewErrorResponder(realm string, logger *slog.Logger) transportcore.ErrorResponder {
	if logger == nil {
		logger = slog.Default()
	}
	return &errorResponder{
		realm:  realm,
		logger: logger,
	}
}

// Unauthorized sends a 401 Unauthorized response with WWW-Authenticate header.
// A missing header gets a bare challenge per RFC 6750 Section 3.1; an
// invalid one carries error="invalid_token".
func (e *errorResponder) Unauthorized(w http.ResponseWriter, err error) {
	challenge := ierrors.Challenge{Realm: e.realm}
	resp := errorResponse{
		Error:   codeMissingAuthHeader,
		Message: transportcore.ErrMissingAuthHeader.Error(),
	}
	if errors.Is(err, transportcore.ErrInvalidAuthHeader) {
		challenge.ErrorCode = ierrors.ChallengeInvalidToken
		resp = errorResponse{
			Error:   codeInvalidAuthHeader,
			Message: transportcore.ErrInvalidAuthHeader.Error(),
		}
	}

	e.logger.Warn("unauthorized request", "error", err)

	w.Header().Set(greeter.HeaderWWWAuthenticate, challenge.String())
	e.write(w, classify("Unauthorized", ierrors.ErrUnauthorized, err), resp)
}

// BadRequest sends a 400 Bad Request response.
// The message is err's text, so decoders control what the client sees.
func (e *errorResponder) BadRequest(w http.ResponseWriter, err error) {
	e.logger.Warn("bad request", "error", err)

	message := "Invalid request"
	if err != nil {
		message = err.Error()
	}

	e.write(w, classify("BadRequest", ierrors.ErrBadRequest, err), errorResponse{
		Error:   codeBadRequest,
		Message: message,
	})
}

// NotFound sends a 404 Not Found response.
func (e *errorResponder) NotFound(w http.ResponseWriter, err error) {
	e.logger.Debug("route not found", logAttrs(err)...)

	e.write(w, classify("NotFound", ierrors.ErrNotFound, err), errorResponse{
		Error:   codeNotFound,
		Message: "Route not found",
	})
}

// MethodNotAllowed sends a 405 Method Not Allowed response listing allowed methods.
func (e *errorResponder) MethodNotAllowed(w http.ResponseWriter, err error, allowed []string) {
	e.logger.Debug("method not allowed", append(logAttrs(err), "allowed", allowed)...)

	w.Header().Set(greeter.HeaderAllow, strings.Join(allowed, ", "))
	e.write(w, classify("MethodNotAllowed", ierrors.ErrMethodNotAllowed, err), errorResponse{
		Error:   codeMethodNotAllowed,
		Message: "Method not allowed",
	})
}

// InternalError sends a 500 Internal Server Error response.
// The cause is logged but never sent to the client.
func (e *errorResponder) InternalError(w http.ResponseWriter, err error) {
	e.logger.Error("internal server error", "error", err)

	e.write(w, classify("InternalError", ierrors.ErrInternal, err), errorResponse{
		Error:   codeInternalError,
		Message: "An internal server error occurred",
	})
}

// write sends resp with the status derived from err's kind.
func (e *errorResponder) write(w http.ResponseWriter, err error, resp errorResponse) {
	w.Header().Set(greeter.HeaderContentType, greeter.ContentTypeJSON)
	w.WriteHeader(ierrors.StatusCode(err))

	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		e.logger.Error("failed to encode error response", "error", encodeErr)
	}
}

// classify returns err unchanged when its status already matches kind, and
// otherwise wraps it in a DomainError of that kind.
func classify(op string, kind, err error) error {
	if err != nil && ierrors.StatusCode(err) == ierrors.StatusCode(kind) {
		return err
	}
	return ierrors.New(domainTransport, op, kind, err)
}

// logAttrs returns the error and the DomainError context as log attributes.
func logAttrs(err error) []any {
	attrs := []any{"error", err}
	var de *ierrors.DomainError
	if errors.As(err, &de) {
		for _, key := range []string{"method", "path"} {
			if v, ok := de.Context[key]; ok {
				attrs = append(attrs, key, v)
			}
		}
	}
	return attrs
}
