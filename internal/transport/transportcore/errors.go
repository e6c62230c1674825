package transportcore

import (
	"errors"
	"fmt"

	ierrors "github.com/jamesprial/greeter/internal/errors"
)

// Sentinel errors for transport operations.
// These are used for error identification and testing.
// For creating domain errors with context, wrap these with DomainError from internal/errors.
var (
	// ErrMissingAuthHeader indicates the Authorization header is absent or not valid text.
	ErrMissingAuthHeader = errors.New("no auth header")

	// ErrInvalidAuthHeader indicates the header is not "Bearer <token>" or the token was rejected.
	ErrInvalidAuthHeader = errors.New("invalid auth header")

	// ErrBodyDecode indicates the request body is not a valid GreetingBody.
	ErrBodyDecode = errors.New("request body deserialize error")

	// ErrRouteNotFound indicates no route matched the request path.
	ErrRouteNotFound = errors.New("route not found")

	// ErrMethodNotAllowed indicates the HTTP method is not allowed for the endpoint.
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrServerClosed indicates the server has been closed and cannot accept requests.
	ErrServerClosed = errors.New("server closed")
)

// BodyDecodeError describes why a request body could not be decoded.
// Line and Column are 1-based positions in the body; both are zero when
// no position is known.
type BodyDecodeError struct {
	Reason string
	Line   int
	Column int
}

// Error formats the error as "Request body deserialize error: <reason> at line L column C".
func (e *BodyDecodeError) Error() string {
	if e.Line == 0 {
		return "Request body deserialize error: " + e.Reason
	}
	return fmt.Sprintf("Request body deserialize error: %s at line %d column %d", e.Reason, e.Line, e.Column)
}

// Is reports whether target is ErrBodyDecode or the generic bad request kind.
func (e *BodyDecodeError) Is(target error) bool {
	return target == ErrBodyDecode || target == ierrors.ErrBadRequest
}
