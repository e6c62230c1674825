package transport

import (
	"github.com/jamesprial/greeter/internal/transport/transportcore"
)

// Re-export errors from transportcore for backward compatibility.
// This allows external packages to import transport without creating cycles.
var (
	// ErrMissingAuthHeader indicates the Authorization header is absent or not valid text.
	ErrMissingAuthHeader = transportcore.ErrMissingAuthHeader

	// ErrInvalidAuthHeader indicates a malformed header or a rejected token.
	ErrInvalidAuthHeader = transportcore.ErrInvalidAuthHeader

	// ErrBodyDecode indicates the request body is not a valid GreetingBody.
	ErrBodyDecode = transportcore.ErrBodyDecode

	// ErrRouteNotFound indicates no route matched the request path.
	ErrRouteNotFound = transportcore.ErrRouteNotFound

	// ErrMethodNotAllowed indicates the HTTP method is not allowed for the endpoint.
	ErrMethodNotAllowed = transportcore.ErrMethodNotAllowed

	// ErrServerClosed indicates the server has been closed and cannot accept requests.
	ErrServerClosed = transportcore.ErrServerClosed
)
