// Package transportcore provides core types, interfaces, and primitives for the transport layer.
// This package exists to break import cycles between the transport package and its internal subpackages.
package transportcore

import (
	"context"
	"net/http"
)

// Middleware is a function that wraps an http.Handler.
// It can modify the request, response, or perform additional logic
// before or after calling the next handler in the chain.
//
// Route guards are Middleware too: a guard that rejects a request writes
// the error response and does not call next.
type Middleware func(http.Handler) http.Handler

// Server manages the HTTP server lifecycle.
// Implementations must support graceful shutdown and provide
// access to the bound address after startup.
type Server interface {
	// Start begins serving HTTP requests on the configured address.
	// This is a blocking call that returns when the server stops
	// or encounters an error during startup.
	Start() error

	// Shutdown gracefully shuts down the server without interrupting
	// active connections. It waits for active connections to close
	// or the context to be cancelled/expired.
	Shutdown(ctx context.Context) error

	// Addr returns the address the server is listening on.
	// This is useful when the server is configured to bind to a random port.
	Addr() string
}

// Route describes one entry of the routing table.
type Route struct {
	// Method is the exact HTTP method the route accepts.
	Method string

	// Pattern is a slash-separated path. Segments in braces, e.g. "{name}",
	// capture exactly one path segment; all others match literally.
	Pattern string

	// Guards run in order before Handler. Any guard may reject the request.
	Guards []Middleware

	// Handler serves requests that pass every guard.
	Handler http.Handler
}

// Router matches requests against an ordered list of routes.
// Routes are evaluated in registration order and the first route whose
// method and path both match serves the request.
type Router interface {
	http.Handler

	// Handle registers handler for method and pattern, preceded by guards.
	Handle(method, pattern string, handler http.Handler, guards ...Middleware)

	// HandleFunc registers a handler function for method and pattern.
	HandleFunc(method, pattern string, handler http.HandlerFunc, guards ...Middleware)

	// Use wraps the whole router, including 404 and 405 responses, in middlewares.
	// The first middleware is the outermost layer.
	Use(middlewares ...Middleware)

	// Routes returns the registered routes in matching order.
	Routes() []Route
}

// AuthMiddleware provides bearer token authentication.
type AuthMiddleware interface {
	// Authenticate returns a guard that extracts the bearer token from the
	// Authorization header, validates it, and stores the resulting user in
	// the request context.
	//
	// Returns 401 Unauthorized with a WWW-Authenticate header on failure.
	Authenticate() Middleware
}

// ErrorResponder formats error responses.
// Every response body is JSON of the form {"error": "<code>", "message": "<text>"}.
type ErrorResponder interface {
	// Unauthorized sends a 401 Unauthorized response with a WWW-Authenticate header.
	// err selects the error code: ErrMissingAuthHeader or ErrInvalidAuthHeader.
	Unauthorized(w http.ResponseWriter, err error)

	// BadRequest sends a 400 Bad Request response whose message is err's text.
	BadRequest(w http.ResponseWriter, err error)

	// NotFound sends a 404 Not Found response. err is normally ErrRouteNotFound
	// wrapped in a DomainError of kind ErrNotFound.
	NotFound(w http.ResponseWriter, err error)

	// MethodNotAllowed sends a 405 Method Not Allowed response with an Allow
	// header listing allowed.
	MethodNotAllowed(w http.ResponseWriter, err error, allowed []string)

	// InternalError sends a 500 Internal Server Error response.
	InternalError(w http.ResponseWriter, err error)
}
