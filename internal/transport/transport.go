package transport

import (
	"github.com/jamesprial/greeter/internal/transport/transportcore"
)

// Re-export types from transportcore for backward compatibility.
// This allows external packages to import transport without creating cycles.

// Middleware is a function that wraps an http.Handler.
// Route guards are middleware too: they either call the next handler or
// write a rejection and stop.
type Middleware = transportcore.Middleware

// Server manages the HTTP server lifecycle.
// Implementations must support graceful shutdown and provide
// access to the bound address after startup.
type Server = transportcore.Server

// Router dispatches requests over an ordered route table.
type Router = transportcore.Router

// Route describes one registered route.
type Route = transportcore.Route

// AuthMiddleware provides the bearer token guard.
type AuthMiddleware = transportcore.AuthMiddleware

// ErrorResponder writes JSON error responses.
type ErrorResponder = transportcore.ErrorResponder

// BodyDecodeError describes why a request body could not be decoded.
type BodyDecodeError = transportcore.BodyDecodeError
