// Package transport provides the HTTP transport layer for the greeter server.
//
// # Architecture
//
// The transport package composes routes out of a method, a path pattern,
// an ordered list of guards and a terminal handler. Guards are ordinary
// middleware that either call the next handler or write a rejection.
//
// Package structure:
//
//	internal/transport/
//	├── transport.go              # Public interfaces
//	├── errors.go                 # Transport domain errors
//	├── context.go                # Context keys and helpers
//	├── wire.go                   # Factory functions
//	├── transportcore/            # Shared types, errors and context helpers
//	├── internal/
//	│   ├── http/
//	│   │   ├── server.go         # HTTP server with graceful shutdown
//	│   │   ├── router.go         # Ordered route table with {name} captures
//	│   │   └── response.go       # JSON error responder with WWW-Authenticate
//	│   ├── middleware/
//	│   │   ├── auth.go           # Bearer token guard
//	│   │   ├── body.go           # GreetingBody decode guard
//	│   │   ├── requestid.go      # X-Request-ID correlation
//	│   │   ├── logging.go        # Request logging
//	│   │   ├── metrics.go        # Prometheus request metrics
//	│   │   └── recovery.go       # Panic recovery
//	│   └── handlers/
//	│       ├── hello.go          # Text and JSON greetings
//	│       ├── body.go           # Body echo and authenticated echo
//	│       ├── health.go         # Health check endpoint
//	│       └── metrics.go        # Prometheus exposition
//
// # Routes
//
// Routes are matched in registration order and the first full match wins:
//
//	GET  /hello/{name}        text greeting
//	GET  /hello/json/{name}   JSON greeting
//	POST /receive/json        body guard, echo
//	POST /with_auth/json      auth guard, body guard, {"user":...,"body":...}
//	GET  /health              {"status":"ok"}
//	GET  /metrics             Prometheus exposition (when enabled)
//
// A path that matches a route under a different method gets 405 with an
// Allow header. Anything else gets 404.
//
// # Middleware Chain
//
// Every request, matched or not, passes through:
//
//  1. Request ID - reuses or generates X-Request-ID
//  2. Logging - logs request details
//  3. Metrics - counts and times requests per route
//  4. Recovery - catches panics and returns 500 errors
//
// # Error Handling
//
// Error bodies are JSON with a stable code:
//
//	HTTP/1.1 401 Unauthorized
//	WWW-Authenticate: Bearer realm="greeter", error="invalid_token"
//	Content-Type: application/json
//
//	{"error":"invalid_auth_header","message":"invalid auth header"}
//
// # Usage Example
//
//	server, router, err := transport.NewTransportServices(&transport.Config{
//		ServerConfig: cfg,
//		Validator:    validator,
//		Logger:       logger,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := server.Start(); err != nil {
//		log.Fatal(err)
//	}
//
// # Context Values
//
// Guards store their results in the request context:
//
//	user, ok := transport.UserFromContext(r.Context())
//	body, ok := transport.BodyFromContext(r.Context())
package transport
