// Package greeter provides the shared wire types and constants of the greeter API.
package greeter

import "fmt"

// Route paths served by the API. Segments in braces capture one path segment.
const (
	// PathHello returns a plain-text greeting.
	PathHello = "/hello/{name}"

	// PathHelloJSON returns a JSON greeting.
	PathHelloJSON = "/hello/json/{name}"

	// PathReceiveJSON echoes a GreetingBody.
	PathReceiveJSON = "/receive/json"

	// PathWithAuthJSON echoes a GreetingBody together with the authenticated user.
	PathWithAuthJSON = "/with_auth/json"

	// PathHealth reports liveness.
	PathHealth = "/health"

	// PathMetrics exposes Prometheus metrics.
	PathMetrics = "/metrics"
)

// PathParamName is the name of the captured segment in the greeting routes.
const PathParamName = "name"

// Token scheme constants as defined in RFC 6750.
const (
	// BearerToken is the Bearer authentication scheme.
	BearerToken = "Bearer"

	// BearerPrefix is the exact prefix an Authorization header must carry.
	BearerPrefix = BearerToken + " "
)

// HTTP header names.
const (
	// HeaderAuthorization is the Authorization HTTP header name.
	HeaderAuthorization = "Authorization"

	// HeaderWWWAuthenticate is the WWW-Authenticate HTTP header name.
	HeaderWWWAuthenticate = "WWW-Authenticate"

	// HeaderContentType is the Content-Type HTTP header name.
	HeaderContentType = "Content-Type"

	// HeaderAllow is the Allow HTTP header name.
	HeaderAllow = "Allow"

	// HeaderRequestID carries the per-request correlation ID.
	HeaderRequestID = "X-Request-ID"
)

// Content type constants.
const (
	// ContentTypeJSON is the application/json content type.
	ContentTypeJSON = "application/json"

	// ContentTypeText is the plain UTF-8 text content type.
	ContentTypeText = "text/plain; charset=utf-8"
)

// GreetingBody is the request body accepted by the JSON echo routes.
// Data is required; decoders reject bodies that omit it.
type GreetingBody struct {
	Data string `json:"data"`
}

// HelloJSON is the response body of the JSON greeting route.
type HelloJSON struct {
	Data string `json:"data"`
}

// Greet returns the greeting for name. It never fails.
func Greet(name string) string {
	return fmt.Sprintf("Hello, %s!", name)
}
