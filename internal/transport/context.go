package transport

import (
	"context"

	"github.com/jamesprial/greeter/internal/auth"
	"github.com/jamesprial/greeter/internal/transport/transportcore"
	"github.com/jamesprial/greeter/pkg/greeter"
)

// Re-export context helpers from transportcore for backward compatibility.
// This allows external packages to import transport without creating cycles.

// UserFromContext extracts the authenticated user from the request context.
// Returns nil and false if the auth guard did not run.
func UserFromContext(ctx context.Context) (*auth.User, bool) {
	return transportcore.UserFromContext(ctx)
}

// ContextWithUser adds the authenticated user to the request context.
func ContextWithUser(ctx context.Context, user *auth.User) context.Context {
	return transportcore.ContextWithUser(ctx, user)
}

// BodyFromContext extracts the decoded GreetingBody from the request context.
// Returns nil and false if the body guard did not run.
func BodyFromContext(ctx context.Context) (*greeter.GreetingBody, bool) {
	return transportcore.BodyFromContext(ctx)
}

// ContextWithBody adds the decoded GreetingBody to the request context.
func ContextWithBody(ctx context.Context, body *greeter.GreetingBody) context.Context {
	return transportcore.ContextWithBody(ctx, body)
}

// RequestIDFromContext returns the request correlation ID, or "" if unset.
func RequestIDFromContext(ctx context.Context) string {
	return transportcore.RequestIDFromContext(ctx)
}
