package transportcore

import (
	"context"

	"github.com/jamesprial/greeter/internal/auth"
	"github.com/jamesprial/greeter/pkg/greeter"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserContextKey is the context key for the authenticated user.
	UserContextKey contextKey = "auth_user"

	// BodyContextKey is the context key for the decoded GreetingBody.
	BodyContextKey contextKey = "greeting_body"

	// RouteContextKey is the context key for the matched route record.
	RouteContextKey contextKey = "route_info"

	// RequestIDContextKey is the context key for the request correlation ID.
	RequestIDContextKey contextKey = "request_id"
)

// UserFromContext extracts the authenticated user from the request context.
// Returns nil and false if no user is present.
func UserFromContext(ctx context.Context) (*auth.User, bool) {
	if ctx == nil {
		return nil, false
	}
	user, ok := ctx.Value(UserContextKey).(*auth.User)
	return user, ok && user != nil
}

// ContextWithUser adds the authenticated user to the request context.
func ContextWithUser(ctx context.Context, user *auth.User) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, UserContextKey, user)
}

// BodyFromContext extracts the decoded GreetingBody from the request context.
// Returns nil and false if no body was decoded.
func BodyFromContext(ctx context.Context) (*greeter.GreetingBody, bool) {
	if ctx == nil {
		return nil, false
	}
	body, ok := ctx.Value(BodyContextKey).(*greeter.GreetingBody)
	return body, ok && body != nil
}

// ContextWithBody adds the decoded GreetingBody to the request context.
func ContextWithBody(ctx context.Context, body *greeter.GreetingBody) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, BodyContextKey, body)
}

// RouteInfo records which route served a request.
// Outer middleware installs an empty RouteInfo and the router fills it in,
// so logging and metrics can label requests after the handler returns.
type RouteInfo struct {
	// Pattern is the matched route pattern, or empty if nothing matched.
	Pattern string
}

// ContextWithRouteInfo returns a context carrying info.
func ContextWithRouteInfo(ctx context.Context, info *RouteInfo) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, RouteContextKey, info)
}

// RouteInfoFromContext returns the RouteInfo installed by outer middleware.
func RouteInfoFromContext(ctx context.Context) (*RouteInfo, bool) {
	if ctx == nil {
		return nil, false
	}
	info, ok := ctx.Value(RouteContextKey).(*RouteInfo)
	return info, ok && info != nil
}

// ContextWithRequestID adds the request correlation ID to the context.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, RequestIDContextKey, id)
}

// RequestIDFromContext returns the request correlation ID, or "" if unset.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(RequestIDContextKey).(string)
	return id
}
