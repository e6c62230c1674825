package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	ierrors "github.com/jamesprial/greeter/internal/errors"
	"github.com/jamesprial/greeter/internal/transport/transportcore"
)

// domainTransport identifies transport errors in DomainError.
const domainTransport = "transport"

// segment is one compiled path segment of a route pattern.
type segment struct {
	literal string
	param   string
}

// route is a registered route with its compiled pattern and guarded handler.
type route struct {
	transportcore.Route
	segments []segment
	guarded  http.Handler
}

// router implements transportcore.Router as an ordered route table.
type router struct {
	routes      []*route
	responder   transportcore.ErrorResponder
	middlewares []transportcore.Middleware
	handler     http.Handler
}

// NewRouter creates an empty router. Unmatched requests are answered through responder.
func NewRouter(responder transportcore.ErrorResponder) transportcore.Router {
	if responder == nil {
		panic("responder cannot be nil")
	}

	r := &router{
		responder: responder,
	}
	r.handler = http.HandlerFunc(r.dispatch)
	return r
}

// Handle registers handler for method and pattern, preceded by guards.
// It panics if the pattern is malformed, mirroring http.ServeMux.
func (r *router) Handle(method, pattern string, handler http.Handler, guards ...transportcore.Middleware) {
	if method == "" {
		panic("router: method cannot be empty")
	}
	if handler == nil {
		panic("router: handler cannot be nil")
	}

	segments, err := compilePattern(pattern)
	if err != nil {
		panic(fmt.Sprintf("router: %v", err))
	}

	r.routes = append(r.routes, &route{
		Route: transportcore.Route{
			Method:  method,
			Pattern: pattern,
			Guards:  guards,
			Handler: handler,
		},
		segments: segments,
		guarded:  chain(handler, guards),
	})
}

// HandleFunc registers a handler function for method and pattern.
func (r *router) HandleFunc(method, pattern string, handler http.HandlerFunc, guards ...transportcore.Middleware) {
	r.Handle(method, pattern, handler, guards...)
}

// Use wraps the router in middlewares. The first middleware registered is the outermost layer.
func (r *router) Use(middlewares ...transportcore.Middleware) {
	r.middlewares = append(r.middlewares, middlewares...)
	r.handler = chain(http.HandlerFunc(r.dispatch), r.middlewares)
}

// Routes returns the registered routes in matching order.
func (r *router) Routes() []transportcore.Route {
	out := make([]transportcore.Route, len(r.routes))
	for i, rt := range r.routes {
		out[i] = rt.Route
	}
	return out
}

// ServeHTTP implements http.Handler.
func (r *router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

// dispatch walks the route table in order. The first route matching both
// path and method wins. If some route matched the path but none the method,
// the response is 405 listing those methods; otherwise it is 404.
func (r *router) dispatch(w http.ResponseWriter, req *http.Request) {
	parts := splitPath(req.URL.EscapedPath())

	var allowed []string
	for _, rt := range r.routes {
		params, ok := rt.match(parts)
		if !ok {
			continue
		}
		if rt.Method != req.Method {
			allowed = appendUnique(allowed, rt.Method)
			continue
		}

		if info, ok := transportcore.RouteInfoFromContext(req.Context()); ok {
			info.Pattern = rt.Pattern
		}
		for name, value := range params {
			req.SetPathValue(name, value)
		}
		rt.guarded.ServeHTTP(w, req)
		return
	}

	if len(allowed) > 0 {
		err := ierrors.New(domainTransport, "Route", ierrors.ErrMethodNotAllowed, transportcore.ErrMethodNotAllowed).
			WithContext("method", req.Method).
			WithContext("path", req.URL.Path)
		r.responder.MethodNotAllowed(w, err, allowed)
		return
	}

	err := ierrors.New(domainTransport, "Route", ierrors.ErrNotFound, transportcore.ErrRouteNotFound).
		WithContext("method", req.Method).
		WithContext("path", req.URL.Path)
	r.responder.NotFound(w, err)
}

// match reports whether the escaped path segments fit the route pattern and
// returns the percent-decoded captures. A capture that does not decode to
// valid UTF-8 does not match.
func (rt *route) match(parts []string) (map[string]string, bool) {
	if parts == nil || len(parts) != len(rt.segments) {
		return nil, false
	}

	var params map[string]string
	for i, seg := range rt.segments {
		value, err := url.PathUnescape(parts[i])
		if err != nil {
			return nil, false
		}
		if seg.param == "" {
			if value != seg.literal {
				return nil, false
			}
			continue
		}
		if !utf8.ValidString(value) {
			return nil, false
		}
		if params == nil {
			params = make(map[string]string, 1)
		}
		params[seg.param] = value
	}
	return params, true
}

// compilePattern splits a pattern such as "/hello/json/{name}" into segments.
func compilePattern(pattern string) ([]segment, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("pattern %q must start with /", pattern)
	}

	seen := make(map[string]bool)
	parts := strings.Split(pattern[1:], "/")
	segments := make([]segment, 0, len(parts))
	for _, part := range parts {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			name := part[1 : len(part)-1]
			if name == "" {
				return nil, fmt.Errorf("pattern %q has an unnamed capture", pattern)
			}
			if seen[name] {
				return nil, fmt.Errorf("pattern %q captures %q twice", pattern, name)
			}
			seen[name] = true
			segments = append(segments, segment{param: name})
			continue
		}
		if strings.ContainsAny(part, "{}") {
			return nil, fmt.Errorf("pattern %q has a malformed segment %q", pattern, part)
		}
		segments = append(segments, segment{literal: part})
	}
	return segments, nil
}

// splitPath splits an escaped request path into its raw segments.
// Returns nil for paths that are not absolute.
func splitPath(escaped string) []string {
	if !strings.HasPrefix(escaped, "/") {
		return nil
	}
	return strings.Split(escaped[1:], "/")
}

// chain wraps handler with middlewares so the first one is the outermost layer.
func chain(handler http.Handler, middlewares []transportcore.Middleware) http.Handler {
	wrapped := handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
