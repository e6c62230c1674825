package handlers

import (
	"errors"
	"net/http"

	"github.com/jamesprial/greeter/internal/auth"
	"github.com/jamesprial/greeter/internal/transport/transportcore"
	"github.com/jamesprial/greeter/pkg/greeter"
)

var (
	errNoBody = errors.New("no decoded body in request context")
	errNoUser = errors.New("no authenticated user in request context")
)

// authenticatedResponse is the body of the authenticated echo endpoint.
type authenticatedResponse struct {
	User *auth.User            `json:"user"`
	Body *greeter.GreetingBody `json:"body"`
}

// NewEchoHandler creates a handler that writes back the GreetingBody decoded
// by the body guard. It must be registered behind that guard.
func NewEchoHandler(responder transportcore.ErrorResponder) http.Handler {
	if responder == nil {
		panic("responder cannot be nil")
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := transportcore.BodyFromContext(r.Context())
		if !ok {
			responder.InternalError(w, errNoBody)
			return
		}
		writeJSON(w, responder, http.StatusOK, body)
	})
}

// NewWithAuthHandler creates a handler that writes {"user":...,"body":...}
// from the authenticated user and decoded body. It must be registered
// behind the auth guard and the body guard.
func NewWithAuthHandler(responder transportcore.ErrorResponder) http.Handler {
	if responder == nil {
		panic("responder cannot be nil")
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := transportcore.UserFromContext(r.Context())
		if !ok {
			responder.InternalError(w, errNoUser)
			return
		}
		body, ok := transportcore.BodyFromContext(r.Context())
		if !ok {
			responder.InternalError(w, errNoBody)
			return
		}
		writeJSON(w, responder, http.StatusOK, authenticatedResponse{User: user, Body: body})
	})
}
