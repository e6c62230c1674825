package handlers

import (
	"io"
	"net/http"

	"github.com/jamesprial/greeter/internal/transport/transportcore"
	"github.com/jamesprial/greeter/pkg/greeter"
)

// NewHelloHandler creates a handler answering "Hello, {name}!" as plain text.
// The name is read from the path value captured by the router.
func NewHelloHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(greeter.HeaderContentType, greeter.ContentTypeText)
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, greeter.Greet(r.PathValue(greeter.PathParamName)))
	})
}

// NewHelloJSONHandler creates a handler answering {"data":"Hello, {name}!"}.
func NewHelloJSONHandler(responder transportcore.ErrorResponder) http.Handler {
	if responder == nil {
		panic("responder cannot be nil")
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := greeter.HelloJSON{Data: greeter.Greet(r.PathValue(greeter.PathParamName))}
		writeJSON(w, responder, http.StatusOK, resp)
	})
}
