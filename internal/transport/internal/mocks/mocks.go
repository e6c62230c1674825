// Package mocks provides mock implementations for testing the transport layer.
package mocks

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/jamesprial/greeter/internal/auth"
)

// TokenValidator is a mock implementation of auth.TokenValidator.
type TokenValidator struct {
	ValidateFunc func(ctx context.Context, token string) (*auth.User, error)

	mu     sync.Mutex
	tokens []string
}

// Validate records the token and calls the mock ValidateFunc.
func (m *TokenValidator) Validate(ctx context.Context, token string) (*auth.User, error) {
	m.mu.Lock()
	m.tokens = append(m.tokens, token)
	m.mu.Unlock()

	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, token)
	}
	return nil, auth.ErrInvalidToken
}

// Tokens returns every token passed to Validate, in call order.
func (m *TokenValidator) Tokens() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.tokens...)
}

// ErrorResponder is a mock implementation of transportcore.ErrorResponder.
// It writes the status code only, with no body.
type ErrorResponder struct {
	UnauthorizedCalled     bool
	UnauthorizedErr        error
	BadRequestCalled       bool
	BadRequestErr          error
	NotFoundCalled         bool
	NotFoundErr            error
	MethodNotAllowedCalled bool
	MethodNotAllowedErr    error
	Allowed                []string
	InternalCalled         bool
	InternalErr            error
}

// Unauthorized records the call and writes a 401 response.
func (m *ErrorResponder) Unauthorized(w http.ResponseWriter, err error) {
	m.UnauthorizedCalled = true
	m.UnauthorizedErr = err
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
}

// BadRequest records the call and writes a 400 response.
func (m *ErrorResponder) BadRequest(w http.ResponseWriter, err error) {
	m.BadRequestCalled = true
	m.BadRequestErr = err
	w.WriteHeader(http.StatusBadRequest)
}

// NotFound records the call and writes a 404 response.
func (m *ErrorResponder) NotFound(w http.ResponseWriter, err error) {
	m.NotFoundCalled = true
	m.NotFoundErr = err
	w.WriteHeader(http.StatusNotFound)
}

// MethodNotAllowed records the call and writes a 405 response.
func (m *ErrorResponder) MethodNotAllowed(w http.ResponseWriter, err error, allowed []string) {
	m.MethodNotAllowedCalled = true
	m.MethodNotAllowedErr = err
	m.Allowed = allowed
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	w.WriteHeader(http.StatusMethodNotAllowed)
}

// InternalError records the call and writes a 500 response.
func (m *ErrorResponder) InternalError(w http.ResponseWriter, err error) {
	m.InternalCalled = true
	m.InternalErr = err
	w.WriteHeader(http.StatusInternalServerError)
}

// Reset clears all recorded state.
func (m *ErrorResponder) Reset() {
	m.UnauthorizedCalled = false
	m.UnauthorizedErr = nil
	m.BadRequestCalled = false
	m.BadRequestErr = nil
	m.NotFoundCalled = false
	m.NotFoundErr = nil
	m.MethodNotAllowedCalled = false
	m.MethodNotAllowedErr = nil
	m.Allowed = nil
	m.InternalCalled = false
	m.InternalErr = nil
}
