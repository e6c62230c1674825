package auth

import (
	"errors"
	"fmt"

	ierrors "github.com/jamesprial/greeter/internal/errors"
)

// Domain identifier for auth errors.
const domainAuth = "auth"

// Sentinel errors for token validation.
// Every specific sentinel wraps ErrInvalidToken, so callers that only care
// whether a token was rejected can test for ErrInvalidToken alone.
var (
	// ErrInvalidToken indicates the bearer token was rejected.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenMismatch indicates a static token did not match.
	ErrTokenMismatch = fmt.Errorf("%w: token mismatch", ErrInvalidToken)

	// ErrMalformedToken indicates the token could not be parsed.
	ErrMalformedToken = fmt.Errorf("%w: malformed token", ErrInvalidToken)

	// ErrTokenExpired indicates the token has expired.
	ErrTokenExpired = fmt.Errorf("%w: token expired", ErrInvalidToken)

	// ErrInvalidSignature indicates signature verification failed or the algorithm is not allowed.
	ErrInvalidSignature = fmt.Errorf("%w: invalid signature", ErrInvalidToken)

	// ErrInvalidIssuer indicates the iss claim did not match.
	ErrInvalidIssuer = fmt.Errorf("%w: invalid issuer", ErrInvalidToken)

	// ErrMissingClaim indicates a required claim is absent or malformed.
	ErrMissingClaim = fmt.Errorf("%w: missing claim", ErrInvalidToken)
)

// newTokenError creates a DomainError for a rejected token.
// The returned error matches ierrors.ErrUnauthorized, kind and, if non-nil, cause.
func newTokenError(op string, kind, cause error) *ierrors.DomainError {
	err := kind
	if cause != nil {
		err = fmt.Errorf("%w: %w", kind, cause)
	}
	return ierrors.New(domainAuth, op, ierrors.ErrUnauthorized, err)
}

// newMissingClaimError creates a DomainError for an absent or malformed claim.
func newMissingClaimError(op, claim string) *ierrors.DomainError {
	return newTokenError(op, ErrMissingClaim, fmt.Errorf("claim %q", claim)).
		WithContext("claim", claim)
}
