// Package auth turns bearer tokens into authenticated users.
//
// Routing code depends only on TokenValidator, so the credential backend can
// be swapped without touching the HTTP layer. Two backends are provided: a
// StaticValidator that accepts a single configured token, and a JWTValidator
// that accepts HMAC-signed JSON Web Tokens.
package auth

import (
	"context"
	"time"
)

// User is the identity attached to an authenticated request.
// It is only ever constructed by a TokenValidator, and always has both fields set.
type User struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// TokenValidator validates a bearer token and returns the user it belongs to.
type TokenValidator interface {
	// Validate returns the user for token, or an error matching ErrInvalidToken
	// when the token is rejected. It never returns a nil user without an error.
	Validate(ctx context.Context, token string) (*User, error)
}

// Config holds the settings needed to build the validator chain.
type Config struct {
	// Token is the single accepted static bearer token.
	Token string

	// User is the identity the static token maps to.
	User User

	// JWTSecret enables the JWT validator when non-empty.
	JWTSecret []byte

	// JWTIssuer, when set, must equal the iss claim.
	JWTIssuer string

	// JWTLeeway is the allowed clock skew for exp, nbf and iat.
	JWTLeeway time.Duration
}
