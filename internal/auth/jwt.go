package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// allowedAlgorithms lists the HMAC algorithms accepted by JWTValidator.
// Anything else, including "none", is rejected before the key is consulted.
var allowedAlgorithms = []string{
	jwt.SigningMethodHS256.Alg(),
	jwt.SigningMethodHS384.Alg(),
	jwt.SigningMethodHS512.Alg(),
}

// userClaims is the claim set carried by user tokens.
// The subject holds the decimal user ID.
type userClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// JWTValidator validates HMAC-signed JWT bearer tokens.
type JWTValidator struct {
	secret []byte
	issuer string
	leeway time.Duration
}

// NewJWTValidator creates a JWT validator.
// If issuer is empty, the iss claim is not checked.
func NewJWTValidator(secret []byte, issuer string, leeway time.Duration) *JWTValidator {
	return &JWTValidator{
		secret: secret,
		issuer: issuer,
		leeway: leeway,
	}
}

// Validate parses and verifies tokenString and maps its claims to a User.
// The token must carry exp, a numeric sub and a non-empty name claim.
func (v *JWTValidator) Validate(_ context.Context, tokenString string) (*User, error) {
	const op = "JWTValidator.Validate"

	opts := []jwt.ParserOption{
		jwt.WithValidMethods(allowedAlgorithms),
		jwt.WithLeeway(v.leeway),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &userClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, classifyJWTError(op, err)
	}
	if !token.Valid {
		return nil, newTokenError(op, ErrInvalidToken, nil)
	}

	return userFromClaims(op, claims)
}

// classifyJWTError maps golang-jwt validation errors onto auth sentinels.
func classifyJWTError(op string, err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return newTokenError(op, ErrMalformedToken, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return newTokenError(op, ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return newTokenError(op, ErrInvalidIssuer, err)
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return newTokenError(op, ErrMissingClaim, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return newTokenError(op, ErrInvalidSignature, err)
	default:
		return newTokenError(op, ErrInvalidToken, err)
	}
}

// userFromClaims builds a User from validated claims.
func userFromClaims(op string, claims *userClaims) (*User, error) {
	if claims.Subject == "" {
		return nil, newMissingClaimError(op, "sub")
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, newMissingClaimError(op, "sub")
	}

	if claims.Name == "" {
		return nil, newMissingClaimError(op, "name")
	}

	return &User{ID: id, Name: claims.Name}, nil
}
