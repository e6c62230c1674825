package auth

import (
	"context"
	"crypto/subtle"
)

// StaticValidator accepts exactly one token and maps it to a fixed user.
// It stands in for a real credential store.
type StaticValidator struct {
	token []byte
	user  User
}

// NewStaticValidator creates a validator accepting token as user.
func NewStaticValidator(token string, user User) *StaticValidator {
	return &StaticValidator{
		token: []byte(token),
		user:  user,
	}
}

// Validate compares token against the configured value in constant time.
func (v *StaticValidator) Validate(_ context.Context, token string) (*User, error) {
	if len(v.token) == 0 || subtle.ConstantTimeCompare([]byte(token), v.token) != 1 {
		return nil, newTokenError("StaticValidator.Validate", ErrTokenMismatch, nil)
	}

	user := v.user
	return &user, nil
}
