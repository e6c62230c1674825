package auth

import (
	"fmt"
)

// NewValidator builds the validator chain described by cfg.
// The static validator always comes first; the JWT validator is appended
// when a secret is configured.
func NewValidator(cfg *Config) (TokenValidator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("auth config cannot be nil")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("static token cannot be empty")
	}

	static := NewStaticValidator(cfg.Token, cfg.User)
	if len(cfg.JWTSecret) == 0 {
		return static, nil
	}

	return NewChainValidator(static, NewJWTValidator(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTLeeway)), nil
}
