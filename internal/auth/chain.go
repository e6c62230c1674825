package auth

import (
	"context"
)

// ChainValidator tries each validator in order and returns the first success.
type ChainValidator struct {
	validators []TokenValidator
}

// NewChainValidator creates a validator that delegates to validators in order.
// Nil entries are skipped.
func NewChainValidator(validators ...TokenValidator) *ChainValidator {
	chain := make([]TokenValidator, 0, len(validators))
	for _, v := range validators {
		if v != nil {
			chain = append(chain, v)
		}
	}
	return &ChainValidator{validators: chain}
}

// Validate returns the user from the first validator that accepts token.
// If all reject it, the last rejection is returned.
func (c *ChainValidator) Validate(ctx context.Context, token string) (*User, error) {
	err := error(newTokenError("ChainValidator.Validate", ErrInvalidToken, nil))
	for _, v := range c.validators {
		user, verr := v.Validate(ctx, token)
		if verr == nil && user != nil {
			return user, nil
		}
		if verr != nil {
			err = verr
		}
	}
	return nil, err
}
