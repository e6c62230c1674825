package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// validatorFunc adapts a function to TokenValidator.
type validatorFunc func(ctx context.Context, token string) (*User, error)

func (f validatorFunc) Validate(ctx context.Context, token string) (*User, error) {
	return f(ctx, token)
}

func TestChainValidator_FirstSuccessWins(t *testing.T) {
	t.Parallel()

	calls := 0
	never := validatorFunc(func(context.Context, string) (*User, error) {
		calls++
		return &User{Name: "second"}, nil
	})

	chain := NewChainValidator(NewStaticValidator("tok", User{Name: "first"}), never)

	user, err := chain.Validate(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if user.Name != "first" {
		t.Errorf("Validate() Name = %q, want %q", user.Name, "first")
	}
	if calls != 0 {
		t.Errorf("second validator called %d times, want 0", calls)
	}
}

func TestChainValidator_FallsThrough(t *testing.T) {
	t.Parallel()

	chain := NewChainValidator(
		NewStaticValidator("tok", User{Name: "static"}),
		nil,
		NewJWTValidator(testSecret, "", time.Minute),
	)

	token := signToken(t, jwt.SigningMethodHS256, testSecret, validClaims())
	user, err := chain.Validate(context.Background(), token)
	if err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if user.Name != "alice" {
		t.Errorf("Validate() Name = %q, want %q", user.Name, "alice")
	}
}

func TestChainValidator_AllReject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		chain *ChainValidator
	}{
		{name: "empty chain", chain: NewChainValidator()},
		{name: "static only", chain: NewChainValidator(NewStaticValidator("tok", User{Name: "x"}))},
		{
			name: "nil user without error treated as rejection",
			chain: NewChainValidator(validatorFunc(func(context.Context, string) (*User, error) {
				return nil, nil
			})),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			user, err := tt.chain.Validate(context.Background(), "nope")
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
			}
			if user != nil {
				t.Errorf("Validate() user = %+v, want nil", user)
			}
		})
	}
}

func TestNewValidator(t *testing.T) {
	t.Parallel()

	if _, err := NewValidator(nil); err == nil {
		t.Error("NewValidator(nil) should return error")
	}
	if _, err := NewValidator(&Config{}); err == nil {
		t.Error("NewValidator() with empty token should return error")
	}

	static, err := NewValidator(&Config{Token: "hogehoge", User: User{Name: "hoge"}})
	if err != nil {
		t.Fatalf("NewValidator() unexpected error: %v", err)
	}
	if _, ok := static.(*StaticValidator); !ok {
		t.Errorf("NewValidator() without secret = %T, want *StaticValidator", static)
	}

	chained, err := NewValidator(&Config{Token: "hogehoge", User: User{Name: "hoge"}, JWTSecret: testSecret})
	if err != nil {
		t.Fatalf("NewValidator() unexpected error: %v", err)
	}
	if _, ok := chained.(*ChainValidator); !ok {
		t.Errorf("NewValidator() with secret = %T, want *ChainValidator", chained)
	}

	ctx := context.Background()
	if _, err := chained.Validate(ctx, "hogehoge"); err != nil {
		t.Errorf("chained Validate(static) unexpected error: %v", err)
	}
	if _, err := chained.Validate(ctx, signToken(t, jwt.SigningMethodHS256, testSecret, validClaims())); err != nil {
		t.Errorf("chained Validate(jwt) unexpected error: %v", err)
	}
}
