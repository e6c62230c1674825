package config

import (
	"fmt"
	"log/slog"
)

// minJWTSecretBytes is the shortest accepted HMAC key (256 bits).
const minJWTSecretBytes = 32

// Validate checks that the configuration is valid and complete.
// It returns an error if required fields are missing or values are invalid.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := validateServer(cfg); err != nil {
		return fmt.Errorf("invalid server config: %w", err)
	}

	if err := validateLogging(cfg); err != nil {
		return fmt.Errorf("invalid logging config: %w", err)
	}

	if err := validateAuth(cfg); err != nil {
		return fmt.Errorf("invalid auth config: %w", err)
	}

	return nil
}

// validateServer validates the server-related fields.
func validateServer(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("SERVER_ADDR is required")
	}

	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}

	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}

	// 0 is allowed meaning no timeout
	if cfg.IdleTimeout < 0 {
		return fmt.Errorf("SERVER_IDLE_TIMEOUT must be non-negative")
	}

	if cfg.MaxBodyBytes <= 0 {
		return fmt.Errorf("SERVER_MAX_BODY_BYTES must be positive")
	}

	return nil
}

// validateLogging validates the logging-related fields.
func validateLogging(cfg *Config) error {
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	switch cfg.LogFormat {
	case LogFormatJSON, LogFormatText:
	default:
		return fmt.Errorf("LOG_FORMAT must be %q or %q, got %q", LogFormatJSON, LogFormatText, cfg.LogFormat)
	}

	return nil
}

// validateAuth validates the auth-related fields.
func validateAuth(cfg *Config) error {
	if cfg.AuthToken == "" {
		return fmt.Errorf("AUTH_TOKEN is required")
	}

	if cfg.AuthUserName == "" {
		return fmt.Errorf("AUTH_USER_NAME is required")
	}

	if cfg.JWTSecret != "" && len(cfg.JWTSecret) < minJWTSecretBytes {
		return fmt.Errorf("AUTH_JWT_SECRET must be at least %d bytes", minJWTSecretBytes)
	}

	if cfg.JWTLeeway < 0 {
		return fmt.Errorf("AUTH_JWT_LEEWAY must be non-negative")
	}

	return nil
}

// ParseLogLevel converts a LOG_LEVEL value into a slog.Level.
func ParseLogLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error: %w", err)
	}
	return l, nil
}
