// Package config provides configuration management for the greeter server.
// Configuration is loaded from environment variables with sensible defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Log format names accepted by LOG_FORMAT.
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Config holds the complete server configuration in a flat structure.
type Config struct {
	// Server settings
	// Addr is the address to bind the HTTP server (e.g., ":3000").
	Addr string

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration

	// IdleTimeout is the maximum duration to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration

	// MaxBodyBytes caps the size of JSON request bodies.
	MaxBodyBytes int64

	// Logging settings
	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFormat is one of json, text.
	LogFormat string

	// Auth settings
	// AuthToken is the single bearer token accepted by the static validator.
	AuthToken string

	// AuthUserID and AuthUserName describe the user the static token maps to.
	AuthUserID   uint64
	AuthUserName string

	// AuthRealm is advertised in WWW-Authenticate challenges.
	AuthRealm string

	// JWTSecret enables HMAC-signed JWT bearer tokens when non-empty.
	JWTSecret string

	// JWTIssuer, when set, must match the iss claim of JWT bearer tokens.
	JWTIssuer string

	// JWTLeeway is the allowed clock skew for JWT time-based claims.
	JWTLeeway time.Duration

	// Metrics settings
	// MetricsEnabled exposes Prometheus metrics at /metrics.
	MetricsEnabled bool
}

// Load reads configuration from environment variables and returns a Config.
// It sets default values for optional fields and validates the configuration.
func Load() (*Config, error) {
	readTimeout, err := parseDurationWithDefault("SERVER_READ_TIMEOUT", "30s")
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := parseDurationWithDefault("SERVER_WRITE_TIMEOUT", "30s")
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT: %w", err)
	}

	idleTimeout, err := parseDurationWithDefault("SERVER_IDLE_TIMEOUT", "120s")
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_IDLE_TIMEOUT: %w", err)
	}

	maxBodyBytes, err := parseIntWithDefault("SERVER_MAX_BODY_BYTES", "1048576")
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_MAX_BODY_BYTES: %w", err)
	}

	userID, err := strconv.ParseUint(getEnvWithDefault("AUTH_USER_ID", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_USER_ID: %w", err)
	}

	jwtLeeway, err := parseDurationWithDefault("AUTH_JWT_LEEWAY", "1m")
	if err != nil {
		return nil, fmt.Errorf("invalid AUTH_JWT_LEEWAY: %w", err)
	}

	metricsEnabled, err := strconv.ParseBool(getEnvWithDefault("METRICS_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid METRICS_ENABLED: %w", err)
	}

	cfg := &Config{
		// Server settings
		Addr:         getEnvWithDefault("SERVER_ADDR", ":3000"),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		MaxBodyBytes: maxBodyBytes,

		// Logging settings
		LogLevel:  getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvWithDefault("LOG_FORMAT", LogFormatJSON),

		// Auth settings
		AuthToken:    getEnvWithDefault("AUTH_TOKEN", "hogehoge"),
		AuthUserID:   userID,
		AuthUserName: getEnvWithDefault("AUTH_USER_NAME", "hoge"),
		AuthRealm:    getEnvWithDefault("AUTH_REALM", "greeter"),
		JWTSecret:    os.Getenv("AUTH_JWT_SECRET"),
		JWTIssuer:    os.Getenv("AUTH_JWT_ISSUER"),
		JWTLeeway:    jwtLeeway,

		// Metrics settings
		MetricsEnabled: metricsEnabled,
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnvWithDefault returns the environment variable value or the default if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseDurationWithDefault parses a duration from an environment variable.
// If the variable is not set, it uses the default value.
// Returns an error if the value is set but cannot be parsed.
func parseDurationWithDefault(key, defaultValue string) (time.Duration, error) {
	value := getEnvWithDefault(key, defaultValue)

	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("cannot parse duration %q: %w", value, err)
	}

	return duration, nil
}

// parseIntWithDefault parses a base-10 int64 from an environment variable.
func parseIntWithDefault(key, defaultValue string) (int64, error) {
	value := getEnvWithDefault(key, defaultValue)

	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse integer %q: %w", value, err)
	}

	return n, nil
}

// String returns a string representation of the configuration (for debugging).
// Secrets are redacted.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Addr: %s, ReadTimeout: %v, WriteTimeout: %v, IdleTimeout: %v, MaxBodyBytes: %d, LogLevel: %s, LogFormat: %s, AuthToken: %s, AuthUserID: %d, AuthUserName: %s, AuthRealm: %s, JWTSecret: %s, JWTIssuer: %s, JWTLeeway: %v, MetricsEnabled: %t}",
		c.Addr, c.ReadTimeout, c.WriteTimeout, c.IdleTimeout, c.MaxBodyBytes,
		c.LogLevel, c.LogFormat,
		redact(c.AuthToken), c.AuthUserID, c.AuthUserName, c.AuthRealm,
		redact(c.JWTSecret), c.JWTIssuer, c.JWTLeeway,
		c.MetricsEnabled)
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "[REDACTED]"
}
