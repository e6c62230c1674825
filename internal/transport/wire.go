package transport

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jamesprial/greeter/internal/auth"
	"github.com/jamesprial/greeter/internal/config"
	"github.com/jamesprial/greeter/internal/transport/internal/handlers"
	transporthttp "github.com/jamesprial/greeter/internal/transport/internal/http"
	"github.com/jamesprial/greeter/internal/transport/internal/middleware"
	"github.com/jamesprial/greeter/pkg/greeter"
)

// NewServer creates a configured HTTP server.
// The server is configured with timeouts from the config and serves handler.
func NewServer(cfg *config.Config, handler http.Handler, logger *slog.Logger) Server {
	return transporthttp.NewServer(cfg, handler, logger)
}

// NewRouter creates an empty router that reports misses through responder.
func NewRouter(responder ErrorResponder) Router {
	return transporthttp.NewRouter(responder)
}

// NewErrorResponder creates an error responder.
// realm is advertised in WWW-Authenticate headers on 401 responses.
func NewErrorResponder(realm string, logger *slog.Logger) ErrorResponder {
	return transporthttp.NewErrorResponder(realm, logger)
}

// NewAuthMiddleware creates the bearer token guard.
func NewAuthMiddleware(validator auth.TokenValidator, responder ErrorResponder, logger *slog.Logger) AuthMiddleware {
	return middleware.NewAuthMiddleware(validator, responder, logger)
}

// NewBodyDecoder creates the GreetingBody decode guard.
func NewBodyDecoder(responder ErrorResponder, maxBytes int64, logger *slog.Logger) Middleware {
	return middleware.NewBodyDecoder(responder, maxBytes, logger)
}

// NewLoggingMiddleware creates request logging middleware.
// If logger is nil, it uses the default slog logger.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return middleware.NewLoggingMiddleware(logger)
}

// NewRecoveryMiddleware creates panic recovery middleware.
// It recovers from panics and returns a 500 error to the client.
// If logger is nil, it uses the default slog logger.
func NewRecoveryMiddleware(responder ErrorResponder, logger *slog.Logger) Middleware {
	return middleware.NewRecoveryMiddleware(responder, logger)
}

// NewRequestIDMiddleware creates X-Request-ID middleware.
func NewRequestIDMiddleware() Middleware {
	return middleware.NewRequestIDMiddleware()
}

// Config holds the configuration needed for the transport layer.
type Config struct {
	// ServerConfig is the server configuration.
	ServerConfig *config.Config

	// Validator checks bearer tokens for the authenticated route.
	Validator auth.TokenValidator

	// Logger receives request and error logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Registry collects request metrics when metrics are enabled.
	// If nil, a fresh registry with Go runtime and process collectors is used.
	Registry *prometheus.Registry
}

// NewTransportServices creates all transport layer services from the configuration.
// This is a convenience function for dependency injection that wires up the complete
// HTTP transport layer with routing, middleware, and handlers.
func NewTransportServices(cfg *Config) (Server, Router, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.ServerConfig == nil {
		return nil, nil, fmt.Errorf("server config cannot be nil")
	}
	if cfg.Validator == nil {
		return nil, nil, fmt.Errorf("token validator cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sc := cfg.ServerConfig

	responder := NewErrorResponder(sc.AuthRealm, logger)

	// Guards
	authGuard := NewAuthMiddleware(cfg.Validator, responder, logger).Authenticate()
	bodyGuard := NewBodyDecoder(responder, sc.MaxBodyBytes, logger)

	router := NewRouter(responder)

	// Global middleware, outermost first
	global := []Middleware{NewRequestIDMiddleware(), NewLoggingMiddleware(logger)}

	var registry *prometheus.Registry
	if sc.MetricsEnabled {
		registry = cfg.Registry
		if registry == nil {
			registry = prometheus.NewRegistry()
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}

		metrics, err := middleware.NewMetrics(registry)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create metrics: %w", err)
		}
		global = append(global, metrics.Middleware())
	}

	global = append(global, NewRecoveryMiddleware(responder, logger))
	router.Use(global...)

	// Routes, in matching order
	router.Handle(http.MethodGet, greeter.PathHello, handlers.NewHelloHandler())
	router.Handle(http.MethodGet, greeter.PathHelloJSON, handlers.NewHelloJSONHandler(responder))
	router.Handle(http.MethodPost, greeter.PathReceiveJSON, handlers.NewEchoHandler(responder), bodyGuard)
	router.Handle(http.MethodPost, greeter.PathWithAuthJSON, handlers.NewWithAuthHandler(responder), authGuard, bodyGuard)
	router.Handle(http.MethodGet, greeter.PathHealth, handlers.NewHealthHandler(responder))
	if registry != nil {
		router.Handle(http.MethodGet, greeter.PathMetrics, handlers.NewMetricsHandler(registry, logger))
	}

	server := NewServer(sc, router, logger)

	return server, router, nil
}
