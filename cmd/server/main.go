// Package main provides the entry point for the greeter server.
// It wires together all components using dependency injection and manages
// the server lifecycle with graceful shutdown.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/jamesprial/greeter/internal/auth"
	"github.com/jamesprial/greeter/internal/config"
	"github.com/jamesprial/greeter/internal/logging"
	"github.com/jamesprial/greeter/internal/transport"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Set up structured logging
	isTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	logger, err := logging.FromConfig(colorable.NewColorable(os.Stdout), cfg, isTTY)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	slog.SetDefault(logger)

	slog.Info("server configuration loaded", "config", cfg.String())

	// Wire auth components
	validator, err := auth.NewValidator(&auth.Config{
		Token:     cfg.AuthToken,
		User:      auth.User{ID: cfg.AuthUserID, Name: cfg.AuthUserName},
		JWTSecret: []byte(cfg.JWTSecret),
		JWTIssuer: cfg.JWTIssuer,
		JWTLeeway: cfg.JWTLeeway,
	})
	if err != nil {
		log.Fatalf("failed to create token validator: %v", err)
	}

	slog.Info("auth services initialized",
		"jwt_enabled", cfg.JWTSecret != "",
		"realm", cfg.AuthRealm,
	)

	// Wire transport layer
	server, router, err := transport.NewTransportServices(&transport.Config{
		ServerConfig: cfg,
		Validator:    validator,
		Logger:       logger,
	})
	if err != nil {
		log.Fatalf("failed to create transport services: %v", err)
	}

	for _, route := range router.Routes() {
		slog.Debug("route registered", "method", route.Method, "pattern", route.Pattern, "guards", len(route.Guards))
	}

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server in background goroutine
	serverErrCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.Addr)
		if err := server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received, stopping server gracefully...")
	case err := <-serverErrCh:
		slog.Error("server error", "error", err)
		stop()
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped successfully")
}
