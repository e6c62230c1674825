package handlers

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewMetricsHandler creates a handler exposing gatherer in the Prometheus
// text format. Collection errors are logged at error level.
// If logger is nil, it uses the default slog logger.
func NewMetricsHandler(gatherer prometheus.Gatherer, logger *slog.Logger) http.Handler {
	if gatherer == nil {
		panic("gatherer cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		ErrorLog:      slog.NewLogLogger(logger.Handler(), slog.LevelError),
		ErrorHandling: promhttp.ContinueOnError,
	})
}
