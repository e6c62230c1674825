// Package logging builds the process logger from configuration.
package logging

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/lmittmann/tint"

	"github.com/jamesprial/greeter/internal/config"
)

// timeFormat is used by the text handler.
const timeFormat = "2006-01-02 15:04:05.000"

// New returns a logger writing to w.
//
// format is config.LogFormatJSON or config.LogFormatText. The text format
// uses tint and emits ANSI colour only when color is true, which callers
// set when w is a terminal.
func New(w io.Writer, format string, level slog.Level, color bool) (*slog.Logger, error) {
	if w == nil {
		return nil, fmt.Errorf("writer cannot be nil")
	}

	lvl := &slog.LevelVar{}
	lvl.Set(level)

	switch format {
	case config.LogFormatJSON, "":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})), nil
	case config.LogFormatText:
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			NoColor:    !color,
			TimeFormat: timeFormat,
		})), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// FromConfig builds the logger described by cfg.
func FromConfig(w io.Writer, cfg *config.Config, color bool) (*slog.Logger, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	return New(w, cfg.LogFormat, level, color)
}
