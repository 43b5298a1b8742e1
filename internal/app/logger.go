package app

import (
	"log/slog"
	"os"
)

// Log formats accepted in LOG_FORMAT.
const (
	LogFormatJSON   = "json"
	LogFormatPretty = "pretty"
)

// NewLogger builds the slog.Logger every report run logs through. JSON in
// deployed environments, text otherwise.
func NewLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: true}
	if cfg != nil && cfg.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
