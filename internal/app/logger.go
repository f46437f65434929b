package app

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger. Production always emits JSON and
// skips source annotations; elsewhere the format follows LOG_FORMAT and
// source locations are kept for debugging.
func NewLogger(cfg *Config) *slog.Logger {
	prod := cfg.IsProduction()
	opts := &slog.HandlerOptions{AddSource: !prod}
	if prod || (cfg != nil && cfg.LogFormat == "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
