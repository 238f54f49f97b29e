package logger

import (
	"log/slog"
	"os"
)

// New returns the service's structured logger. JSON to stdout so log
// collectors can parse it without configuration.
func New() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
