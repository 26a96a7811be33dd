package logger

import (
	"log/slog"
	"os"
)

// New returns the process-wide structured logger. Services and handlers take
// *slog.Logger explicitly so tests can swap in a discarding handler.
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
