package logger

import (
	"io"
	"log/slog"
	"os"
)

// New creates a JSON logger writing to stdout at info level, with optional
// context extractors.
func New(extractors ...ContextExtractor) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(Decorate(handler, extractors...))
}

// NewNope creates a logger that discards everything. Use it as a default when
// logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
