package logger

import (
	"log/slog"
	"os"
)

// New creates a preconfigured slog.Logger. The level defaults to info and
// can be raised or lowered via LOG_LEVEL.
func New() *slog.Logger {
	level := slog.LevelInfo
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := level.UnmarshalText([]byte(v)); err != nil {
			level = slog.LevelInfo
		}
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
