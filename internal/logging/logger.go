package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup installs a JSON logger on stdout as the slog default and returns
// its handler so callers can fan it out later.
func Setup(level string) slog.Handler {
	return SetupWriter(os.Stdout, level)
}

func SetupWriter(w io.Writer, level string) slog.Handler {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	slog.SetDefault(slog.New(handler))
	return handler
}

// ParseLevel maps debug/info/warn/error to a slog level; anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
