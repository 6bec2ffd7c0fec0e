package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/drinktab/drinktab/internal/config"
)

// New creates the process-wide slog.Logger: JSON records on stdout at the
// configured level, each carrying the service name.
func New(cfg *config.Config) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)})
	return slog.New(handler).With(slog.String("service", "drinktab"))
}

// parseLevel maps a configured level name to slog; unknown names fall back
// to info.
func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
