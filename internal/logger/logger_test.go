package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/drinktab/drinktab/internal/config"
)

func TestNewProvidesJSONLogger(t *testing.T) {
	l := New(&config.Config{})
	if l == nil {
		t.Fatal("expected logger, got nil")
	}

	if !l.Enabled(context.Background(), slog.LevelInfo) {
		t.Errorf("expected info level to be enabled")
	}
	if l.Enabled(context.Background(), slog.LevelDebug) {
		t.Errorf("did not expect debug level to be enabled")
	}

	if _, ok := l.Handler().(*slog.JSONHandler); !ok {
		t.Fatalf("expected JSON handler, got %T", l.Handler())
	}
}

func TestNewHonoursConfiguredLevel(t *testing.T) {
	l := New(&config.Config{LogLevel: "debug"})
	if !l.Enabled(context.Background(), slog.LevelDebug) {
		t.Errorf("expected debug level to be enabled")
	}

	l = New(&config.Config{LogLevel: "error"})
	if l.Enabled(context.Background(), slog.LevelWarn) {
		t.Errorf("did not expect warn level to be enabled")
	}
}

func TestParseLevel(t *testing.T) {
	if got := parseLevel("WARN"); got != slog.LevelWarn {
		t.Fatalf("expected case-insensitive parse, got %v", got)
	}
	if got := parseLevel("verbose"); got != slog.LevelInfo {
		t.Fatalf("expected info fallback for unknown level, got %v", got)
	}
}
