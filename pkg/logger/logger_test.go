package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}

	// Re-init should be safe and replace the global.
	if err := Init(); err != nil {
		t.Fatalf("failed to re-initialize logger: %v", err)
	}
	if Get() == nil {
		t.Fatal("logger is nil after re-initialization")
	}
}

func TestLoggerNamed(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	named := Named("openfda")
	if named == nil {
		t.Fatal("named logger is nil")
	}
	child := named.Named("retry")
	if child == nil {
		t.Fatal("nested named logger is nil")
	}

	// Levels should not panic with arbitrary fields.
	ctx := context.Background()
	child.Debug(ctx, "debug message", String("drug", "semaglutide"))
	child.Info(ctx, "info message", Int("attempts", 4))
	child.Warn(ctx, "warn message", Duration("delay", 2*time.Second))
	child.Error(ctx, "error message", Error(errors.New("boom")), Any("extra", 1.5))
}

func TestSetLevelString(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tc := range cases {
		if err := SetLevelString(tc.in); err != nil {
			t.Fatalf("SetLevelString(%q): %v", tc.in, err)
		}
		if got := levelVar.Level(); got != tc.want {
			t.Errorf("SetLevelString(%q) set %v, want %v", tc.in, got, tc.want)
		}
	}

	if err := SetLevelString("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestFieldConstructors(t *testing.T) {
	f := Float64("latency", 12.5)
	if f.Key != "latency" || f.Value != 12.5 {
		t.Errorf("unexpected field: %+v", f)
	}
	d := Duration("took", time.Second)
	if d.Value != "1s" {
		t.Errorf("duration field should stringify, got %+v", d.Value)
	}
}
