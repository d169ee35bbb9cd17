package logger

import (
	"context"
	"testing"
	"time"
)

func TestLoggerInit(t *testing.T) {
	err := Init()
	if err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil after initialization")
	}

	// Second Init is a no-op and must not fail.
	if err := Init(); err != nil {
		t.Fatalf("repeated Init failed: %v", err)
	}
	if Get() == nil {
		t.Fatal("logger is nil after repeated initialization")
	}
}

func TestLoggerBasic(t *testing.T) {
	logger := Get()
	if logger == nil {
		t.Fatal("logger is nil")
	}

	ctx := context.Background()
	logger.Info(ctx, "test message",
		String("backend", "lambdamart"),
		Int("candidates", 3),
		Float64("score", 0.75),
		Duration("elapsed", 5*time.Millisecond),
	)
}

func TestLoggerNamed(t *testing.T) {
	namedLogger := Named("scoring")
	if namedLogger == nil {
		t.Fatal("named logger is nil")
	}

	ctx := context.Background()
	namedLogger.Debug(ctx, "fit complete", Any("labels", []int{4, 2, 0}))
}

func TestLoggerSetLevelString(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "warning", "error", ""} {
		if err := SetLevelString(level); err != nil {
			t.Errorf("unexpected error for level %q: %v", level, err)
		}
	}
	if err := SetLevelString("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
	// Restore default.
	if err := SetLevelString("info"); err != nil {
		t.Fatalf("failed to restore level: %v", err)
	}
}
