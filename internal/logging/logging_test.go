package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestSetupDevMode(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	setup(&buf, true)

	slog.Debug("test debug")
	slog.Info("test info")

	output := buf.String()
	if !strings.Contains(output, "test debug") {
		t.Error("expected debug message visible in dev mode")
	}
	if !strings.Contains(output, "test info") {
		t.Error("expected info message visible in dev mode")
	}
}

func TestSetupProdMode(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	setup(&buf, false)

	slog.Debug("hidden debug")
	slog.Info("prod info")

	output := buf.String()
	if strings.Contains(output, "hidden debug") {
		t.Error("expected debug message suppressed in prod mode")
	}
	if !strings.HasPrefix(output, "{") {
		t.Errorf("expected JSON output, got %q", output)
	}
}

func TestSetupDefaultWriter(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	Setup(false)
	slog.Info("prod test")
}

func TestStep(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	ran := false
	if err := Step("merge", func() error { ran = true; return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran {
		t.Error("expected step function to run")
	}

	output := buf.String()
	if !strings.Contains(output, "step=merge") {
		t.Errorf("expected step name in log, got %q", output)
	}
	if !strings.Contains(output, "level=INFO") {
		t.Error("expected info level for successful step")
	}
}

func TestStepFailure(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	want := errors.New("boom")
	err := Step("fit", func() error { return want })
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}

	output := buf.String()
	if !strings.Contains(output, "level=ERROR") {
		t.Error("expected error level for failed step")
	}
	if !strings.Contains(output, "boom") {
		t.Error("expected error text in log")
	}
}
