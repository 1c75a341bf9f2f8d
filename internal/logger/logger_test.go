package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn", true)
	l.Info("hidden")
	l.Warn("shown", "task_id", "abc")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"task_id":"abc"`) {
		t.Errorf("expected json attribute in output: %s", out)
	}
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "info", false)

	ctx := IntoContext(context.Background(), l.With("request_id", "r1"))
	FromContext(ctx).Info("hello")
	if !strings.Contains(buf.String(), "request_id=r1") {
		t.Errorf("expected scoped attribute, got %s", buf.String())
	}

	if FromContext(context.Background()) != Get() {
		t.Errorf("expected default logger for empty context")
	}
}
