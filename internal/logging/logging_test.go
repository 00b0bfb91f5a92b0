package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", "json", &buf)
	logger.Debug("hidden")
	logger.Info("shown", "task", "build")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if rec["msg"] != "shown" || rec["task"] != "build" {
		t.Errorf("unexpected record %v", rec)
	}
}

type countingPublisher struct{ n int }

func (c *countingPublisher) PublishEvent(string, map[string]any) { c.n++ }

func TestEventLogger(t *testing.T) {
	var buf bytes.Buffer
	next := &countingPublisher{}
	l := &EventLogger{Logger: New("info", "text", &buf), Next: next}

	l.PublishEvent("task.invoke", map[string]any{"task": "a"})
	l.PublishEvent("params.missing", map[string]any{"task": "deploy", "params": []string{"host"}})

	if next.n != 2 {
		t.Errorf("expected 2 forwarded events, got %d", next.n)
	}
	out := buf.String()
	if strings.Contains(out, "task.invoke") {
		t.Errorf("debug event logged at info level: %q", out)
	}
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "task=deploy") {
		t.Errorf("expected warn record for missing params, got %q", out)
	}
}
