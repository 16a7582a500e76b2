package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func logTo(t *testing.T, opts Options, emit func(*slog.Logger)) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.log")
	opts.OutputPaths = []string{path}
	logger, err := New(opts)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	emit(logger)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log output: %v", err)
	}
	return string(data)
}

func TestConsoleFormat(t *testing.T) {
	out := logTo(t, Options{Format: "console"}, func(l *slog.Logger) {
		l.Info("chapter uploaded", "tonie", "Dragon", "seconds", 42)
	})
	if !strings.Contains(out, " INFO chapter uploaded") {
		t.Fatalf("unexpected console line %q", out)
	}
	if !strings.Contains(out, "tonie=Dragon") || !strings.Contains(out, "seconds=42") {
		t.Fatalf("attrs missing from %q", out)
	}
}

func TestConsoleQuotesValuesWithSpaces(t *testing.T) {
	out := logTo(t, Options{Format: "console"}, func(l *slog.Logger) {
		l.Warn("removal skipped", "title", "Story One")
	})
	if !strings.Contains(out, `title="Story One"`) {
		t.Fatalf("expected quoted value in %q", out)
	}
}

func TestConsoleGroupPrefixes(t *testing.T) {
	out := logTo(t, Options{Format: "console"}, func(l *slog.Logger) {
		l.WithGroup("upload").Info("done", "file", "abc")
	})
	if !strings.Contains(out, "upload.file=abc") {
		t.Fatalf("expected group prefix in %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	out := logTo(t, Options{Format: "json"}, func(l *slog.Logger) {
		l.Info("login ok", "household", "h1")
	})
	var payload map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &payload); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, out)
	}
	if payload["msg"] != "login ok" || payload["household"] != "h1" {
		t.Fatalf("unexpected payload %#v", payload)
	}
	if payload["level"] != "info" {
		t.Fatalf("expected lowercase level, got %v", payload["level"])
	}
}

func TestLevelFiltering(t *testing.T) {
	out := logTo(t, Options{Format: "console", Level: "warn"}, func(l *slog.Logger) {
		l.Info("hidden")
		l.Warn("visible")
	})
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line must be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
