package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expect    slog.Level
		expectErr bool
	}{
		{"debug", "debug", slog.LevelDebug, false},
		{"default-info", "", slog.LevelInfo, false},
		{"warn", "warn", slog.LevelWarn, false},
		{"warning", "WARNING", slog.LevelWarn, false},
		{"error", "error", slog.LevelError, false},
		{"invalid", "verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, err := levelFromString(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("expected error for input %q", tt.input)
				}
				if !strings.Contains(err.Error(), "invalid log level") {
					t.Fatalf("unexpected error message: %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if level != tt.expect {
				t.Fatalf("expected %v, got %v", tt.expect, level)
			}
		})
	}
}

func TestInitAndL(t *testing.T) {
	t.Cleanup(func() {
		// reset singleton for other tests
		once = sync.Once{}
		global = nil
	})

	logger, err := Init(Config{Level: "debug", Environment: "dev", WithSource: true})
	if err != nil {
		t.Fatalf("Init returned error: %v", err)
	}

	if logger == nil {
		t.Fatalf("Init returned nil logger")
	}

	if L() != logger {
		t.Fatalf("L did not return initialized logger")
	}

	// second init should return same instance without error
	logger2, err := Init(Config{Level: "info", Environment: "prod"})
	if err != nil {
		t.Fatalf("unexpected error on second init: %v", err)
	}
	if logger2 != logger {
		t.Fatalf("expected same logger instance on re-init")
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := newWithWriter(Config{Level: "info", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	l.Info("hello", "k", "v")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "hello" || rec["k"] != "v" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestFileOutput(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "server.log")
	l, err := newWithWriter(Config{Level: "debug", File: path}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Debug("to file", "k", "v")
	if !strings.Contains(buf.String(), "to file") {
		t.Fatalf("stdout writer missed the record: %q", buf.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("rotating log file not written: %v", err)
	}
	if !strings.Contains(string(data), "to file") || !strings.Contains(string(data), "k=v") {
		t.Fatalf("log file missed the record: %q", string(data))
	}
}

func TestLogUpstreamCall(t *testing.T) {
	var buf bytes.Buffer
	l, err := newWithWriter(Config{Level: "info"}, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	LogUpstreamCall(l, "translation", "google", 12, nil)
	LogUpstreamCall(l, "composer", "anthropic", 30, errors.New("rate limited"))

	out := buf.String()
	if !strings.Contains(out, "upstream call finished") || !strings.Contains(out, "provider=google") {
		t.Fatalf("missing success record: %q", out)
	}
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "rate limited") {
		t.Fatalf("missing error record: %q", out)
	}
}
