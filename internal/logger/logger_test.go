// ABOUTME: Tests for logging configuration
// ABOUTME: Validates level parsing, output formats, and the TUI log file

package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			if got := ParseLevel(tc.input); got != tc.expected {
				t.Errorf("ParseLevel(%q) = %v, expected %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestInitJSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Init("info", "json", &buf)

	slog.Debug("hidden")
	slog.Info("visible", "key", "value")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if entry["msg"] != "visible" || entry["key"] != "value" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestInitText(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	l := Init("debug", "", &buf)
	l.Debug("details", "path", "/dashboard")

	out := buf.String()
	if !strings.Contains(out, "msg=details") || !strings.Contains(out, "path=/dashboard") {
		t.Errorf("expected text output, got %q", out)
	}
}

func TestOpenFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	f, err := OpenFile(dir)
	if err != nil {
		t.Fatalf("OpenFile() error: %v", err)
	}
	f.WriteString("first\n")
	f.Close()

	// Reopening appends
	f, err = OpenFile(dir)
	if err != nil {
		t.Fatalf("OpenFile() error: %v", err)
	}
	f.WriteString("second\n")
	f.Close()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "first\nsecond\n" {
		t.Errorf("unexpected log contents %q", data)
	}

	info, _ := os.Stat(filepath.Join(dir, FileName))
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %o", info.Mode().Perm())
	}
}

func TestOpenFileRequiresDir(t *testing.T) {
	if _, err := OpenFile(""); err == nil {
		t.Error("expected error for empty config dir")
	}
}
