// ABOUTME: Tests for logger configuration
// ABOUTME: Verifies level parsing, format selection and the debug override

package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelInfo, "json").Info("hello", "op", "fetch products")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output, got %q", buf.String())
	}
	if entry["op"] != "fetch products" {
		t.Errorf("expected op attribute, got %v", entry["op"])
	}
}

func TestInit_DebugOverridesEnv(t *testing.T) {
	t.Setenv("IGV_LOG_LEVEL", "error")
	t.Setenv("IGV_LOG_FORMAT", "")
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Init(&buf, true)
	slog.Debug("API request", "status", 200)
	if !strings.Contains(buf.String(), "API request") {
		t.Errorf("expected debug output, got %q", buf.String())
	}
}

func TestInit_DefaultIsWarn(t *testing.T) {
	t.Setenv("IGV_LOG_LEVEL", "")
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Init(&buf, false)
	slog.Info("quiet")
	slog.Warn("loud")
	if strings.Contains(buf.String(), "quiet") || !strings.Contains(buf.String(), "loud") {
		t.Errorf("expected only warn output, got %q", buf.String())
	}
}
