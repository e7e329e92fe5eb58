package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestNew_JSONIncludesService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf, Service: "admin"})

	log.Info("hello", "booking_id", "b1")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json line, got %q: %v", buf.String(), err)
	}
	if entry[SERVICE] != "admin" {
		t.Errorf("service = %v, want admin", entry[SERVICE])
	}
	if entry["booking_id"] != "b1" {
		t.Errorf("booking_id = %v, want b1", entry["booking_id"])
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Output: &buf, Level: WARN, Format: TEXT})

	log.Info("dropped")
	log.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info record should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		DEBUG:     slog.LevelDebug,
		INFO:      slog.LevelInfo,
		WARN:      slog.LevelWarn,
		ERROR:     slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestPrettyHandler(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	log := New(Config{Output: &buf, Format: PRETTY, Level: DEBUG, Service: "notifier"})

	log.Debug("booking confirmed", "reference", "BK-0A1B2C3D4E")

	out := buf.String()
	for _, want := range []string{"DEBUG:", "booking confirmed", `"reference": "BK-0A1B2C3D4E"`, `"service": "notifier"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}
