package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"error", "warn", "info", "debug", "trace"} {
		level, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		if level.String() != name {
			t.Errorf("expected %s, got %s", name, level)
		}
	}

	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "", 0, LevelInfo)

	l.Debug("hidden %d", 1)
	l.Info("frame %d", 42)
	l.Error("boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]string
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("line is not json: %v", err)
	}
	if entry["level"] != "info" || entry["msg"] != "frame 42" {
		t.Errorf("unexpected entry: %v", entry)
	}

	buf.Reset()
	l.SetLevel(LevelTrace)
	l.Trace("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Error("expected trace output after raising level")
	}
}
