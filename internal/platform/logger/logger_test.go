package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        Info,
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"bogus":   Info,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestLogger_JSONIncludesBaseAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "nicu-progress", Output: &buf})

	l.With(map[string]any{"patient_id": "p-1"}).Info("series built", map[string]any{"points": 3, "": "ignored"})

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected json line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "series built" || entry["app"] != "nicu-progress" || entry["patient_id"] != "p-1" {
		t.Fatalf("unexpected entry: %#v", entry)
	}
	if entry["points"] != float64(3) {
		t.Fatalf("expected points=3, got %#v", entry["points"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key, got %#v", entry)
	}
	if _, ok := entry[""]; ok {
		t.Fatalf("empty key should be dropped")
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Format: FormatText, Output: &buf})

	l.Info("hidden", nil)
	l.Warn("shown", nil)

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output: %q", out)
	}
}
