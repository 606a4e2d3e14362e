package debuglog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func decodeLines(t *testing.T, data []byte) []map[string]any {
	t.Helper()
	var entries []map[string]any
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		var e map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("invalid JSON line %q: %v", scanner.Text(), err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.now = func() time.Time { return time.Date(2026, 11, 14, 9, 30, 0, 0, time.UTC) }

	l.Log("BOOKING_SAVED", map[string]any{"id": "abc", "room": "r1"})
	l.Log("BOOKING_REJECTED", map[string]any{"kind": "room", "event": "ignored"})

	entries := decodeLines(t, buf.Bytes())
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0]["event"] != "BOOKING_SAVED" || entries[0]["id"] != "abc" {
		t.Errorf("unexpected first entry: %v", entries[0])
	}
	if entries[0]["ts"] != "09:30:00.000" {
		t.Errorf("ts = %v, want 09:30:00.000", entries[0]["ts"])
	}
	// Reserved keys win over fields.
	if entries[1]["event"] != "BOOKING_REJECTED" {
		t.Errorf("event = %v, want BOOKING_REJECTED", entries[1]["event"])
	}
	if entries[0]["seq"].(float64) != 1 || entries[1]["seq"].(float64) != 2 {
		t.Errorf("seq not increasing: %v, %v", entries[0]["seq"], entries[1]["seq"])
	}
}

func TestLogger_Error(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Error("save", nil)
	l.Error("save", errors.New("disk full"))

	entries := decodeLines(t, buf.Bytes())
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0]["op"] != "save" || entries[0]["error"] != "disk full" {
		t.Errorf("unexpected entry: %v", entries[0])
	}
}

func TestLogger_NilIsSafe(t *testing.T) {
	var l *Logger
	if l.Enabled() {
		t.Error("nil logger should not be enabled")
	}
	l.Log("EVENT", nil)
	l.Error("op", errors.New("boom"))
	if err := l.Close(); err != nil {
		t.Errorf("Close() on nil logger = %v", err)
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	l.Log("DESK_CHECK", map[string]any{"date": "2026-11-14"})
	if err := l.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	entries := decodeLines(t, data)
	var events []string
	for _, e := range entries {
		events = append(events, e["event"].(string))
	}
	if got := strings.Join(events, ","); got != "DEBUG_START,DESK_CHECK,DEBUG_END" {
		t.Errorf("events = %s", got)
	}
}
