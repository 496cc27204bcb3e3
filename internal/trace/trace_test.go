package trace

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRecorderWritesJSONL(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewRecorder(dir)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}

	if err := rec.Start("run1"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	rec.Log("navigated", "login", "", nil)
	rec.Log("title", "add-bookmark", OutcomeSkipped, nil)
	if err := rec.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 trace file, got %d", len(entries))
	}
	name := entries[0].Name()
	if !strings.HasPrefix(name, "trace_run1_") || !strings.HasSuffix(name, ".jsonl") {
		t.Errorf("unexpected trace filename %q", name)
	}

	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var evt Event
		if err := json.Unmarshal(scanner.Bytes(), &evt); err != nil {
			t.Fatalf("line is not valid JSON: %v", err)
		}
		events = append(events, evt)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Step != "navigated" || events[0].Workflow != "login" {
		t.Errorf("unexpected first event %+v", events[0])
	}
	if events[1].Outcome != OutcomeSkipped {
		t.Errorf("expected skipped outcome, got %q", events[1].Outcome)
	}
	if events[0].Timestamp.IsZero() {
		t.Error("expected a timestamp on every event")
	}
}

func TestRecorderRotation(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewRecorder(dir)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}

	for i := 0; i < MaxRotatedFiles+2; i++ {
		if err := rec.Start("run"); err != nil {
			t.Fatalf("Start %d: %v", i, err)
		}
		rec.Log("step", "", "", nil)
		// Distinct mtimes so rotation ordering is deterministic.
		time.Sleep(5 * time.Millisecond)
	}
	rec.Close()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) > MaxRotatedFiles {
		t.Errorf("expected at most %d trace files, got %d", MaxRotatedFiles, len(entries))
	}
}

func TestNilRecorderIsNoOp(t *testing.T) {
	var rec *Recorder
	if err := rec.Start("run"); err != nil {
		t.Errorf("nil Start returned %v", err)
	}
	rec.Log("step", "workflow", OutcomeApplied, nil)
	if err := rec.Close(); err != nil {
		t.Errorf("nil Close returned %v", err)
	}
}

func TestLogBeforeStartIsIgnored(t *testing.T) {
	dir := t.TempDir()
	rec, err := NewRecorder(dir)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	rec.Log("step", "", "", nil)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no files before Start, got %d", len(entries))
	}
}
