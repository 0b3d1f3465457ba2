package history

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestAppendAndRecent(t *testing.T) {
	dir := t.TempDir()
	s := NewStoreWithPath(filepath.Join(dir, "history.jsonl"), 0)

	// Empty store returns nil
	if got := s.Recent(10); len(got) != 0 {
		t.Fatalf("expected 0 records, got %d", len(got))
	}

	rec := NewRecord([]string{"make", "test"}, time.Now(), 1500*time.Millisecond, 0, nil)
	if err := s.Append(rec); err != nil {
		t.Fatal(err)
	}

	got := s.Recent(10)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0].ID != rec.ID || got[0].ID == "" {
		t.Fatalf("expected ID %q, got %q", rec.ID, got[0].ID)
	}
	if got[0].CommandLine() != "make test" {
		t.Fatalf("expected command line 'make test', got %q", got[0].CommandLine())
	}
	if got[0].Elapsed != 1500*time.Millisecond {
		t.Fatalf("expected elapsed 1.5s, got %v", got[0].Elapsed)
	}
}

func TestNewRecordError(t *testing.T) {
	rec := NewRecord([]string{"false"}, time.Now(), time.Second, 1, errors.New("exit status 1"))
	if rec.Error != "exit status 1" || rec.ExitCode != 1 {
		t.Fatalf("unexpected record: %+v", rec)
	}

	other := NewRecord([]string{"true"}, time.Now(), time.Second, 0, nil)
	if other.ID == rec.ID {
		t.Fatal("expected distinct record IDs")
	}
}

func TestRecentLimitsResults(t *testing.T) {
	dir := t.TempDir()
	s := NewStoreWithPath(filepath.Join(dir, "history.jsonl"), 0)

	for i := range 10 {
		if err := s.Append(Record{ExitCode: i}); err != nil {
			t.Fatal(err)
		}
	}

	got := s.Recent(3)
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	// Should be the last 3 entries
	if got[0].ExitCode != 7 || got[2].ExitCode != 9 {
		t.Fatalf("expected exit codes 7..9, got %d..%d", got[0].ExitCode, got[2].ExitCode)
	}

	if all := s.Recent(0); len(all) != 10 {
		t.Fatalf("expected Recent(0) to return all 10 records, got %d", len(all))
	}
}

func TestPrune(t *testing.T) {
	dir := t.TempDir()
	s := NewStoreWithPath(filepath.Join(dir, "history.jsonl"), 5)

	for i := range 8 {
		if err := s.Append(Record{ExitCode: i}); err != nil {
			t.Fatal(err)
		}
	}

	got := s.Recent(100)
	if len(got) != 5 {
		t.Fatalf("expected 5 records after prune, got %d", len(got))
	}
	if got[0].ExitCode != 3 {
		t.Fatalf("expected first record exit code 3, got %d", got[0].ExitCode)
	}
}

func TestPersistenceAndClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.jsonl")

	s1 := NewStoreWithPath(path, 0)
	if err := s1.Append(Record{Command: []string{"sleep", "1"}, Elapsed: time.Second}); err != nil {
		t.Fatal(err)
	}

	s2 := NewStoreWithPath(path, 0)
	got := s2.Recent(10)
	if len(got) != 1 || got[0].Elapsed != time.Second {
		t.Fatalf("expected persisted record, got %+v", got)
	}

	if err := s2.Clear(); err != nil {
		t.Fatal(err)
	}
	if got := s2.Recent(10); len(got) != 0 {
		t.Fatalf("expected empty history after Clear, got %d", len(got))
	}
	// Clearing twice is fine.
	if err := s2.Clear(); err != nil {
		t.Fatal(err)
	}
}

func TestMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")

	content := `{"ts":"2024-01-01T00:00:00Z","exit":1}
not json at all
{"ts":"2024-01-02T00:00:00Z","exit":2}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got := NewStoreWithPath(path, 0).Recent(10)
	if len(got) != 2 {
		t.Fatalf("expected 2 valid records, got %d", len(got))
	}
	if got[0].ExitCode != 1 || got[1].ExitCode != 2 {
		t.Fatalf("unexpected records: %+v", got)
	}
}

func TestLongLinesSurviveAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")
	s := NewStoreWithPath(path, 0)

	longArg := strings.Repeat("x", 100*1024)
	if err := s.Append(Record{Command: []string{"echo", longArg}, ExitCode: 1}); err != nil {
		t.Fatal(err)
	}
	if err := s.Append(Record{ExitCode: 2}); err != nil {
		t.Fatal(err)
	}

	got := s.Recent(10)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if len(got[0].Command) != 2 || got[0].Command[1] != longArg {
		t.Fatal("expected long command to be preserved")
	}
}

func TestAppendKeepsUnreadableHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.jsonl")

	// A line past the scanner limit cannot be read back.
	content := `{"exit":1}` + "\n" + strings.Repeat("x", 2*1024*1024) + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewStoreWithPath(path, 0)
	if err := s.Append(Record{ExitCode: 2}); err == nil {
		t.Fatal("expected error appending to unreadable history")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != content {
		t.Error("expected history file to be left untouched")
	}
}
