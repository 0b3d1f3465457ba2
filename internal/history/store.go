// Package history persists the commands timed by 'elapsed run' as JSON Lines.
package history

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spiffcs/elapsed/internal/constants"
	"github.com/spiffcs/elapsed/internal/log"
)

// Record captures a single timed command.
type Record struct {
	ID        string        `json:"id" yaml:"id" toml:"id"`
	Timestamp time.Time     `json:"ts" yaml:"ts" toml:"ts"`
	Command   []string      `json:"cmd" yaml:"cmd" toml:"cmd"`
	ExitCode  int           `json:"exit" yaml:"exit" toml:"exit"`
	Elapsed   time.Duration `json:"elapsedNs" yaml:"elapsed_ns" toml:"elapsed_ns"`
	Error     string        `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// NewRecord builds a record with a fresh ID.
func NewRecord(command []string, started time.Time, elapsed time.Duration, exitCode int, runErr error) Record {
	r := Record{
		ID:        uuid.NewString(),
		Timestamp: started,
		Command:   command,
		ExitCode:  exitCode,
		Elapsed:   elapsed,
	}
	if runErr != nil {
		r.Error = runErr.Error()
	}
	return r
}

// CommandLine joins the command and its arguments for display.
func (r Record) CommandLine() string {
	return strings.Join(r.Command, " ")
}

// Store manages persistence of run records as JSON Lines.
type Store struct {
	path       string
	maxRecords int
	mu         sync.Mutex
}

// NewStore creates a new history store at ~/.cache/elapsed/history.jsonl.
func NewStore(maxRecords int) (*Store, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(cacheDir, "elapsed")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	return NewStoreWithPath(filepath.Join(dir, "history.jsonl"), maxRecords), nil
}

// NewStoreWithPath creates a store at the given path (for testing).
func NewStoreWithPath(path string, maxRecords int) *Store {
	if maxRecords <= 0 {
		maxRecords = constants.HistoryMaxRecords
	}
	return &Store{path: path, maxRecords: maxRecords}
}

// Path returns the file backing the store.
func (s *Store) Path() string {
	return s.path
}

// Append adds a record and prunes to the last maxRecords entries.
func (s *Store) Append(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return fmt.Errorf("failed to read history %s: %w", s.path, err)
	}

	records = append(records, rec)

	if len(records) > s.maxRecords {
		records = records[len(records)-s.maxRecords:]
	}

	log.Debug("writing history", "path", s.path, "records", len(records))
	return s.writeAll(records)
}

// Recent returns the last n records (or fewer if not enough exist).
func (s *Store) Recent(n int) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return nil
	}

	if n <= 0 || len(records) <= n {
		return records
	}
	return records[len(records)-n:]
}

// Clear removes all records.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// readAll reads all records from disk.
func (s *Store) readAll() ([]Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), constants.MaxLineBytes)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			log.Trace("skipping malformed history line", "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records, scanner.Err()
}

// writeAll writes all records to disk atomically.
func (s *Store) writeAll(records []Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
			return err
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, s.path)
}
