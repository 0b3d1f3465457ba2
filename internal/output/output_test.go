package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/spiffcs/elapsed/duration"
	"github.com/spiffcs/elapsed/internal/history"
)

func init() {
	color.NoColor = true
}

func sampleEntries(t *testing.T) []Entry {
	t.Helper()
	var entries []Entry
	for _, ms := range []int64{90000, 1500} {
		res, err := duration.Format(ms)
		entries = append(entries, NewEntry(strings.TrimSpace(time.Duration(ms*int64(time.Millisecond)).String()), ms, res, err))
	}
	_, err := duration.Format(-1)
	entries = append(entries, NewEntry("-1", -1, duration.Result{}, err))
	return entries
}

func sampleRecords() []history.Record {
	ts := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	return []history.Record{
		{ID: "a", Timestamp: ts, Command: []string{"make", "test"}, Elapsed: 90 * time.Second},
		{ID: "b", Timestamp: ts, Command: []string{"false"}, Elapsed: 1500 * time.Microsecond, ExitCode: 1, Error: "exit status 1"},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"toml", FormatTOML, false},
		{"table", FormatTable, false},
		{"markdown", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewEntry(t *testing.T) {
	res, err := duration.Format(90000)
	if err != nil {
		t.Fatal(err)
	}
	e := NewEntry("90000", 90000, res, nil)
	if e.Text != "1m30s" || e.Breakdown != nil || e.Failed() {
		t.Errorf("unexpected entry: %+v", e)
	}

	raw, err := duration.Format(90000, duration.WithRaw())
	if err != nil {
		t.Fatal(err)
	}
	e = NewEntry("90000", 90000, raw, nil)
	if e.Breakdown == nil || e.Breakdown.Minutes != 1 || e.Breakdown.Seconds != 30 {
		t.Errorf("expected raw breakdown, got %+v", e.Breakdown)
	}

	e = NewEntry("x", 0, duration.Result{}, errors.New("boom"))
	if !e.Failed() || e.Error != "boom" {
		t.Errorf("expected failed entry, got %+v", e)
	}
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatText, duration.DefaultDecimals)
	if err := f.FormatEntries(sampleEntries(t), &buf); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "1m30s" || lines[1] != "1s" {
		t.Errorf("unexpected lines: %q", lines)
	}
	if !strings.HasPrefix(lines[2], "error: -1:") {
		t.Errorf("expected error line, got %q", lines[2])
	}

	buf.Reset()
	if err := f.FormatHistory(sampleRecords(), &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"1 minute, and 30 seconds", "exit=1", "make test", "1.5ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("history output missing %q:\n%s", want, out)
		}
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFormatter(FormatJSON, 3).FormatEntries(sampleEntries(t), &buf); err != nil {
		t.Fatal(err)
	}
	var got []Entry
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(got) != 3 || got[0].Text != "1m30s" || got[2].Error == "" {
		t.Errorf("unexpected entries: %+v", got)
	}

	buf.Reset()
	if err := NewFormatter(FormatJSON, 3).FormatEntries(nil, &buf); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Errorf("expected empty array, got %q", buf.String())
	}

	buf.Reset()
	if err := NewFormatter(FormatJSON, 3).FormatHistory(sampleRecords(), &buf); err != nil {
		t.Fatal(err)
	}
	var runs []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &runs); err != nil {
		t.Fatal(err)
	}
	if runs[0]["id"] != "a" || runs[0]["took"] != "1 minute, and 30 seconds" {
		t.Errorf("unexpected history JSON: %v", runs[0])
	}
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFormatter(FormatYAML, 3).FormatEntries(sampleEntries(t), &buf); err != nil {
		t.Fatal(err)
	}
	var got []Entry
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}
	if len(got) != 3 || got[1].Millis != 1500 {
		t.Errorf("unexpected entries: %+v", got)
	}

	buf.Reset()
	if err := NewFormatter(FormatYAML, 3).FormatHistory(sampleRecords(), &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "took: 1.5ms") {
		t.Errorf("expected took field in YAML history:\n%s", buf.String())
	}
}

func TestTOMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := NewFormatter(FormatTOML, 3).FormatEntries(sampleEntries(t), &buf); err != nil {
		t.Fatal(err)
	}
	var got tomlEntries
	if _, err := toml.Decode(buf.String(), &got); err != nil {
		t.Fatalf("invalid TOML: %v\n%s", err, buf.String())
	}
	if len(got.Entries) != 3 || got.Entries[0].Millis != 90000 {
		t.Errorf("unexpected entries: %+v", got.Entries)
	}

	buf.Reset()
	if err := NewFormatter(FormatTOML, 3).FormatHistory(sampleRecords(), &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "[[runs]]") {
		t.Errorf("expected [[runs]] tables:\n%s", buf.String())
	}
}

func TestFormatHistoryHonorsDecimals(t *testing.T) {
	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewFormatter(format, 0).FormatHistory(sampleRecords(), &buf); err != nil {
				t.Fatal(err)
			}
			out := buf.String()
			if !strings.Contains(out, "2ms") || strings.Contains(out, "1.5ms") {
				t.Errorf("expected 1.5ms rounded to 2ms with zero decimals:\n%s", out)
			}
		})
	}
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{Decimals: 3, Width: 80}
	if err := f.FormatEntries(sampleEntries(t), &buf); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header and 3 rows, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "INPUT") {
		t.Errorf("unexpected header %q", lines[0])
	}
	// MS column is right-aligned under its header.
	col := strings.Index(lines[0], "MS") + len("MS")
	if !strings.HasPrefix(lines[1][:col], "1m30s") || !strings.HasSuffix(lines[1][:col], "90000") {
		t.Errorf("expected right-aligned ms in %q", lines[1])
	}

	buf.Reset()
	narrow := &TableFormatter{Decimals: 3, Width: 20}
	records := []history.Record{{Command: []string{"go", "test", "./...", "-run", "TestSomethingLong"}}}
	if err := narrow.FormatHistory(records, &buf); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "TestSomethingLong") || !strings.Contains(buf.String(), "go t...") {
		t.Errorf("expected long command to be truncated:\n%s", buf.String())
	}

	buf.Reset()
	if err := f.FormatHistory(nil, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No runs recorded") {
		t.Errorf("expected empty message, got %q", buf.String())
	}
}
