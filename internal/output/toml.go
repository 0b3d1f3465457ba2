package output

import (
	"io"

	"github.com/BurntSushi/toml"

	"github.com/spiffcs/elapsed/internal/history"
)

// TOMLFormatter formats output as TOML. TOML documents must be tables, so
// results are emitted as an array of tables under a single key.
type TOMLFormatter struct {
	Decimals int
}

type tomlEntries struct {
	Entries []Entry `toml:"entries"`
}

type tomlHistory struct {
	Runs []historyView `toml:"runs"`
}

// FormatEntries outputs formatted durations as [[entries]] tables
func (f *TOMLFormatter) FormatEntries(entries []Entry, w io.Writer) error {
	return toml.NewEncoder(w).Encode(tomlEntries{Entries: entries})
}

// FormatHistory outputs run history as [[runs]] tables
func (f *TOMLFormatter) FormatHistory(records []history.Record, w io.Writer) error {
	return toml.NewEncoder(w).Encode(tomlHistory{Runs: historyViews(records, f.Decimals)})
}
