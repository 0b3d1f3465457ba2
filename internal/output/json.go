package output

import (
	"encoding/json"
	"io"

	"github.com/spiffcs/elapsed/internal/history"
)

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	Pretty   bool
	Decimals int
}

// FormatEntries outputs formatted durations as a JSON array
func (f *JSONFormatter) FormatEntries(entries []Entry, w io.Writer) error {
	if entries == nil {
		entries = []Entry{}
	}
	return f.encode(entries, w)
}

// FormatHistory outputs run history as a JSON array
func (f *JSONFormatter) FormatHistory(records []history.Record, w io.Writer) error {
	return f.encode(historyViews(records, f.Decimals), w)
}

func (f *JSONFormatter) encode(v any, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if f.Pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}
