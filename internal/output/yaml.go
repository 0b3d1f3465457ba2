package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/spiffcs/elapsed/internal/history"
)

// YAMLFormatter formats output as a YAML sequence
type YAMLFormatter struct {
	Decimals int
}

// FormatEntries outputs formatted durations as YAML
func (f *YAMLFormatter) FormatEntries(entries []Entry, w io.Writer) error {
	if entries == nil {
		entries = []Entry{}
	}
	return encodeYAML(entries, w)
}

// FormatHistory outputs run history as YAML
func (f *YAMLFormatter) FormatHistory(records []history.Record, w io.Writer) error {
	return encodeYAML(historyViews(records, f.Decimals), w)
}

func encodeYAML(v any, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}
