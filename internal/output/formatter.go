// Package output renders formatted durations and run history for the CLI.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/spiffcs/elapsed/duration"
	"github.com/spiffcs/elapsed/internal/constants"
	"github.com/spiffcs/elapsed/internal/history"
)

// Format represents the output format
type Format string

const (
	FormatText  Format = constants.OutputText
	FormatJSON  Format = constants.OutputJSON
	FormatYAML  Format = constants.OutputYAML
	FormatTOML  Format = constants.OutputTOML
	FormatTable Format = constants.OutputTable
)

// Formats lists every supported output format.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatTOML, FormatTable}

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, known := range Formats {
		names[i] = string(known)
	}
	return "", fmt.Errorf("invalid output format %q (must be one of %s)", s, strings.Join(names, ", "))
}

// Entry is the result of formatting a single input.
type Entry struct {
	Input     string              `json:"input" yaml:"input" toml:"input"`
	Millis    int64               `json:"ms" yaml:"ms" toml:"ms"`
	Text      string              `json:"text,omitempty" yaml:"text,omitempty" toml:"text,omitempty"`
	Breakdown *duration.Breakdown `json:"breakdown,omitempty" yaml:"breakdown,omitempty" toml:"breakdown,omitempty"`
	Error     string              `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// NewEntry builds an entry from a formatting result.
func NewEntry(input string, ms int64, res duration.Result, err error) Entry {
	e := Entry{Input: input, Millis: ms}
	if err != nil {
		e.Error = err.Error()
		return e
	}
	e.Text = res.String()
	if b, ok := res.Breakdown(); ok {
		e.Breakdown = &b
	}
	return e
}

// Failed reports whether the input could not be formatted.
func (e Entry) Failed() bool {
	return e.Error != ""
}

// Formatter defines the interface for output formatters
type Formatter interface {
	FormatEntries(entries []Entry, w io.Writer) error
	FormatHistory(records []history.Record, w io.Writer) error
}

// NewFormatter creates a formatter for the specified format. Decimals
// controls how elapsed times in history are rounded.
func NewFormatter(format Format, decimals int) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Pretty: true, Decimals: decimals}
	case FormatYAML:
		return &YAMLFormatter{Decimals: decimals}
	case FormatTOML:
		return &TOMLFormatter{Decimals: decimals}
	case FormatTable:
		return &TableFormatter{Decimals: decimals}
	default:
		return &TextFormatter{Decimals: decimals}
	}
}

// historyView is the serialized shape of a history record.
type historyView struct {
	history.Record `yaml:",inline"`
	Took           string `json:"took" yaml:"took" toml:"took"`
}

func historyViews(records []history.Record, decimals int) []historyView {
	views := make([]historyView, len(records))
	for i, r := range records {
		views[i] = historyView{Record: r, Took: elapsedText(r, decimals)}
	}
	return views
}

// elapsedText renders a record's elapsed time the way 'elapsed run' prints it.
func elapsedText(r history.Record, decimals int) string {
	return duration.Convert(float64(r.Elapsed.Nanoseconds()), duration.Nanoseconds, decimals)
}
