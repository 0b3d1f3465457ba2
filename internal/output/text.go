package output

import (
	"fmt"
	"io"

	"github.com/spiffcs/elapsed/internal/history"
)

// TextFormatter prints one plain result per line, suitable for piping.
type TextFormatter struct {
	Decimals int
}

// FormatEntries prints each formatted duration on its own line. Failed
// inputs are reported inline so line numbers stay aligned with the input.
func (f *TextFormatter) FormatEntries(entries []Entry, w io.Writer) error {
	for _, e := range entries {
		line := e.Text
		if e.Failed() {
			line = fmt.Sprintf("error: %s: %s", e.Input, e.Error)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// FormatHistory prints one run per line, oldest first.
func (f *TextFormatter) FormatHistory(records []history.Record, w io.Writer) error {
	for _, r := range records {
		_, err := fmt.Fprintf(w, "%s  %-24s exit=%d  %s\n",
			r.Timestamp.Local().Format("2006-01-02 15:04:05"),
			elapsedText(r, f.Decimals),
			r.ExitCode,
			r.CommandLine())
		if err != nil {
			return err
		}
	}
	return nil
}
