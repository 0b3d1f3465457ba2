package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/spiffcs/elapsed/internal/format"
	"github.com/spiffcs/elapsed/internal/history"
)

// defaultTableWidth is used when the output is not a terminal.
const defaultTableWidth = 120

// TableFormatter formats output as an aligned terminal table
type TableFormatter struct {
	Decimals int
	// Width overrides terminal width detection when positive.
	Width int
}

// FormatEntries outputs formatted durations as a table
func (f *TableFormatter) FormatEntries(entries []Entry, w io.Writer) error {
	headers := []string{"INPUT", "MS", "RESULT"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		result := e.Text
		if e.Failed() {
			result = color.RedString(e.Error)
		}
		rows = append(rows, []string{e.Input, strconv.FormatInt(e.Millis, 10), result})
	}
	return f.render(w, headers, rows, map[int]bool{1: true})
}

// FormatHistory outputs run history as a table
func (f *TableFormatter) FormatHistory(records []history.Record, w io.Writer) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded yet.")
		return err
	}

	headers := []string{"WHEN", "TOOK", "EXIT", "COMMAND"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		exit := color.GreenString("%d", r.ExitCode)
		if r.ExitCode != 0 || r.Error != "" {
			exit = color.RedString("%d", r.ExitCode)
		}
		rows = append(rows, []string{
			r.Timestamp.Local().Format("2006-01-02 15:04:05"),
			elapsedText(r, f.Decimals),
			exit,
			r.CommandLine(),
		})
	}
	return f.render(w, headers, rows, map[int]bool{2: true})
}

// render writes rows aligned under headers. The last column absorbs the
// remaining width and is truncated to fit; rightAlign marks numeric columns.
func (f *TableFormatter) render(w io.Writer, headers []string, rows [][]string, rightAlign map[int]bool) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = format.DisplayWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], format.DisplayWidth(cell))
		}
	}

	last := len(headers) - 1
	used := 0
	for i := range last {
		used += widths[i] + 2
	}
	avail := max(f.width()-used, format.DisplayWidth(headers[last]))
	if widths[last] > avail {
		widths[last] = avail
	}

	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = color.New(color.Bold).Sprint(f.pad(h, widths[i], rightAlign[i]))
	}
	if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " ")); err != nil {
		return err
	}

	for _, row := range rows {
		for i, cell := range row {
			if i == last && format.DisplayWidth(cell) > widths[i] {
				cell = format.Truncate(format.StripAnsi(cell), widths[i])
			}
			cells[i] = f.pad(cell, widths[i], rightAlign[i])
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " ")); err != nil {
			return err
		}
	}
	return nil
}

func (f *TableFormatter) pad(s string, width int, right bool) string {
	if right {
		return format.PadLeft(s, width)
	}
	return format.PadRight(s, width)
}

func (f *TableFormatter) width() int {
	if f.Width > 0 {
		return f.Width
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultTableWidth
}
