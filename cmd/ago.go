package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/spiffcs/elapsed/duration"
)

// NewCmdAgo creates the ago command.
func NewCmdAgo() *cobra.Command {
	var seconds, first, date bool

	cmd := &cobra.Command{
		Use:   "ago <unix-ms|RFC3339>",
		Short: "Describe how long ago a timestamp was",
		Example: `  elapsed ago 2024-03-05T14:07:09Z
  elapsed ago --first 1709647629000    # 7 months ago`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTimestamp(args[0])
			if err != nil {
				return err
			}

			text, err := duration.Since(t, time.Now(), seconds, first)
			if err != nil {
				return fmt.Errorf("timestamp is in the future: %w", err)
			}

			out := cmd.OutOrStdout()
			if date {
				fmt.Fprintf(out, "%s (%s)\n", text, duration.FormatDate(t.Local(), duration.DateOptions{HMS: true}))
				return nil
			}
			fmt.Fprintln(out, text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&seconds, "seconds", false, "Include seconds")
	cmd.Flags().BoolVar(&first, "first", false, "Only show the largest unit")
	cmd.Flags().BoolVar(&date, "date", false, "Also print the timestamp as a local date")

	return cmd
}

// parseTimestamp accepts Unix milliseconds or an RFC 3339 time.
func parseTimestamp(s string) (time.Time, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: use Unix milliseconds or RFC 3339", s)
	}
	return t, nil
}
