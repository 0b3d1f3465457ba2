package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/spiffcs/elapsed/duration"
)

// NewCmdParse creates the parse command.
func NewCmdParse() *cobra.Command {
	var reformat, since bool

	cmd := &cobra.Command{
		Use:   "parse <text>",
		Short: "Turn duration text back into milliseconds",
		Long: `Parse duration text such as "1 minute, and 30 seconds", "1m30s" or
"2h 5m" into milliseconds.

Use --format to render the parsed value with the configured format options,
or --since to print the date that long before now.`,
		Example: `  elapsed parse 1m30s                         # 90000
  elapsed parse "1 hour, and 5 minutes" --format
  elapsed parse --since 2w`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			out := cmd.OutOrStdout()

			if since {
				t, err := duration.ParseSince(text, time.Now())
				if err != nil {
					return err
				}
				fmt.Fprintln(out, duration.FormatDate(t.Local(), duration.DateOptions{HMS: true}))
				return nil
			}

			ms, err := duration.Parse(text)
			if err != nil {
				return err
			}

			if !reformat {
				fmt.Fprintln(out, ms)
				return nil
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			res, err := duration.FormatWith(ms, cfg.GetFormatOptions())
			if err != nil {
				return err
			}
			fmt.Fprintln(out, res.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&reformat, "format", false, "Render the parsed duration instead of printing milliseconds")
	cmd.Flags().BoolVar(&since, "since", false, "Print the date the duration before now")

	return cmd
}
