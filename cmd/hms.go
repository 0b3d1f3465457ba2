package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/spiffcs/elapsed/duration"
)

// NewCmdHMS creates the hms command.
func NewCmdHMS() *cobra.Command {
	return &cobra.Command{
		Use:     "hms <seconds>",
		Short:   "Print seconds as HH:MM:SS",
		Example: `  elapsed hms 3725    # 01:02:05`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sec, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid seconds %q: %w", args[0], err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), duration.SecondsToHMS(sec))
			return err
		},
	}
}
