package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/spiffcs/elapsed/duration"
)

// NewCmdConvert creates the convert command.
func NewCmdConvert(opts *Options) *cobra.Command {
	var unit string

	cmd := &cobra.Command{
		Use:   "convert <value>",
		Short: "Render a sub-millisecond timing at its most readable unit",
		Long: `Render a timing measured in milliseconds, microseconds or nanoseconds.

Values below 1000 keep their unit; larger values climb ns -> µs -> ms and,
from one second up, are written out in words.`,
		Example: `  elapsed convert -u ns 1500         # 1.5µs
  elapsed convert -u ns 1500000000   # 1 second, and 500ms
  elapsed convert -d 1 12.345        # 12.3ms`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args[0], unit, opts)
		},
	}

	cmd.Flags().StringVarP(&unit, "unit", "u", string(duration.Milliseconds), "Unit of the value (ms, mi, ns)")
	cmd.Flags().IntVarP(&opts.Decimals, "decimals", "d", -1, "Decimal places to round to (default from config)")

	return cmd
}

func runConvert(cmd *cobra.Command, arg, unitName string, opts *Options) error {
	unit, err := duration.ParseUnit(unitName)
	if err != nil {
		return err
	}

	value, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", arg, err)
	}
	if value < 0 {
		return &duration.InvalidArgumentError{Op: "convert", Value: int64(value)}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), duration.Convert(value, unit, opts.decimals(cfg.GetDecimals())))
	return err
}
