package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/spiffcs/elapsed/config"
	"github.com/spiffcs/elapsed/duration"
	"github.com/spiffcs/elapsed/internal/constants"
	"github.com/spiffcs/elapsed/internal/log"
	"github.com/spiffcs/elapsed/internal/output"
)

// formatFlags holds the flags of the format command.
type formatFlags struct {
	words     bool
	seconds   bool
	millis    bool
	longMS    bool
	raw       bool
	monthAbbr string
}

// NewCmdFormat creates the format command.
func NewCmdFormat(opts *Options) *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:   "format [milliseconds...]",
		Short: "Format millisecond durations as readable text",
		Long: `Format one or more millisecond counts as readable durations.

Inputs are read from the arguments, or one per line from stdin when no
arguments are given. Besides plain integers, any text accepted by
'elapsed parse' (such as 1h30m) is formatted too.`,
		Example: `  elapsed format 90000             # 1m30s
  elapsed format -w 90000          # 1 minute, and 30 seconds
  elapsed format --ms 1500         # 1s500ms
  elapsed format --raw -o json 90000
  cat timings.txt | elapsed format -o table`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, opts, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.words, "words", "w", false, "Use full unit names")
	cmd.Flags().BoolVar(&flags.seconds, "seconds", true, "Include seconds")
	cmd.Flags().BoolVar(&flags.millis, "ms", false, "Include milliseconds")
	cmd.Flags().BoolVar(&flags.longMS, "long-ms", false, "Spell out milliseconds in word mode")
	cmd.Flags().BoolVar(&flags.raw, "raw", false, "Output the unit breakdown instead of text")
	cmd.Flags().StringVar(&flags.monthAbbr, "month-abbr", duration.DefaultMonthAbbreviation, "Abbreviation for months")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text, json, yaml, toml, table)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Inputs formatted concurrently (default from config)")

	return cmd
}

func runFormat(cmd *cobra.Command, args []string, opts *Options, flags *formatFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, err := resolveOutput(opts.Output, cfg)
	if err != nil {
		return err
	}

	inputs := args
	if len(inputs) == 0 {
		if !stdinIsPiped(cmd) {
			return fmt.Errorf("no input: pass milliseconds as arguments or pipe them on stdin")
		}
		inputs, err = readInputs(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	formatOpts := flags.apply(cmd, cfg.GetFormatOptions())
	log.Debug("formatting", "inputs", len(inputs), "options", formatOpts)

	start := time.Now()
	entries, err := formatAll(cmd.Context(), inputs, formatOpts, opts.workers(cfg.GetWorkers()))
	if err != nil {
		return err
	}
	log.Elapsed("formatted inputs", start, "count", len(entries))

	formatter := output.NewFormatter(format, opts.decimals(cfg.GetDecimals()))
	if err := formatter.FormatEntries(entries, cmd.OutOrStdout()); err != nil {
		return err
	}

	var failed int
	for _, e := range entries {
		if e.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs could not be formatted", failed, len(entries))
	}
	return nil
}

// apply overlays explicitly set flags on the configured options.
func (f *formatFlags) apply(cmd *cobra.Command, o duration.Options) duration.Options {
	changed := cmd.Flags().Changed
	if changed("words") {
		o.Words = f.words
	}
	if changed("seconds") {
		o.IncludeSeconds = f.seconds
	}
	if changed("ms") {
		o.IncludeMilliseconds = f.millis
	}
	if changed("long-ms") {
		o.ShortMillisecondUnit = !f.longMS
	}
	if changed("month-abbr") && f.monthAbbr != "" {
		o.MonthAbbreviation = f.monthAbbr
	}
	if changed("raw") {
		o.Raw = f.raw
	}
	return o
}

// formatAll formats inputs concurrently, preserving their order.
func formatAll(ctx context.Context, inputs []string, o duration.Options, workers int) ([]output.Entry, error) {
	entries := make([]output.Entry, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ms, err := parseMillis(input)
			if err != nil {
				entries[i] = output.NewEntry(input, 0, duration.Result{}, err)
				return nil
			}
			res, err := duration.FormatWith(ms, o)
			entries[i] = output.NewEntry(input, ms, res, err)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}

// parseMillis accepts an integer millisecond count or duration text.
func parseMillis(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}
	ms, err := duration.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("not a millisecond count or duration: %w", err)
	}
	return ms, nil
}

// readInputs reads one input per non-blank line.
func readInputs(r io.Reader) ([]string, error) {
	var inputs []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), constants.MaxLineBytes)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			inputs = append(inputs, line)
		}
	}
	return inputs, scanner.Err()
}

// resolveOutput picks the output format from the flag or config.
func resolveOutput(flag string, cfg *config.Config) (output.Format, error) {
	name := flag
	if name == "" {
		name = cfg.DefaultOutput
	}
	if name == "" {
		name = constants.OutputText
	}
	return output.ParseFormat(name)
}
