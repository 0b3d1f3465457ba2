package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spiffcs/elapsed/internal/constants"
	"github.com/spiffcs/elapsed/internal/history"
	"github.com/spiffcs/elapsed/internal/log"
	"github.com/spiffcs/elapsed/internal/output"
)

// NewCmdHistory creates the history command with subcommands.
func NewCmdHistory(opts *Options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show commands timed by 'elapsed run'",
		Long: `Show the most recent runs recorded by 'elapsed run', oldest first.

Subcommands:
  clear     Delete all recorded runs
  path      Show the history file location`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHistory(cmd, opts, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", constants.HistoryDefaultLimit, "Number of runs to show (0 for all)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (text, json, yaml, toml, table)")

	cmd.AddCommand(NewCmdHistoryClear())
	cmd.AddCommand(NewCmdHistoryPath())

	return cmd
}

// NewCmdHistoryClear creates the history clear subcommand.
func NewCmdHistoryClear() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openHistory()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}
}

// NewCmdHistoryPath creates the history path subcommand.
func NewCmdHistoryPath() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show the history file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openHistory()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), store.Path())
			return nil
		},
	}
}

func runHistory(cmd *cobra.Command, opts *Options, limit int) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	format, err := resolveOutput(opts.Output, cfg)
	if err != nil {
		return err
	}

	store, err := history.NewStore(cfg.GetHistorySettings().MaxRecords)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}

	records := store.Recent(limit)
	log.Info("loaded history", "path", store.Path(), "records", len(records))

	formatter := output.NewFormatter(format, opts.decimals(cfg.GetDecimals()))
	return formatter.FormatHistory(records, cmd.OutOrStdout())
}

// openHistory opens the history store with the configured size limit.
func openHistory() (*history.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := history.NewStore(cfg.GetHistorySettings().MaxRecords)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return store, nil
}
