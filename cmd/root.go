package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spiffcs/elapsed/config"
	"github.com/spiffcs/elapsed/internal/log"
)

// New creates the root command with all subcommands registered.
func New() *cobra.Command {
	opts := NewOptions()

	rootCmd := &cobra.Command{
		Use:   "elapsed",
		Short: "Human-readable durations and command timing",
		Long: `A CLI tool that turns millisecond counts into readable durations
("1 minute, and 30 seconds" or "1m30s"), converts sub-millisecond timings,
and times commands with a live progress display.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			log.Initialize(opts.Verbosity, cmd.ErrOrStderr())
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (-v info, -vv debug, -vvv trace)")

	// Register subcommands
	rootCmd.AddCommand(NewCmdFormat(opts))
	rootCmd.AddCommand(NewCmdConvert(opts))
	rootCmd.AddCommand(NewCmdAgo())
	rootCmd.AddCommand(NewCmdParse())
	rootCmd.AddCommand(NewCmdHMS())
	rootCmd.AddCommand(NewCmdRun(opts))
	rootCmd.AddCommand(NewCmdHistory(opts))
	rootCmd.AddCommand(NewCmdConfig())
	rootCmd.AddCommand(NewCmdVersion())

	return rootCmd
}

// ExitError carries a non-zero exit status without an error message, such
// as the status of a command timed by 'elapsed run'.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// loadConfig loads the merged configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// stdinIsPiped reports whether stdin is a pipe or file rather than a terminal.
func stdinIsPiped(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return true
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice == 0
}
