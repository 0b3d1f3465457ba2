package cmd

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/spiffcs/elapsed/config"
	"github.com/spiffcs/elapsed/duration"
	"github.com/spiffcs/elapsed/internal/constants"
	"github.com/spiffcs/elapsed/internal/history"
	"github.com/spiffcs/elapsed/internal/log"
	"github.com/spiffcs/elapsed/internal/tui"
)

// exitCanceled is reported when the run is stopped from the TUI.
const exitCanceled = 130

// runFlags holds the flags of the run command.
type runFlags struct {
	noHistory bool
	expect    string
}

// runRuntime bundles TUI-related state that's threaded through the run command.
type runRuntime struct {
	useTUI  bool
	events  chan tui.Event
	tuiDone chan error
	cancel  context.CancelFunc
}

// startTUI initializes and starts the TUI goroutine if TUI mode is enabled.
// Quitting the TUI cancels the run.
func (rt *runRuntime) startTUI(opts ...tui.ModelOption) {
	if !rt.useTUI {
		return
	}
	rt.events = make(chan tui.Event, constants.EventBufferSize)
	rt.tuiDone = make(chan error, 1)
	go func() {
		canceled, err := tui.Run(rt.events, opts...)
		if canceled {
			rt.cancel()
		}
		rt.tuiDone <- err
	}()
}

// close closes the event channel and waits for the TUI to finish.
func (rt *runRuntime) close() {
	if rt.events == nil {
		return
	}
	close(rt.events)
	if err := <-rt.tuiDone; err != nil {
		log.Warn("TUI exited with error", "error", err)
	}
	rt.events = nil
}

// sendEvent sends a task event to the TUI channel if it exists.
func (rt *runRuntime) sendEvent(task tui.TaskID, status tui.TaskStatus, opts ...tui.TaskEventOption) {
	if rt.events == nil {
		return
	}
	tui.SendTaskEvent(rt.events, task, status, opts...)
}

// NewCmdRun creates the run command.
func NewCmdRun(opts *Options) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run -- <command> [args...]",
		Short: "Time a command",
		Long: `Run a command, show a live clock while it runs, and print how long it took.

The command's exit status is passed through. Each run is appended to the
history log (see 'elapsed history') unless --no-history is given or
history is disabled in the config.`,
		Example: `  elapsed run -- make test
  elapsed run --expect 2m -- go build ./...
  elapsed run --tui=false -- sleep 1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args, opts, flags)
		},
	}

	// Everything after the command name belongs to the command.
	cmd.Flags().SetInterspersed(false)

	// TUI flag with tri-state: nil = auto, true = force, false = disable
	cmd.Flags().Var(newTUIFlag(opts), "tui", "Enable/disable the live display (default: auto-detect)")
	cmd.Flags().Lookup("tui").NoOptDefVal = "true"
	cmd.Flags().BoolVar(&flags.noHistory, "no-history", false, "Do not record this run")
	cmd.Flags().StringVar(&flags.expect, "expect", "", "Expected run time (e.g. 2m30s) to draw a progress bar")
	cmd.Flags().IntVarP(&opts.Decimals, "decimals", "d", -1, "Decimal places for the elapsed time (default from config)")

	return cmd
}

func runRun(cmd *cobra.Command, args []string, opts *Options, flags *runFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var expected time.Duration
	if flags.expect != "" {
		ms, err := duration.Parse(flags.expect)
		if err == nil {
			expected, err = duration.ToDuration(ms)
		}
		if err != nil {
			return fmt.Errorf("invalid --expect: %w", err)
		}
	}

	settings := cfg.GetHistorySettings()
	record := settings.Enabled && !flags.noHistory
	commandLine := strings.Join(args, " ")
	decimals := opts.decimals(cfg.GetDecimals())

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	rt := &runRuntime{useTUI: shouldUseTUI(opts), cancel: cancel}
	if rt.useTUI {
		// Suppress logs during TUI to avoid interleaving with display
		log.Initialize(opts.Verbosity, io.Discard)
	}
	rt.startTUI(
		tui.WithTasks(tui.RunTasks(commandLine, record)),
		tui.WithExpected(expected),
	)
	defer rt.close()

	timers := duration.NewTimers("run",
		duration.WithLogFunc(log.TimerFunc()),
		duration.WithDecimals(decimals),
	)

	res := execute(ctx, cmd, args, rt, timers)
	took, _ := timers.Calc(commandLine)
	elapsed, _ := timers.Elapsed(commandLine)

	if record {
		recordRun(rt, settings, args, res, elapsed)
	}

	rt.close()
	if rt.useTUI {
		log.Initialize(opts.Verbosity, cmd.ErrOrStderr())
		if _, err := res.stdout.WriteTo(cmd.OutOrStdout()); err != nil {
			log.Warn("could not write command output", "error", err)
		}
		if _, err := res.stderr.WriteTo(cmd.ErrOrStderr()); err != nil {
			log.Warn("could not write command output", "error", err)
		}
	}

	if res.startErr != nil {
		return fmt.Errorf("failed to start %s: %w", args[0], res.startErr)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s took %s\n", commandLine, color.New(color.FgYellow, color.Bold).Sprint(took))

	if res.exitCode != 0 {
		return &ExitError{Code: res.exitCode}
	}
	return nil
}

// runResult is the outcome of a timed command.
type runResult struct {
	exitCode int
	runErr   error
	startErr error
	stdout   bytes.Buffer
	stderr   bytes.Buffer
}

// execute runs the command under a timer. With the TUI active its output
// is captured and relayed line by line; otherwise it inherits the terminal.
func execute(ctx context.Context, cmd *cobra.Command, args []string, rt *runRuntime, timers *duration.Timers) *runResult {
	res := &runResult{}
	label := strings.Join(args, " ")

	c := exec.CommandContext(ctx, args[0], args[1:]...)
	c.Stdin = cmd.InOrStdin()

	var relays errgroup.Group
	if rt.useTUI {
		stdout, err := c.StdoutPipe()
		if err != nil {
			res.startErr = err
			return res
		}
		stderr, err := c.StderrPipe()
		if err != nil {
			res.startErr = err
			return res
		}
		relays.Go(func() error { return relay(stdout, &res.stdout, rt.events) })
		relays.Go(func() error { return relay(stderr, &res.stderr, rt.events) })
	} else {
		c.Stdout = cmd.OutOrStdout()
		c.Stderr = cmd.ErrOrStderr()
	}

	rt.sendEvent(tui.TaskStart, tui.StatusRunning)
	started, _ := timers.Start(label)
	if err := c.Start(); err != nil {
		_, _ = timers.End(label)
		_ = relays.Wait()
		rt.sendEvent(tui.TaskStart, tui.StatusError, tui.WithError(err))
		res.startErr = err
		res.exitCode = 127
		return res
	}
	rt.sendEvent(tui.TaskStart, tui.StatusComplete, tui.WithMessage(fmt.Sprintf("pid %d", c.Process.Pid)))
	rt.sendEvent(tui.TaskRun, tui.StatusRunning, tui.WithStarted(started))
	log.Info("started command", "command", label, "pid", c.Process.Pid)

	// Pipes must be drained before Wait closes them.
	if err := relays.Wait(); err != nil {
		log.Debug("output relay stopped early", "error", err)
	}
	res.runErr = c.Wait()
	_, _ = timers.End(label)
	took, _ := timers.Calc(label)

	var exitErr *exec.ExitError
	switch {
	case ctx.Err() != nil:
		res.exitCode = exitCanceled
	case errors.As(res.runErr, &exitErr):
		res.exitCode = exitErr.ExitCode()
	case res.runErr != nil:
		res.exitCode = 1
	}

	if res.exitCode != 0 {
		rt.sendEvent(tui.TaskRun, tui.StatusError,
			tui.WithMessage(took),
			tui.WithError(fmt.Errorf("exit status %d", res.exitCode)))
	} else {
		rt.sendEvent(tui.TaskRun, tui.StatusComplete, tui.WithMessage(took))
	}
	return res
}

// relay copies r into buf line by line and forwards each line to the TUI.
func relay(r io.Reader, buf *bytes.Buffer, events chan<- tui.Event) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), constants.MaxLineBytes)
	for scanner.Scan() {
		buf.Write(scanner.Bytes())
		buf.WriteByte('\n')
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			tui.SendEvent(events, tui.OutputEvent{Line: line})
		}
	}
	if err := scanner.Err(); err != nil {
		// Keep draining so the command never blocks on a full pipe.
		_, _ = io.Copy(buf, r)
		return err
	}
	return nil
}

// recordRun appends the run to the history log. Failures are logged, not
// returned, so a broken cache directory never changes the exit status.
func recordRun(rt *runRuntime, settings config.HistorySettings, args []string, res *runResult, elapsed time.Duration) {
	rt.sendEvent(tui.TaskRecord, tui.StatusRunning)

	store, err := history.NewStore(settings.MaxRecords)
	if err != nil {
		log.Warn("could not open history", "error", err)
		rt.sendEvent(tui.TaskRecord, tui.StatusError, tui.WithError(err))
		return
	}

	runErr := res.runErr
	if res.startErr != nil {
		runErr = res.startErr
	}
	rec := history.NewRecord(args, time.Now().Add(-elapsed), elapsed, res.exitCode, runErr)
	if err := store.Append(rec); err != nil {
		log.Warn("could not record run", "path", store.Path(), "error", err)
		rt.sendEvent(tui.TaskRecord, tui.StatusError, tui.WithError(err))
		return
	}
	rt.sendEvent(tui.TaskRecord, tui.StatusComplete, tui.WithMessage(rec.ID[:8]))
}
