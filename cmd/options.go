package cmd

// Options holds the shared command-line options for the elapsed CLI.
type Options struct {
	Output    string // Output format; empty falls back to config
	Verbosity int
	Workers   int   // Concurrent formatting workers; zero falls back to config
	Decimals  int   // Rounding for converted values; negative falls back to config
	TUI       *bool // nil = auto-detect, true = force TUI, false = disable TUI
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates a new Options with defaults and applies any provided options.
func NewOptions(opts ...Option) *Options {
	o := &Options{
		Decimals: -1,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithOutput sets the output format (text, json, yaml, toml, table).
func WithOutput(format string) Option {
	return func(o *Options) {
		o.Output = format
	}
}

// WithVerbosity sets the verbosity level.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		o.Verbosity = v
	}
}

// WithWorkers sets the number of concurrent workers.
func WithWorkers(workers int) Option {
	return func(o *Options) {
		o.Workers = workers
	}
}

// WithDecimals sets the rounding used when converting values.
func WithDecimals(decimals int) Option {
	return func(o *Options) {
		o.Decimals = decimals
	}
}

// WithTUI controls TUI mode (nil = auto-detect, true = force, false = disable).
func WithTUI(tui *bool) Option {
	return func(o *Options) {
		o.TUI = tui
	}
}

// workers resolves the worker count against the configured value.
func (o *Options) workers(configured int) int {
	if o.Workers > 0 {
		return o.Workers
	}
	return configured
}

// decimals resolves the rounding against the configured value.
func (o *Options) decimals(configured int) int {
	if o.Decimals >= 0 {
		return o.Decimals
	}
	return configured
}
