package duration

import (
	"fmt"
	"slices"
	"strings"
)

// Options controls how Format renders a duration.
type Options struct {
	// Words renders full unit names ("seconds") instead of abbreviations ("s").
	Words bool
	// IncludeSeconds keeps seconds in the output.
	IncludeSeconds bool
	// IncludeMilliseconds keeps milliseconds in the output.
	IncludeMilliseconds bool
	// ShortMillisecondUnit uses "ms" even in word mode.
	ShortMillisecondUnit bool
	// MonthAbbreviation is the month suffix outside word mode.
	MonthAbbreviation string
	// Raw makes Format return the Breakdown instead of text.
	Raw bool
}

// DefaultMonthAbbreviation is used when Options.MonthAbbreviation is empty.
const DefaultMonthAbbreviation = "mn"

// DefaultOptions returns the options Format uses when none are given.
func DefaultOptions() Options {
	return Options{
		IncludeSeconds:       true,
		ShortMillisecondUnit: true,
		MonthAbbreviation:    DefaultMonthAbbreviation,
	}
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// NewOptions creates Options with defaults and applies any provided options.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithWords renders full unit names.
func WithWords() Option {
	return func(o *Options) {
		o.Words = true
	}
}

// WithoutSeconds drops seconds from the output.
func WithoutSeconds() Option {
	return func(o *Options) {
		o.IncludeSeconds = false
	}
}

// WithMilliseconds keeps milliseconds in the output.
func WithMilliseconds() Option {
	return func(o *Options) {
		o.IncludeMilliseconds = true
	}
}

// WithLongMillisecondUnit spells out "milliseconds" in word mode.
func WithLongMillisecondUnit() Option {
	return func(o *Options) {
		o.ShortMillisecondUnit = false
	}
}

// WithMonthAbbreviation sets the month suffix used outside word mode.
func WithMonthAbbreviation(abbr string) Option {
	return func(o *Options) {
		o.MonthAbbreviation = abbr
	}
}

// WithRaw makes Format return the Breakdown.
func WithRaw() Option {
	return func(o *Options) {
		o.Raw = true
	}
}

// Result holds either rendered text or, in raw mode, the Breakdown.
type Result struct {
	text      string
	breakdown Breakdown
	raw       bool
}

// IsRaw reports whether the result carries a Breakdown rather than text.
func (r Result) IsRaw() bool {
	return r.raw
}

// Text returns the rendered text. It is empty for raw results.
func (r Result) Text() string {
	return r.text
}

// Breakdown returns the breakdown and true for raw results.
func (r Result) Breakdown() (Breakdown, bool) {
	return r.breakdown, r.raw
}

// String renders raw results in abbreviated form so they stay printable.
func (r Result) String() string {
	if !r.raw {
		return r.text
	}
	b := r.breakdown
	return fmt.Sprintf("%dy%dmn%dd%dh%dm%ds%dms",
		b.Years, b.Months, b.Days, b.Hours, b.Minutes, b.Seconds, b.Milliseconds)
}

// Format renders ms using the default options modified by opts.
func Format(ms int64, opts ...Option) (Result, error) {
	return FormatWith(ms, NewOptions(opts...))
}

// String renders ms as text. Raw is ignored.
func String(ms int64, opts ...Option) (string, error) {
	o := NewOptions(opts...)
	o.Raw = false
	r, err := FormatWith(ms, o)
	if err != nil {
		return "", err
	}
	return r.text, nil
}

// FormatWith renders ms using o.
func FormatWith(ms int64, o Options) (Result, error) {
	if ms < 0 {
		return Result{}, &InvalidArgumentError{Op: "format", Value: ms}
	}

	if ms == 0 {
		if o.Raw {
			return Result{raw: true}, nil
		}
		if o.Words {
			return Result{text: "0 seconds"}, nil
		}
		return Result{text: "0s"}, nil
	}

	b, err := Decompose(ms)
	if err != nil {
		return Result{}, err
	}
	if o.Raw {
		return Result{breakdown: b, raw: true}, nil
	}

	total := b.Total()
	if !o.IncludeMilliseconds && b.Milliseconds == total {
		return Result{text: pick(o.Words, "less than one second", "none")}, nil
	}
	// With both units excluded, milliseconds count with seconds so that 30.5s
	// does not render as an empty string.
	if !o.IncludeSeconds && (b.Seconds == total || (!o.IncludeMilliseconds && b.Seconds+b.Milliseconds == total)) {
		return Result{text: pick(o.Words, "less than one minute", "none")}, nil
	}

	return Result{text: render(b, o)}, nil
}

// unit describes how one Breakdown field is rendered.
type unit struct {
	value  int64
	word   string
	abbr   string
	enable bool
}

func render(b Breakdown, o Options) string {
	monthAbbr := o.MonthAbbreviation
	if monthAbbr == "" {
		monthAbbr = DefaultMonthAbbreviation
	}

	// Smallest first; the "and " prefix lands on the smallest entry.
	units := []unit{
		{b.Milliseconds, "millisecond", "ms", o.IncludeMilliseconds},
		{b.Seconds, "second", "s", o.IncludeSeconds},
		{b.Minutes, "minute", "m", true},
		{b.Hours, "hour", "h", true},
		{b.Days, "day", "d", true},
		{b.Months, "month", monthAbbr, true},
		{b.Years, "year", "y", true},
	}

	parts := make([]string, 0, len(units))
	for i, u := range units {
		if !u.enable || u.value <= 0 {
			continue
		}
		shortMS := i == 0 && o.ShortMillisecondUnit
		if o.Words && !shortMS {
			parts = append(parts, fmt.Sprintf("%d %s%s", u.value, u.word, plural(u.value)))
		} else {
			parts = append(parts, fmt.Sprintf("%d%s", u.value, u.abbr))
		}
	}

	if o.Words && len(parts) > 1 {
		parts[0] = "and " + parts[0]
	}

	slices.Reverse(parts)

	if o.Words {
		return strings.Join(parts, ", ")
	}
	return strings.Join(parts, "")
}

func plural(n int64) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func pick(words bool, long, short string) string {
	if words {
		return long
	}
	return short
}
