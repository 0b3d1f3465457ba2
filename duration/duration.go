// Package duration breaks millisecond counts into calendar-agnostic units and
// renders them as human-readable strings.
package duration

// Fixed unit lengths in milliseconds. Years and months are not calendar accurate.
const (
	Second int64 = 1000
	Minute int64 = 60 * Second
	Hour   int64 = 60 * Minute
	Day    int64 = 24 * Hour
	Month  int64 = 2_628_000_000
	Year   int64 = 31_540_000_000
)

// Breakdown is a duration split into fixed-length units.
type Breakdown struct {
	Milliseconds int64 `json:"milliseconds" yaml:"milliseconds" toml:"milliseconds"`
	Seconds      int64 `json:"seconds" yaml:"seconds" toml:"seconds"`
	Minutes      int64 `json:"minutes" yaml:"minutes" toml:"minutes"`
	Hours        int64 `json:"hours" yaml:"hours" toml:"hours"`
	Days         int64 `json:"days" yaml:"days" toml:"days"`
	Months       int64 `json:"months" yaml:"months" toml:"months"`
	Years        int64 `json:"years" yaml:"years" toml:"years"`
}

// Decompose splits ms greedily into years, months, days, hours, minutes,
// seconds and a millisecond remainder.
func Decompose(ms int64) (Breakdown, error) {
	if ms < 0 {
		return Breakdown{}, &InvalidArgumentError{Op: "decompose", Value: ms}
	}

	var b Breakdown
	rest := ms

	b.Years, rest = rest/Year, rest%Year
	b.Months, rest = rest/Month, rest%Month
	b.Days, rest = rest/Day, rest%Day
	b.Hours, rest = rest/Hour, rest%Hour
	b.Minutes, rest = rest/Minute, rest%Minute
	b.Seconds, rest = rest/Second, rest%Second
	b.Milliseconds = rest

	return b, nil
}

// Total returns the plain sum of the seven fields. It is not a duration.
func (b Breakdown) Total() int64 {
	return b.Milliseconds + b.Seconds + b.Minutes + b.Hours + b.Days + b.Months + b.Years
}

// Millis reassembles the breakdown into milliseconds.
func (b Breakdown) Millis() int64 {
	return b.Years*Year +
		b.Months*Month +
		b.Days*Day +
		b.Hours*Hour +
		b.Minutes*Minute +
		b.Seconds*Second +
		b.Milliseconds
}

// IsZero reports whether every field is zero.
func (b Breakdown) IsZero() bool {
	return b == Breakdown{}
}
