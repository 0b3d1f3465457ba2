package duration

import (
	"fmt"
	"math"
	"strconv"
)

// Unit is the resolution of a value passed to Convert.
type Unit string

const (
	Milliseconds Unit = "ms"
	Microseconds Unit = "mi"
	Nanoseconds  Unit = "ns"
)

// DefaultDecimals is the rounding precision used by timers.
const DefaultDecimals = 3

// Suffix returns the label printed after a value in this unit.
func (u Unit) Suffix() string {
	switch u {
	case Milliseconds:
		return "ms"
	case Microseconds:
		return "µs"
	case Nanoseconds:
		return "ns"
	default:
		return string(u)
	}
}

// ParseUnit maps a unit name to a Unit.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "ms", "millis", "milliseconds":
		return Milliseconds, nil
	case "mi", "us", "µs", "micros", "microseconds":
		return Microseconds, nil
	case "ns", "nanos", "nanoseconds":
		return Nanoseconds, nil
	default:
		return "", fmt.Errorf("unknown unit %q (use ms, mi or ns): %w", s, ErrInvalidArgument)
	}
}

// Convert renders value, measured in unit, at the coarsest unit that keeps it
// below 1000, climbing ns -> µs -> ms. Values of a second or more are handed
// to Format in word mode with seconds and milliseconds included.
func Convert(value float64, unit Unit, decimals int) string {
	value = round(value, decimals)

	if value < 1000 {
		return strconv.FormatFloat(value, 'f', -1, 64) + unit.Suffix()
	}

	switch unit {
	case Nanoseconds:
		return Convert(value/1000, Microseconds, decimals)
	case Microseconds:
		return Convert(value/1000, Milliseconds, decimals)
	case Milliseconds:
		ms := int64(math.MaxInt64)
		if value < math.MaxInt64 {
			ms = int64(math.Floor(value))
		}
		text, err := String(ms, WithWords(), WithMilliseconds())
		if err != nil {
			return strconv.FormatFloat(value, 'f', -1, 64) + unit.Suffix()
		}
		return text
	default:
		return strconv.FormatFloat(value, 'f', -1, 64) + unit.Suffix()
	}
}

func round(v float64, decimals int) float64 {
	if decimals < 0 {
		return v
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
