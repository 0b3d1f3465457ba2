package duration

import (
	"fmt"
	"time"
)

// DateOptions selects the parts FormatDate prints.
type DateOptions struct {
	// HMS appends hh:mm:ss on a 12-hour clock.
	HMS bool
	// Millis appends .mmm after the seconds.
	Millis bool
	// Words prints "Monday January 02, 2006 03:04:05 PM" instead.
	Words bool
}

// FormatDate renders t as MM/DD/YYYY with optional time parts.
func FormatDate(t time.Time, opts DateOptions) string {
	if opts.Words {
		return t.Format("Monday January 02, 2006 03:04:05 PM")
	}

	s := t.Format("01/02/2006")
	if opts.HMS {
		s += t.Format(" 03:04:05")
	}
	if opts.Millis {
		s += fmt.Sprintf(".%03d", t.Nanosecond()/int(time.Millisecond))
	}
	return s
}

// DaysInMonth returns the number of days in month of year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
