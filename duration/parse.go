package duration

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	termRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([a-z]+)`)
	andRe  = regexp.MustCompile(`\band\b`)
)

var unitMillis = map[string]int64{
	"ms": 1, "msec": 1, "msecs": 1, "millisecond": 1, "milliseconds": 1,
	"s": Second, "sec": Second, "secs": Second, "second": Second, "seconds": Second,
	"m": Minute, "min": Minute, "mins": Minute, "minute": Minute, "minutes": Minute,
	"h": Hour, "hr": Hour, "hrs": Hour, "hour": Hour, "hours": Hour,
	"d": Day, "day": Day, "days": Day,
	"w": 7 * Day, "wk": 7 * Day, "wks": 7 * Day, "week": 7 * Day, "weeks": 7 * Day,
	"mn": Month, "mo": Month, "month": Month, "months": Month,
	"y": Year, "yr": Year, "yrs": Year, "year": Year, "years": Year,
}

// Parse reads durations such as "1m30s", "2h 5m" or "1 minute, and 30 seconds"
// and returns the total in milliseconds. Months and years use the same fixed
// lengths as Decompose, so Format output parses back to its input.
func Parse(s string) (int64, error) {
	clean := strings.ToLower(s)
	clean = andRe.ReplaceAllString(clean, " ")
	clean = strings.ReplaceAll(clean, ",", " ")

	terms := termRe.FindAllStringSubmatch(clean, -1)
	if len(terms) == 0 {
		return 0, fmt.Errorf("invalid duration format: %q (use e.g., 1m30s, 2h, 5 minutes): %w", s, ErrInvalidArgument)
	}
	if leftover := strings.TrimSpace(termRe.ReplaceAllString(clean, "")); leftover != "" {
		return 0, fmt.Errorf("invalid duration format: %q (unexpected %q): %w", s, leftover, ErrInvalidArgument)
	}

	var total int64
	for _, t := range terms {
		n, err := strconv.ParseFloat(t[1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q: %w", t[1], ErrInvalidArgument)
		}
		per, ok := unitMillis[t[2]]
		if !ok {
			return 0, fmt.Errorf("unknown duration unit: %s: %w", t[2], ErrInvalidArgument)
		}
		term := math.Round(n * float64(per))
		if term >= math.MaxInt64 || int64(term) > math.MaxInt64-total {
			return 0, fmt.Errorf("duration %q overflows int64 milliseconds: %w", s, ErrInvalidArgument)
		}
		total += int64(term)
	}
	return total, nil
}

// maxDurationMillis is the largest millisecond count a time.Duration holds.
const maxDurationMillis = math.MaxInt64 / int64(time.Millisecond)

// ToDuration converts ms to a time.Duration, rejecting values it cannot hold.
func ToDuration(ms int64) (time.Duration, error) {
	if ms < 0 {
		return 0, &InvalidArgumentError{Op: "ToDuration", Value: ms}
	}
	if ms > maxDurationMillis {
		return 0, fmt.Errorf("%dms exceeds the %dms a time.Duration can hold: %w", ms, maxDurationMillis, ErrInvalidArgument)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// ParseSince parses s and returns the time that is that far before now.
func ParseSince(s string, now time.Time) (time.Time, error) {
	ms, err := Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	d, err := ToDuration(ms)
	if err != nil {
		return time.Time{}, err
	}
	return now.Add(-d), nil
}
