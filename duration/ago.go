package duration

import (
	"fmt"
	"strings"
	"time"
)

// FormatAgo renders ms in word mode followed by " ago". With firstOnly set
// only the largest unit is kept.
func FormatAgo(ms int64, includeSeconds, firstOnly bool) (string, error) {
	o := NewOptions(WithWords())
	o.IncludeSeconds = includeSeconds

	r, err := FormatWith(ms, o)
	if err != nil {
		return "", err
	}

	text := r.Text()
	if firstOnly {
		text, _, _ = strings.Cut(text, ",")
	}
	return text + " ago", nil
}

// Since is FormatAgo for the time elapsed between t and now.
func Since(t, now time.Time, includeSeconds, firstOnly bool) (string, error) {
	return FormatAgo(now.Sub(t).Milliseconds(), includeSeconds, firstOnly)
}

// SecondsToHMS renders sec as zero padded HH:MM:SS. Hours are not wrapped at 24.
func SecondsToHMS(sec int64) string {
	if sec < 0 {
		sec = 0
	}
	h := sec / 3600
	m := (sec % 3600) / 60
	s := sec % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
