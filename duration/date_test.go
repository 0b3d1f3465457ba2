package duration

import (
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 14, 7, 9, 45*int(time.Millisecond), time.UTC)

	tests := []struct {
		name     string
		opts     DateOptions
		expected string
	}{
		{"date only", DateOptions{}, "03/05/2024"},
		{"with time", DateOptions{HMS: true}, "03/05/2024 02:07:09"},
		{"with millis", DateOptions{HMS: true, Millis: true}, "03/05/2024 02:07:09.045"},
		{"words", DateOptions{Words: true}, "Tuesday March 05, 2024 02:07:09 PM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(ts, tt.opts); got != tt.expected {
				t.Errorf("FormatDate() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year     int
		month    time.Month
		expected int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
	}

	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.expected {
			t.Errorf("DaysInMonth(%d, %s) = %d, want %d", tt.year, tt.month, got, tt.expected)
		}
	}
}
