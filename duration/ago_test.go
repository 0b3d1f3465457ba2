package duration

import (
	"errors"
	"testing"
	"time"
)

func TestFormatAgo(t *testing.T) {
	tests := []struct {
		name           string
		ms             int64
		includeSeconds bool
		firstOnly      bool
		expected       string
	}{
		{"full", 90000, true, false, "1 minute, and 30 seconds ago"},
		{"first only", 90000, true, true, "1 minute ago"},
		{"seconds dropped", 30000, false, false, "less than one minute ago"},
		{"zero", 0, true, false, "0 seconds ago"},
		{"days", 2*Day + 3*Hour, false, true, "2 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatAgo(tt.ms, tt.includeSeconds, tt.firstOnly)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("FormatAgo(%d) = %q, want %q", tt.ms, got, tt.expected)
			}
		})
	}

	if _, err := FormatAgo(-1, true, false); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("FormatAgo(-1) error = %v, want ErrInvalidArgument", err)
	}
}

func TestSince(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	got, err := Since(now.Add(-2*time.Hour), now, true, false)
	if err != nil {
		t.Fatal(err)
	}
	if got != "2 hours ago" {
		t.Errorf("Since() = %q, want %q", got, "2 hours ago")
	}

	if _, err := Since(now.Add(time.Hour), now, true, false); err == nil {
		t.Error("expected error for a time in the future")
	}
}

func TestSecondsToHMS(t *testing.T) {
	tests := []struct {
		sec      int64
		expected string
	}{
		{0, "00:00:00"},
		{1800, "00:30:00"},
		{3661, "01:01:01"},
		{86399, "23:59:59"},
		{360000, "100:00:00"},
		{-5, "00:00:00"},
	}

	for _, tt := range tests {
		if got := SecondsToHMS(tt.sec); got != tt.expected {
			t.Errorf("SecondsToHMS(%d) = %q, want %q", tt.sec, got, tt.expected)
		}
	}
}
