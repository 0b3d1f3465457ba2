package duration

import (
	"errors"
	"testing"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		unit     Unit
		decimals int
		expected string
	}{
		{"zero nanoseconds", 0, Nanoseconds, 3, "0ns"},
		{"nanoseconds stay", 500, Nanoseconds, 3, "500ns"},
		{"nanoseconds promote to micro", 1500, Nanoseconds, 3, "1.5µs"},
		{"nanoseconds promote to words", 1500000000, Nanoseconds, 3, "1 second, and 500ms"},
		{"minute from nanoseconds", 65_000_000_000, Nanoseconds, 3, "1 minute, and 5 seconds"},
		{"microseconds promote to millis", 1500, Microseconds, 3, "1.5ms"},
		{"microseconds promote to words", 1234567, Microseconds, 3, "1 second, and 234ms"},
		{"millis rounded", 12.3456, Milliseconds, 2, "12.35ms"},
		{"rounding crosses threshold", 999.9999, Milliseconds, 3, "1 second"},
		{"exact second", 1000, Milliseconds, 3, "1 second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.value, tt.unit, tt.decimals)
			if got != tt.expected {
				t.Errorf("Convert(%v, %s, %d) = %q, want %q", tt.value, tt.unit, tt.decimals, got, tt.expected)
			}
		})
	}
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		input    string
		expected Unit
		wantErr  bool
	}{
		{"ms", Milliseconds, false},
		{"mi", Microseconds, false},
		{"us", Microseconds, false},
		{"µs", Microseconds, false},
		{"ns", Nanoseconds, false},
		{"hours", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseUnit(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("ParseUnit(%q) error = %v, want ErrInvalidArgument", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ParseUnit(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestUnitSuffix(t *testing.T) {
	if got := Microseconds.Suffix(); got != "µs" {
		t.Errorf("Microseconds.Suffix() = %q", got)
	}
	if got := Unit("x").Suffix(); got != "x" {
		t.Errorf("unknown unit suffix = %q", got)
	}
}
