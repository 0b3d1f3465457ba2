package duration

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		name     string
		ms       int64
		expected Breakdown
	}{
		{"zero", 0, Breakdown{}},
		{"one millisecond", 1, Breakdown{Milliseconds: 1}},
		{"ninety seconds", 90000, Breakdown{Minutes: 1, Seconds: 30}},
		{"one of each below a day", 3661001, Breakdown{Hours: 1, Minutes: 1, Seconds: 1, Milliseconds: 1}},
		{"exact year", Year, Breakdown{Years: 1}},
		{"exact month", Month, Breakdown{Months: 1}},
		{"year month day and a millisecond", Year + Month + Day + 1, Breakdown{Years: 1, Months: 1, Days: 1, Milliseconds: 1}},
		{"just under a month", Month - 1, Breakdown{Days: 30, Hours: 9, Minutes: 59, Seconds: 59, Milliseconds: 999}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decompose(tt.ms)
			if err != nil {
				t.Fatalf("Decompose(%d) unexpected error: %v", tt.ms, err)
			}
			if got != tt.expected {
				t.Errorf("Decompose(%d) = %+v, want %+v", tt.ms, got, tt.expected)
			}
		})
	}
}

func TestDecomposeReconstructsInput(t *testing.T) {
	inputs := []int64{0, 1, 999, 1000, 59999, 60000, Day - 1, Month + 1, Year - 1, Year * 3, math.MaxInt64}

	rng := rand.New(rand.NewSource(42))
	for range 200 {
		inputs = append(inputs, rng.Int63())
	}

	for _, ms := range inputs {
		b, err := Decompose(ms)
		if err != nil {
			t.Fatalf("Decompose(%d) unexpected error: %v", ms, err)
		}
		if b.Millis() != ms {
			t.Errorf("Decompose(%d).Millis() = %d", ms, b.Millis())
		}
		if b.Milliseconds < 0 || b.Milliseconds >= 1000 || b.Seconds >= 60 || b.Minutes >= 60 || b.Hours >= 24 {
			t.Errorf("Decompose(%d) produced out of range fields: %+v", ms, b)
		}
	}
}

func TestDecomposeNegative(t *testing.T) {
	_, err := Decompose(-5)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Decompose(-5) error = %v, want ErrInvalidArgument", err)
	}

	var argErr *InvalidArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("expected *InvalidArgumentError, got %T", err)
	}
	if argErr.Value != -5 || argErr.Op != "decompose" {
		t.Errorf("unexpected error fields: %+v", argErr)
	}
}

func TestBreakdownTotal(t *testing.T) {
	b := Breakdown{Milliseconds: 5, Seconds: 4, Minutes: 3, Hours: 2, Days: 1}
	if got := b.Total(); got != 15 {
		t.Errorf("Total() = %d, want 15", got)
	}
	if b.IsZero() {
		t.Error("expected IsZero() to be false")
	}
	if !(Breakdown{}).IsZero() {
		t.Error("expected zero breakdown to report IsZero()")
	}
}
