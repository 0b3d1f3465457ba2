package duration

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock returns base plus each offset in turn.
func fakeClock(offsets ...time.Duration) func() time.Time {
	base := time.Unix(1700000000, 0)
	var mu sync.Mutex
	i := 0
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		d := offsets[i]
		if i < len(offsets)-1 {
			i++
		}
		return base.Add(d)
	}
}

func TestCalc(t *testing.T) {
	start := time.Unix(0, 0)
	tests := []struct {
		elapsed  time.Duration
		expected string
	}{
		{500 * time.Nanosecond, "500ns"},
		{1500 * time.Nanosecond, "1.5µs"},
		{2500 * time.Millisecond, "2 seconds, and 500ms"},
	}

	for _, tt := range tests {
		if got := Calc(start, start.Add(tt.elapsed), DefaultDecimals); got != tt.expected {
			t.Errorf("Calc(%v) = %q, want %q", tt.elapsed, got, tt.expected)
		}
	}
}

func TestTimersLifecycle(t *testing.T) {
	var sources, infos []string
	timers := NewTimers("test",
		WithClock(fakeClock(0, 1500*time.Nanosecond)),
		WithLogFunc(func(source, info string) {
			sources = append(sources, source)
			infos = append(infos, info)
		}),
	)

	if _, err := timers.Start("load"); err != nil {
		t.Fatal(err)
	}
	if _, err := timers.End("load"); err != nil {
		t.Fatal(err)
	}

	if len(infos) != 1 || infos[0] != "load took 1.5µs" {
		t.Errorf("unexpected log output: %v", infos)
	}
	if len(sources) != 1 || sources[0] != "Timers[test]" {
		t.Errorf("unexpected log source: %v", sources)
	}

	d, err := timers.Elapsed("load")
	if err != nil {
		t.Fatal(err)
	}
	if d != 1500*time.Nanosecond {
		t.Errorf("Elapsed() = %v, want 1.5µs", d)
	}

	got, err := timers.Calc("load")
	if err != nil {
		t.Fatal(err)
	}
	if got != "1.5µs" {
		t.Errorf("Calc() = %q", got)
	}
}

func TestTimersErrors(t *testing.T) {
	timers := NewTimers("errs")

	if _, err := timers.End("missing"); !errors.Is(err, ErrTimerNotStarted) {
		t.Errorf("End(missing) error = %v, want ErrTimerNotStarted", err)
	}
	if _, err := timers.Elapsed("missing"); !errors.Is(err, ErrTimerNotStarted) {
		t.Errorf("Elapsed(missing) error = %v, want ErrTimerNotStarted", err)
	}

	if _, err := timers.Start("a"); err != nil {
		t.Fatal(err)
	}
	if _, err := timers.Start("a"); !errors.Is(err, ErrTimerStarted) {
		t.Errorf("second Start error = %v, want ErrTimerStarted", err)
	}
	if _, err := timers.End("a"); err != nil {
		t.Fatal(err)
	}
	if _, err := timers.End("a"); !errors.Is(err, ErrTimerEnded) {
		t.Errorf("second End error = %v, want ErrTimerEnded", err)
	}
}

func TestTimersConcurrent(t *testing.T) {
	timers := NewTimers("concurrent")

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			label := fmt.Sprintf("t%d", i)
			if _, err := timers.Start(label); err != nil {
				t.Errorf("Start(%s): %v", label, err)
				return
			}
			if _, err := timers.End(label); err != nil {
				t.Errorf("End(%s): %v", label, err)
			}
		}(i)
	}
	wg.Wait()

	for i := range 50 {
		if _, err := timers.Calc(fmt.Sprintf("t%d", i)); err != nil {
			t.Errorf("Calc(t%d): %v", i, err)
		}
	}
}
