package duration

import (
	"fmt"
	"sync"
	"time"
)

// Calc renders the time between start and end through Convert in nanoseconds.
func Calc(start, end time.Time, decimals int) string {
	return Convert(float64(end.Sub(start).Nanoseconds()), Nanoseconds, decimals)
}

// LogFunc receives the timer set's source, "Timers[<id>]", and a line such
// as "load took 1.5µs" naming the finished timer.
type LogFunc func(source, info string)

type span struct {
	start time.Time
	end   time.Time
}

// Timers tracks labelled start/end pairs. It is safe for concurrent use.
type Timers struct {
	ID string

	mu     sync.Mutex
	spans  map[string]*span
	logf   LogFunc
	now    func() time.Time
	digits int
}

// TimersOption configures Timers.
type TimersOption func(*Timers)

// WithLogFunc reports each finished timer to fn.
func WithLogFunc(fn LogFunc) TimersOption {
	return func(t *Timers) {
		t.logf = fn
	}
}

// WithDecimals sets the rounding used when rendering elapsed times.
func WithDecimals(n int) TimersOption {
	return func(t *Timers) {
		t.digits = n
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) TimersOption {
	return func(t *Timers) {
		t.now = now
	}
}

// NewTimers creates an empty timer set identified by id.
func NewTimers(id string, opts ...TimersOption) *Timers {
	t := &Timers{
		ID:     id,
		spans:  make(map[string]*span),
		now:    time.Now,
		digits: DefaultDecimals,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins the timer called label.
func (t *Timers) Start(label string) (time.Time, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.spans[label]; ok {
		return time.Time{}, fmt.Errorf("[%s] %q: %w", t.ID, label, ErrTimerStarted)
	}
	now := t.now()
	t.spans[label] = &span{start: now}
	return now, nil
}

// End stops the timer called label and reports it to the LogFunc, if any.
func (t *Timers) End(label string) (time.Time, error) {
	t.mu.Lock()
	sp, ok := t.spans[label]
	if !ok {
		t.mu.Unlock()
		return time.Time{}, fmt.Errorf("[%s] %q: %w", t.ID, label, ErrTimerNotStarted)
	}
	if !sp.end.IsZero() {
		t.mu.Unlock()
		return time.Time{}, fmt.Errorf("[%s] %q: %w", t.ID, label, ErrTimerEnded)
	}
	sp.end = t.now()
	end, info := sp.end, Calc(sp.start, sp.end, t.digits)
	logf := t.logf
	t.mu.Unlock()

	if logf != nil {
		logf(fmt.Sprintf("Timers[%s]", t.ID), fmt.Sprintf("%s took %s", label, info))
	}
	return end, nil
}

// Elapsed returns the measured time for a finished timer.
func (t *Timers) Elapsed(label string) (time.Duration, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sp, ok := t.spans[label]
	if !ok {
		return 0, fmt.Errorf("[%s] %q: %w", t.ID, label, ErrTimerNotStarted)
	}
	if sp.end.IsZero() {
		return t.now().Sub(sp.start), nil
	}
	return sp.end.Sub(sp.start), nil
}

// Calc renders the elapsed time of label, or of a running timer so far.
func (t *Timers) Calc(label string) (string, error) {
	d, err := t.Elapsed(label)
	if err != nil {
		return "", err
	}
	return Convert(float64(d.Nanoseconds()), Nanoseconds, t.digits), nil
}
