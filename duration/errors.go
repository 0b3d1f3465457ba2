package duration

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is matched by every argument error returned from this package.
var ErrInvalidArgument = errors.New("invalid argument")

// Timer errors.
var (
	ErrTimerStarted    = errors.New("timer already started")
	ErrTimerNotStarted = errors.New("timer not started")
	ErrTimerEnded      = errors.New("timer already ended")
)

// InvalidArgumentError reports a negative duration handed to Op.
type InvalidArgumentError struct {
	Op    string
	Value int64
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: negative duration %d", e.Op, e.Value)
}

// Is makes errors.Is(err, ErrInvalidArgument) succeed.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}
