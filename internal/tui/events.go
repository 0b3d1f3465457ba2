package tui

import "time"

// TaskID identifies a task in the TUI progress display.
type TaskID int

const (
	TaskStart  TaskID = iota // Starting the child process
	TaskRun                  // Child process running
	TaskRecord               // Writing the run to history
)

// TaskStatus represents the current status of a task.
type TaskStatus int

const (
	StatusPending TaskStatus = iota
	StatusRunning
	StatusComplete
	StatusError
	StatusSkipped
)

// Event is the interface for all TUI events.
type Event interface {
	isEvent()
}

// TaskEvent represents an update to a task's status.
type TaskEvent struct {
	Task    TaskID
	Status  TaskStatus
	Message string    // Optional message (e.g., the final elapsed time)
	Started time.Time // When the task began, for a live clock
	Error   error     // Error if status is StatusError
}

func (TaskEvent) isEvent() {}

// OutputEvent carries the most recent line written by the child process.
type OutputEvent struct {
	Line string
}

func (OutputEvent) isEvent() {}

// DoneEvent signals that all work is complete.
type DoneEvent struct{}

func (DoneEvent) isEvent() {}
