package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/spiffcs/elapsed/duration"
)

// Task represents a single task in the TUI progress display.
type Task struct {
	ID      TaskID
	Name    string
	Status  TaskStatus
	Message string
	Started time.Time
	Error   error
}

// NewTask creates a new task with the given ID and name.
func NewTask(id TaskID, name string) Task {
	return Task{
		ID:     id,
		Name:   name,
		Status: StatusPending,
	}
}

// Clock renders the time since the task started, e.g. "1m30s250ms".
func (t Task) Clock(now time.Time) string {
	if t.Started.IsZero() {
		return ""
	}
	ms := max(now.Sub(t.Started).Milliseconds(), 0)
	s, err := duration.String(ms, duration.WithMilliseconds())
	if err != nil {
		return ""
	}
	return s
}

// View renders the task as a string. expected, when positive, draws a
// progress bar of the running clock against that duration.
func (t Task) View(spinnerFrame string, prog progress.Model, now time.Time, expected time.Duration) string {
	icon := StatusIcon(t.Status, spinnerFrame)

	var name string
	if t.Status == StatusPending {
		name = taskDimStyle.Render(t.Name)
	} else {
		name = taskNameStyle.Render(t.Name)
	}

	line := fmt.Sprintf("  %s %s", icon, name)

	if t.Status == StatusRunning && !t.Started.IsZero() {
		if expected > 0 {
			pct := min(float64(now.Sub(t.Started))/float64(expected), 1)
			line += " " + prog.ViewAs(pct)
		}
		line += " " + clockStyle.Render(t.Clock(now))
	} else if t.Message != "" {
		line += " " + messageStyle.Render(t.Message)
	}

	if t.Error != nil {
		line += " " + errorStyle.Render(t.Error.Error())
	}

	return line
}
