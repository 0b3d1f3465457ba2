package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/spiffcs/elapsed/internal/constants"
	"github.com/spiffcs/elapsed/internal/format"
)

// Model is the Bubble Tea model for the run progress display.
type Model struct {
	tasks       []Task
	spinner     spinner.Model
	progress    progress.Model
	events      <-chan Event
	done        bool
	canceled    bool
	now         time.Time
	clock       func() time.Time
	expected    time.Duration
	lastLine    string
	windowWidth int
}

// doneMsg signals that all events have been processed.
type doneMsg struct{}

// tickMsg refreshes the running clock.
type tickMsg time.Time

// ModelOption is a functional option for configuring a Model.
type ModelOption func(*Model)

// WithTasks sets the tasks to display in the TUI.
func WithTasks(tasks []Task) ModelOption {
	return func(m *Model) {
		m.tasks = tasks
	}
}

// WithExpected draws a progress bar against the expected run time.
func WithExpected(d time.Duration) ModelOption {
	return func(m *Model) {
		m.expected = d
	}
}

// WithClock overrides the time source (for testing).
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.clock = now
	}
}

// RunTasks returns the task list for 'elapsed run'.
func RunTasks(command string, record bool) []Task {
	tasks := []Task{
		NewTask(TaskStart, "Starting"),
		NewTask(TaskRun, "Running "+command),
	}
	if record {
		tasks = append(tasks, NewTask(TaskRecord, "Recording history"))
	}
	return tasks
}

// NewModel creates a new TUI model.
func NewModel(events <-chan Event, opts ...ModelOption) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	p := progress.New(
		progress.WithScaledGradient("#60a5fa", "#1e3a8a"),
		progress.WithWidth(25),
		progress.WithoutPercentage(),
	)

	m := Model{
		tasks:    RunTasks("command", true),
		spinner:  s,
		progress: p,
		events:   events,
		clock:    time.Now,
	}

	for _, opt := range opts {
		opt(&m)
	}
	m.now = m.clock()

	return m
}

// Canceled reports whether the user quit before the run finished.
func (m Model) Canceled() bool {
	return m.canceled
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tick(),
		waitForEvent(m.events),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.canceled = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		m.now = m.clock()
		if m.done {
			return m, nil
		}
		return m, tick()

	case TaskEvent:
		m = m.updateTask(msg)
		return m, waitForEvent(m.events)

	case OutputEvent:
		m.lastLine = msg.Line
		return m, waitForEvent(m.events)

	case DoneEvent, doneMsg:
		m.done = true
		m.now = m.clock()
		return m, tea.Quit
	}

	return m, nil
}

// updateTask updates a task based on a TaskEvent.
func (m Model) updateTask(e TaskEvent) Model {
	tasks := make([]Task, len(m.tasks))
	copy(tasks, m.tasks)
	for i := range tasks {
		if tasks[i].ID != e.Task {
			continue
		}
		tasks[i].Status = e.Status
		if e.Message != "" {
			tasks[i].Message = e.Message
		}
		if !e.Started.IsZero() {
			tasks[i].Started = e.Started
		}
		if e.Error != nil {
			tasks[i].Error = e.Error
		}
		break
	}
	m.tasks = tasks
	return m
}

// View renders the model.
func (m Model) View() string {
	var b strings.Builder

	for _, task := range m.tasks {
		b.WriteString(task.View(m.spinner.View(), m.progress, m.now, m.expected))
		b.WriteString("\n")
	}

	if m.lastLine != "" && !m.done {
		width := m.windowWidth - 4
		if width <= 0 {
			width = 76
		}
		b.WriteString("    " + outputStyle.Render(format.Truncate(m.lastLine, width)) + "\n")
	}

	// Only show cancel hint while running
	if !m.done {
		b.WriteString(footerStyle.Render("  Press Ctrl+C to stop watching"))
	}
	b.WriteString("\n")

	return b.String()
}

func tick() tea.Cmd {
	return tea.Tick(constants.TUITickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForEvent creates a command that waits for the next event.
func waitForEvent(events <-chan Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return doneMsg{}
		}
		return event
	}
}
