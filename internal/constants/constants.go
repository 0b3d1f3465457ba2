// Package constants provides a centralized location for all configuration
// values and magic numbers used throughout the elapsed application.
package constants

import "time"

// TUI update and display constants
const (
	// TUITickInterval is how often the run display refreshes its elapsed clock.
	TUITickInterval = 100 * time.Millisecond

	// EventBufferSize is the capacity of the channel feeding the TUI.
	EventBufferSize = 16
)

// Batch formatting constants
const (
	// DefaultWorkers is the number of inputs formatted concurrently.
	DefaultWorkers = 8

	// MaxLineBytes is the longest line read from stdin, child output or history.
	MaxLineBytes = 1024 * 1024
)

// History constants
const (
	// HistoryMaxRecords is the maximum number of runs retained in the history log.
	HistoryMaxRecords = 1000

	// HistoryDefaultLimit is the number of runs 'elapsed history' shows by default.
	HistoryDefaultLimit = 20
)

// Output format names
const (
	OutputText  = "text"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
	OutputTOML  = "toml"
	OutputTable = "table"
)
