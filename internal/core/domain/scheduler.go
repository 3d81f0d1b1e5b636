package domain

import "time"

// Activity names recorded in the run history.
const (
	ActivityRefresh    = "refresh"
	ActivityPagination = "pagination"
)

// TaskPagination is the Task Manager name of the story pagination task.
const TaskPagination = "hackernews"

// Default stop timeouts used by the Task Manager.
const (
	DefaultStopTimeout    = 5 * time.Second
	DefaultCleanupTimeout = 10 * time.Second
)

// RunRecord is the outcome of one refresh cycle or pagination tick.
type RunRecord struct {
	// ID uniquely identifies the run.
	ID string

	// Activity is ActivityRefresh or ActivityPagination.
	Activity string

	// Mode is the mode that was drawn. Empty for pagination ticks.
	Mode string

	// DemotedFrom is the mode originally selected when the cycle fell back
	// to the dashboard. Empty otherwise.
	DemotedFrom string

	// Page is the story page drawn by a pagination tick.
	Page int

	// StartedAt is when the run started.
	StartedAt time.Time

	// EndedAt is when the run completed.
	EndedAt time.Time

	// Success indicates whether the run completed without error.
	Success bool

	// Error contains the error message if Success is false.
	Error string
}

// Duration returns how long the run took.
func (r RunRecord) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// Status is a point-in-time report of the device.
type Status struct {
	// Now is the report time in the configured location.
	Now time.Time

	// Quiet reports whether quiet hours are active.
	Quiet bool

	// SecondsUntilBoundary is the time to the next quiet boundary.
	SecondsUntilBoundary int

	// ConfiguredMode is the mode from configuration.
	ConfiguredMode string

	// SelectedMode is the mode a cycle would draw right now.
	SelectedMode string

	// CurrentPage is the persisted pagination page. Zero if unknown.
	CurrentPage int

	// RunningTasks lists background activities.
	RunningTasks []string

	// Recent holds the latest runs, most recent first.
	Recent []RunRecord
}
