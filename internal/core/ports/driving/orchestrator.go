package driving

import (
	"context"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
)

// Orchestrator runs the main refresh loop.
type Orchestrator interface {
	// Run blocks until ctx is cancelled or startup fails.
	Run(ctx context.Context) error

	// RunCycle selects a mode, acquires its data and draws one frame.
	// It returns domain.ErrQuietHours inside the quiet window.
	RunCycle(ctx context.Context) (*domain.RunRecord, error)

	// Trigger wakes the loop for an immediate refresh.
	Trigger()

	// NotifyConfigChanged is the reload callback target.
	NotifyConfigChanged()
}

// TaskManager owns named background activities.
type TaskManager interface {
	// IsRunning reports whether the named activity is still running.
	IsRunning(name string) bool

	// Running returns the names of every running activity.
	Running() []string
}

// StatusService reports what the device is doing.
type StatusService interface {
	// Status assembles a point-in-time report.
	Status(ctx context.Context) (*domain.Status, error)
}
