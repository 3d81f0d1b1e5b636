package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driving"
)

// Activity is the body of a background task.
//
// stop is closed when a graceful stop is requested; the activity should
// return promptly once it observes it at a wait point. ctx is cancelled
// when the stop is forced after the timeout, interrupting in-flight work.
type Activity func(ctx context.Context, stop <-chan struct{}) error

// TaskManager owns named background activities. At most one activity runs
// under a name; starting a duplicate stops the existing one first.
type TaskManager struct {
	logger      *slog.Logger
	stopTimeout time.Duration

	// mu guards tasks only. It is never held while waiting on an activity.
	mu    sync.Mutex
	tasks map[string]*task
}

var _ driving.TaskManager = (*TaskManager)(nil)

type task struct {
	name     string
	stop     chan struct{}
	stopOnce sync.Once
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewTaskManager creates a task manager. stopTimeout is used when Start
// replaces a running activity; zero selects domain.DefaultStopTimeout.
func NewTaskManager(stopTimeout time.Duration, logger *slog.Logger) *TaskManager {
	if stopTimeout <= 0 {
		stopTimeout = domain.DefaultStopTimeout
	}
	return &TaskManager{
		logger:      orDiscard(logger),
		stopTimeout: stopTimeout,
		tasks:       make(map[string]*task),
	}
}

// Start launches activity under name. A running activity with the same
// name is stopped synchronously before the new one begins.
func (m *TaskManager) Start(name string, activity Activity) {
	ctx, cancel := context.WithCancel(context.Background())
	t := &task{
		name:   name,
		stop:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	m.mu.Lock()
	prev := m.tasks[name]
	m.tasks[name] = t
	m.mu.Unlock()

	if prev != nil {
		m.logger.Info("replacing running task", "task", name)
		m.shutdown(prev, m.stopTimeout)
	}

	go m.run(t, activity)
	m.logger.Debug("task started", "task", name)
}

// Stop requests a graceful stop and waits up to timeout for the activity
// to return, then forces cancellation. Unknown names are ignored.
func (m *TaskManager) Stop(name string, timeout time.Duration) {
	m.mu.Lock()
	t, ok := m.tasks[name]
	if ok {
		delete(m.tasks, name)
	}
	m.mu.Unlock()

	if !ok {
		m.logger.Debug("stop requested for unknown task", "task", name)
		return
	}
	m.shutdown(t, timeout)
}

// IsRunning reports whether the named activity has not yet returned.
func (m *TaskManager) IsRunning(name string) bool {
	m.mu.Lock()
	t, ok := m.tasks[name]
	m.mu.Unlock()
	if !ok {
		return false
	}
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}

// Running returns the sorted names of activities that have not returned.
func (m *TaskManager) Running() []string {
	m.mu.Lock()
	names := make([]string, 0, len(m.tasks))
	for name := range m.tasks {
		names = append(names, name)
	}
	m.mu.Unlock()

	running := names[:0]
	for _, name := range names {
		if m.IsRunning(name) {
			running = append(running, name)
		}
	}
	sort.Strings(running)
	return running
}

// Cleanup stops every tracked activity, each with the given timeout.
func (m *TaskManager) Cleanup(timeout time.Duration) {
	m.mu.Lock()
	names := make([]string, 0, len(m.tasks))
	for name := range m.tasks {
		names = append(names, name)
	}
	m.mu.Unlock()

	sort.Strings(names)
	for _, name := range names {
		m.Stop(name, timeout)
	}
	m.logger.Debug("task cleanup complete", "stopped", len(names))
}

func (m *TaskManager) run(t *task, activity Activity) {
	defer close(t.done)
	defer t.cancel()
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("task panicked", "task", t.name, "panic", fmt.Sprint(r))
		}
	}()

	if err := activity(t.ctx, t.stop); err != nil && t.ctx.Err() == nil {
		m.logger.Error("task failed", "task", t.name, "error", err)
		return
	}
	m.logger.Debug("task finished", "task", t.name)
}

// shutdown escalates from a cooperative stop to cancellation. An activity
// that ignores cancellation for a further timeout is abandoned.
func (m *TaskManager) shutdown(t *task, timeout time.Duration) {
	if timeout <= 0 {
		timeout = m.stopTimeout
	}
	t.stopOnce.Do(func() { close(t.stop) })

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-t.done:
		m.logger.Debug("task stopped", "task", t.name)
		return
	case <-timer.C:
	}

	m.logger.Warn("task did not stop in time, cancelling", "task", t.name, "timeout", timeout)
	t.cancel()

	timer.Reset(timeout)
	select {
	case <-t.done:
		m.logger.Debug("task cancelled", "task", t.name)
	case <-timer.C:
		m.logger.Error("task ignored cancellation, abandoning", "task", t.name)
	}
}
