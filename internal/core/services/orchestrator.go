package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driving"
)

// historyRetention is how many runs per activity are kept.
const historyRetention = 500

// bundleSource builds the data bundle for a mode.
type bundleSource interface {
	Acquire(ctx context.Context, mode domain.DisplayMode, now time.Time, settings domain.Settings) (domain.DataBundle, error)
}

// OrchestratorConfig wires an Orchestrator.
type OrchestratorConfig struct {
	Settings driven.SettingsSource
	Selector *ModeSelector
	Data     bundleSource
	Renderer driven.Renderer
	Display  *DisplayAccess

	// Frames receives full frames in screenshot mode. Optional.
	Frames driven.FrameSink

	// History records every cycle. Optional.
	History driven.HistoryStore

	Logger *slog.Logger

	// Clock defaults to time.Now.
	Clock func() time.Time

	// NewID generates cycle identifiers.
	NewID func() string
}

// Orchestrator runs the refresh loop: wait out quiet hours, select a mode,
// acquire its data, render, display, then sleep until the mode's interval
// elapses or the configuration changes.
type Orchestrator struct {
	settings driven.SettingsSource
	selector *ModeSelector
	data     bundleSource
	renderer driven.Renderer
	display  *DisplayAccess
	frames   driven.FrameSink
	history  driven.HistoryStore
	logger   *slog.Logger
	clock    func() time.Time
	newID    func() string

	event *RefreshEvent

	// cycleMu keeps RunCycle callers from overlapping the loop.
	cycleMu sync.Mutex
}

var _ driving.Orchestrator = (*Orchestrator)(nil)

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	newID := cfg.NewID
	if newID == nil {
		newID = func() string { return strconv.FormatInt(time.Now().UnixNano(), 36) }
	}
	selector := cfg.Selector
	if selector == nil {
		selector = NewModeSelector(nil)
	}
	return &Orchestrator{
		settings: cfg.Settings,
		selector: selector,
		data:     cfg.Data,
		renderer: cfg.Renderer,
		display:  cfg.Display,
		frames:   cfg.Frames,
		history:  cfg.History,
		logger:   orDiscard(cfg.Logger),
		clock:    clock,
		newID:    newID,
		event:    NewRefreshEvent(),
	}
}

// wake is why a wait returned.
type wake int

const (
	wakeTimer wake = iota
	wakeEvent
)

// Run initialises the panel and loops until ctx is cancelled, returning
// ctx.Err(). A failed cycle is logged and never ends the loop.
func (o *Orchestrator) Run(ctx context.Context) error {
	if err := o.startup(); err != nil {
		return fmt.Errorf("initialising display: %w", err)
	}
	o.logger.Info("refresh loop started")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		settings := o.settings.Current()
		now := settings.Now(o.clock)

		if quiet, secs := settings.Quiet.Check(now); quiet {
			remaining := time.Duration(secs) * time.Second
			o.logger.Info("quiet hours, display idle",
				"start_hour", settings.Quiet.StartHour, "end_hour", settings.Quiet.EndHour, "resume_in", remaining)
			w, err := o.wait(ctx, remaining)
			if err != nil {
				return err
			}
			if w == wakeEvent {
				o.logger.Info("configuration changed during quiet hours, re-evaluating")
			}
			continue
		}

		mode, _, _ := o.runCycle(ctx)
		if mode == nil {
			mode = domain.DashboardMode{}
		}

		interval := settings.Intervals.For(mode)
		if interval > 0 {
			o.logger.Debug("next refresh scheduled", "mode", mode.Kind().String(), "in", interval)
		} else {
			o.logger.Info("waiting for configuration change", "mode", mode.Kind().String())
		}

		w, err := o.wait(ctx, interval)
		if err != nil {
			return err
		}
		if w == wakeEvent {
			o.logger.Info("refresh requested, starting new cycle")
		}
	}
}

// RunCycle draws one frame outside the wait schedule. Inside the quiet
// window nothing is drawn or recorded and domain.ErrQuietHours is returned.
func (o *Orchestrator) RunCycle(ctx context.Context) (*domain.RunRecord, error) {
	settings := o.settings.Current()
	if quiet, secs := settings.Quiet.Check(settings.Now(o.clock)); quiet {
		return nil, fmt.Errorf("%w: display resumes in %s", domain.ErrQuietHours, time.Duration(secs)*time.Second)
	}
	_, rec, err := o.runCycle(ctx)
	return rec, err
}

// ForceCycle draws one frame even inside the quiet window. It backs the
// one-shot refresh command.
func (o *Orchestrator) ForceCycle(ctx context.Context) (*domain.RunRecord, error) {
	_, rec, err := o.runCycle(ctx)
	return rec, err
}

// Trigger wakes the loop for an immediate cycle.
func (o *Orchestrator) Trigger() {
	o.event.Fire()
}

// NotifyConfigChanged is registered as the configuration reload callback.
func (o *Orchestrator) NotifyConfigChanged() {
	o.logger.Debug("configuration change notified")
	o.event.Fire()
}

// wait blocks for d, or only for the event when d is zero. A received
// event is consumed.
func (o *Orchestrator) wait(ctx context.Context, d time.Duration) (wake, error) {
	var timeout <-chan time.Time
	if d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case <-ctx.Done():
		return wakeTimer, ctx.Err()
	case <-o.event.C():
		return wakeEvent, nil
	case <-timeout:
		return wakeTimer, nil
	}
}

func (o *Orchestrator) startup() error {
	return o.display.Do(func(d driven.Display) error {
		if err := d.Init(); err != nil {
			return err
		}
		if err := d.Clear(); err != nil {
			return err
		}
		return d.Sleep()
	})
}

// runCycle performs selection, acquisition, rendering and display.
// Errors and panics are logged and recorded here.
func (o *Orchestrator) runCycle(ctx context.Context) (mode domain.DisplayMode, rec *domain.RunRecord, err error) {
	o.cycleMu.Lock()
	defer o.cycleMu.Unlock()

	settings := o.settings.Current()
	now := settings.Now(o.clock)

	rec = &domain.RunRecord{
		ID:        o.newID(),
		Activity:  domain.ActivityRefresh,
		StartedAt: o.clock(),
	}
	logger := o.logger.With("cycle", rec.ID)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("refresh cycle panicked: %v", r)
		}
		rec.EndedAt = o.clock()
		rec.Success = err == nil
		if err != nil {
			rec.Error = err.Error()
			logger.Error("refresh cycle failed", "mode", rec.Mode, "error", err)
		} else {
			logger.Info("refresh cycle complete", "mode", rec.Mode, "duration", rec.Duration().Round(time.Millisecond))
		}
		o.record(ctx, rec)
	}()

	mode = o.selector.Select(now, settings)
	rec.Mode = mode.Kind().String()

	bundle, err := o.data.Acquire(ctx, mode, now, settings)
	if errors.Is(err, domain.ErrContentUnavailable) {
		logger.Info("content unavailable, showing dashboard", "mode", rec.Mode, "reason", err)
		rec.DemotedFrom = rec.Mode
		mode = domain.DashboardMode{}
		rec.Mode = mode.Kind().String()
		bundle, err = o.data.Acquire(ctx, mode, now, settings)
	}
	if err != nil {
		return mode, rec, fmt.Errorf("acquiring %s data: %w", rec.Mode, err)
	}

	img, err := o.renderer.Render(mode, bundle, settings.Display.Width, settings.Display.Height)
	if err != nil {
		return mode, rec, fmt.Errorf("rendering %s: %w", rec.Mode, err)
	}

	if settings.Display.Screenshot && o.frames != nil {
		if ferr := o.frames.WriteFrame(mode.Kind(), img); ferr != nil {
			logger.Warn("failed to write screenshot", "error", ferr)
		}
	}

	if err := o.show(img); err != nil {
		return mode, rec, fmt.Errorf("displaying %s: %w", rec.Mode, err)
	}
	return mode, rec, nil
}

func (o *Orchestrator) show(img image.Image) error {
	return o.display.Do(func(d driven.Display) error {
		if err := d.Init(); err != nil {
			return err
		}
		if err := d.Show(img); err != nil {
			return err
		}
		return d.Sleep()
	})
}

func (o *Orchestrator) record(ctx context.Context, rec *domain.RunRecord) {
	if o.history == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	if err := o.history.Record(ctx, rec); err != nil {
		o.logger.Warn("failed to record cycle", "cycle", rec.ID, "error", err)
		return
	}
	if err := o.history.Prune(ctx, historyRetention); err != nil {
		o.logger.Warn("failed to prune history", "error", err)
	}
}
