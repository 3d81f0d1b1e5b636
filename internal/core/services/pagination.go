package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strconv"
	"time"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// PaginationConfig wires a PaginationTask.
type PaginationConfig struct {
	Settings driven.SettingsSource
	Feed     *StoryFeed
	Renderer driven.Renderer
	Display  *DisplayAccess
	History  driven.HistoryStore
	Logger   *slog.Logger
	Clock    func() time.Time
	NewID    func() string
}

// PaginationTask advances the story view one page per tick and redraws
// only the story region of the panel. It runs under the TaskManager.
type PaginationTask struct {
	settings driven.SettingsSource
	feed     *StoryFeed
	renderer driven.Renderer
	display  *DisplayAccess
	history  driven.HistoryStore
	logger   *slog.Logger
	clock    func() time.Time
	newID    func() string
}

// NewPaginationTask creates a pagination task.
func NewPaginationTask(cfg PaginationConfig) *PaginationTask {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	newID := cfg.NewID
	if newID == nil {
		newID = func() string { return strconv.FormatInt(time.Now().UnixNano(), 36) }
	}
	return &PaginationTask{
		settings: cfg.Settings,
		feed:     cfg.Feed,
		renderer: cfg.Renderer,
		display:  cfg.Display,
		history:  cfg.History,
		logger:   orDiscard(cfg.Logger).With("task", domain.TaskPagination),
		clock:    clock,
		newID:    newID,
	}
}

// Run is the task's Activity. It returns nil on a cooperative stop and
// ctx.Err() when the stop is forced.
func (p *PaginationTask) Run(ctx context.Context, stop <-chan struct{}) error {
	for {
		interval := p.settings.Current().Pagination.Interval
		if interval <= 0 {
			interval = time.Minute
		}

		timer := time.NewTimer(interval)
		select {
		case <-stop:
			timer.Stop()
			return nil
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		settings := p.settings.Current()
		if quiet, _ := settings.Quiet.Check(settings.Now(p.clock)); quiet {
			p.logger.Debug("quiet hours, skipping page")
			continue
		}

		if _, err := p.Tick(ctx); err != nil {
			p.logger.Error("pagination tick failed", "error", err)
		}
	}
}

// Tick draws the next page. The page number is persisted even when the
// display update fails, so the view keeps moving.
func (p *PaginationTask) Tick(ctx context.Context) (page domain.StoryPage, err error) {
	settings := p.settings.Current()
	rec := &domain.RunRecord{
		ID:        p.newID(),
		Activity:  domain.ActivityPagination,
		StartedAt: p.clock(),
	}
	defer func() {
		rec.EndedAt = p.clock()
		rec.Page = page.Page
		rec.Success = err == nil
		if err != nil {
			rec.Error = err.Error()
		}
		p.record(ctx, rec)
	}()

	stories, res := p.feed.Resolve(ctx)

	next := p.feed.LoadPage() + 1
	if res == domain.ResolvedLive {
		// A fresh list starts over from the top.
		next = 1
	}
	page = domain.Paginate(stories, next, settings.Pagination.PageSize)

	p.logger.Debug("showing page",
		"page", page.Page, "total_pages", page.TotalPages, "stories", len(stories), "resolution", res.String())

	drawErr := p.draw(page, settings.Pagination.Region)

	if saveErr := p.feed.SavePage(page.Page); saveErr != nil {
		saveErr = fmt.Errorf("saving page: %w", saveErr)
		return page, errors.Join(drawErr, saveErr)
	}
	return page, drawErr
}

func (p *PaginationTask) draw(page domain.StoryPage, region image.Rectangle) error {
	img, err := p.renderer.RenderStories(page, region)
	if err != nil {
		return fmt.Errorf("rendering page %d: %w", page.Page, err)
	}
	err = p.display.Do(func(d driven.Display) error {
		if err := d.Init(); err != nil {
			return err
		}
		if err := d.ShowPartial(img, region); err != nil {
			return err
		}
		return d.Sleep()
	})
	if err != nil {
		return fmt.Errorf("partial update of page %d: %w", page.Page, err)
	}
	return nil
}

func (p *PaginationTask) record(ctx context.Context, rec *domain.RunRecord) {
	if p.history == nil {
		return
	}
	if err := p.history.Record(context.WithoutCancel(ctx), rec); err != nil {
		p.logger.Warn("failed to record tick", "error", err)
	}
}
