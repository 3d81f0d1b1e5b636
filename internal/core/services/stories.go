package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// paginationStateKey is the state document holding the current page.
const paginationStateKey = "hackernews"

// StoryFeed resolves the story list through its content cache and keeps
// the persisted page number.
type StoryFeed struct {
	cache   *ContentCache[[]domain.Story]
	fetcher driven.Fetcher[[]domain.Story]
	state   driven.StateStore
	logger  *slog.Logger
}

// NewStoryFeed creates a feed. fetcher should already be wrapped in retry.
func NewStoryFeed(
	cache *ContentCache[[]domain.Story],
	fetcher driven.Fetcher[[]domain.Story],
	state driven.StateStore,
	logger *slog.Logger,
) *StoryFeed {
	return &StoryFeed{
		cache:   cache,
		fetcher: fetcher,
		state:   state,
		logger:  orDiscard(logger),
	}
}

// Resolve returns the story list and how it was obtained.
func (f *StoryFeed) Resolve(ctx context.Context) ([]domain.Story, domain.Resolution) {
	return f.cache.Get(ctx, f.fetcher)
}

// LoadPage returns the persisted page, or 0 when none is stored or the
// document is unreadable.
func (f *StoryFeed) LoadPage() int {
	var st domain.PaginationState
	if err := f.state.Load(paginationStateKey, &st); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			f.logger.Warn("pagination state unreadable, starting over", "error", err)
		}
		return 0
	}
	if st.CurrentPage < 1 {
		return 0
	}
	return st.CurrentPage
}

// SavePage persists page.
func (f *StoryFeed) SavePage(page int) error {
	return f.state.Save(paginationStateKey, domain.PaginationState{CurrentPage: page})
}

// Current returns the page that is on screen, from the cached list only.
// It never fetches and never advances. Returns nil when nothing is cached.
func (f *StoryFeed) Current(pageSize int) *domain.StoryPage {
	cached, err := f.cache.Peek()
	if err != nil {
		return nil
	}
	page := domain.Paginate(cached.Payload, max(f.LoadPage(), 1), pageSize)
	return &page
}
