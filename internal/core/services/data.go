package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// Providers are the fetchers a DataService draws on. Nil fetchers are
// treated as disabled.
type Providers struct {
	Weather       driven.Fetcher[domain.Weather]
	Contributions driven.Fetcher[domain.Contributions]
	YearSummary   driven.Fetcher[domain.YearSummary]
	Market        driven.Fetcher[domain.MarketPrice]
	Todo          driven.Fetcher[domain.TodoLists]
	VPSUsage      driven.Fetcher[int]
	Quote         driven.Fetcher[domain.Content]
	Poetry        driven.Fetcher[domain.Content]
}

// DataCaches are the content caches used for cached content types.
type DataCaches struct {
	Quotes   *ContentCache[domain.Content]
	Poetry   *ContentCache[domain.Content]
	VPSUsage *ContentCache[int]
}

// DataService assembles the data bundle for a mode. Provider failures are
// absorbed into empty fields; only Holiday and YearEnd report
// domain.ErrContentUnavailable, so the caller can demote the cycle.
type DataService struct {
	providers Providers
	caches    DataCaches
	stories   *StoryFeed
	retrier   *Retrier
	logger    *slog.Logger
}

// NewDataService creates a data service. stories may be nil.
func NewDataService(providers Providers, caches DataCaches, stories *StoryFeed, retrier *Retrier, logger *slog.Logger) *DataService {
	if retrier == nil {
		retrier = NewRetrier(DefaultRetryPolicy(), logger)
	}
	return &DataService{
		providers: providers,
		caches:    caches,
		stories:   stories,
		retrier:   retrier,
		logger:    orDiscard(logger),
	}
}

// Acquire builds the bundle for mode at now.
func (s *DataService) Acquire(ctx context.Context, mode domain.DisplayMode, now time.Time, settings domain.Settings) (domain.DataBundle, error) {
	bundle := domain.DataBundle{Date: now}

	switch m := mode.(type) {
	case domain.DashboardMode:
		s.dashboard(ctx, &bundle, now, settings)
	case domain.QuoteMode:
		q := s.cachedContent(ctx, s.caches.Quotes, s.providers.Quote, "quote")
		bundle.Quote = &q
	case domain.PoetryMode:
		p := s.cachedContent(ctx, s.caches.Poetry, s.providers.Poetry, "poetry")
		bundle.Quote = &p
	case domain.WallpaperMode:
		bundle.Wallpaper = m.Name
	case domain.HolidayMode:
		if !m.Holiday.Available() {
			return bundle, fmt.Errorf("holiday %q: %w", m.Holiday.Name, domain.ErrContentUnavailable)
		}
		h := m.Holiday
		bundle.Holiday = &h
	case domain.YearEndMode:
		summary, err := fetch(ctx, s, "year_summary", s.providers.YearSummary)
		if err != nil {
			return bundle, fmt.Errorf("year summary: %w: %v", domain.ErrContentUnavailable, err)
		}
		bundle.YearSummary = &summary
	default:
		return bundle, fmt.Errorf("%w: unhandled mode %T", domain.ErrInvalidInput, mode)
	}

	return bundle, nil
}

// dashboard fetches every dashboard field concurrently. Each field is
// written by exactly one goroutine.
func (s *DataService) dashboard(ctx context.Context, b *domain.DataBundle, now time.Time, settings domain.Settings) {
	b.WeekProgress = domain.WeekProgress(now)

	var wg sync.WaitGroup
	spawn := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	spawn(func() {
		w, err := fetch(ctx, s, "weather", s.providers.Weather)
		if err != nil {
			s.absorb("weather", err)
			w = domain.DefaultWeather()
		}
		b.Weather = w
	})
	spawn(func() {
		c, err := fetch(ctx, s, "contributions", s.providers.Contributions)
		s.absorb("contributions", err)
		b.Contributions = c
	})
	spawn(func() {
		m, err := fetch(ctx, s, "market", s.providers.Market)
		s.absorb("market", err)
		b.Market = m
	})
	spawn(func() {
		t, err := fetch(ctx, s, "todo", s.providers.Todo)
		s.absorb("todo", err)
		b.Todo = t
	})
	spawn(func() {
		if s.caches.VPSUsage == nil || s.providers.VPSUsage == nil {
			return
		}
		b.VPSUsage, _ = s.caches.VPSUsage.Get(ctx, Retrying(s.retrier, "vps", s.providers.VPSUsage))
	})

	wg.Wait()

	if s.stories != nil && settings.Pagination.Enabled {
		b.Stories = s.stories.Current(settings.Pagination.PageSize)
	}
}

func (s *DataService) cachedContent(
	ctx context.Context,
	cache *ContentCache[domain.Content],
	fetcher driven.Fetcher[domain.Content],
	op string,
) domain.Content {
	if fetcher == nil {
		fetcher = disabledFetcher[domain.Content]()
	}
	if cache == nil {
		c, err := fetch(ctx, s, op, fetcher)
		s.absorb(op, err)
		return c
	}
	c, res := cache.Get(ctx, Retrying(s.retrier, op, fetcher))
	s.logger.Debug("content resolved", "content", op, "resolution", res.String())
	return c
}

func (s *DataService) absorb(op string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrProviderDisabled):
		s.logger.Debug("provider disabled", "provider", op)
	default:
		s.logger.Warn("provider failed, leaving field empty", "provider", op, "error", err)
	}
}

// fetch calls f under retry. A nil fetcher reports domain.ErrProviderDisabled.
func fetch[T any](ctx context.Context, s *DataService, op string, f driven.Fetcher[T]) (T, error) {
	if f == nil {
		var zero T
		return zero, domain.ErrProviderDisabled
	}
	return Retry(ctx, s.retrier, op, f.Fetch)
}

func disabledFetcher[T any]() driven.Fetcher[T] {
	return driven.FetcherFunc[T](func(context.Context) (T, error) {
		var zero T
		return zero, domain.ErrProviderDisabled
	})
}
