// Package app wires inkpanel's adapters into the core services.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/inkpanel/internal/adapters/driven/calendar"
	"github.com/custodia-labs/inkpanel/internal/adapters/driven/config/file"
	"github.com/custodia-labs/inkpanel/internal/adapters/driven/display"
	"github.com/custodia-labs/inkpanel/internal/adapters/driven/render"
	filestore "github.com/custodia-labs/inkpanel/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/inkpanel/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
	"github.com/custodia-labs/inkpanel/internal/core/services"
	"github.com/custodia-labs/inkpanel/internal/providers"
	"github.com/custodia-labs/inkpanel/internal/providers/todo"
)

// Options override the default locations. Zero values use ~/.inkpanel.
type Options struct {
	DataDir      string
	WallpaperDir string

	// HTTPClient is shared by every provider. Optional.
	HTTPClient *http.Client

	// Endpoints overrides provider base URLs. Used by tests.
	Endpoints Endpoints

	Logger *slog.Logger
}

// Endpoints are provider base URLs. Empty fields use the public APIs.
type Endpoints struct {
	Weather    string
	Market     string
	VPS        string
	Quote      string
	Poetry     string
	HackerNews string
	GitHub     string
}

// App holds the wired services. Close releases the history database.
type App struct {
	Loader       *file.Loader
	Calendar     *calendar.Calendar
	Caches       *filestore.CacheStore
	History      driven.HistoryStore
	Display      *services.DisplayAccess
	Panel        *display.Mock
	Orchestrator *services.Orchestrator
	Pagination   *services.PaginationTask
	Tasks        *services.TaskManager
	Status       *services.StatusService

	store *sqlite.Store
}

// New builds the application from a loaded configuration. Provider
// credentials are read once here; a reload only changes settings.
func New(ctx context.Context, loader *file.Loader, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := loader.Config()

	dataDir, wallpaperDir, err := Dirs(opts)
	if err != nil {
		return nil, err
	}

	caches, err := filestore.NewCacheStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening cache store: %w", err)
	}
	state, err := filestore.NewStateStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening state store: %w", err)
	}
	outputDir := cfg.Display.OutputDir
	if outputDir == "" {
		outputDir = filepath.Join(dataDir, "frames")
	}
	frames, err := filestore.NewFrameSink(outputDir)
	if err != nil {
		return nil, fmt.Errorf("opening frame sink: %w", err)
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	history := store.HistoryStore()

	cal := calendar.New(loader)
	retrier := services.NewRetrier(services.DefaultRetryPolicy(), logger)

	now := func() time.Time { return loader.Current().Now(time.Now) }
	fetchers, err := buildProviders(ctx, cfg, opts, now, retrier, logger)
	if err != nil {
		store.Close() //nolint:errcheck
		return nil, err
	}

	stories := services.NewStoryFeed(
		services.NewContentCache(caches, services.ContentCacheConfig[[]domain.Story]{
			Name: "hackernews",
			Key:  "stories",
			TTL:  cfg.Cache.StoriesTTL,
		}, logger),
		services.Retrying(retrier, "stories", fetchers.stories),
		state,
		logger,
	)

	data := services.NewDataService(fetchers.Providers, services.DataCaches{
		Quotes: services.NewContentCache(caches, services.ContentCacheConfig[domain.Content]{
			Name:     "quote",
			TTL:      cfg.Cache.QuoteTTL,
			Fallback: providers.QuoteFallbacks(),
		}, logger),
		Poetry: services.NewContentCache(caches, services.ContentCacheConfig[domain.Content]{
			Name:     "poetry",
			TTL:      cfg.Cache.PoetryTTL,
			Fallback: providers.PoetryFallbacks(),
		}, logger),
		VPSUsage: services.NewContentCache(caches, services.ContentCacheConfig[int]{
			Name: "vps",
			Key:  "usage",
			TTL:  cfg.Cache.VPSTTL,
		}, logger),
	}, stories, retrier, logger)

	var mirror display.ImageWriter
	if cfg.Display.Driver == "png" {
		mirror = frames
	}
	panel := display.NewMock(cfg.Display.Width, cfg.Display.Height, mirror, logger)
	access := services.NewDisplayAccess(panel)

	renderer := render.New(wallpaperDir)
	selector := services.NewModeSelector(cal)
	tasks := services.NewTaskManager(domain.DefaultStopTimeout, logger)

	a := &App{
		Loader:   loader,
		Calendar: cal,
		Caches:   caches,
		History:  history,
		Display:  access,
		Panel:    panel,
		Tasks:    tasks,
		store:    store,
	}
	a.Orchestrator = services.NewOrchestrator(services.OrchestratorConfig{
		Settings: loader,
		Selector: selector,
		Data:     data,
		Renderer: renderer,
		Display:  access,
		Frames:   frames,
		History:  history,
		Logger:   logger,
		NewID:    uuid.NewString,
	})
	a.Pagination = services.NewPaginationTask(services.PaginationConfig{
		Settings: loader,
		Feed:     stories,
		Renderer: renderer,
		Display:  access,
		History:  history,
		Logger:   logger,
		NewID:    uuid.NewString,
	})
	a.Status = services.NewStatusService(loader, selector, stories, tasks, history)
	return a, nil
}

// Close releases resources.
func (a *App) Close() error {
	return a.store.Close()
}

// Shutdown stops background tasks and puts the panel to sleep.
func (a *App) Shutdown(timeout time.Duration, logger *slog.Logger) {
	a.Tasks.Cleanup(timeout)
	if err := a.Display.Sleep(); err != nil && logger != nil {
		logger.Warn("failed to put display to sleep", "error", err)
	}
}

// SyncPagination starts or stops the pagination task to match settings.
func (a *App) SyncPagination(settings domain.Settings) {
	running := a.Tasks.IsRunning(domain.TaskPagination)
	switch {
	case settings.Pagination.Enabled && !running:
		a.Tasks.Start(domain.TaskPagination, a.Pagination.Run)
	case !settings.Pagination.Enabled && running:
		a.Tasks.Stop(domain.TaskPagination, domain.DefaultStopTimeout)
	}
}

// Dirs returns the data and wallpaper directories for opts.
func Dirs(opts Options) (dataDir, wallpaperDir string, err error) {
	dataDir, wallpaperDir = opts.DataDir, opts.WallpaperDir
	if dataDir != "" && wallpaperDir != "" {
		return dataDir, wallpaperDir, nil
	}
	base, err := file.DefaultDir()
	if err != nil {
		return "", "", err
	}
	if dataDir == "" {
		dataDir = filepath.Join(base, "data")
	}
	if wallpaperDir == "" {
		wallpaperDir = filepath.Join(base, "wallpapers")
	}
	return dataDir, wallpaperDir, nil
}

// fetcherSet is the provider set plus the story source.
type fetcherSet struct {
	services.Providers
	stories driven.Fetcher[[]domain.Story]
}

func buildProviders(
	ctx context.Context,
	cfg *file.Config,
	opts Options,
	now func() time.Time,
	retrier *services.Retrier,
	logger *slog.Logger,
) (fetcherSet, error) {
	p := cfg.Providers
	ep := opts.Endpoints
	hc := opts.HTTPClient

	gh, err := providers.NewGitHub(providers.GitHubConfig{
		Token:      p.GitHub.Token,
		Username:   p.GitHub.Username,
		BaseURL:    ep.GitHub,
		Now:        now,
		HTTPClient: hc,
	})
	if err != nil {
		return fetcherSet{}, err
	}

	todoSource, err := buildTodo(ctx, cfg, hc, logger)
	if err != nil {
		return fetcherSet{}, err
	}

	set := fetcherSet{
		Providers: services.Providers{
			Weather:       providers.NewWeather(providers.NewClient("weather", 1, hc), p.Weather.APIKey, p.Weather.City, ep.Weather),
			Contributions: gh.Contributions(),
			YearSummary:   gh.YearSummary(),
			Market:        providers.NewMarket(providers.NewClient("coingecko", 0.5, hc), p.BTC.Enabled, ep.Market),
			Todo:          todoSource,
			VPSUsage:      providers.NewVPS(providers.NewClient("64clouds", 1, hc), p.VPS.VEID, p.VPS.APIKey, ep.VPS),
			Quote:         providers.NewQuote(providers.NewClient("quotable", 1, hc), ep.Quote),
			Poetry:        providers.NewPoetry(providers.NewClient("jinrishici", 1, hc), ep.Poetry),
		},
	}

	switch cfg.Pagination.Source {
	case "feed":
		set.stories = providers.NewFeed(providers.NewClient("feed", 1, hc), cfg.Pagination.FeedURL, cfg.Pagination.StoryCount)
	default:
		hn := providers.NewHackerNews(providers.NewClient("hackernews", 10, hc), ep.HackerNews, cfg.Pagination.StoryCount, logger)
		set.stories = hn.WithItemRetry(func(ctx context.Context, op string, fn func(context.Context) error) error {
			_, err := services.Retry(ctx, retrier, op, func(ctx context.Context) (struct{}, error) {
				return struct{}{}, fn(ctx)
			})
			return err
		})
	}
	return set, nil
}

// buildTodo selects the configured TODO source. Remote sources fall back
// to the lists in the configuration file.
func buildTodo(ctx context.Context, cfg *file.Config, hc *http.Client, logger *slog.Logger) (driven.Fetcher[domain.TodoLists], error) {
	t := cfg.Todo
	static := todo.NewStatic(domain.TodoLists{Goals: t.Goals, Must: t.Must, Optional: t.Optional})

	var primary driven.Fetcher[domain.TodoLists]
	switch t.Source {
	case "", "config":
		return static, nil
	case "gist":
		g, err := todo.NewGist(t.GistID, t.GitHubToken, "", hc)
		if err != nil {
			return nil, err
		}
		primary = g
	case "notion":
		primary = todo.NewNotion(t.NotionToken, t.NotionDatabase, hc)
	case "sheets":
		s, err := todo.NewSheets(ctx, t.SheetsID, t.SheetsAPIKey)
		if err != nil {
			return nil, fmt.Errorf("creating sheets client: %w", err)
		}
		primary = s
	default:
		return nil, fmt.Errorf("%w: todo.source %q", domain.ErrInvalidConfig, t.Source)
	}
	return todo.WithFallback(t.Source, primary, static, logger), nil
}
