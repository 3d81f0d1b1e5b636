package providers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// DefaultHackerNewsURL is the Firebase API root.
const DefaultHackerNewsURL = "https://hacker-news.firebaseio.com/v0"

const itemConcurrency = 5

// ItemRetry runs fn, retrying it under some policy. op names the call in logs.
type ItemRetry func(ctx context.Context, op string, fn func(context.Context) error) error

// HackerNews fetches the best stories.
type HackerNews struct {
	client  *Client
	baseURL string
	limit   int
	retry   ItemRetry
	logger  *slog.Logger
}

var _ driven.Fetcher[[]domain.Story] = (*HackerNews)(nil)

// NewHackerNews creates a provider returning at most limit stories.
func NewHackerNews(client *Client, baseURL string, limit int, logger *slog.Logger) *HackerNews {
	if baseURL == "" {
		baseURL = DefaultHackerNewsURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HackerNews{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		limit:   limit,
		retry:   once,
		logger:  logger,
	}
}

// WithItemRetry routes every item fetch through retry.
func (h *HackerNews) WithItemRetry(retry ItemRetry) *HackerNews {
	if retry != nil {
		h.retry = retry
	}
	return h
}

func once(ctx context.Context, _ string, fn func(context.Context) error) error {
	return fn(ctx)
}

type hnItem struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Score int    `json:"score"`
	URL   string `json:"url"`
	Dead  bool   `json:"dead"`
}

// Fetch returns the best stories in ranking order. Items that still fail
// after retrying are skipped; an empty result is an error.
func (h *HackerNews) Fetch(ctx context.Context) ([]domain.Story, error) {
	var ids []int
	if err := h.client.GetJSON(ctx, h.baseURL+"/beststories.json", nil, &ids); err != nil {
		return nil, err
	}
	if h.limit > 0 && len(ids) > h.limit {
		ids = ids[:h.limit]
	}

	items := make([]*hnItem, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(itemConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			var item hnItem
			url := fmt.Sprintf("%s/item/%d.json", h.baseURL, id)
			err := h.retry(gctx, fmt.Sprintf("hackernews item %d", id), func(ctx context.Context) error {
				item = hnItem{}
				return h.client.GetJSON(ctx, url, nil, &item)
			})
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				h.logger.Warn("skipping story", "id", id, "error", err)
				return nil
			}
			items[i] = &item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stories := make([]domain.Story, 0, len(items))
	for i, item := range items {
		if item == nil || item.Dead || item.Title == "" {
			continue
		}
		stories = append(stories, domain.Story{
			ID:    ids[i],
			Title: item.Title,
			Score: item.Score,
			URL:   item.URL,
		})
	}
	if len(stories) == 0 {
		return nil, fmt.Errorf("%s: no stories: %w", h.client.Name(), domain.ErrContentUnavailable)
	}
	return stories, nil
}
