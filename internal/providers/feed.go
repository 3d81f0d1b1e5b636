package providers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mmcdole/gofeed"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// Feed turns the entries of an RSS or Atom feed into stories.
type Feed struct {
	client *Client
	url    string
	limit  int
	parser *gofeed.Parser
}

var _ driven.Fetcher[[]domain.Story] = (*Feed)(nil)

// NewFeed creates a feed provider returning at most limit entries.
func NewFeed(client *Client, feedURL string, limit int) *Feed {
	return &Feed{client: client, url: feedURL, limit: limit, parser: gofeed.NewParser()}
}

// Fetch returns the feed entries in feed order. Entries have no score.
func (f *Feed) Fetch(ctx context.Context) ([]domain.Story, error) {
	if f.url == "" {
		return nil, domain.ErrProviderDisabled
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, badResponse(f.client.Name(), "building request: %v", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	feed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return nil, badResponse(f.client.Name(), "parsing feed: %v", err)
	}

	var stories []domain.Story
	for i, item := range feed.Items {
		if f.limit > 0 && len(stories) >= f.limit {
			break
		}
		if item == nil || item.Title == "" {
			continue
		}
		stories = append(stories, domain.Story{ID: i + 1, Title: item.Title, URL: item.Link})
	}
	if len(stories) == 0 {
		return nil, fmt.Errorf("%s: no entries: %w", f.client.Name(), domain.ErrContentUnavailable)
	}
	return stories, nil
}
