package todo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// Gist reads todo.md, or the first markdown file, from a gist.
type Gist struct {
	gh *gh.Client
	id string
}

var _ driven.Fetcher[domain.TodoLists] = (*Gist)(nil)

// NewGist creates a gist source. token may be empty for public gists.
// baseURL overrides https://api.github.com/ and may be empty.
func NewGist(id, token, baseURL string, httpClient *http.Client) (*Gist, error) {
	client := gh.NewClient(httpClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	if baseURL != "" {
		u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("%w: gist base url: %v", domain.ErrInvalidConfig, err)
		}
		client.BaseURL = u
	}
	return &Gist{gh: client, id: id}, nil
}

// Fetch downloads the gist and parses its markdown.
func (g *Gist) Fetch(ctx context.Context) (domain.TodoLists, error) {
	if g.id == "" {
		return domain.TodoLists{}, domain.ErrProviderDisabled
	}

	gist, _, err := g.gh.Gists.Get(ctx, g.id)
	if err != nil {
		return domain.TodoLists{}, fmt.Errorf("gist %s: %w", g.id, err)
	}

	if f, ok := gist.Files["todo.md"]; ok {
		return ParseMarkdown(f.GetContent()), nil
	}

	names := make([]string, 0, len(gist.Files))
	for name := range gist.Files {
		names = append(names, string(name))
	}
	sort.Strings(names)
	for _, name := range names {
		if strings.HasSuffix(name, ".md") {
			f := gist.Files[gh.GistFilename(name)]
			return ParseMarkdown(f.GetContent()), nil
		}
	}

	return domain.TodoLists{}, fmt.Errorf("gist %s: %w: no markdown file", g.id, domain.ErrBadResponse)
}
