package providers

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// Content endpoints.
const (
	DefaultQuoteURL  = "https://api.quotable.io/random"
	DefaultPoetryURL = "https://v2.jinrishici.com/one.json"
)

// Quote fetches a random quote from Quotable.
type Quote struct {
	client  *Client
	baseURL string
}

var _ driven.Fetcher[domain.Content] = (*Quote)(nil)

// NewQuote creates a quote provider.
func NewQuote(client *Client, baseURL string) *Quote {
	if baseURL == "" {
		baseURL = DefaultQuoteURL
	}
	return &Quote{client: client, baseURL: baseURL}
}

// Fetch returns one quote.
func (q *Quote) Fetch(ctx context.Context) (domain.Content, error) {
	var resp struct {
		Content string `json:"content"`
		Author  string `json:"author"`
	}
	if err := q.client.GetJSON(ctx, q.baseURL, nil, &resp); err != nil {
		return domain.Content{}, err
	}
	if strings.TrimSpace(resp.Content) == "" {
		return domain.Content{}, badResponse(q.client.Name(), "empty quote")
	}
	return domain.Content{
		Content: resp.Content,
		Author:  resp.Author,
		Type:    "quote",
	}, nil
}

// Poetry fetches a line of classical Chinese poetry from jinrishici.
type Poetry struct {
	client  *Client
	baseURL string
}

var _ driven.Fetcher[domain.Content] = (*Poetry)(nil)

// NewPoetry creates a poetry provider.
func NewPoetry(client *Client, baseURL string) *Poetry {
	if baseURL == "" {
		baseURL = DefaultPoetryURL
	}
	return &Poetry{client: client, baseURL: baseURL}
}

type poetryResponse struct {
	Status string     `json:"status"`
	Data   poetryData `json:"data"`
}

type poetryData struct {
	Origin poetryOrigin `json:"origin"`
}

type poetryOrigin struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Content lines  `json:"content"`
}

// Fetch returns the full poem the API picked.
func (p *Poetry) Fetch(ctx context.Context) (domain.Content, error) {
	var resp poetryResponse
	if err := p.client.GetJSON(ctx, p.baseURL, nil, &resp); err != nil {
		return domain.Content{}, err
	}
	if resp.Status != "success" {
		return domain.Content{}, badResponse(p.client.Name(), "status %q", resp.Status)
	}

	origin := resp.Data.Origin
	if len(origin.Content) == 0 {
		return domain.Content{}, badResponse(p.client.Name(), "empty poem")
	}
	author := origin.Author
	if author == "" {
		author = "Unknown"
	}
	return domain.Content{
		Content: strings.Join(origin.Content, "\n"),
		Author:  author,
		Source:  origin.Title,
		Type:    "poetry",
	}, nil
}

// lines accepts either a JSON string or an array of strings.
type lines []string

func (l *lines) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = lines{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

// QuoteFallbacks are shown when Quotable is unreachable and nothing is cached.
func QuoteFallbacks() domain.FallbackPool[domain.Content] {
	return domain.NewFallbackPool(
		domain.Content{Content: "Stay hungry, stay foolish.", Author: "Steve Jobs", Source: "Stanford Commencement 2005", Type: "quote"},
		domain.Content{Content: "The only way to do great work is to love what you do.", Author: "Steve Jobs", Type: "quote"},
		domain.Content{Content: "Life is what happens when you're busy making other plans.", Author: "John Lennon", Type: "quote"},
		domain.Content{Content: "In the middle of difficulty lies opportunity.", Author: "Albert Einstein", Type: "quote"},
		domain.Content{Content: "The future belongs to those who believe in the beauty of their dreams.", Author: "Eleanor Roosevelt", Type: "quote"},
	)
}

// PoetryFallbacks are shown when jinrishici is unreachable and nothing is cached.
func PoetryFallbacks() domain.FallbackPool[domain.Content] {
	return domain.NewFallbackPool(
		domain.Content{Content: "春眠不觉晓，处处闻啼鸟。\n夜来风雨声，花落知多少。", Author: "孟浩然", Source: "春晓", Type: "poetry"},
		domain.Content{Content: "床前明月光，疑是地上霜。\n举头望明月，低头思故乡。", Author: "李白", Source: "静夜思", Type: "poetry"},
		domain.Content{Content: "海内存知己，天涯若比邻。", Author: "王勃", Source: "送杜少府之任蜀州", Type: "poetry"},
		domain.Content{Content: "人生自古谁无死，留取丹心照汗青。", Author: "文天祥", Source: "过零丁洋", Type: "poetry"},
		domain.Content{Content: "会当凌绝顶，一览众山小。", Author: "杜甫", Source: "望岳", Type: "poetry"},
	)
}
