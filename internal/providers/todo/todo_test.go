package todo

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
	"github.com/custodia-labs/inkpanel/internal/logger"
)

var configLists = domain.TodoLists{Goals: []string{"cfg goal"}, Must: []string{"cfg must"}}

// redirectTransport sends every request to a test server.
type redirectTransport struct {
	target *url.URL
}

func (rt redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.URL.Scheme = rt.target.Scheme
	clone.URL.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(clone)
}

func redirectingClient(t *testing.T, srv *httptest.Server) *http.Client {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return &http.Client{Transport: redirectTransport{target: u}}
}

// ==================== Markdown ====================

func TestParseMarkdown(t *testing.T) {
	content := `# My week
## Goals
- Ship the panel
- 
* Read a book

# Must
- Pay rent

## Optional
- Bake bread
stray line
- Call home
`
	got := ParseMarkdown(content)
	assert.Equal(t, []string{"Ship the panel", "Read a book"}, got.Goals)
	assert.Equal(t, []string{"Pay rent"}, got.Must)
	assert.Equal(t, []string{"Bake bread", "Call home"}, got.Optional)
}

func TestParseMarkdown_ItemsBeforeSectionIgnored(t *testing.T) {
	got := ParseMarkdown("- orphan\n## Must\n- kept")
	assert.Empty(t, got.Goals)
	assert.Equal(t, []string{"kept"}, got.Must)
}

// ==================== Fallback ====================

func TestWithFallback(t *testing.T) {
	failing := driven.FetcherFunc[domain.TodoLists](func(context.Context) (domain.TodoLists, error) {
		return domain.TodoLists{}, errors.New("offline")
	})
	f := WithFallback("gist", failing, NewStatic(configLists), logger.Discard())

	got, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, configLists, got)

	remote := domain.TodoLists{Must: []string{"remote"}}
	ok := driven.FetcherFunc[domain.TodoLists](func(context.Context) (domain.TodoLists, error) {
		return remote, nil
	})
	got, err = WithFallback("gist", ok, NewStatic(configLists), logger.Discard()).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, remote, got)
}

// ==================== Gist ====================

func TestGist_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gists/abc", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": "abc",
			"files": map[string]any{
				"notes.txt": map[string]any{"filename": "notes.txt", "content": "## Must\n- wrong"},
				"todo.md":   map[string]any{"filename": "todo.md", "content": "## Must\n- right"},
			},
		})
	}))
	defer srv.Close()

	g, err := NewGist("abc", "tok", srv.URL, nil)
	require.NoError(t, err)

	got, err := g.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"right"}, got.Must)
}

func TestGist_FirstMarkdownFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"files": map[string]any{
				"b.md": map[string]any{"content": "## Goals\n- from b"},
				"a.md": map[string]any{"content": "## Goals\n- from a"},
			},
		})
	}))
	defer srv.Close()

	g, err := NewGist("abc", "", srv.URL, nil)
	require.NoError(t, err)

	got, err := g.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"from a"}, got.Goals)
}

func TestGist_NoMarkdown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"files":{"x.txt":{"content":"hi"}}}`))
	}))
	defer srv.Close()

	g, err := NewGist("abc", "", srv.URL, nil)
	require.NoError(t, err)

	_, err = g.Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrBadResponse)
}

func TestGist_Disabled(t *testing.T) {
	g, err := NewGist("", "", "", nil)
	require.NoError(t, err)
	_, err = g.Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrProviderDisabled)
}

// ==================== Notion ====================

func notionPage(name, category string) map[string]any {
	props := map[string]any{
		"Name": map[string]any{
			"id": "title", "type": "title",
			"title": []any{map[string]any{"type": "text", "plain_text": name, "text": map[string]any{"content": name}}},
		},
	}
	if category != "" {
		props["Category"] = map[string]any{
			"id": "cat", "type": "select",
			"select": map[string]any{"id": "o", "name": category},
		}
	}
	return map[string]any{"object": "page", "id": "p-" + name, "properties": props}
}

func TestNotion_Fetch(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/databases/db1/query", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		assert.True(t, strings.Contains(string(body), `"Active"`), string(body))

		var resp map[string]any
		if !strings.Contains(string(body), "cursor-2") {
			resp = map[string]any{
				"object":      "list",
				"results":     []any{notionPage("Ship", "Goals"), notionPage("Rent", "Must")},
				"has_more":    true,
				"next_cursor": "cursor-2",
			}
		} else {
			resp = map[string]any{
				"object":   "list",
				"results":  []any{notionPage("Bread", "")},
				"has_more": false,
			}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	n := NewNotion("secret", "db1", redirectingClient(t, srv))
	got, err := n.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, []string{"Ship"}, got.Goals)
	assert.Equal(t, []string{"Rent"}, got.Must)
	assert.Equal(t, []string{"Bread"}, got.Optional)
}

func TestNotion_Disabled(t *testing.T) {
	_, err := NewNotion("", "db", nil).Fetch(context.Background())
	assert.ErrorIs(t, err, domain.ErrProviderDisabled)
}

// ==================== Sheets ====================

func TestSheets_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.URL.Path, "/v4/spreadsheets/sheet1/values/"), r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"range":          "Sheet1!A1:C3",
			"majorDimension": "ROWS",
			"values": [][]any{
				{"Goals", "Must", "Optional"},
				{"g1", "m1"},
				{"", " ", "o1"},
				{"g2"},
			},
		})
	}))
	defer srv.Close()

	s, err := NewSheets(context.Background(), "sheet1", "key",
		option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(http.DefaultClient))
	require.NoError(t, err)

	got, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"g1", "g2"}, got.Goals)
	assert.Equal(t, []string{"m1"}, got.Must)
	assert.Equal(t, []string{"o1"}, got.Optional)
}
