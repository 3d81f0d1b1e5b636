package todo

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jomei/notionapi"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// Notion property names.
const (
	PropertyName     = "Name"
	PropertyCategory = "Category"
	PropertyStatus   = "Status"
	StatusActive     = "Active"
)

// Notion reads active items from a database.
type Notion struct {
	client   *notionapi.Client
	database notionapi.DatabaseID
	enabled  bool
}

var _ driven.Fetcher[domain.TodoLists] = (*Notion)(nil)

// NewNotion creates a Notion source. httpClient may be nil.
func NewNotion(token, databaseID string, httpClient *http.Client) *Notion {
	var opts []notionapi.ClientOption
	if httpClient != nil {
		opts = append(opts, notionapi.WithHTTPClient(httpClient))
	}
	return &Notion{
		client:   notionapi.NewClient(notionapi.Token(token), opts...),
		database: notionapi.DatabaseID(databaseID),
		enabled:  token != "" && databaseID != "",
	}
}

// Fetch queries every page whose Status is Active. Pages without a
// category land in Optional.
func (n *Notion) Fetch(ctx context.Context) (domain.TodoLists, error) {
	if !n.enabled {
		return domain.TodoLists{}, domain.ErrProviderDisabled
	}

	var lists domain.TodoLists
	req := &notionapi.DatabaseQueryRequest{
		Filter: notionapi.PropertyFilter{
			Property: PropertyStatus,
			Select:   &notionapi.SelectFilterCondition{Equals: StatusActive},
		},
		PageSize: 100,
	}

	for {
		resp, err := n.client.Database.Query(ctx, n.database, req)
		if err != nil {
			return domain.TodoLists{}, fmt.Errorf("notion query: %w", err)
		}

		for _, page := range resp.Results {
			name := titleOf(page.Properties[PropertyName])
			if name == "" {
				continue
			}
			switch selectOf(page.Properties[PropertyCategory]) {
			case "Goals":
				lists.Goals = append(lists.Goals, name)
			case "Must":
				lists.Must = append(lists.Must, name)
			case "Optional", "":
				lists.Optional = append(lists.Optional, name)
			}
		}

		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		req.StartCursor = resp.NextCursor
	}

	return lists, nil
}

func titleOf(p notionapi.Property) string {
	title, ok := p.(*notionapi.TitleProperty)
	if !ok || len(title.Title) == 0 {
		return ""
	}
	return title.Title[0].PlainText
}

func selectOf(p notionapi.Property) string {
	sel, ok := p.(*notionapi.SelectProperty)
	if !ok {
		return ""
	}
	return sel.Select.Name
}
