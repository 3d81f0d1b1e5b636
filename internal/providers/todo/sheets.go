package todo

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// sheetRange covers the Goals, Must and Optional columns of the first sheet.
const sheetRange = "A:C"

// Sheets reads three columns from a spreadsheet, skipping the header row.
type Sheets struct {
	svc *sheets.Service
	id  string
}

var _ driven.Fetcher[domain.TodoLists] = (*Sheets)(nil)

// NewSheets creates a Sheets source authenticated with an API key, which
// requires the spreadsheet to be shared by link. Extra options are appended.
func NewSheets(ctx context.Context, spreadsheetID, apiKey string, opts ...option.ClientOption) (*Sheets, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	return &Sheets{svc: svc, id: spreadsheetID}, nil
}

// Fetch reads the sheet.
func (s *Sheets) Fetch(ctx context.Context) (domain.TodoLists, error) {
	if s.id == "" {
		return domain.TodoLists{}, domain.ErrProviderDisabled
	}

	vr, err := s.svc.Spreadsheets.Values.Get(s.id, sheetRange).Context(ctx).Do()
	if err != nil {
		return domain.TodoLists{}, fmt.Errorf("sheets %s: %w", s.id, err)
	}
	if len(vr.Values) < 2 {
		return domain.TodoLists{}, fmt.Errorf("sheets %s: %w: no data rows", s.id, domain.ErrBadResponse)
	}

	var lists domain.TodoLists
	for _, row := range vr.Values[1:] {
		appendCell(&lists.Goals, row, 0)
		appendCell(&lists.Must, row, 1)
		appendCell(&lists.Optional, row, 2)
	}
	return lists, nil
}

func appendCell(list *[]string, row []interface{}, col int) {
	if col >= len(row) {
		return
	}
	cell := strings.TrimSpace(fmt.Sprint(row[col]))
	if cell != "" {
		*list = append(*list, cell)
	}
}
