package todo

import (
	"context"
	"log/slog"
	"strings"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// Static returns fixed lists.
type Static struct {
	lists domain.TodoLists
}

var _ driven.Fetcher[domain.TodoLists] = (*Static)(nil)

// NewStatic creates a static source.
func NewStatic(lists domain.TodoLists) *Static {
	return &Static{lists: lists}
}

// Fetch returns the configured lists.
func (s *Static) Fetch(context.Context) (domain.TodoLists, error) {
	return s.lists, nil
}

// fallback serves static lists when the primary source fails.
type fallback struct {
	primary driven.Fetcher[domain.TodoLists]
	static  *Static
	name    string
	logger  *slog.Logger
}

// WithFallback returns a fetcher that never fails: errors from primary are
// logged and the static lists are returned instead.
func WithFallback(name string, primary driven.Fetcher[domain.TodoLists], static *Static, logger *slog.Logger) driven.Fetcher[domain.TodoLists] {
	if logger == nil {
		logger = slog.Default()
	}
	return &fallback{primary: primary, static: static, name: name, logger: logger}
}

func (f *fallback) Fetch(ctx context.Context) (domain.TodoLists, error) {
	lists, err := f.primary.Fetch(ctx)
	if err != nil {
		f.logger.Warn("todo source failed, using config lists", "source", f.name, "error", err)
		return f.static.Fetch(ctx)
	}
	return lists, nil
}

// ParseMarkdown reads "## Goals", "## Must" and "## Optional" sections
// (one or two hashes) with "- " or "* " list items.
func ParseMarkdown(content string) domain.TodoLists {
	var lists domain.TodoLists
	var current *[]string

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		heading := strings.TrimSpace(strings.TrimLeft(line, "#"))

		switch {
		case strings.HasPrefix(line, "#") && strings.HasPrefix(heading, "Goals"):
			current = &lists.Goals
		case strings.HasPrefix(line, "#") && strings.HasPrefix(heading, "Must"):
			current = &lists.Must
		case strings.HasPrefix(line, "#") && strings.HasPrefix(heading, "Optional"):
			current = &lists.Optional
		case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
			item := strings.TrimSpace(line[2:])
			if item != "" && current != nil {
				*current = append(*current, item)
			}
		}
	}
	return lists
}
