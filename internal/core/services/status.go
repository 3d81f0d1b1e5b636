package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driving"
)

// StatusService reports quiet state, mode selection, pagination and
// recent runs.
type StatusService struct {
	settings driven.SettingsSource
	selector *ModeSelector
	feed     *StoryFeed
	tasks    driving.TaskManager
	history  driven.HistoryStore
	clock    func() time.Time
}

var _ driving.StatusService = (*StatusService)(nil)

// NewStatusService creates a status service. feed, tasks and history are optional.
func NewStatusService(
	settings driven.SettingsSource,
	selector *ModeSelector,
	feed *StoryFeed,
	tasks driving.TaskManager,
	history driven.HistoryStore,
) *StatusService {
	if selector == nil {
		selector = NewModeSelector(nil)
	}
	return &StatusService{
		settings: settings,
		selector: selector,
		feed:     feed,
		tasks:    tasks,
		history:  history,
		clock:    time.Now,
	}
}

// Status assembles a report with the ten most recent runs.
func (s *StatusService) Status(ctx context.Context) (*domain.Status, error) {
	settings := s.settings.Current()
	now := settings.Now(s.clock)
	quiet, secs := settings.Quiet.Check(now)

	st := &domain.Status{
		Now:                  now,
		Quiet:                quiet,
		SecondsUntilBoundary: secs,
		ConfiguredMode:       settings.Display.Mode.String(),
		SelectedMode:         s.selector.Select(now, settings).Kind().String(),
	}
	if s.feed != nil {
		st.CurrentPage = s.feed.LoadPage()
	}
	if s.tasks != nil {
		st.RunningTasks = s.tasks.Running()
	}
	if s.history != nil {
		recent, err := s.history.Recent(ctx, "", 10)
		if err != nil {
			return nil, fmt.Errorf("loading history: %w", err)
		}
		st.Recent = recent
	}
	return st, nil
}
