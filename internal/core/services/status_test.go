package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
)

func TestStatusService_Status(t *testing.T) {
	settings := testSettings()
	settings.Quiet = domain.QuietWindow{StartHour: 1, EndHour: 6}
	settings.Display.Mode = domain.ModeKindPoetry

	history := &mockHistoryStore{}
	require.NoError(t, history.Record(context.Background(), &domain.RunRecord{ID: "r1", Activity: domain.ActivityRefresh, Success: true}))

	state := newMockStateStore()
	require.NoError(t, state.Save(paginationStateKey, domain.PaginationState{CurrentPage: 3}))
	feed := NewStoryFeed(nil, nil, state, nil)

	tasks := NewTaskManager(time.Second, nil)
	defer tasks.Cleanup(time.Second)
	tasks.Start("pages", func(ctx context.Context, stop <-chan struct{}) error {
		<-stop
		return nil
	})

	svc := NewStatusService(newStaticSettings(settings), NewModeSelector(nil), feed, tasks, history)
	svc.clock = func() time.Time { return time.Date(2025, time.March, 3, 2, 30, 0, 0, time.UTC) }

	st, err := svc.Status(context.Background())
	require.NoError(t, err)

	assert.True(t, st.Quiet)
	assert.Equal(t, 3*3600+30*60, st.SecondsUntilBoundary)
	assert.Equal(t, "poetry", st.ConfiguredMode)
	assert.Equal(t, "poetry", st.SelectedMode)
	assert.Equal(t, 3, st.CurrentPage)
	assert.Equal(t, []string{"pages"}, st.RunningTasks)
	require.Len(t, st.Recent, 1)
	assert.Equal(t, "r1", st.Recent[0].ID)
}
