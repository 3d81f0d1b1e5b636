package mcp

import (
	"context"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
)

// mockOrchestrator is a mock implementation of driving.Orchestrator.
type mockOrchestrator struct {
	triggered int
	record    *domain.RunRecord
	err       error
}

func (m *mockOrchestrator) Run(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func (m *mockOrchestrator) RunCycle(_ context.Context) (*domain.RunRecord, error) {
	return m.record, m.err
}

func (m *mockOrchestrator) Trigger() {
	m.triggered++
}

func (m *mockOrchestrator) NotifyConfigChanged() {
	m.triggered++
}

// mockStatusService is a mock implementation of driving.StatusService.
type mockStatusService struct {
	status *domain.Status
	err    error
}

func (m *mockStatusService) Status(_ context.Context) (*domain.Status, error) {
	return m.status, m.err
}

// mockHistory is a mock implementation of HistoryReader.
type mockHistory struct {
	runs     []domain.RunRecord
	activity string
	limit    int
	err      error
}

func (m *mockHistory) Recent(_ context.Context, activity string, limit int) ([]domain.RunRecord, error) {
	m.activity = activity
	m.limit = limit
	return m.runs, m.err
}
