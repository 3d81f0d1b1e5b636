package mcp

import (
	"context"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driving"
)

// HistoryReader lists recorded runs.
type HistoryReader interface {
	Recent(ctx context.Context, activity string, limit int) ([]domain.RunRecord, error)
}

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Orchestrator receives refresh requests.
	Orchestrator driving.Orchestrator

	// Status reports quiet state, mode and pagination.
	Status driving.StatusService

	// History lists past runs. Optional.
	History HistoryReader
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Orchestrator == nil {
		return ErrMissingOrchestrator
	}
	if p.Status == nil {
		return ErrMissingStatusService
	}
	return nil
}
