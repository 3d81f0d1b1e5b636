package driven

import (
	"context"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
)

// HistoryStore records the outcome of refresh cycles and pagination ticks.
type HistoryStore interface {
	// Record logs a run.
	Record(ctx context.Context, record *domain.RunRecord) error

	// Recent returns the latest runs of activity, most recent first.
	// An empty activity returns runs of every activity.
	Recent(ctx context.Context, activity string, limit int) ([]domain.RunRecord, error)

	// Prune keeps the most recent 'keep' runs per activity.
	Prune(ctx context.Context, keep int) error
}
