package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/custodia-labs/inkpanel/internal/core/domain"
	"github.com/custodia-labs/inkpanel/internal/core/ports/driven"
)

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// Record logs a run.
func (s *historyStore) Record(ctx context.Context, rec *domain.RunRecord) error {
	if rec == nil || rec.ID == "" || rec.Activity == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO run_history (id, activity, mode, demoted_from, page, started_at, ended_at, success, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Activity,
		nullString(rec.Mode), nullString(rec.DemotedFrom), rec.Page,
		formatTime(rec.StartedAt), formatTime(rec.EndedAt),
		boolToInt(rec.Success), nullString(rec.Error))

	if err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Recent returns the latest runs, most recent first.
func (s *historyStore) Recent(ctx context.Context, activity string, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, activity, mode, demoted_from, page, started_at, ended_at, success, error
		FROM run_history
		WHERE (? = '' OR activity = ?)
		ORDER BY seq DESC
		LIMIT ?
	`, activity, activity, limit)
	if err != nil {
		return nil, fmt.Errorf("querying run history: %w", err)
	}
	defer rows.Close()

	var records []domain.RunRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		rec, err := scanRunRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run history: %w", err)
	}

	return records, nil
}

// Prune keeps the most recent 'keep' runs per activity.
func (s *historyStore) Prune(ctx context.Context, keep int) error {
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM run_history
		WHERE seq NOT IN (
			SELECT seq FROM (
				SELECT seq, ROW_NUMBER() OVER (PARTITION BY activity ORDER BY seq DESC) AS rn
				FROM run_history
			) WHERE rn <= ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning run history: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// scanRunRecord scans a run record from *sql.Rows.
func scanRunRecord(rows *sql.Rows) (*domain.RunRecord, error) {
	var rec domain.RunRecord
	var mode, demotedFrom, errMsg sql.NullString
	var startedAt, endedAt string
	var success int

	if err := rows.Scan(&rec.ID, &rec.Activity, &mode, &demotedFrom, &rec.Page,
		&startedAt, &endedAt, &success, &errMsg); err != nil {
		return nil, fmt.Errorf("scanning run record: %w", err)
	}

	rec.Mode = mode.String
	rec.DemotedFrom = demotedFrom.String
	rec.Error = errMsg.String
	rec.Success = success == 1
	rec.StartedAt = parseTime(startedAt)
	rec.EndedAt = parseTime(endedAt)

	return &rec, nil
}

// formatTime formats a time as RFC3339 with nanoseconds in UTC.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime parses an RFC3339 string, returning zero time on error.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// boolToInt converts a bool to 1 (true) or 0 (false).
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
