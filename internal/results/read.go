package results

import (
	"context"
	"fmt"
	"time"

	"github.com/marrowlabs/triptych/internal/check"
)

// RunSummary aggregates one run for history listings.
type RunSummary struct {
	RunID     int64
	StartedAt time.Time
	Seed      int64
	Label     string
	Total     int
	Failed    int
}

// StoredResult is one persisted property outcome.
type StoredResult struct {
	check.Result
	RecordedAt time.Time
}

// Runs returns the most recent runs, newest first, with pass/fail
// counts. limit <= 0 means no limit.
//
// Returns an empty slice (not nil) when no runs exist.
func (s *Store) Runs(ctx context.Context, limit int) ([]RunSummary, error) {
	q := `
		SELECT r.id, r.started_at, r.seed, r.label,
		       COUNT(res.id),
		       COALESCE(SUM(CASE WHEN res.passed = 0 THEN 1 ELSE 0 END), 0)
		FROM runs r
		LEFT JOIN results res ON res.run_id = r.id
		GROUP BY r.id
		ORDER BY r.id DESC
	`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			sum       RunSummary
			startedAt string
		)
		if err := rows.Scan(&sum.RunID, &startedAt, &sum.Seed, &sum.Label, &sum.Total, &sum.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		sum.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parse run timestamp: %w", err)
		}
		runs = append(runs, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	if runs == nil {
		runs = []RunSummary{}
	}
	return runs, nil
}

// Results returns every outcome for a run in deterministic order:
// ORDER BY name COLLATE BINARY ASC.
//
// Returns an empty slice (not nil) when the run has no results.
func (s *Store) Results(ctx context.Context, runID int64) ([]StoredResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, passed, details, recorded_at
		FROM results
		WHERE run_id = ?
		ORDER BY name COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []StoredResult
	for rows.Next() {
		var (
			r          StoredResult
			passed     int
			recordedAt string
		)
		if err := rows.Scan(&r.Name, &passed, &r.Details, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.Passed = passed == 1
		r.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("parse result timestamp: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}

	if out == nil {
		out = []StoredResult{}
	}
	return out, nil
}
