package repositories

import (
	"context"

	"farewatch/internal/constants"
	"farewatch/internal/models/entities"

	"github.com/jmoiron/sqlx"
)

// FetchRunRepo records one audit row per orchestrator invocation.
type FetchRunRepo struct {
	db *sqlx.DB
}

func NewFetchRunRepo(db *sqlx.DB) *FetchRunRepo {
	return &FetchRunRepo{db}
}

// RecordRun inserts a finished run. Failures here are logged by the caller
// but never fail the fetch itself.
func (r *FetchRunRepo) RecordRun(ctx context.Context, run *entities.FetchRun) error {
	_, err := r.db.ExecContext(ctx, constants.InsertFetchRun,
		run.ID, run.Origin, run.Destination, run.BaseDate, run.FlexDays,
		run.TriggerKind, run.DatesQueried, run.FaresStored, run.ErrorCount,
		run.Status, run.StartedAt, run.FinishedAt)
	if err != nil {
		return &StorageError{Op: "record_run", Err: err}
	}
	return nil
}

// GetRecent returns the latest runs, newest first.
func (r *FetchRunRepo) GetRecent(ctx context.Context, limit int) ([]entities.FetchRun, error) {
	if limit <= 0 {
		limit = 20
	}

	var runs []entities.FetchRun
	if err := r.db.SelectContext(ctx, &runs, constants.GetRecentFetchRuns, limit); err != nil {
		return nil, &StorageError{Op: "get_recent_runs", Err: err}
	}
	return runs, nil
}

// GetByRoute returns the latest runs for one route, newest first.
func (r *FetchRunRepo) GetByRoute(ctx context.Context, origin, destination string, limit int) ([]entities.FetchRun, error) {
	if limit <= 0 {
		limit = 20
	}

	var runs []entities.FetchRun
	if err := r.db.SelectContext(ctx, &runs, constants.GetFetchRunsByRoute, origin, destination, limit); err != nil {
		return nil, &StorageError{Op: "get_runs_by_route", Err: err}
	}
	return runs, nil
}
