// Package postgres persists analysis runs to PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tsinsight/domain/arima"
	"tsinsight/domain/core"
	"tsinsight/domain/series"
	"tsinsight/models"
	"tsinsight/ports"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
	id         UUID PRIMARY KEY,
	series_id  UUID NOT NULL,
	series     JSONB NOT NULL,
	report     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
)`

// RunRepositoryImpl implements RunRepository for PostgreSQL
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a new PostgreSQL run repository and ensures the
// backing table exists.
func NewRunRepository(db *sqlx.DB) (ports.RunRepository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to ensure analysis_runs table: %w", err)
	}
	return &RunRepositoryImpl{db: db}, nil
}

// Save inserts a completed run; reports are stored as JSONB documents.
func (r *RunRepositoryImpl) Save(ctx context.Context, run *models.AnalysisRun) error {
	seriesJSON, err := json.Marshal(run.Series)
	if err != nil {
		return err
	}
	reportJSON, err := json.Marshal(run.Report)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO analysis_runs (id, series_id, series, report, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, run.ID.String(), run.SeriesID.String(), seriesJSON, reportJSON, run.CreatedAt)
	return err
}

// Get retrieves a run by id.
func (r *RunRepositoryImpl) Get(ctx context.Context, id core.AnalysisID) (*models.AnalysisRun, error) {
	var row runRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, series_id, series, report, created_at
		FROM analysis_runs
		WHERE id = $1
	`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrAnalysisNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toModel()
}

// List returns the most recent runs.
func (r *RunRepositoryImpl) List(ctx context.Context, limit int) ([]*models.AnalysisRun, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []runRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, series_id, series, report, created_at
		FROM analysis_runs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}

	runs := make([]*models.AnalysisRun, 0, len(rows))
	for _, row := range rows {
		run, err := row.toModel()
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

type runRow struct {
	ID        string    `db:"id"`
	SeriesID  string    `db:"series_id"`
	Series    []byte    `db:"series"`
	Report    []byte    `db:"report"`
	CreatedAt time.Time `db:"created_at"`
}

func (row runRow) toModel() (*models.AnalysisRun, error) {
	var s series.Series
	if err := json.Unmarshal(row.Series, &s); err != nil {
		return nil, err
	}
	var report arima.AnalysisReport
	if err := json.Unmarshal(row.Report, &report); err != nil {
		return nil, err
	}
	return &models.AnalysisRun{
		ID:        core.AnalysisID(row.ID),
		SeriesID:  core.SeriesID(row.SeriesID),
		Series:    s,
		Report:    report,
		CreatedAt: row.CreatedAt,
	}, nil
}
