package models

import (
	"time"

	"tsinsight/domain/arima"
	"tsinsight/domain/core"
	"tsinsight/domain/series"
)

// AnalysisRun couples one identification run's inputs and outputs for
// persistence and later forecasting.
type AnalysisRun struct {
	ID        core.AnalysisID      `json:"id" db:"id"`
	SeriesID  core.SeriesID        `json:"series_id" db:"series_id"`
	Series    series.Series        `json:"series" db:"-"`
	Report    arima.AnalysisReport `json:"report" db:"-"`
	CreatedAt time.Time            `json:"created_at" db:"created_at"`
}

// NewAnalysisRun creates a run record with a fresh identifier.
func NewAnalysisRun(seriesID core.SeriesID, s series.Series, report arima.AnalysisReport) *AnalysisRun {
	return &AnalysisRun{
		ID:        core.AnalysisID(core.NewID()),
		SeriesID:  seriesID,
		Series:    s,
		Report:    report,
		CreatedAt: time.Now().UTC(),
	}
}
