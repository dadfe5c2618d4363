package api

import (
	"time"

	"tsinsight/domain/arima"
	"tsinsight/domain/core"
	"tsinsight/domain/series"
)

type uploadResponse struct {
	SeriesID core.SeriesID  `json:"series_id"`
	Count    int            `json:"count"`
	Summary  series.Summary `json:"summary"`
}

type analysisResponse struct {
	AnalysisID core.AnalysisID      `json:"analysis_id"`
	SeriesID   core.SeriesID        `json:"series_id"`
	Report     arima.AnalysisReport `json:"report"`
}

type predictRequest struct {
	Steps int     `json:"steps"`
	Alpha float64 `json:"alpha"`
}

type predictResponse struct {
	AnalysisID core.AnalysisID      `json:"analysis_id"`
	Order      arima.Order          `json:"order"`
	Forecast   arima.ForecastResult `json:"forecast"`
}

type runSummary struct {
	AnalysisID core.AnalysisID `json:"analysis_id"`
	SeriesID   core.SeriesID   `json:"series_id"`
	BestOrder  *arima.Order    `json:"best_order,omitempty"`
	AIC        float64         `json:"aic,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
