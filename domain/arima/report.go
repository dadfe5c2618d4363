package arima

import (
	"tsinsight/domain/series"
)

// AnalysisReport is the aggregate output of one identification run: every
// stage's report plus the ranked evaluation list. Reports[0] is the best
// model. The report is immutable once returned.
type AnalysisReport struct {
	Config          Config                `json:"config"`
	SeriesSummary   series.Summary        `json:"series_summary"`
	Stationarity    StationarityReport    `json:"stationarity"`
	Autocorrelation AutocorrelationResult `json:"autocorrelation"`
	Candidates      []Candidate           `json:"candidates"`
	Reports         []EvaluationReport    `json:"evaluation_reports"`
	Skipped         []SkippedCandidate    `json:"skipped_candidates,omitempty"`
}

// Best returns the top-ranked evaluation report.
func (r AnalysisReport) Best() *EvaluationReport {
	if len(r.Reports) == 0 {
		return nil
	}
	return &r.Reports[0]
}
