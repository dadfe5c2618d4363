// Package stationarity decides whether a series is stationary and how much
// differencing it needs, using ADF and KPSS tests jointly.
package stationarity

import (
	"tsinsight/domain/arima"
	"tsinsight/domain/series"
)

// Analyzer drives the auto-differencing search.
type Analyzer struct {
	cfg arima.Config
}

// NewAnalyzer creates a stationarity analyzer for the given configuration.
func NewAnalyzer(cfg arima.Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze tests the series at each differencing level starting at 0 and
// returns the report for the first level both tests accept as stationary.
// A level is stationary only when ADF rejects its unit-root null and KPSS
// fails to reject its stationarity null. When auto-differencing is disabled
// the level-0 report is returned as-is. When no level up to max_d passes, the
// max_d report is returned with MaxDiffExceeded set; downstream stages
// proceed with d = max_d.
func (a *Analyzer) Analyze(s series.Series) (arima.StationarityReport, error) {
	current := s
	var report arima.StationarityReport

	for d := 0; ; d++ {
		tests, stationary, err := a.testLevel(current)
		if err != nil {
			return arima.StationarityReport{}, err
		}

		report = arima.StationarityReport{
			IsStationary:      stationary,
			Tests:             tests,
			DifferencingOrder: d,
			Differenced:       current,
		}

		if stationary || !a.cfg.AutoDiff {
			return report, nil
		}
		if d >= a.cfg.MaxD {
			report.MaxDiffExceeded = true
			return report, nil
		}
		current = current.Diff()
	}
}

func (a *Analyzer) testLevel(s series.Series) (map[string]arima.TestResult, bool, error) {
	adf, err := ADF(s, a.cfg.SignificanceLevel)
	if err != nil {
		return nil, false, err
	}
	kpss, err := KPSS(s, a.cfg.SignificanceLevel)
	if err != nil {
		return nil, false, err
	}

	tests := map[string]arima.TestResult{
		"adf":  adf,
		"kpss": kpss,
	}
	return tests, adf.IsStationary && kpss.IsStationary, nil
}
