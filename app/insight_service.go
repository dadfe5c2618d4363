// Package app wires the identification stages into the full analysis
// pipeline consumed by the service layer.
package app

import (
	"context"
	"fmt"
	"runtime"

	"tsinsight/domain/arima"
	"tsinsight/domain/core"
	"tsinsight/domain/series"
	"tsinsight/internal/autocorr"
	"tsinsight/internal/candidates"
	"tsinsight/internal/estimate"
	"tsinsight/internal/evaluate"
	"tsinsight/internal/forecast"
	"tsinsight/internal/stationarity"
	"tsinsight/ports"

	"golang.org/x/sync/semaphore"
)

// InsightService runs identification pipelines. It holds no per-run state;
// every analysis is a pure function of the series and configuration.
type InsightService struct {
	optimizer ports.Optimizer
	workers   int64
}

// NewInsightService creates a service using the default CSS optimizer.
func NewInsightService() *InsightService {
	return NewInsightServiceWith(estimate.NewCSSOptimizer())
}

// NewInsightServiceWith creates a service with a custom optimizer, used by
// tests and by callers swapping the numerical method.
func NewInsightServiceWith(optimizer ports.Optimizer) *InsightService {
	workers := int64(runtime.NumCPU())
	if workers < 1 {
		workers = 1
	}
	return &InsightService{optimizer: optimizer, workers: workers}
}

// Analyze runs the full pipeline: stationarity and differencing,
// autocorrelation pattern analysis, candidate generation, then per-candidate
// estimation and evaluation fanned out across workers. Candidate evaluation
// order never affects output ordering: results are collected and ranked
// deterministically before returning. ctx cancellation is honored between
// candidate evaluations, not mid-optimization.
func (s *InsightService) Analyze(ctx context.Context, data series.Series, cfg arima.Config) (arima.AnalysisReport, error) {
	if err := cfg.Validate(); err != nil {
		return arima.AnalysisReport{}, err
	}
	if err := data.Validate(cfg.MinSeriesLen()); err != nil {
		return arima.AnalysisReport{}, err
	}
	if data.IsConstant() {
		return arima.AnalysisReport{}, core.ErrDegenerateSeries
	}

	stat, err := stationarity.NewAnalyzer(cfg).Analyze(data)
	if err != nil {
		return arima.AnalysisReport{}, err
	}
	diffed := stat.Differenced

	maxLag := autocorr.MaxLagFor(diffed.Len())
	ac, err := autocorr.NewAnalyzer(maxLag).Analyze(diffed)
	if err != nil {
		return arima.AnalysisReport{}, err
	}

	cands := candidates.Generate(ac, stat.DifferencingOrder, candidates.Bounds{
		MaxP:    cfg.MaxP,
		MaxQ:    cfg.MaxQ,
		NModels: cfg.NModels,
	})

	reports, skipped, err := s.evaluateAll(ctx, diffed.Values, cands, cfg)
	if err != nil {
		return arima.AnalysisReport{}, err
	}

	return arima.AnalysisReport{
		Config:          cfg,
		SeriesSummary:   data.Describe(),
		Stationarity:    stat,
		Autocorrelation: ac,
		Candidates:      cands,
		Reports:         reports,
		Skipped:         skipped,
	}, nil
}

// evaluateAll estimates and evaluates candidates concurrently under a
// weighted semaphore and merges the results into the ranked order.
func (s *InsightService) evaluateAll(ctx context.Context, values []float64, cands []arima.Candidate, cfg arima.Config) ([]arima.EvaluationReport, []arima.SkippedCandidate, error) {
	estimator := estimate.NewEstimator(s.optimizer)
	evaluator := evaluate.NewEvaluator(cfg.SignificanceLevel)

	type slot struct {
		report arima.EvaluationReport
		err    error
	}
	slots := make([]slot, len(cands))

	sem := semaphore.NewWeighted(s.workers)
	done := make(chan int, len(cands))
	launched := 0

	for i, cand := range cands {
		// Coarse-grained cancellation: abandon between candidates.
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		launched++
		go func(idx int, c arima.Candidate) {
			defer sem.Release(1)
			estimations := estimator.Estimate(values, c.Order)
			slots[idx].report, slots[idx].err = evaluator.Evaluate(values, c, estimations)
			done <- idx
		}(i, cand)
	}
	for i := 0; i < launched; i++ {
		<-done
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var reports []arima.EvaluationReport
	var skipped []arima.SkippedCandidate
	for i, sl := range slots {
		if sl.err != nil {
			skipped = append(skipped, arima.SkippedCandidate{
				Order:  cands[i].Order,
				Reason: sl.err.Error(),
			})
			continue
		}
		reports = append(reports, sl.report)
	}

	if len(reports) == 0 {
		return nil, nil, fmt.Errorf("%w: %d candidates skipped", core.ErrAllCandidatesFailed, len(skipped))
	}

	evaluate.Rank(reports)
	return reports, skipped, nil
}

// Forecast produces the h-step forecast for a fitted model against the
// original (undifferenced) series.
func (s *InsightService) Forecast(data series.Series, est arima.EstimationResult, steps int, alpha float64) (arima.ForecastResult, error) {
	return forecast.Forecast(data, est, steps, alpha)
}
