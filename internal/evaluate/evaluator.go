// Package evaluate scores fitted candidates by fit-quality and residual
// diagnostics and ranks them into the final report ordering.
package evaluate

import (
	"math"
	"sort"

	"tsinsight/domain/arima"
	"tsinsight/domain/core"
	"tsinsight/internal/estimate"
)

// ljungBoxLags is the fixed lag count for the residual white-noise test.
const ljungBoxLags = 10

// Evaluator computes evaluation reports against a differenced series.
type Evaluator struct {
	significance float64
}

// NewEvaluator creates an evaluator using the given white-noise test
// significance level.
func NewEvaluator(significance float64) *Evaluator {
	return &Evaluator{significance: significance}
}

// Evaluate scores one candidate given its per-method estimation results.
// The optimizer result is preferred when it converged, otherwise the moments
// baseline is used; when neither produced finite coefficients the candidate
// is unusable and EstimationFailed is returned.
func (e *Evaluator) Evaluate(values []float64, cand arima.Candidate, estimations []arima.EstimationResult) (arima.EvaluationReport, error) {
	chosen, alternative, ok := estimate.Choose(estimations)
	if !ok {
		return arima.EvaluationReport{}, core.NewCandidateError(
			cand.Order.P, cand.Order.D, cand.Order.Q, core.ErrNonFiniteCoefficient)
	}

	fitted, residuals := estimate.Filter(values, chosen)
	n := len(values)
	p, q := cand.Order.P, cand.Order.Q
	k := float64(p + q + 1)

	sse := 0.0
	for _, r := range residuals {
		sse += r * r
	}

	variance := chosen.Variance
	if variance <= 0 || math.IsNaN(variance) {
		variance = sse / float64(n)
	}

	var logLik float64
	if variance > 0 {
		logLik = -float64(n)/2*math.Log(2*math.Pi) -
			float64(n)/2*math.Log(variance) -
			sse/(2*variance)
	} else {
		logLik = math.Inf(-1)
	}

	fit := arima.FitStatistics{
		LogLikelihood: logLik,
		AIC:           2*k - 2*logLik,
		BIC:           math.Log(float64(n))*k - 2*logLik,
		RSquared:      rSquared(values, fitted),
	}
	if !isFinite(fit.AIC) || !isFinite(fit.BIC) {
		return arima.EvaluationReport{}, core.NewCandidateError(p, cand.Order.D, q, core.ErrEstimationFailed)
	}

	resMean, resVar := meanVariance(residuals)
	lb := LjungBox(residuals, ljungBoxLags, p+q)

	report := arima.EvaluationReport{
		Order:     cand.Order,
		Rationale: cand.Rationale,
		Fit:       fit,
		Residuals: arima.ResidualDiagnostics{
			LjungBoxStatistic: lb.Statistic,
			LjungBoxPValue:    lb.PValue,
			IsWhiteNoise:      lb.PValue >= e.significance,
			Mean:              resMean,
			Variance:          resVar,
		},
		Estimation:  chosen,
		Alternative: alternative,
	}
	return report, nil
}

// Rank sorts reports in place by the total order of the data model:
// ascending AIC, ties broken by BIC, then by model complexity.
func Rank(reports []arima.EvaluationReport) {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Less(reports[j])
	})
}

// rSquared computes 1 - SS_res/SS_tot against one-step-ahead fitted values.
func rSquared(values, fitted []float64) float64 {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	ssTot := 0.0
	ssRes := 0.0
	for i, v := range values {
		d := v - mean
		ssTot += d * d
		r := v - fitted[i]
		ssRes += r * r
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

func meanVariance(values []float64) (mean, variance float64) {
	n := len(values)
	if n == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	if n > 1 {
		variance /= float64(n - 1)
	}
	return mean, variance
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
