package estimate

import (
	"tsinsight/domain/arima"
	"tsinsight/ports"
)

// Estimator fits a candidate order by two independent methods: method of
// moments as a baseline and a likelihood optimizer seeded from it.
type Estimator struct {
	optimizer ports.Optimizer
}

// NewEstimator creates an estimator backed by the given optimizer.
func NewEstimator(optimizer ports.Optimizer) *Estimator {
	return &Estimator{optimizer: optimizer}
}

// Estimate returns one EstimationResult per method for the candidate. The
// moments result always comes first. A pure-noise candidate (p=0, q=0) skips
// optimization entirely: the sample mean and variance are the sole estimate.
func (e *Estimator) Estimate(values []float64, order arima.Order) []arima.EstimationResult {
	moments := Moments(values, order)

	if order.P == 0 && order.Q == 0 {
		return []arima.EstimationResult{moments}
	}

	mle := e.optimizer.Fit(values, order, moments)
	return []arima.EstimationResult{moments, mle}
}

// Choose picks the estimation to evaluate: the optimizer result when it
// converged to finite coefficients, otherwise the moments baseline. The
// second return is the passed-over alternative, nil when only one method ran
// or the fallback itself is unusable.
func Choose(results []arima.EstimationResult) (chosen arima.EstimationResult, alternative *arima.EstimationResult, ok bool) {
	var finite []arima.EstimationResult
	for _, r := range results {
		if r.Finite() {
			finite = append(finite, r)
		}
	}
	if len(finite) == 0 {
		return arima.EstimationResult{}, nil, false
	}

	for _, r := range finite {
		if r.Method == arima.MethodMLE && r.Converged {
			alt := findMethod(finite, arima.MethodMoments)
			return r, alt, true
		}
	}

	if m := findMethod(finite, arima.MethodMoments); m != nil {
		alt := findMethod(finite, arima.MethodMLE)
		return *m, alt, true
	}
	return finite[0], nil, true
}

func findMethod(results []arima.EstimationResult, m arima.Method) *arima.EstimationResult {
	for i := range results {
		if results[i].Method == m {
			return &results[i]
		}
	}
	return nil
}
