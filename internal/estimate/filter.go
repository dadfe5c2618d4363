package estimate

import (
	"tsinsight/domain/arima"
)

// Filter runs the one-step-ahead ARMA recursion for the given estimate over
// the series and returns fitted values and residuals. Observations before
// max(p,q) are predicted by the constant alone.
func Filter(values []float64, est arima.EstimationResult) (fitted, residuals []float64) {
	n := len(values)
	p := len(est.ARCoeffs)
	q := len(est.MACoeffs)

	fitted = make([]float64, n)
	residuals = make([]float64, n)

	start := p
	if q > start {
		start = q
	}

	for t := 0; t < n; t++ {
		if t < start {
			fitted[t] = est.Constant
			residuals[t] = values[t] - est.Constant
			continue
		}

		pred := est.Constant
		for i := 0; i < p; i++ {
			pred += est.ARCoeffs[i] * (values[t-i-1] - est.Constant)
		}
		for j := 0; j < q; j++ {
			pred += est.MACoeffs[j] * residuals[t-j-1]
		}

		fitted[t] = pred
		residuals[t] = values[t] - pred
	}
	return fitted, residuals
}

// ResidualVariance computes the innovation variance over the conditioning
// window, adjusted for the number of estimated parameters.
func ResidualVariance(residuals []float64, p, q int) float64 {
	start := p
	if q > start {
		start = q
	}
	sse := 0.0
	count := 0
	for t := start; t < len(residuals); t++ {
		sse += residuals[t] * residuals[t]
		count++
	}
	if count == 0 {
		return 0
	}
	if count > p+q+1 {
		return sse / float64(count-p-q-1)
	}
	return sse / float64(count)
}
