// Package forecast produces point forecasts with confidence intervals from a
// fitted model by applying the ARMA recursion and re-integrating the
// differencing.
package forecast

import (
	"math"

	"tsinsight/domain/arima"
	"tsinsight/domain/core"
	"tsinsight/domain/series"
	"tsinsight/internal/estimate"

	"gonum.org/v1/gonum/stat/distuv"
)

// Forecast rolls the fitted ARMA recursion forward `steps` periods past the
// end of the series and returns forecasts on the original scale, with
// intervals at confidence 1-alpha. Interval width grows with the forecast
// horizon; for integrated models (d > 0) it is unbounded and may become
// uninformative at long horizons, which is expected behavior.
func Forecast(s series.Series, est arima.EstimationResult, steps int, alpha float64) (arima.ForecastResult, error) {
	if steps < 1 {
		return arima.ForecastResult{}, core.ErrInvalidHorizon
	}
	if alpha <= 0 || alpha >= 1 {
		return arima.ForecastResult{}, core.NewConfigError("alpha", "must be in (0,1)")
	}
	d := est.Order.D
	if s.Len() < d+1 {
		return arima.ForecastResult{}, core.NewInsufficientDataError(s.Len(), d+1)
	}

	diffed := s.DiffN(d)
	_, residuals := estimate.Filter(diffed.Values, est)

	point := recurse(diffed.Values, residuals, est, steps)

	// Integrate back: d levels of cumulative summation, each anchored at the
	// last pre-differencing value. A d=0 model passes through unchanged.
	point = integrate(point, s.Values, d)

	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(1 - alpha/2)
	variance := est.Variance
	if variance < 0 || math.IsNaN(variance) {
		variance = 0
	}

	weights := psiWeights(est.ARCoeffs, est.MACoeffs, steps)
	for level := 0; level < d; level++ {
		weights = cumulative(weights)
	}

	lower := make([]float64, steps)
	upper := make([]float64, steps)
	accum := 0.0
	for h := 0; h < steps; h++ {
		accum += weights[h] * weights[h]
		half := z * math.Sqrt(variance*accum)
		lower[h] = point[h] - half
		upper[h] = point[h] + half
	}

	return arima.ForecastResult{
		Horizon:         steps,
		PointForecast:   point,
		LowerBound:      lower,
		UpperBound:      upper,
		ConfidenceLevel: 1 - alpha,
	}, nil
}

// recurse applies the ARMA recursion to the tail of observed values;
// expected future shocks are zero.
func recurse(values, residuals []float64, est arima.EstimationResult, steps int) []float64 {
	n := len(values)
	p := len(est.ARCoeffs)
	q := len(est.MACoeffs)

	extVals := make([]float64, n+steps)
	copy(extVals, values)
	extRes := make([]float64, n+steps)
	copy(extRes, residuals)

	for h := 0; h < steps; h++ {
		t := n + h
		pred := est.Constant
		for i := 0; i < p && t-i-1 >= 0; i++ {
			pred += est.ARCoeffs[i] * (extVals[t-i-1] - est.Constant)
		}
		for j := 0; j < q && t-j-1 >= 0; j++ {
			pred += est.MACoeffs[j] * extRes[t-j-1]
		}
		extVals[t] = pred
		extRes[t] = 0
	}

	out := make([]float64, steps)
	copy(out, extVals[n:])
	return out
}

// integrate undoes d levels of differencing.
func integrate(forecasts, original []float64, d int) []float64 {
	result := make([]float64, len(forecasts))
	copy(result, forecasts)

	for level := 0; level < d; level++ {
		last := original[len(original)-1-level]
		for j := range result {
			if j == 0 {
				result[j] += last
			} else {
				result[j] += result[j-1]
			}
		}
	}
	return result
}

// psiWeights expands the ARMA transfer function into its first `count` MA(∞)
// weights: psi_0 = 1, psi_j = theta_j + sum phi_i * psi_{j-i}.
func psiWeights(phi, theta []float64, count int) []float64 {
	psi := make([]float64, count)
	if count == 0 {
		return psi
	}
	psi[0] = 1
	for j := 1; j < count; j++ {
		v := 0.0
		if j-1 < len(theta) {
			v = theta[j-1]
		}
		for i := 1; i <= len(phi) && i <= j; i++ {
			v += phi[i-1] * psi[j-i]
		}
		psi[j] = v
	}
	return psi
}

func cumulative(weights []float64) []float64 {
	out := make([]float64, len(weights))
	sum := 0.0
	for i, w := range weights {
		sum += w
		out[i] = sum
	}
	return out
}
