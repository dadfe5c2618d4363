// Package autocorr computes autocorrelation structure and classifies its
// decay pattern for model order identification.
package autocorr

import (
	"math"

	"tsinsight/domain/arima"
	"tsinsight/domain/core"
	"tsinsight/domain/series"

	"gonum.org/v1/gonum/stat/distuv"
)

// boundConfidence is the two-sided confidence used for the large-sample
// significance bound on ACF/PACF values.
const boundConfidence = 0.95

// Analyzer computes ACF/PACF with significance bounds and pattern tags.
type Analyzer struct {
	maxLag int
}

// NewAnalyzer creates an autocorrelation analyzer computing lags 1..maxLag.
func NewAnalyzer(maxLag int) *Analyzer {
	return &Analyzer{maxLag: maxLag}
}

// MaxLagFor picks the lag horizon for a series of length n: a quarter of the
// sample, capped at 20 and floored at 1.
func MaxLagFor(n int) int {
	lag := n / 4
	if lag > 20 {
		lag = 20
	}
	if lag < 1 {
		lag = 1
	}
	return lag
}

// Analyze computes ACF and PACF for lags 1..maxLag, attaches the symmetric
// confidence bound z(1-a/2)/sqrt(n), and classifies both sequences. A
// zero-variance series is rejected with DegenerateSeries.
func (a *Analyzer) Analyze(s series.Series) (arima.AutocorrelationResult, error) {
	n := s.Len()
	maxLag := a.maxLag
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 1 {
		return arima.AutocorrelationResult{}, core.NewInsufficientDataError(n, 2)
	}
	if s.IsConstant() {
		return arima.AutocorrelationResult{}, core.ErrDegenerateSeries
	}

	acf := ACF(s.Values, maxLag)
	if acf == nil {
		return arima.AutocorrelationResult{}, core.ErrDegenerateSeries
	}
	pacf := PACF(s.Values, maxLag)

	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(1 - (1-boundConfidence)/2)
	bound := z / math.Sqrt(float64(n))

	result := arima.AutocorrelationResult{
		ACF:  make([]arima.LagValue, maxLag),
		PACF: make([]arima.LagValue, maxLag),
	}
	for k := 1; k <= maxLag; k++ {
		result.ACF[k-1] = arima.LagValue{Lag: k, Value: acf[k], Bound: bound}
		result.PACF[k-1] = arima.LagValue{Lag: k, Value: pacf[k], Bound: bound}
	}

	result.ACFPattern = Classify(result.ACF)
	result.PACFPattern = Classify(result.PACF)
	return result, nil
}

// ACF calculates the autocorrelation function for lags 0..maxLag.
// Returns nil when the series has zero variance.
func ACF(values []float64, maxLag int) []float64 {
	n := len(values)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	if variance == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (values[i] - mean) * (values[i-k] - mean)
		}
		acf[k] = sum / variance
	}
	return acf
}

// PACF calculates the partial autocorrelation function for lags 0..maxLag
// using the Durbin-Levinson recursion.
func PACF(values []float64, maxLag int) []float64 {
	n := len(values)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 1 {
		return nil
	}

	acf := ACF(values, maxLag)
	if acf == nil {
		return nil
	}

	pacf := make([]float64, maxLag+1)
	pacf[0] = 1.0

	phi := make([][]float64, maxLag+1)
	for i := range phi {
		phi[i] = make([]float64, maxLag+1)
	}

	phi[1][1] = acf[1]
	pacf[1] = acf[1]

	for k := 2; k <= maxLag; k++ {
		num := acf[k]
		den := 1.0
		for j := 1; j < k; j++ {
			num -= phi[k-1][j] * acf[k-j]
			den -= phi[k-1][j] * acf[j]
		}
		if den == 0 {
			pacf[k] = 0
			continue
		}

		phi[k][k] = num / den
		pacf[k] = phi[k][k]

		for j := 1; j < k; j++ {
			phi[k][j] = phi[k-1][j] - phi[k][k]*phi[k-1][k-j]
		}
	}
	return pacf
}
