package stationarity

import (
	"math"

	"tsinsight/domain/arima"
	"tsinsight/domain/core"
	"tsinsight/domain/series"
)

// KPSS performs the Kwiatkowski-Phillips-Schmidt-Shin test for level
// stationarity. The null hypothesis is that the series is stationary; a
// p-value at or above the significance level fails to reject stationarity.
func KPSS(s series.Series, significance float64) (arima.TestResult, error) {
	n := s.Len()
	if n < 10 {
		return arima.TestResult{}, core.NewInsufficientDataError(n, 10)
	}

	nlags := int(math.Ceil(12 * math.Pow(float64(n)/100, 0.25)))
	if nlags >= n {
		nlags = n - 1
	}

	// Demean (level stationarity, constant-only regression).
	mean := s.Mean()
	residuals := make([]float64, n)
	for i, v := range s.Values {
		residuals[i] = v - mean
	}

	cumSum := make([]float64, n)
	cumSum[0] = residuals[0]
	for i := 1; i < n; i++ {
		cumSum[i] = cumSum[i-1] + residuals[i]
	}

	// Long-run variance via Newey-West with Bartlett weights.
	s2 := 0.0
	for _, r := range residuals {
		s2 += r * r
	}
	s2 /= float64(n)

	for l := 1; l <= nlags; l++ {
		cov := 0.0
		for i := l; i < n; i++ {
			cov += residuals[i] * residuals[i-l]
		}
		cov /= float64(n)
		weight := 1.0 - float64(l)/float64(nlags+1)
		s2 += 2 * weight * cov
	}
	if s2 <= 0 {
		s2 = 1e-10
	}

	etaSq := 0.0
	for _, cs := range cumSum {
		etaSq += cs * cs
	}
	stat := etaSq / (float64(n) * float64(n) * s2)

	pValue := kpssPValue(stat)

	return arima.TestResult{
		Statistic: stat,
		PValue:    pValue,
		CriticalValues: map[string]float64{
			"10%": 0.347,
			"5%":  0.463,
			"1%":  0.739,
		},
		IsStationary: pValue >= significance,
	}, nil
}

// kpssPValue interpolates the level-stationarity critical value table.
func kpssPValue(stat float64) float64 {
	switch {
	case stat > 0.739:
		return 0.01
	case stat > 0.463:
		return 0.05
	case stat > 0.347:
		return 0.10
	default:
		return math.Min(0.10+(0.347-stat)*0.5, 0.99)
	}
}
