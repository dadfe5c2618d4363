package evaluate

import (
	"tsinsight/internal/autocorr"

	"gonum.org/v1/gonum/stat/distuv"
)

// LjungBoxResult holds the portmanteau test outcome for a residual series.
type LjungBoxResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int
}

// LjungBox tests residuals for remaining autocorrelation up to the given lag
// count. The null hypothesis is no autocorrelation; fitdf (p+q) is subtracted
// from the degrees of freedom. Returns a zero-statistic pass when the
// residual series is too short or degenerate to test.
func LjungBox(residuals []float64, lags, fitdf int) LjungBoxResult {
	n := len(residuals)
	if lags >= n {
		lags = n - 1
	}
	if n < 3 || lags < 1 {
		return LjungBoxResult{PValue: 1, Lags: lags, DOF: 1}
	}

	acf := autocorr.ACF(residuals, lags)
	if acf == nil {
		return LjungBoxResult{PValue: 1, Lags: lags, DOF: 1}
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		q += (acf[k] * acf[k]) / float64(n-k)
	}
	q *= float64(n * (n + 2))

	dof := lags - fitdf
	if dof < 1 {
		dof = 1
	}

	chi := distuv.ChiSquared{K: float64(dof)}
	pValue := 1 - chi.CDF(q)

	return LjungBoxResult{
		Statistic: q,
		PValue:    pValue,
		Lags:      lags,
		DOF:       dof,
	}
}
