package stationarity

import (
	"math"

	"tsinsight/domain/arima"
	"tsinsight/domain/core"
	"tsinsight/domain/series"

	"gonum.org/v1/gonum/mat"
)

// ADF performs the Augmented Dickey-Fuller unit-root test.
// The null hypothesis is that the series has a unit root (is non-stationary);
// a p-value below the significance level rejects non-stationarity.
func ADF(s series.Series, significance float64) (arima.TestResult, error) {
	n := s.Len()
	if n < 10 {
		return arima.TestResult{}, core.NewInsufficientDataError(n, 10)
	}

	// Schwert-style default lag: floor((n-1)^(1/3))
	maxLag := int(math.Floor(math.Pow(float64(n-1), 1.0/3.0)))
	if maxLag >= n-2 {
		maxLag = n - 3
	}
	if maxLag < 0 {
		maxLag = 0
	}

	diff := s.Diff()

	// Regression: delta_y_t = alpha + beta*y_{t-1} + sum(gamma_i * delta_y_{t-i})
	// Unit root when beta = 0; the test statistic is beta's t-ratio.
	nObs := n - maxLag - 1
	if nObs < 10 {
		return arima.TestResult{}, core.NewInsufficientDataError(nObs, 10)
	}

	k := 2 + maxLag
	x := mat.NewDense(nObs, k, nil)
	y := mat.NewVecDense(nObs, nil)
	for i := 0; i < nObs; i++ {
		t := i + maxLag
		y.SetVec(i, diff.Values[t])
		x.Set(i, 0, 1)
		x.Set(i, 1, s.Values[t])
		for j := 1; j <= maxLag; j++ {
			x.Set(i, 1+j, diff.Values[t-j])
		}
	}

	coeffs, stderrs, err := ols(x, y)
	if err != nil {
		return arima.TestResult{}, err
	}
	if stderrs[1] == 0 {
		return arima.TestResult{}, core.ErrSingularSystem
	}

	tStat := coeffs[1] / stderrs[1]
	pValue := mackinnonPValue(tStat)

	return arima.TestResult{
		Statistic: tStat,
		PValue:    pValue,
		CriticalValues: map[string]float64{
			"1%":  -3.43,
			"5%":  -2.86,
			"10%": -2.57,
		},
		IsStationary: pValue < significance,
	}, nil
}

// ols solves the least-squares system and returns coefficients with their
// standard errors.
func ols(x *mat.Dense, y *mat.VecDense) (coeffs, stderrs []float64, err error) {
	n, k := x.Dims()

	var xtx mat.Dense
	xtx.Mul(x.T(), x)

	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, nil, core.ErrSingularSystem
	}

	var xty mat.VecDense
	xty.MulVec(x.T(), y)

	var beta mat.VecDense
	beta.MulVec(&xtxInv, &xty)

	coeffs = make([]float64, k)
	for i := 0; i < k; i++ {
		coeffs[i] = beta.AtVec(i)
	}

	sse := 0.0
	for i := 0; i < n; i++ {
		pred := 0.0
		for j := 0; j < k; j++ {
			pred += coeffs[j] * x.At(i, j)
		}
		r := y.AtVec(i) - pred
		sse += r * r
	}
	if n <= k {
		return nil, nil, core.ErrSingularSystem
	}

	s2 := sse / float64(n-k)
	stderrs = make([]float64, k)
	for i := 0; i < k; i++ {
		stderrs[i] = math.Sqrt(s2 * xtxInv.At(i, i))
	}
	return coeffs, stderrs, nil
}

// mackinnonPValue approximates the ADF p-value by interpolating the MacKinnon
// (1994) critical values for a constant-only regression.
func mackinnonPValue(stat float64) float64 {
	switch {
	case stat < -3.96:
		return 0.001
	case stat < -3.43:
		return 0.01
	case stat < -2.86:
		return 0.05
	case stat < -2.57:
		return 0.10
	case stat < -1.94:
		return 0.25
	case stat < -1.62:
		return 0.50
	default:
		return math.Min(0.5+(stat+1.62)*0.25, 0.99)
	}
}
