package estimate

import (
	"math"

	"tsinsight/domain/arima"
)

// CSSOptimizer maximizes the conditional Gaussian likelihood of an ARMA
// process by gradient descent on the conditional sum of squares, starting
// from the moments estimate. It satisfies ports.Optimizer.
type CSSOptimizer struct {
	MaxIter      int
	Tolerance    float64
	LearningRate float64
}

// NewCSSOptimizer returns an optimizer with the default budget.
func NewCSSOptimizer() *CSSOptimizer {
	return &CSSOptimizer{
		MaxIter:      200,
		Tolerance:    1e-8,
		LearningRate: 0.01,
	}
}

// Fit refines the initial estimate. When the iteration budget is exhausted
// or the step stalls before the flatness tolerance is met, the best iterate
// reached is returned with Converged=false.
func (o *CSSOptimizer) Fit(values []float64, order arima.Order, initial arima.EstimationResult) arima.EstimationResult {
	p, q := order.P, order.Q
	n := len(values)

	est := arima.EstimationResult{
		Order:    order,
		Method:   arima.MethodMLE,
		Constant: initial.Constant,
		ARCoeffs: append([]float64(nil), initial.ARCoeffs...),
		MACoeffs: append([]float64(nil), initial.MACoeffs...),
	}
	for len(est.ARCoeffs) < p {
		est.ARCoeffs = append(est.ARCoeffs, 0)
	}
	for len(est.MACoeffs) < q {
		est.MACoeffs = append(est.MACoeffs, 0)
	}

	start := p
	if q > start {
		start = q
	}
	if n <= start {
		est.Variance = math.NaN()
		return est
	}

	prevSSE := math.Inf(1)
	for iter := 0; iter < o.MaxIter; iter++ {
		est.Iterations = iter + 1

		_, residuals := Filter(values, est)

		sse := 0.0
		for t := start; t < n; t++ {
			sse += residuals[t] * residuals[t]
		}

		if math.Abs(prevSSE-sse) < o.Tolerance {
			est.Converged = true
			break
		}
		prevSSE = sse

		arGrad := make([]float64, p)
		maGrad := make([]float64, q)
		for t := start; t < n; t++ {
			for i := 0; i < p; i++ {
				arGrad[i] -= 2 * residuals[t] * (values[t-i-1] - est.Constant)
			}
			for j := 0; j < q; j++ {
				maGrad[j] -= 2 * residuals[t] * residuals[t-j-1]
			}
		}

		for i := 0; i < p; i++ {
			est.ARCoeffs[i] = clampCoeff(est.ARCoeffs[i] - o.LearningRate*arGrad[i]/float64(n))
		}
		for j := 0; j < q; j++ {
			est.MACoeffs[j] = clampCoeff(est.MACoeffs[j] - o.LearningRate*maGrad[j]/float64(n))
		}
	}

	_, residuals := Filter(values, est)
	est.Variance = ResidualVariance(residuals, p, q)
	return est
}
