package ports

import (
	"tsinsight/domain/arima"
)

// Optimizer numerically refines ARMA coefficients against a (differenced)
// series, starting from an initial estimate. Implementations must be
// deterministic: the same inputs always produce the same result, and a run
// that exhausts its iteration budget returns the best iterate reached with
// Converged set to false rather than an error.
type Optimizer interface {
	Fit(values []float64, order arima.Order, initial arima.EstimationResult) arima.EstimationResult
}
