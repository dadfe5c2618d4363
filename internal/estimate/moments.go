// Package estimate fits ARMA coefficients for a candidate order by the
// method of moments and by conditional-likelihood optimization.
package estimate

import (
	"math"

	"tsinsight/domain/arima"
	"tsinsight/internal/autocorr"
)

// maMomentIters bounds the fixed-point refinement for MA moment estimates.
const maMomentIters = 50

// Moments derives ARMA coefficients algebraically from sample
// autocovariances: Yule-Walker for the AR part, a closed-form or fixed-point
// approximation for the MA part. It needs no iterative likelihood solve, so
// the result is always marked converged with zero iterations.
func Moments(values []float64, order arima.Order) arima.EstimationResult {
	p, q := order.P, order.Q
	n := len(values)

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	est := arima.EstimationResult{
		Order:     order,
		Method:    arima.MethodMoments,
		Constant:  mean,
		Converged: true,
	}

	if p == 0 && q == 0 {
		variance := 0.0
		for _, v := range values {
			d := v - mean
			variance += d * d
		}
		if n > 1 {
			variance /= float64(n - 1)
		}
		est.ARCoeffs = []float64{}
		est.MACoeffs = []float64{}
		est.Variance = variance
		return est
	}

	maxLag := p + q
	acf := autocorr.ACF(values, maxLag)
	if acf == nil {
		est.ARCoeffs = make([]float64, p)
		est.MACoeffs = make([]float64, q)
		est.Variance = math.NaN()
		return est
	}

	if p > 0 {
		est.ARCoeffs = yuleWalker(acf, p)
	} else {
		est.ARCoeffs = []float64{}
	}

	if q > 0 {
		// Estimate the MA part from the series with the AR component
		// filtered out; for a pure MA model this is the series itself.
		maSource := values
		if p > 0 {
			maSource = arFilter(values, mean, est.ARCoeffs)
		}
		est.MACoeffs = maMoments(maSource, q)
	} else {
		est.MACoeffs = []float64{}
	}

	_, residuals := Filter(values, est)
	est.Variance = ResidualVariance(residuals, p, q)
	return est
}

// yuleWalker solves the Yule-Walker equations for AR coefficients using the
// Levinson-Durbin recursion over the sample ACF.
func yuleWalker(acf []float64, order int) []float64 {
	phi := make([]float64, order)
	if len(acf) <= order {
		return phi
	}

	phi[0] = acf[1]
	if order == 1 {
		return phi
	}

	v := 1 - phi[0]*phi[0]
	for i := 1; i < order; i++ {
		lambda := acf[i+1]
		for j := 0; j < i; j++ {
			lambda -= phi[j] * acf[i-j]
		}
		if v == 0 {
			break
		}
		lambda /= v

		next := make([]float64, i+1)
		for j := 0; j < i; j++ {
			next[j] = phi[j] - lambda*phi[i-1-j]
		}
		next[i] = lambda
		copy(phi, next)

		v *= 1 - lambda*lambda
		if v <= 0 {
			break
		}
	}
	return phi
}

// arFilter removes the fitted AR component, leaving the approximate MA-driven
// remainder used to moment-match the MA coefficients.
func arFilter(values []float64, mean float64, phi []float64) []float64 {
	p := len(phi)
	out := make([]float64, 0, len(values)-p)
	for t := p; t < len(values); t++ {
		v := values[t] - mean
		for i := 0; i < p; i++ {
			v -= phi[i] * (values[t-i-1] - mean)
		}
		out = append(out, v)
	}
	return out
}

// maMoments estimates MA coefficients by matching sample autocorrelations.
// MA(1) uses the closed-form invertible root of rho1 = theta/(1+theta^2);
// higher orders run a bounded fixed-point iteration on the MA autocovariance
// identities. Both paths are deterministic.
func maMoments(values []float64, q int) []float64 {
	theta := make([]float64, q)
	acf := autocorr.ACF(values, q)
	if acf == nil {
		return theta
	}

	if q == 1 {
		theta[0] = maOneFromRho(acf[1])
		return theta
	}

	// Fixed-point refinement: theta_k = rho_k*(1 + sum theta^2) - cross terms.
	for iter := 0; iter < maMomentIters; iter++ {
		norm := 1.0
		for _, th := range theta {
			norm += th * th
		}
		maxDelta := 0.0
		for k := 1; k <= q; k++ {
			cross := 0.0
			for j := 1; j+k <= q; j++ {
				cross += theta[j-1] * theta[j+k-1]
			}
			next := acf[k]*norm - cross
			next = clampCoeff(next)
			if d := math.Abs(next - theta[k-1]); d > maxDelta {
				maxDelta = d
			}
			theta[k-1] = next
		}
		if maxDelta < 1e-8 {
			break
		}
	}
	return theta
}

// maOneFromRho solves rho = theta/(1+theta^2) picking the invertible root.
func maOneFromRho(rho float64) float64 {
	if rho == 0 {
		return 0
	}
	if math.Abs(rho) >= 0.5 {
		// No real root; the boundary estimate keeps the sign.
		return clampCoeff(0.5 * sign(rho))
	}
	disc := 1/(rho*rho) - 4
	r1 := (1/rho - math.Sqrt(disc)) / 2
	r2 := (1/rho + math.Sqrt(disc)) / 2
	if math.Abs(r1) < math.Abs(r2) {
		return clampCoeff(r1)
	}
	return clampCoeff(r2)
}

func clampCoeff(v float64) float64 {
	return math.Max(-0.99, math.Min(0.99, v))
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
