package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrSeriesNotFound   = fmt.Errorf("%w: series", ErrNotFound)
	ErrAnalysisNotFound = fmt.Errorf("%w: analysis", ErrNotFound)

	// Input validation errors
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrDegenerateSeries = errors.New("series has zero variance")
	ErrInvalidConfig    = errors.New("invalid analysis configuration")
	ErrInvalidHorizon   = errors.New("forecast horizon must be at least 1")

	// Estimation errors
	ErrEstimationFailed     = errors.New("parameter estimation failed")
	ErrAllCandidatesFailed  = errors.New("all candidate models failed estimation")
	ErrModelNotFitted       = errors.New("model has not been fitted")
	ErrSingularSystem       = errors.New("singular linear system")
	ErrNonFiniteCoefficient = errors.New("estimation produced non-finite coefficients")
)

// Error constructors with context

func NewInsufficientDataError(n, required int) error {
	return fmt.Errorf("%w: %d observations, need at least %d", ErrInsufficientData, n, required)
}

func NewConfigError(field string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidConfig, field, reason)
}

func NewCandidateError(p, d, q int, cause error) error {
	return fmt.Errorf("candidate (%d,%d,%d): %w", p, d, q, cause)
}
