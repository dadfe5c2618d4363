package arima

import (
	"fmt"
	"math"

	"tsinsight/domain/core"
	"tsinsight/domain/series"
)

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Order represents ARIMA model order (p, d, q).
type Order struct {
	P int `json:"p"` // AR terms
	D int `json:"d"` // differencing count
	Q int `json:"q"` // MA terms
}

// Complexity returns p+q, the tie-break used when ranking reports.
func (o Order) Complexity() int {
	return o.P + o.Q
}

func (o Order) String() string {
	return fmt.Sprintf("(%d,%d,%d)", o.P, o.D, o.Q)
}

// PatternKind classifies the shape of an ACF or PACF sequence.
type PatternKind string

const (
	PatternCutoff       PatternKind = "cutoff"
	PatternTailing      PatternKind = "tailing"
	PatternUndetermined PatternKind = "undetermined"
)

// Pattern is the tagged classification of a correlation function.
// CutoffLag is meaningful only when Kind == PatternCutoff: values beyond that
// lag fall inside the confidence bound.
type Pattern struct {
	Kind      PatternKind `json:"kind"`
	CutoffLag int         `json:"cutoff_lag,omitempty"`
}

func (p Pattern) String() string {
	if p.Kind == PatternCutoff {
		return fmt.Sprintf("cutoff_at(%d)", p.CutoffLag)
	}
	return string(p.Kind)
}

// Rationale records why a candidate order was proposed.
type Rationale string

const (
	RationaleARCutoff   Rationale = "ar_cutoff"
	RationaleMACutoff   Rationale = "ma_cutoff"
	RationaleMixed      Rationale = "mixed"
	RationaleExhaustive Rationale = "exhaustive"
)

// Candidate is a proposed model order, produced before any fitting.
type Candidate struct {
	Order     Order     `json:"order"`
	Rationale Rationale `json:"rationale"`
}

// Method identifies a parameter estimation method.
type Method string

const (
	MethodMoments Method = "moments"
	MethodMLE     Method = "max_likelihood"
)

// EstimationResult holds one method's parameter estimates for a candidate.
type EstimationResult struct {
	Order      Order     `json:"order"`
	Method     Method    `json:"method"`
	ARCoeffs   []float64 `json:"ar_coeffs"`
	MACoeffs   []float64 `json:"ma_coeffs"`
	Constant   float64   `json:"constant"`
	Variance   float64   `json:"variance"` // residual (innovation) variance
	Converged  bool      `json:"converged"`
	Iterations int       `json:"iterations"`
}

// Finite reports whether every estimated quantity is a usable number.
func (e EstimationResult) Finite() bool {
	for _, c := range e.ARCoeffs {
		if !isFinite(c) {
			return false
		}
	}
	for _, c := range e.MACoeffs {
		if !isFinite(c) {
			return false
		}
	}
	return isFinite(e.Constant) && isFinite(e.Variance)
}

// TestResult holds a single hypothesis test outcome.
type TestResult struct {
	Statistic      float64            `json:"statistic"`
	PValue         float64            `json:"p_value"`
	CriticalValues map[string]float64 `json:"critical_values"`
	IsStationary   bool               `json:"is_stationary"`
}

// StationarityReport is the Stationarity Analyzer output.
type StationarityReport struct {
	IsStationary      bool                  `json:"is_stationary"`
	Tests             map[string]TestResult `json:"tests"`
	DifferencingOrder int                   `json:"differencing_order"`
	Differenced       series.Series         `json:"differenced_series"`
	// MaxDiffExceeded is set when no level up to max_d passed both tests;
	// downstream stages proceed with d = max_d.
	MaxDiffExceeded bool `json:"max_diff_exceeded,omitempty"`
}

// LagValue is one lag of an ACF or PACF sequence.
type LagValue struct {
	Lag   int     `json:"lag"`
	Value float64 `json:"value"`
	Bound float64 `json:"confidence_bound"`
}

// Significant reports whether the value escapes the symmetric bound.
func (l LagValue) Significant() bool {
	return l.Value > l.Bound || l.Value < -l.Bound
}

// AutocorrelationResult is the Autocorrelation Analyzer output.
// ACF and PACF cover lags 1..max_lag; lag 0 is excluded (always 1 for ACF).
type AutocorrelationResult struct {
	ACF         []LagValue `json:"acf"`
	PACF        []LagValue `json:"pacf"`
	ACFPattern  Pattern    `json:"acf_pattern"`
	PACFPattern Pattern    `json:"pacf_pattern"`
}

// FitStatistics holds fit-quality scores for a fitted candidate.
type FitStatistics struct {
	AIC           float64 `json:"aic"`
	BIC           float64 `json:"bic"`
	RSquared      float64 `json:"r_squared"`
	LogLikelihood float64 `json:"log_likelihood"`
}

// ResidualDiagnostics holds residual white-noise diagnostics.
type ResidualDiagnostics struct {
	LjungBoxStatistic float64 `json:"ljung_box_statistic"`
	LjungBoxPValue    float64 `json:"ljung_box_p_value"`
	IsWhiteNoise      bool    `json:"is_white_noise"`
	Mean              float64 `json:"mean"`
	Variance          float64 `json:"variance"`
}

// EvaluationReport is one ranked entry of the Model Evaluator output.
type EvaluationReport struct {
	Order       Order               `json:"order"`
	Rationale   Rationale           `json:"rationale"`
	Fit         FitStatistics       `json:"fit_statistics"`
	Residuals   ResidualDiagnostics `json:"residual_diagnostics"`
	Estimation  EstimationResult    `json:"chosen_estimation"`
	Alternative *EstimationResult   `json:"alternative_estimation,omitempty"`
}

// Less defines the total order over reports: ascending AIC, ties broken by
// ascending BIC, then by ascending model complexity p+q.
func (r EvaluationReport) Less(other EvaluationReport) bool {
	if r.Fit.AIC != other.Fit.AIC {
		return r.Fit.AIC < other.Fit.AIC
	}
	if r.Fit.BIC != other.Fit.BIC {
		return r.Fit.BIC < other.Fit.BIC
	}
	return r.Order.Complexity() < other.Order.Complexity()
}

// SkippedCandidate records a candidate excluded from ranking.
type SkippedCandidate struct {
	Order  Order  `json:"order"`
	Reason string `json:"reason"`
}

// ForecastResult is the Forecaster output, on the original series scale.
type ForecastResult struct {
	Horizon         int       `json:"horizon"`
	PointForecast   []float64 `json:"point_forecast"`
	LowerBound      []float64 `json:"lower_bound"`
	UpperBound      []float64 `json:"upper_bound"`
	ConfidenceLevel float64   `json:"confidence_level"`
}

// Config carries the recognized engine options.
type Config struct {
	AutoDiff          bool    `json:"auto_diff"`
	MaxP              int     `json:"max_p"`
	MaxQ              int     `json:"max_q"`
	MaxD              int     `json:"max_d"`
	NModels           int     `json:"n_models"`
	SignificanceLevel float64 `json:"significance_level"`
	Alpha             float64 `json:"alpha"`
}

// DefaultConfig returns the documented engine defaults.
func DefaultConfig() Config {
	return Config{
		AutoDiff:          true,
		MaxP:              5,
		MaxQ:              5,
		MaxD:              2,
		NModels:           3,
		SignificanceLevel: 0.05,
		Alpha:             0.05,
	}
}

// Validate checks configuration bounds.
func (c Config) Validate() error {
	if c.MaxP < 0 {
		return core.NewConfigError("max_p", "must be >= 0")
	}
	if c.MaxQ < 0 {
		return core.NewConfigError("max_q", "must be >= 0")
	}
	if c.MaxD < 0 {
		return core.NewConfigError("max_d", "must be >= 0")
	}
	if c.NModels < 1 {
		return core.NewConfigError("n_models", "must be >= 1")
	}
	if c.SignificanceLevel <= 0 || c.SignificanceLevel >= 1 {
		return core.NewConfigError("significance_level", "must be in (0,1)")
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return core.NewConfigError("alpha", "must be in (0,1)")
	}
	return nil
}

// MinSeriesLen returns the minimum series length the configuration tolerates:
// the search bounds plus differencing plus one observation.
func (c Config) MinSeriesLen() int {
	m := c.MaxP
	if c.MaxQ > m {
		m = c.MaxQ
	}
	return m + c.MaxD + 2
}
