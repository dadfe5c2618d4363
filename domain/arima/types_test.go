package arima

import (
	"errors"
	"math"
	"testing"

	"tsinsight/domain/core"
)

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("Default config should validate, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative max_p", func(c *Config) { c.MaxP = -1 }},
		{"negative max_q", func(c *Config) { c.MaxQ = -1 }},
		{"negative max_d", func(c *Config) { c.MaxD = -1 }},
		{"zero n_models", func(c *Config) { c.NModels = 0 }},
		{"significance at 0", func(c *Config) { c.SignificanceLevel = 0 }},
		{"significance at 1", func(c *Config) { c.SignificanceLevel = 1 }},
		{"alpha out of range", func(c *Config) { c.Alpha = 1.5 }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, core.ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", tc.name, err)
		}
	}
}

func TestMinSeriesLen(t *testing.T) {
	cfg := DefaultConfig()
	// max(5,5) + 2 + 2
	if got := cfg.MinSeriesLen(); got != 9 {
		t.Errorf("MinSeriesLen = %d, want 9", got)
	}

	cfg.MaxP, cfg.MaxQ, cfg.MaxD = 2, 3, 1
	if got := cfg.MinSeriesLen(); got != 6 {
		t.Errorf("MinSeriesLen = %d, want 6", got)
	}
}

func TestOrderComplexity(t *testing.T) {
	o := Order{P: 2, D: 1, Q: 3}
	if o.Complexity() != 5 {
		t.Errorf("Complexity = %d, want 5", o.Complexity())
	}
	if o.String() != "(2,1,3)" {
		t.Errorf("String = %q", o.String())
	}
}

func TestLagValueSignificant(t *testing.T) {
	cases := []struct {
		value, bound float64
		want         bool
	}{
		{0.3, 0.2, true},
		{-0.3, 0.2, true},
		{0.2, 0.2, false},  // exactly at the bound is inside
		{-0.2, 0.2, false},
		{0.1, 0.2, false},
	}
	for _, tc := range cases {
		lv := LagValue{Lag: 1, Value: tc.value, Bound: tc.bound}
		if lv.Significant() != tc.want {
			t.Errorf("Significant(%v, bound %v) = %v, want %v", tc.value, tc.bound, lv.Significant(), tc.want)
		}
	}
}

func TestPatternString(t *testing.T) {
	p := Pattern{Kind: PatternCutoff, CutoffLag: 3}
	if p.String() != "cutoff_at(3)" {
		t.Errorf("String = %q", p.String())
	}
	if (Pattern{Kind: PatternTailing}).String() != "tailing" {
		t.Error("Expected tailing pattern string")
	}
}

func TestEvaluationReportLess(t *testing.T) {
	mk := func(aic, bic float64, p, q int) EvaluationReport {
		return EvaluationReport{
			Order: Order{P: p, Q: q},
			Fit:   FitStatistics{AIC: aic, BIC: bic},
		}
	}

	// Lower AIC wins outright.
	if !mk(10, 99, 5, 5).Less(mk(11, 1, 0, 0)) {
		t.Error("Lower AIC should rank first regardless of BIC")
	}
	// Equal AIC: lower BIC wins.
	if !mk(10, 12, 5, 5).Less(mk(10, 13, 0, 0)) {
		t.Error("Equal AIC should fall back to BIC")
	}
	// Equal AIC and BIC: simpler model wins.
	if !mk(10, 12, 1, 0).Less(mk(10, 12, 1, 1)) {
		t.Error("Full tie should prefer lower p+q")
	}
	if mk(10, 12, 1, 1).Less(mk(10, 12, 1, 0)) {
		t.Error("Complex model must not rank above simpler tie")
	}
}

func TestEstimationResultFinite(t *testing.T) {
	est := EstimationResult{
		ARCoeffs: []float64{0.5},
		MACoeffs: []float64{},
		Constant: 1,
		Variance: 2,
	}
	if !est.Finite() {
		t.Error("Expected finite result")
	}

	est.ARCoeffs[0] = math.NaN()
	if est.Finite() {
		t.Error("NaN coefficient should not be finite")
	}

	est.ARCoeffs[0] = 0.5
	est.Variance = math.Inf(1)
	if est.Finite() {
		t.Error("Infinite variance should not be finite")
	}
}

func TestBestReturnsTopRanked(t *testing.T) {
	r := AnalysisReport{}
	if r.Best() != nil {
		t.Error("Empty report should have no best model")
	}

	r.Reports = []EvaluationReport{
		{Order: Order{P: 1}, Fit: FitStatistics{AIC: 5}},
		{Order: Order{P: 2}, Fit: FitStatistics{AIC: 9}},
	}
	best := r.Best()
	if best == nil || best.Order.P != 1 {
		t.Errorf("Best = %+v, want the first ranked entry", best)
	}
}
