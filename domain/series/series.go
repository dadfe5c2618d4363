package series

import (
	"math"
	"time"

	"tsinsight/domain/core"

	"github.com/montanaflynn/stats"
)

// Series is an ordered sequence of real-valued observations.
// Timestamps are optional; when present they carry one entry per observation.
type Series struct {
	Values     []float64   `json:"values"`
	Timestamps []time.Time `json:"timestamps,omitempty"`
}

// New creates a Series from raw values.
func New(values []float64) Series {
	v := make([]float64, len(values))
	copy(v, values)
	return Series{Values: v}
}

// NewWithTimestamps creates a Series with an explicit time index.
func NewWithTimestamps(values []float64, timestamps []time.Time) Series {
	s := New(values)
	if len(timestamps) == len(values) {
		ts := make([]time.Time, len(timestamps))
		copy(ts, timestamps)
		s.Timestamps = ts
	}
	return s
}

// Len returns the number of observations.
func (s Series) Len() int {
	return len(s.Values)
}

// Validate checks that the series is usable: non-empty and every value finite.
func (s Series) Validate(minLen int) error {
	if len(s.Values) < minLen {
		return core.NewInsufficientDataError(len(s.Values), minLen)
	}
	for _, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return core.NewConfigError("series", "contains non-finite values")
		}
	}
	return nil
}

// Diff returns the first-order difference of the series.
// The result is one observation shorter than the input.
func (s Series) Diff() Series {
	if len(s.Values) < 2 {
		return Series{Values: []float64{}}
	}
	diff := make([]float64, len(s.Values)-1)
	for i := 1; i < len(s.Values); i++ {
		diff[i-1] = s.Values[i] - s.Values[i-1]
	}
	out := Series{Values: diff}
	if len(s.Timestamps) == len(s.Values) {
		out.Timestamps = s.Timestamps[1:]
	}
	return out
}

// DiffN applies first-order differencing n times.
func (s Series) DiffN(n int) Series {
	out := s
	for i := 0; i < n; i++ {
		out = out.Diff()
	}
	return out
}

// Mean returns the sample mean.
func (s Series) Mean() float64 {
	m, err := stats.Mean(s.Values)
	if err != nil {
		return 0
	}
	return m
}

// Variance returns the sample variance (n-1 denominator).
func (s Series) Variance() float64 {
	v, err := stats.SampleVariance(s.Values)
	if err != nil {
		return 0
	}
	return v
}

// IsConstant reports whether every observation equals the first.
func (s Series) IsConstant() bool {
	if len(s.Values) == 0 {
		return true
	}
	first := s.Values[0]
	for _, v := range s.Values[1:] {
		if v != first {
			return false
		}
	}
	return true
}

// Summary holds descriptive statistics for presentation layers.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// Describe computes descriptive statistics over the series.
func (s Series) Describe() Summary {
	mean, _ := stats.Mean(s.Values)
	sd, _ := stats.StandardDeviationSample(s.Values)
	min, _ := stats.Min(s.Values)
	max, _ := stats.Max(s.Values)
	median, _ := stats.Median(s.Values)
	return Summary{
		Count:  len(s.Values),
		Mean:   mean,
		StdDev: sd,
		Min:    min,
		Max:    max,
		Median: median,
	}
}

// Tail returns the last n values (or all values when n exceeds the length).
func (s Series) Tail(n int) []float64 {
	if n >= len(s.Values) {
		n = len(s.Values)
	}
	out := make([]float64, n)
	copy(out, s.Values[len(s.Values)-n:])
	return out
}
