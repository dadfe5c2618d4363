// Package candidates maps autocorrelation patterns into a ranked list of
// model orders to fit, following the Box-Jenkins identification table.
package candidates

import (
	"sort"

	"tsinsight/domain/arima"
)

// Bounds limits the candidate search space.
type Bounds struct {
	MaxP    int
	MaxQ    int
	NModels int
}

// Generate produces up to NModels candidates, most promising first.
//
// Decision table over (PACF pattern, ACF pattern):
//
//	CUTOFF_AT(p) / TAILING      -> (p, d, 0)  ar_cutoff
//	TAILING      / CUTOFF_AT(q) -> (0, d, q)  ma_cutoff
//	CUTOFF_AT(p) / CUTOFF_AT(q) -> (p, d, q)  mixed
//	anything else               -> exhaustive grid search
//
// When the primary rule yields fewer than NModels candidates the remainder is
// filled by perturbing p and q by one in each direction, ordered by p+q, then
// by the grid. Candidates are de-duplicated by order. Output is a pure
// function of its inputs.
func Generate(ac arima.AutocorrelationResult, d int, bounds Bounds) []arima.Candidate {
	var out []arima.Candidate
	seen := make(map[arima.Order]bool)

	add := func(p, q int, r arima.Rationale) {
		if p < 0 || q < 0 || p > bounds.MaxP || q > bounds.MaxQ {
			return
		}
		order := arima.Order{P: p, D: d, Q: q}
		if seen[order] {
			return
		}
		seen[order] = true
		out = append(out, arima.Candidate{Order: order, Rationale: r})
	}

	pacf, acf := ac.PACFPattern, ac.ACFPattern
	var primary *arima.Candidate

	switch {
	case pacf.Kind == arima.PatternCutoff && acf.Kind == arima.PatternTailing:
		add(clamp(pacf.CutoffLag, bounds.MaxP), 0, arima.RationaleARCutoff)
	case pacf.Kind == arima.PatternTailing && acf.Kind == arima.PatternCutoff:
		add(0, clamp(acf.CutoffLag, bounds.MaxQ), arima.RationaleMACutoff)
	case pacf.Kind == arima.PatternCutoff && acf.Kind == arima.PatternCutoff:
		add(clamp(pacf.CutoffLag, bounds.MaxP), clamp(acf.CutoffLag, bounds.MaxQ), arima.RationaleMixed)
	}

	if len(out) > 0 {
		primary = &out[0]
	}

	if primary != nil {
		// Fill around the primary candidate with +-1 perturbations of p and
		// q, nearest (lowest p+q) first.
		perturbed := neighborhood(primary.Order.P, primary.Order.Q)
		for _, pq := range perturbed {
			if len(out) >= bounds.NModels {
				break
			}
			add(pq[0], pq[1], arima.RationaleExhaustive)
		}
	}

	// Exhaustive grid, by total complexity then by p. Covers both the
	// no-primary case and any remaining shortfall.
	for _, pq := range grid(bounds.MaxP, bounds.MaxQ) {
		if len(out) >= bounds.NModels {
			break
		}
		add(pq[0], pq[1], arima.RationaleExhaustive)
	}

	if len(out) > bounds.NModels {
		out = out[:bounds.NModels]
	}
	return out
}

func clamp(v, max int) int {
	if v > max {
		return max
	}
	return v
}

// neighborhood returns the +-1 perturbations of (p,q), ordered by total
// complexity ascending, then by p for determinism.
func neighborhood(p, q int) [][2]int {
	var out [][2]int
	for _, dp := range []int{-1, 0, 1} {
		for _, dq := range []int{-1, 0, 1} {
			if dp == 0 && dq == 0 {
				continue
			}
			out = append(out, [2]int{p + dp, q + dq})
		}
	}
	sortPairs(out)
	return out
}

// grid returns all (p,q) pairs within bounds ordered by p+q, then p.
func grid(maxP, maxQ int) [][2]int {
	out := make([][2]int, 0, (maxP+1)*(maxQ+1))
	for p := 0; p <= maxP; p++ {
		for q := 0; q <= maxQ; q++ {
			out = append(out, [2]int{p, q})
		}
	}
	sortPairs(out)
	return out
}

func sortPairs(pairs [][2]int) {
	sort.SliceStable(pairs, func(i, j int) bool {
		ci, cj := pairs[i][0]+pairs[i][1], pairs[j][0]+pairs[j][1]
		if ci != cj {
			return ci < cj
		}
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
}
