package autocorr

import (
	"math"

	"tsinsight/domain/arima"
)

// monotoneSlack absorbs float noise when checking magnitude decay.
const monotoneSlack = 1e-9

// Classify tags a correlation sequence over lags 1..maxLag.
//
// CUTOFF_AT(k): significant for lags 1..k and insignificant for every lag
// beyond k. A sequence with no significant lag is CUTOFF_AT(0); the cutoff
// condition holds vacuously. When no clean cutoff exists (significance
// reappears after a gap, or every lag through max_lag is significant), the
// sequence is TAILING if its magnitude is monotonically non-increasing, else
// UNDETERMINED.
func Classify(values []arima.LagValue) arima.Pattern {
	if len(values) == 0 {
		return arima.Pattern{Kind: arima.PatternUndetermined}
	}

	lastSignificant := 0
	for _, lv := range values {
		if lv.Significant() {
			lastSignificant = lv.Lag
		}
	}

	// A cutoff needs at least one insignificant tail lag: a sequence that is
	// significant through max_lag has not been observed to die out.
	maxLag := values[len(values)-1].Lag
	clean := lastSignificant < maxLag || lastSignificant == 0
	for _, lv := range values {
		if lv.Lag <= lastSignificant && !lv.Significant() {
			clean = false
			break
		}
	}
	if clean {
		return arima.Pattern{Kind: arima.PatternCutoff, CutoffLag: lastSignificant}
	}

	if monotoneDecay(values) {
		return arima.Pattern{Kind: arima.PatternTailing}
	}
	return arima.Pattern{Kind: arima.PatternUndetermined}
}

func monotoneDecay(values []arima.LagValue) bool {
	for i := 1; i < len(values); i++ {
		if math.Abs(values[i].Value) > math.Abs(values[i-1].Value)+monotoneSlack {
			return false
		}
	}
	return true
}
