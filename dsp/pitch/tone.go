package pitch

import "math"

// Default tone classification parameters.
const (
	DefaultClarityThreshold = 0.9
	DefaultClarityTolerance = 0.5
	DefaultPeriodTolerance  = 0.05
)

// IsTone reports whether the window holds a stable tone, using the default
// thresholds.
func (r *Result) IsTone() bool {
	return r.IsToneWithOptions(DefaultClarityThreshold, DefaultClarityTolerance, DefaultPeriodTolerance)
}

// IsToneWithOptions classifies the result as tonal.
//
// Clarity must exceed clarityThreshold. If a later key maximum exists near
// twice the selected lag, it must also lie within periodTolerance (relative)
// of exactly twice that lag, and its value must not be more than
// clarityTolerance below the selected maximum's value.
func (r *Result) IsToneWithOptions(clarityThreshold, clarityTolerance, periodTolerance float64) bool {
	if !r.IsValid() {
		return false
	}

	next, ok := r.keyMaxNearDoublePeriod()
	if !ok {
		return r.clarity > clarityThreshold
	}

	sel := r.keyMaxima[r.selected]
	relLagErr := math.Abs((next.Lag-sel.Lag)-sel.Lag) / sel.Lag
	return r.clarity > clarityThreshold &&
		relLagErr < periodTolerance &&
		next.Value-sel.Value > -clarityTolerance
}

// keyMaxNearDoublePeriod returns the key maximum after the selected one whose
// lag is closest to twice the selected lag. A maximum committed at the last
// NSDF lag ends the search.
func (r *Result) keyMaxNearDoublePeriod() (KeyMaximum, bool) {
	target := 2 * r.keyMaxima[r.selected].Lag
	last := len(r.nsdf) - 1

	best := -1
	bestDist := 0.0
	for i := r.selected + 1; i < r.keyMaxCount; i++ {
		km := r.keyMaxima[i]
		if km.LagIndex == last {
			break
		}
		d := math.Abs(km.Lag - target)
		if best < 0 || d < bestDist {
			best = i
			bestDist = d
		}
	}

	if best < 0 {
		return KeyMaximum{}, false
	}
	return r.keyMaxima[best], true
}
