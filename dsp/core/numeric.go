package core

import "math"

// Clamp limits value to the inclusive range [lo, hi]. Swapped bounds are
// reordered.
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	switch {
	case value < lo:
		return lo
	case value > hi:
		return hi
	default:
		return value
	}
}

// FlushDenormals converts tiny values to exact zero.
func FlushDenormals(x float64) float64 {
	const tiny = 1e-30
	if x > -tiny && x < tiny {
		return 0
	}

	return x
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
