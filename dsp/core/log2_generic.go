//go:build !fastmath

package core

import "math"

const log2e = 1 / math.Ln2

// log2Approx evaluates log2 from the binary exponent plus a two-term atanh
// series on the mantissa folded into [sqrt(1/2), sqrt(2)).
func log2Approx(x float64) float64 {
	m, e := math.Frexp(x)
	if m < math.Sqrt2/2 {
		m *= 2
		e--
	}
	z := (m - 1) / (m + 1)
	z2 := z * z
	return float64(e) + z*(2+z2*(2.0/3.0))*log2e
}
