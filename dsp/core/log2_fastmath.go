//go:build fastmath

package core

import "github.com/meko-christian/algo-approx"

const ln2 = 0.693147180559945309417232121458

// log2Approx computes log2(x) as ln(x)/ln(2) using the fast logarithm.
func log2Approx(x float64) float64 {
	return approx.FastLog(x) / ln2
}
