package pitch

import (
	"fmt"
	"math"
)

// nsdfEpsilon is the energy below which a lag is treated as silent.
const nsdfEpsilon = 0x1p-23

// MPrime computes m'(tau) = sum_j x[j]^2 + x[j+tau]^2 over the overlapping
// part of window for tau in [0, len(dst)), from r0 = r(0), using
//
//	m'(0)   = 2*r(0)
//	m'(tau) = m'(tau-1) - x[N-tau]^2 - x[tau-1]^2
func MPrime(dst, window []float64, r0 float64) {
	n := len(window)
	if len(dst) > n {
		panic(fmt.Sprintf("pitch: %d lags exceed window of %d", len(dst), n))
	}
	if len(dst) == 0 {
		return
	}

	dst[0] = 2 * r0
	for tau := 1; tau < len(dst); tau++ {
		a := window[n-tau]
		b := window[tau-1]
		dst[tau] = dst[tau-1] - a*a - b*b
	}
}

// MPrimeDirect computes m'(tau) by direct summation. It is O(N*lags) and
// serves as a reference for [MPrime].
func MPrimeDirect(dst, window []float64) {
	n := len(window)
	if len(dst) > n {
		panic(fmt.Sprintf("pitch: %d lags exceed window of %d", len(dst), n))
	}

	for tau := range dst {
		sum := 0.0
		for j := 0; j < n-tau; j++ {
			a := window[j]
			b := window[j+tau]
			sum += a*a + b*b
		}
		dst[tau] = sum
	}
}

// NSDF writes n(tau) = 2*r(tau)/m'(tau) to dst, or 0 where |m'(tau)| is
// below single-precision epsilon. dst may alias r or mPrime.
func NSDF(dst, r, mPrime []float64) {
	if len(r) < len(dst) || len(mPrime) < len(dst) {
		panic(fmt.Sprintf("pitch: NSDF inputs %d/%d shorter than output %d", len(r), len(mPrime), len(dst)))
	}

	for tau := range dst {
		m := mPrime[tau]
		if math.Abs(m) <= nsdfEpsilon {
			dst[tau] = 0
			continue
		}
		dst[tau] = 2 * r[tau] / m
	}
}
