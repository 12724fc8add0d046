// Package nlms provides a normalized least mean squares adaptive FIR filter.
//
// For each input pair the [Filter] predicts the desired sample d(n) from the
// most recent Order() reference samples x(n), x(n-1), ..., returns the error
// e(n) = d(n) - y(n) and moves the weights along the error gradient, scaled
// by the reference power in the delay line.
package nlms
