// Package autocorr computes the linear autocorrelation of a fixed-size
// window over a limited lag range.
//
// [Autocorrelator] uses the Wiener-Khinchin relation: the window is
// zero-padded to an FFT size large enough that circular wraparound cannot
// reach the requested lags, its power spectrum is taken and transformed
// back. [Direct] is the O(N*L) reference form.
package autocorr
