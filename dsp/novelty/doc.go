// Package novelty detects note onsets with spectral-flux novelty.
//
// Each analysis window is weighted, transformed and reduced to a compressed
// power spectrum. The novelty of a window is the summed positive change of
// that spectrum against the previous window, normalized by the window size.
// A [PeakPicker] turns the resulting novelty curve into discrete onset
// events.
package novelty
