// Package frequency describes the shape of a one-sided spectrum.
//
// Spectra are non-negative bin values, typically powers, where bin i lies
// at i*binHz. Values act as weights, so magnitude and power spectra give
// different but equally valid descriptors.
package frequency
