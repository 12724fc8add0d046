// Package level provides block level measurements of time-domain signals.
//
// All functions return 0 for an empty signal, and the dB variants -Inf.
package level

import (
	"math"

	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Energy returns the sum of squares.
func Energy(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	return vecmath.DotProduct(signal, signal)
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	return math.Sqrt(Energy(signal) / float64(len(signal)))
}

// Peak returns the largest absolute sample value.
func Peak(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	return vecmath.MaxAbs(signal)
}

// DC returns the mean of the signal.
func DC(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	return vecmath.Sum(signal) / float64(len(signal))
}

// CrestFactor returns Peak/RMS, or 0 for a silent signal.
func CrestFactor(signal []float64) float64 {
	r := RMS(signal)
	if r == 0 {
		return 0
	}
	return Peak(signal) / r
}

// PeakDB returns Peak in dB relative to full scale (1.0).
func PeakDB(signal []float64) float64 {
	return core.LinearToDB(Peak(signal))
}

// RMSDB returns RMS in dB relative to full scale (1.0).
func RMSDB(signal []float64) float64 {
	return core.LinearToDB(RMS(signal))
}

// ZeroCrossings counts sign changes between consecutive samples.
func ZeroCrossings(signal []float64) int {
	count := 0
	for i := 1; i < len(signal); i++ {
		if signal[i-1]*signal[i] < 0 {
			count++
		}
	}
	return count
}
