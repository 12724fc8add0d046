package frequency

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/stat"
)

// DefaultRolloffFraction is the energy fraction used by [Analyzer.Describe].
const DefaultRolloffFraction = 0.85

// Shape holds spectral shape descriptors.
type Shape struct {
	Centroid      float64 // weighted mean frequency (Hz)
	Spread        float64 // weighted standard deviation around the centroid (Hz)
	Flatness      float64 // geometric over arithmetic mean, 0..1, DC excluded
	Rolloff       float64 // frequency below which DefaultRolloffFraction of the weight lies (Hz)
	PeakFrequency float64 // frequency of the largest bin (Hz)
}

// Analyzer computes Shape for spectra of a fixed bin count.
type Analyzer struct {
	binHz float64
	freqs []float64
}

// NewAnalyzer creates an Analyzer for spectra with bins values spaced binHz
// apart.
func NewAnalyzer(bins int, binHz float64) (*Analyzer, error) {
	if bins < 2 {
		return nil, fmt.Errorf("frequency: need at least 2 bins: %d", bins)
	}
	if !(binHz > 0) || math.IsInf(binHz, 0) {
		return nil, fmt.Errorf("frequency: bin spacing must be positive and finite: %v", binHz)
	}

	freqs := make([]float64, bins)
	for i := range freqs {
		freqs[i] = float64(i) * binHz
	}
	return &Analyzer{binHz: binHz, freqs: freqs}, nil
}

// Bins returns the expected spectrum length.
func (a *Analyzer) Bins() int { return len(a.freqs) }

// BinHz returns the bin spacing.
func (a *Analyzer) BinHz() float64 { return a.binHz }

// Describe computes all descriptors. len(spectrum) must equal Bins(). An
// all-zero spectrum yields a zero Shape.
func (a *Analyzer) Describe(spectrum []float64) Shape {
	if len(spectrum) != len(a.freqs) {
		panic(fmt.Sprintf("frequency: spectrum has %d bins, want %d", len(spectrum), len(a.freqs)))
	}

	total := vecmath.Sum(spectrum)
	if total <= 0 {
		return Shape{}
	}

	mean, variance := stat.PopMeanVariance(a.freqs, spectrum)
	return Shape{
		Centroid:      mean,
		Spread:        math.Sqrt(variance),
		Flatness:      Flatness(spectrum),
		Rolloff:       a.rolloff(spectrum, DefaultRolloffFraction*total),
		PeakFrequency: a.freqs[peakBin(spectrum)],
	}
}

// Centroid returns the weighted mean frequency.
func (a *Analyzer) Centroid(spectrum []float64) float64 {
	return a.Describe(spectrum).Centroid
}

// Rolloff returns the frequency below which fraction of the total weight
// lies.
func (a *Analyzer) Rolloff(spectrum []float64, fraction float64) float64 {
	total := vecmath.Sum(spectrum)
	if total <= 0 {
		return 0
	}
	return a.rolloff(spectrum, fraction*total)
}

func (a *Analyzer) rolloff(spectrum []float64, threshold float64) float64 {
	cum := 0.0
	for i, v := range spectrum {
		cum += v
		if cum >= threshold {
			return a.freqs[i]
		}
	}
	return a.freqs[len(a.freqs)-1]
}

// Flatness returns the spectral flatness (Wiener entropy) of bins 1 and up.
// Any zero bin makes the geometric mean, and so the flatness, zero.
func Flatness(spectrum []float64) float64 {
	if len(spectrum) < 2 {
		return 0
	}
	bins := spectrum[1:]

	arith := stat.Mean(bins, nil)
	if arith <= 0 {
		return 0
	}
	for _, v := range bins {
		if v <= 0 {
			return 0
		}
	}
	return stat.GeometricMean(bins, nil) / arith
}

func peakBin(spectrum []float64) int {
	best := 0
	for i, v := range spectrum {
		if v > spectrum[best] {
			best = i
		}
	}
	return best
}
