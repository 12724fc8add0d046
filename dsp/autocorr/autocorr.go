package autocorr

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-pitch/dsp/spectrum"
	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrInvalidWindowSize is returned for a non-positive window size.
	ErrInvalidWindowSize = errors.New("autocorr: window size must be > 0")
	// ErrInvalidLagCount is returned for a non-positive lag count.
	ErrInvalidLagCount = errors.New("autocorr: lag count must be > 0")
	// ErrLagExceedsWindow is returned when the lag count exceeds the window size.
	ErrLagExceedsWindow = errors.New("autocorr: lag count exceeds window size")
)

// FFTSize returns the smallest supported FFT size that holds the linear
// autocorrelation of windowSize samples for lags [0, lagCount), that is
// the smallest supported size >= windowSize + lagCount - 1.
func FFTSize(windowSize, lagCount int) (int, error) {
	if windowSize <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidWindowSize, windowSize)
	}
	if lagCount <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLagCount, lagCount)
	}
	if lagCount > windowSize {
		return 0, fmt.Errorf("%w: %d > %d", ErrLagExceedsWindow, lagCount, windowSize)
	}
	return spectrum.NextSupportedSize(windowSize + lagCount - 1)
}

// Autocorrelator computes FFT-based autocorrelation for a fixed window size
// and lag count. It is not safe for concurrent use.
type Autocorrelator struct {
	windowSize int
	lagCount   int

	fft   *spectrum.RealFFT
	power []float64
}

// New creates an Autocorrelator. All scratch memory is allocated here.
func New(windowSize, lagCount int) (*Autocorrelator, error) {
	size, err := FFTSize(windowSize, lagCount)
	if err != nil {
		return nil, err
	}

	fft, err := spectrum.NewRealFFT(size)
	if err != nil {
		return nil, err
	}

	return &Autocorrelator{
		windowSize: windowSize,
		lagCount:   lagCount,
		fft:        fft,
		power:      make([]float64, fft.Bins()),
	}, nil
}

// WindowSize returns the window length the Autocorrelator was built for.
func (a *Autocorrelator) WindowSize() int { return a.windowSize }

// LagCount returns the number of lags computed.
func (a *Autocorrelator) LagCount() int { return a.lagCount }

// FFTSize returns the transform size in use.
func (a *Autocorrelator) FFTSize() int { return a.fft.Size() }

// Compute writes r(tau) for tau in [0, LagCount()) to dst.
//
// window must have WindowSize() samples and dst LagCount() samples.
func (a *Autocorrelator) Compute(dst, window []float64) {
	if len(window) != a.windowSize || len(dst) != a.lagCount {
		panic(fmt.Sprintf("autocorr: got window %d / dst %d, want %d / %d",
			len(window), len(dst), a.windowSize, a.lagCount))
	}

	a.fft.PowerSpectrum(a.power, window)
	a.fft.InverseSymmetric(dst, a.power)
}

// Direct computes r(tau) = sum_j x[j]*x[j+tau] for tau in [0, len(dst)) by
// direct summation. len(dst) must not exceed len(window).
func Direct(dst, window []float64) {
	if len(dst) > len(window) {
		panic(fmt.Sprintf("autocorr: %d lags exceed window of %d", len(dst), len(window)))
	}

	n := len(window)
	for tau := range dst {
		dst[tau] = vecmath.DotProduct(window[:n-tau], window[tau:])
	}
}
