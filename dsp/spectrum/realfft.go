package spectrum

import (
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// RealFFT is a fixed-size FFT for real-valued signals.
//
// Only the non-redundant half spectrum (n/2+1 bins) is exposed. A RealFFT is
// not safe for concurrent use.
type RealFFT struct {
	n    int
	plan *algofft.Plan[complex128]

	buf []complex128
	re  []float64
	im  []float64
}

// NewRealFFT creates a transform of size n. n must satisfy [IsSupportedSize].
func NewRealFFT(n int) (*RealFFT, error) {
	if !IsSupportedSize(n) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFFTSize, n)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	bins := n/2 + 1
	return &RealFFT{
		n:    n,
		plan: plan,
		buf:  make([]complex128, n),
		re:   make([]float64, bins),
		im:   make([]float64, bins),
	}, nil
}

// Size returns the transform size.
func (f *RealFFT) Size() int { return f.n }

// Bins returns the number of half-spectrum bins, n/2+1.
func (f *RealFFT) Bins() int { return f.n/2 + 1 }

func (f *RealFFT) forward(src []float64) {
	if len(src) > f.n {
		panic(fmt.Sprintf("spectrum: input length %d exceeds FFT size %d", len(src), f.n))
	}
	for i, v := range src {
		f.buf[i] = complex(v, 0)
	}
	clear(f.buf[len(src):])

	if err := f.plan.Forward(f.buf, f.buf); err != nil {
		panic("spectrum: forward FFT failed: " + err.Error())
	}
}

// Forward transforms src, zero-padded to the transform size, and writes the
// first n/2+1 bins to dst.
func (f *RealFFT) Forward(dst []complex128, src []float64) {
	f.forward(src)
	copy(dst[:f.Bins()], f.buf)
}

// PowerSpectrum writes |X[k]|^2 for k in [0, n/2] of the zero-padded src to
// dst. len(dst) must be at least n/2+1.
func (f *RealFFT) PowerSpectrum(dst, src []float64) {
	f.forward(src)

	bins := f.Bins()
	for k := 0; k < bins; k++ {
		f.re[k] = real(f.buf[k])
		f.im[k] = imag(f.buf[k])
	}
	PowerFromParts(dst[:bins], f.re, f.im)
}

// InverseSymmetric computes the inverse transform of a real, even spectrum
// given by its first n/2+1 bins and writes the first len(dst) time samples,
// scaled by 1/n, to dst.
func (f *RealFFT) InverseSymmetric(dst, half []float64) {
	bins := f.Bins()
	if len(half) < bins {
		panic(fmt.Sprintf("spectrum: half spectrum has %d bins, want %d", len(half), bins))
	}
	if len(dst) > f.n {
		panic(fmt.Sprintf("spectrum: output length %d exceeds FFT size %d", len(dst), f.n))
	}

	f.buf[0] = complex(half[0], 0)
	for k := 1; k < bins; k++ {
		f.buf[k] = complex(half[k], 0)
		f.buf[f.n-k] = f.buf[k]
	}

	if err := f.plan.Inverse(f.buf, f.buf); err != nil {
		panic("spectrum: inverse FFT failed: " + err.Error())
	}

	for i := range dst {
		dst[i] = real(f.buf[i])
	}
}

// PowerFromParts computes |X[k]|^2 = re[k]^2 + im[k]^2 into dst.
// All three slices must have the same length.
func PowerFromParts(dst, re, im []float64) {
	vecmath.Power(dst, re, im)
}
