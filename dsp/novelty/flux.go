package novelty

import (
	"fmt"

	"github.com/cwbudde/algo-pitch/dsp/spectrum"
	"github.com/cwbudde/algo-pitch/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// SpectralFlux holds the two most recent compressed power spectra of a
// window stream and the novelty between them.
//
// Spectra have Size()/2 bins, DC up to but excluding Nyquist. A SpectralFlux
// is not safe for concurrent use.
type SpectralFlux struct {
	size        int
	fft         *spectrum.RealFFT
	coeffs      []float64
	compression Compression

	frame   []float64
	raw     []float64
	power   [2][]float64
	delta   []float64
	current int

	windows uint64
	novelty float64
}

// NewSpectralFlux allocates a SpectralFlux for windows of the given size,
// weighted by windowType. size must be a supported FFT size. A nil
// compression selects [DefaultHardKneeCompression].
func NewSpectralFlux(size int, windowType window.Type, compression Compression) (*SpectralFlux, error) {
	fft, err := spectrum.NewRealFFT(size)
	if err != nil {
		return nil, fmt.Errorf("novelty: %w", err)
	}
	if compression == nil {
		compression = DefaultHardKneeCompression()
	}

	bins := size / 2
	return &SpectralFlux{
		size:        size,
		fft:         fft,
		coeffs:      window.Generate(windowType, size),
		compression: compression,
		frame:       make([]float64, size),
		raw:         make([]float64, fft.Bins()),
		power:       [2][]float64{make([]float64, bins), make([]float64, bins)},
		delta:       make([]float64, bins),
	}, nil
}

// Size returns the window size.
func (f *SpectralFlux) Size() int { return f.size }

// Compression returns the compression curve applied to bin powers.
func (f *SpectralFlux) Compression() Compression { return f.compression }

// ProcessWindow analyzes one window and reports whether a novelty value is
// available, which is the case from the second window on. len(w) must equal
// Size().
func (f *SpectralFlux) ProcessWindow(w []float64) bool {
	if len(w) != f.size {
		panic(fmt.Sprintf("novelty: window length %d, want %d", len(w), f.size))
	}

	f.current ^= 1
	power := f.power[f.current]
	prev := f.power[f.current^1]

	copy(f.frame, w)
	vecmath.MulBlockInPlace(f.frame, f.coeffs)
	f.fft.PowerSpectrum(f.raw, f.frame)
	for k := range power {
		power[k] = f.compression.Compress(f.raw[k])
	}

	f.windows++
	if f.windows < 2 {
		f.novelty = 0
		return false
	}

	sum := 0.0
	for k := range power {
		d := power[k] - prev[k]
		f.delta[k] = d
		if d > 0 {
			sum += d
		}
	}
	f.novelty = sum / float64(f.size)
	return true
}

// Novelty returns the novelty of the latest window, or 0 before the second
// window.
func (f *SpectralFlux) Novelty() float64 { return f.novelty }

// PowerSpectrum returns the compressed power spectrum of the latest window.
func (f *SpectralFlux) PowerSpectrum() []float64 { return f.power[f.current] }

// PowerSpectrumPrev returns the compressed power spectrum of the window
// before the latest one.
func (f *SpectralFlux) PowerSpectrumPrev() []float64 { return f.power[f.current^1] }

// DeltaPower returns the per-bin change between the two latest spectra.
func (f *SpectralFlux) DeltaPower() []float64 { return f.delta }

// ProcessedWindowCount returns the number of windows seen since the last
// Clear.
func (f *SpectralFlux) ProcessedWindowCount() uint64 { return f.windows }

// Clear forgets all previous windows.
func (f *SpectralFlux) Clear() {
	clear(f.power[0])
	clear(f.power[1])
	clear(f.delta)
	f.current = 0
	f.windows = 0
	f.novelty = 0
}
