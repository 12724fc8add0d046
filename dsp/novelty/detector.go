package novelty

import (
	"fmt"

	"github.com/cwbudde/algo-pitch/dsp/buffer"
)

// Detector computes spectral-flux novelty over a sample stream.
type Detector struct {
	cfg      Config
	windower *buffer.Windower
	flux     *SpectralFlux

	handler  func(*SpectralFlux)
	onWindow func([]float64)
}

// NewDetector builds a Detector from options.
func NewDetector(opts ...Option) (*Detector, error) {
	cfg := ApplyOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w, err := buffer.NewWindower(cfg.DownsampledWindowSize(), cfg.DownsampledHopSize(), cfg.Downsampling)
	if err != nil {
		return nil, fmt.Errorf("novelty: %w", err)
	}

	flux, err := NewSpectralFlux(cfg.DownsampledWindowSize(), cfg.Window, cfg.Compression)
	if err != nil {
		return nil, err
	}

	d := &Detector{cfg: cfg, windower: w, flux: flux}
	d.onWindow = d.analyze
	return d, nil
}

// Process consumes samples and calls handler after every window for which a
// novelty value is available. The handler must not call Process on the same
// Detector.
func (d *Detector) Process(samples []float64, handler func(*SpectralFlux)) {
	d.handler = handler
	defer func() { d.handler = nil }()
	d.windower.Process(samples, d.onWindow)
}

func (d *Detector) analyze(window []float64) {
	if d.flux.ProcessWindow(window) && d.handler != nil {
		d.handler(d.flux)
	}
}

// Flux returns the underlying SpectralFlux.
func (d *Detector) Flux() *SpectralFlux { return d.flux }

// Config returns the resolved configuration.
func (d *Detector) Config() Config { return d.cfg }

// SamplePosition returns the input-rate index one past the latest window.
func (d *Detector) SamplePosition() int64 { return d.windower.SamplePosition() }

// Reset discards buffered input and spectral history.
func (d *Detector) Reset() {
	d.windower.Reset()
	d.flux.Clear()
}
