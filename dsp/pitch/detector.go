package pitch

import (
	"fmt"

	"github.com/cwbudde/algo-pitch/dsp/buffer"
	"github.com/cwbudde/algo-pitch/dsp/core"
)

// Detector runs MPM pitch detection over a sample stream.
//
// Window, hop and lag sizes are fixed at construction. The sample rate can be
// changed at any time. A Detector is not safe for concurrent use.
type Detector struct {
	cfg        Config
	sampleRate float64

	windower *buffer.Windower
	result   *Result

	handler  func(*Result)
	onWindow func([]float64)

	// Seconds up to the most recent window, accumulated per window so a
	// sample rate change does not rescale earlier input.
	timestamp   float64
	timestampAt int64
}

// NewDetector builds a Detector from options. Invalid combinations of window,
// hop, lag count and downsampling are reported as errors.
func NewDetector(opts ...Option) (*Detector, error) {
	cfg := ApplyOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w, err := buffer.NewWindower(cfg.DownsampledWindowSize(), cfg.DownsampledHopSize(), cfg.Downsampling)
	if err != nil {
		return nil, fmt.Errorf("pitch: %w", err)
	}

	res, err := NewResult(cfg.DownsampledWindowSize(), cfg.DownsampledLagCount())
	if err != nil {
		return nil, err
	}
	if err := res.SetPeakThreshold(cfg.PeakThreshold); err != nil {
		return nil, err
	}

	d := &Detector{
		cfg:        cfg,
		sampleRate: cfg.SampleRate,
		windower:   w,
		result:     res,
	}
	d.onWindow = d.analyze
	return d, nil
}

// Process consumes samples and calls handler with the Detector's Result after
// each completed window. The handler must not call Process on the same
// Detector and must copy any data it keeps beyond the call.
func (d *Detector) Process(samples []float64, handler func(*Result)) {
	d.handler = handler
	defer func() { d.handler = nil }()
	d.windower.Process(samples, d.onWindow)
}

func (d *Detector) analyze(window []float64) {
	pos := d.windower.SamplePosition()
	d.timestamp += float64(pos-d.timestampAt) / d.sampleRate
	d.timestampAt = pos

	copy(d.result.window, window)
	d.result.Compute(d.sampleRate / float64(d.cfg.Downsampling))
	if d.handler != nil {
		d.handler(d.result)
	}
}

// Result returns the most recent analysis.
func (d *Detector) Result() *Result { return d.result }

// Config returns the resolved configuration.
func (d *Detector) Config() Config { return d.cfg }

// SampleRate returns the input sample rate in Hz.
func (d *Detector) SampleRate() float64 { return d.sampleRate }

// SetSampleRate changes the input sample rate. Windows already buffered are
// analysed at the new rate.
func (d *Detector) SetSampleRate(sampleRate float64) error {
	if !(sampleRate > 0) || !core.IsFinite(sampleRate) {
		return fmt.Errorf("%w: %v", core.ErrInvalidSampleRate, sampleRate)
	}
	d.sampleRate = sampleRate
	return nil
}

// WindowSize returns the window size in input samples.
func (d *Detector) WindowSize() int { return d.cfg.WindowSize }

// HopSize returns the hop size in input samples.
func (d *Detector) HopSize() int { return d.cfg.HopSize }

// LagCount returns the lag count in input samples.
func (d *Detector) LagCount() int { return d.cfg.LagCount }

// Downsampling returns the decimation factor.
func (d *Detector) Downsampling() int { return d.cfg.Downsampling }

// DownsampledWindowSize returns the analysed window length.
func (d *Detector) DownsampledWindowSize() int { return d.windower.WindowSize() }

// ProcessedWindowCount returns the number of windows analysed since
// construction or the last Reset.
func (d *Detector) ProcessedWindowCount() uint64 { return d.windower.ProcessedWindowCount() }

// SamplePosition returns the input sample index one past the end of the most
// recent window.
func (d *Detector) SamplePosition() int64 { return d.windower.SamplePosition() }

// LatestWindowTimestamp returns the end of the most recent window in
// seconds. Input between two windows is timed at the sample rate in effect
// when the later window completes.
func (d *Detector) LatestWindowTimestamp() float64 { return d.timestamp }

// Reset drops buffered input and clears the Result.
func (d *Detector) Reset() {
	d.windower.Reset()
	d.result.reset()
	d.timestamp = 0
	d.timestampAt = 0
}
