package shim

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/cwbudde/algo-pitch/dsp/buffer"
	"github.com/cwbudde/algo-pitch/dsp/pitch"
)

// Handle is a mutex-guarded pitch detector with a poll-style API.
type Handle struct {
	mu sync.Mutex

	detector *pitch.Detector
	// opts are the construction options. Rebuilds read the current sample
	// rate and lag count back from detector.
	opts     []pitch.Option
	input    *buffer.Buffer
	snapshot pitch.Snapshot
	windows  uint64
}

// New creates a Handle around a detector built from opts.
func New(opts ...pitch.Option) (*Handle, error) {
	d, err := pitch.NewDetector(opts...)
	if err != nil {
		return nil, err
	}
	return &Handle{
		detector: d,
		opts:     append([]pitch.Option(nil), opts...),
		input:    buffer.New(0),
	}, nil
}

// Process feeds host samples and reports whether at least one new window was
// analysed.
func (h *Handle) Process(samples []float32) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	before := h.detector.ProcessedWindowCount()
	h.detector.Process(h.input.SetFloat32(samples), nil)
	after := h.detector.ProcessedWindowCount()
	h.windows += after - before
	return after > before
}

// WindowCount returns the number of windows analysed over the Handle's
// lifetime, including those of replaced detectors.
func (h *Handle) WindowCount() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.windows
}

// Frequency returns the latest pitch estimate in Hz.
func (h *Handle) Frequency() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.detector.Result().Frequency()
}

// Clarity returns the latest clarity.
func (h *Handle) Clarity() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.detector.Result().Clarity()
}

// MIDINoteNumber returns the latest fractional MIDI note number.
func (h *Handle) MIDINoteNumber() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.detector.Result().MIDINoteNumber()
}

// SelectedKeyMaxIndex returns the index of the selected key maximum, or -1.
func (h *Handle) SelectedKeyMaxIndex() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.detector.Result().SelectedKeyMaxIndex()
}

// IsTone applies the default tone test to the latest result.
func (h *Handle) IsTone() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.detector.Result().IsTone()
}

// IsToneWithOptions applies the tone test with explicit tolerances.
func (h *Handle) IsToneWithOptions(clarityThreshold, clarityTolerance, periodTolerance float64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.detector.Result().IsToneWithOptions(clarityThreshold, clarityTolerance, periodTolerance)
}

// WindowPeak returns the peak level of the latest window.
func (h *Handle) WindowPeak() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.detector.Result().WindowPeak()
}

// WindowRMS returns the RMS level of the latest window.
func (h *Handle) WindowRMS() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.detector.Result().WindowRMS()
}

// LagCount returns the NSDF length after decimation.
func (h *Handle) LagCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.detector.Result().LagCount()
}

// NSDF copies the latest NSDF into dst and returns the number of values
// written, at most len(dst).
func (h *Handle) NSDF(dst []float32) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	nsdf := h.detector.Result().NSDF()
	n := min(len(dst), len(nsdf))
	for i := range n {
		dst[i] = float32(nsdf[i])
	}
	return n
}

// KeyMaxima writes the latest key maxima to dst as interleaved lag/value
// pairs and returns the number of pairs written, at most len(dst)/2.
func (h *Handle) KeyMaxima(dst []float32) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	maxima := h.detector.Result().KeyMaxima()
	n := min(len(dst)/2, len(maxima))
	for i := range n {
		dst[2*i] = float32(maxima[i].Lag)
		dst[2*i+1] = float32(maxima[i].Value)
	}
	return n
}

// SampleRate returns the input sample rate in Hz.
func (h *Handle) SampleRate() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.detector.SampleRate()
}

// SetSampleRate changes the input sample rate without rebuilding the
// detector.
func (h *Handle) SetSampleRate(sampleRate float64) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.detector.SetSampleRate(sampleRate); err != nil {
		return fmt.Errorf("shim: %w", err)
	}
	return nil
}

// Downsampling returns the current decimation factor.
func (h *Handle) Downsampling() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.detector.Downsampling()
}

// SetDownsampling replaces the detector with one using the given decimation
// factor. Window, hop and lag sizes in input samples are kept. Buffered
// input is dropped. On error the current detector stays in place.
func (h *Handle) SetDownsampling(factor int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	opts := make([]pitch.Option, 0, len(h.opts)+3)
	opts = append(opts, h.opts...)
	opts = append(opts,
		pitch.WithSampleRate(h.detector.SampleRate()),
		pitch.WithDownsampling(factor),
		pitch.WithLagCount(h.detector.LagCount()),
	)
	d, err := pitch.NewDetector(opts...)
	if err != nil {
		return fmt.Errorf("shim: %w", err)
	}

	h.detector = d
	return nil
}

// Reset drops buffered input and the latest result.
func (h *Handle) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detector.Reset()
}

// Snapshot returns a copy of the latest result, stamped with the end time of
// its window in seconds.
func (h *Handle) Snapshot() pitch.Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()

	var s pitch.Snapshot
	h.detector.Result().SnapshotInto(&s)
	s.Timestamp = h.detector.LatestWindowTimestamp()
	return s
}

// SnapshotJSON encodes the latest result as JSON.
func (h *Handle) SnapshotJSON() ([]byte, error) {
	h.mu.Lock()
	h.detector.Result().SnapshotInto(&h.snapshot)
	h.snapshot.Timestamp = h.detector.LatestWindowTimestamp()
	data, err := json.Marshal(&h.snapshot)
	h.mu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("shim: encode snapshot: %w", err)
	}
	return data, nil
}
