package pitch

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-pitch/dsp/autocorr"
	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-pitch/stats/level"
)

// DefaultPeakThreshold is the fraction of the largest key maximum that the
// selected key maximum must reach. Lower values (0.8 is common in the
// literature) favour shorter periods more strongly.
const DefaultPeakThreshold = 0.9

// ErrInvalidPeakThreshold is returned for a peak threshold outside (0, 1].
var ErrInvalidPeakThreshold = errors.New("pitch: peak threshold must be in (0, 1]")

// Result holds the analysis of one window. It is reused for every window;
// values are only meaningful until the next Compute.
type Result struct {
	window []float64
	nsdf   []float64
	mPrime []float64
	acf    *autocorr.Autocorrelator

	keyMaxima     [MaxKeyMaxima]KeyMaximum
	keyMaxCount   int
	selected      int
	peakThreshold float64

	pitchPeriod float64
	frequency   float64
	clarity     float64
	midiNote    float64
}

// NewResult allocates a Result for windows of windowSize samples analysed
// over lagCount lags. lagCount must not exceed windowSize.
func NewResult(windowSize, lagCount int) (*Result, error) {
	acf, err := autocorr.New(windowSize, lagCount)
	if err != nil {
		return nil, fmt.Errorf("pitch: %w", err)
	}

	r := &Result{
		window:        make([]float64, windowSize),
		nsdf:          make([]float64, lagCount),
		mPrime:        make([]float64, lagCount),
		acf:           acf,
		peakThreshold: DefaultPeakThreshold,
	}
	r.reset()
	return r, nil
}

// SetPeakThreshold sets the key-maximum selection threshold k in (0, 1].
func (r *Result) SetPeakThreshold(k float64) error {
	if !(k > 0 && k <= 1) {
		return fmt.Errorf("%w: %v", ErrInvalidPeakThreshold, k)
	}
	r.peakThreshold = k
	return nil
}

// PeakThreshold returns the key-maximum selection threshold.
func (r *Result) PeakThreshold() float64 { return r.peakThreshold }

// Window returns the analysis window. Callers fill it before Compute.
func (r *Result) Window() []float64 { return r.window }

// WindowSize returns the window length in samples.
func (r *Result) WindowSize() int { return len(r.window) }

// LagCount returns the NSDF length.
func (r *Result) LagCount() int { return len(r.nsdf) }

// NSDF returns the normalized square difference function of the window.
func (r *Result) NSDF() []float64 { return r.nsdf }

// KeyMaxima returns the key maxima found, in ascending lag order.
func (r *Result) KeyMaxima() []KeyMaximum { return r.keyMaxima[:r.keyMaxCount] }

// KeyMaxCount returns the number of key maxima found.
func (r *Result) KeyMaxCount() int { return r.keyMaxCount }

// SelectedKeyMaxIndex returns the index into KeyMaxima of the maximum the
// pitch was derived from, or -1 if the result is not valid.
func (r *Result) SelectedKeyMaxIndex() int { return r.selected }

// SelectedKeyMaximum returns the maximum the pitch was derived from.
func (r *Result) SelectedKeyMaximum() (KeyMaximum, bool) {
	if !r.IsValid() {
		return KeyMaximum{}, false
	}
	return r.keyMaxima[r.selected], true
}

// PitchPeriod returns the detected period in (decimated) samples.
func (r *Result) PitchPeriod() float64 { return r.pitchPeriod }

// Frequency returns the detected fundamental in Hz, or 0.
func (r *Result) Frequency() float64 { return r.frequency }

// Clarity returns the NSDF value at the selected maximum, capped at 1.
func (r *Result) Clarity() float64 { return r.clarity }

// MIDINoteNumber returns the fractional MIDI note of Frequency, or 0.
func (r *Result) MIDINoteNumber() float64 { return r.midiNote }

// IsValid reports whether at least one key maximum was found. Frequency and
// clarity are zero for invalid results.
func (r *Result) IsValid() bool { return r.keyMaxCount > 0 }

// MinDetectableFrequency returns the lowest frequency whose period fits in
// the NSDF at sampleRate.
func (r *Result) MinDetectableFrequency(sampleRate float64) float64 {
	return sampleRate / float64(len(r.nsdf))
}

// MinDetectableNoteNumber returns MinDetectableFrequency as a MIDI note.
func (r *Result) MinDetectableNoteNumber(sampleRate float64) float64 {
	return core.FreqToMIDINote(r.MinDetectableFrequency(sampleRate))
}

// WindowPeak returns the largest absolute sample of the window.
func (r *Result) WindowPeak() float64 { return level.Peak(r.window) }

// WindowRMS returns the RMS level of the window.
func (r *Result) WindowRMS() float64 { return level.RMS(r.window) }

// WindowPeakDB returns WindowPeak in dBFS.
func (r *Result) WindowPeakDB() float64 { return level.PeakDB(r.window) }

// WindowRMSDB returns WindowRMS in dBFS.
func (r *Result) WindowRMSDB() float64 { return level.RMSDB(r.window) }

// Compute analyses the current window content. sampleRate is the rate of
// the window samples, that is after any decimation.
func (r *Result) Compute(sampleRate float64) {
	r.reset()
	r.computeNSDF()
	r.pickPeaks()
	r.computePitch(sampleRate)
}

func (r *Result) reset() {
	r.pitchPeriod = 0
	r.frequency = 0
	r.clarity = 0
	r.midiNote = 0
	r.keyMaxCount = 0
	r.selected = -1
}

func (r *Result) computeNSDF() {
	r.acf.Compute(r.nsdf, r.window)
	MPrime(r.mPrime, r.window, r.nsdf[0])
	NSDF(r.nsdf, r.nsdf, r.mPrime)
}

func (r *Result) appendKeyMax(lagIndex int) {
	if r.keyMaxCount == MaxKeyMaxima {
		return
	}
	r.keyMaxima[r.keyMaxCount].Set(r.nsdf, lagIndex)
	r.keyMaxCount++
}

func (r *Result) pickPeaks() {
	nsdf := r.nsdf
	last := len(nsdf) - 1

	detecting := false
	maxValue := 0.0
	maxIndex := 0
	prev := nsdf[0]
	for i := 1; i <= last; i++ {
		curr := nsdf[i]
		switch {
		case prev <= 0 && curr > 0:
			detecting = true
			maxValue = curr
			maxIndex = i
		case prev >= 0 && curr < 0:
			if detecting {
				r.appendKeyMax(maxIndex)
			}
			detecting = false
		}

		if detecting {
			if i == last {
				if curr > maxValue {
					maxIndex = i
				}
				r.appendKeyMax(maxIndex)
			} else if curr > maxValue {
				maxValue = curr
				maxIndex = i
			}
		}

		prev = curr
	}

	if r.keyMaxCount == 0 {
		return
	}

	largest := 0
	for i := 1; i < r.keyMaxCount; i++ {
		if r.keyMaxima[i].ValueAtLagIndex > r.keyMaxima[largest].ValueAtLagIndex {
			largest = i
		}
	}

	threshold := r.peakThreshold * r.keyMaxima[largest].ValueAtLagIndex
	r.selected = largest
	for i := 0; i < r.keyMaxCount; i++ {
		if r.keyMaxima[i].Value >= threshold {
			r.selected = i
			break
		}
	}
}

func (r *Result) computePitch(sampleRate float64) {
	if r.keyMaxCount == 0 {
		return
	}

	sel := r.keyMaxima[r.selected]
	r.pitchPeriod = sel.Lag
	r.clarity = core.Clamp(sel.Value, 0, 1)
	r.frequency = sampleRate / r.pitchPeriod
	r.midiNote = core.FreqToMIDINote(r.frequency)
}
