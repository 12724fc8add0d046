// Package report aggregates per-window pitch readings into a summary.
package report

import (
	"sort"

	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-pitch/dsp/pitch"
	"gonum.org/v1/gonum/stat"
)

// Reading is one analysed window.
type Reading struct {
	Time      float64 `json:"time"`
	Frequency float64 `json:"frequency"`
	Clarity   float64 `json:"clarity"`
	MIDINote  float64 `json:"midiNote"`
	IsTone    bool    `json:"isTone"`
}

// FromResult captures r as a Reading taken at t seconds.
func FromResult(r *pitch.Result, t float64) Reading {
	return Reading{
		Time:      t,
		Frequency: r.Frequency(),
		Clarity:   r.Clarity(),
		MIDINote:  r.MIDINoteNumber(),
		IsTone:    r.IsTone(),
	}
}

// Summary describes a pitch track. Frequency and note figures cover tonal
// readings only.
type Summary struct {
	Count      int `json:"count"`
	TonalCount int `json:"tonalCount"`

	MeanFrequency   float64 `json:"meanFrequency"`
	MedianFrequency float64 `json:"medianFrequency"`
	StdDevFrequency float64 `json:"stdDevFrequency"`

	MeanClarity   float64 `json:"meanClarity"`
	MedianClarity float64 `json:"medianClarity"`

	MedianMIDINote float64 `json:"medianMidiNote"`
	MedianNoteName string  `json:"medianNoteName,omitempty"`
}

// Summarize computes a Summary. An empty input yields a zero Summary.
func Summarize(readings []Reading) Summary {
	s := Summary{Count: len(readings)}
	if len(readings) == 0 {
		return s
	}

	clarity := make([]float64, 0, len(readings))
	var freqs, notes []float64
	for _, r := range readings {
		clarity = append(clarity, r.Clarity)
		if r.IsTone {
			freqs = append(freqs, r.Frequency)
			notes = append(notes, r.MIDINote)
		}
	}

	s.MeanClarity = stat.Mean(clarity, nil)
	s.MedianClarity = median(clarity)

	s.TonalCount = len(freqs)
	if s.TonalCount == 0 {
		return s
	}

	s.MeanFrequency = stat.Mean(freqs, nil)
	s.MedianFrequency = median(freqs)
	if s.TonalCount > 1 {
		s.StdDevFrequency = stat.StdDev(freqs, nil)
	}
	s.MedianMIDINote = median(notes)
	s.MedianNoteName = core.NoteName(s.MedianMIDINote)
	return s
}

// median sorts data in place and returns its empirical 0.5 quantile.
func median(data []float64) float64 {
	sort.Float64s(data)
	return stat.Quantile(0.5, stat.Empirical, data, nil)
}
