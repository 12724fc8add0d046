package report

import (
	"testing"

	"github.com/cwbudde/algo-pitch/dsp/pitch"
	"github.com/cwbudde/algo-pitch/internal/testutil"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(nil); got != (Summary{}) {
		t.Fatalf("Summarize(nil) = %+v, want zero", got)
	}
}

func TestSummarize(t *testing.T) {
	readings := []Reading{
		{Frequency: 440, Clarity: 0.95, MIDINote: 69, IsTone: true},
		{Frequency: 0, Clarity: 0.1, MIDINote: 0, IsTone: false},
		{Frequency: 442, Clarity: 0.97, MIDINote: 69.08, IsTone: true},
		{Frequency: 438, Clarity: 0.93, MIDINote: 68.92, IsTone: true},
		{Frequency: 880, Clarity: 0.5, MIDINote: 81, IsTone: false},
	}

	s := Summarize(readings)
	if s.Count != 5 || s.TonalCount != 3 {
		t.Fatalf("counts = %d/%d, want 5/3", s.Count, s.TonalCount)
	}

	checks := []struct {
		name      string
		got, want float64
	}{
		{"MeanFrequency", s.MeanFrequency, 440},
		{"MedianFrequency", s.MedianFrequency, 440},
		{"StdDevFrequency", s.StdDevFrequency, 2},
		{"MeanClarity", s.MeanClarity, 0.69},
		{"MedianClarity", s.MedianClarity, 0.93},
		{"MedianMIDINote", s.MedianMIDINote, 69},
	}
	for _, c := range checks {
		if !scalar.EqualWithinAbs(c.got, c.want, 1e-9) {
			t.Fatalf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if s.MedianNoteName != "A4" {
		t.Fatalf("MedianNoteName = %q, want A4", s.MedianNoteName)
	}
}

func TestSummarizeSingleTone(t *testing.T) {
	s := Summarize([]Reading{{Frequency: 220, Clarity: 0.99, MIDINote: 57, IsTone: true}})
	if s.StdDevFrequency != 0 || s.MedianFrequency != 220 || s.MedianNoteName != "A3" {
		t.Fatalf("single reading summary = %+v", s)
	}
}

func TestSummarizeNoTones(t *testing.T) {
	s := Summarize([]Reading{{Clarity: 0.2}, {Clarity: 0.4}})
	if s.TonalCount != 0 || s.MeanFrequency != 0 || s.MedianNoteName != "" {
		t.Fatalf("summary = %+v", s)
	}
	if !scalar.EqualWithinAbs(s.MeanClarity, 0.3, 1e-12) {
		t.Fatalf("MeanClarity = %v, want 0.3", s.MeanClarity)
	}
}

func TestFromResult(t *testing.T) {
	d, err := pitch.NewDetector()
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}

	var readings []Reading
	d.Process(testutil.DeterministicSine(440, 44100, 0.5, 4096), func(r *pitch.Result) {
		readings = append(readings, FromResult(r, d.LatestWindowTimestamp()))
	})

	s := Summarize(readings)
	if s.TonalCount != len(readings) || s.MedianNoteName != "A4" {
		t.Fatalf("summary = %+v", s)
	}
	if readings[0].Time != 1024.0/44100 {
		t.Fatalf("first reading at %v, want %v", readings[0].Time, 1024.0/44100)
	}
}
