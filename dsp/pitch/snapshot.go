package pitch

import "github.com/cwbudde/algo-pitch/dsp/core"

// MaxSnapshotNSDF is the number of NSDF samples copied into a Snapshot.
const MaxSnapshotNSDF = 512

// KeyMaxPoint is the interpolated position of a key maximum.
type KeyMaxPoint struct {
	Lag   float64 `json:"lag"`
	Value float64 `json:"value"`
}

// Snapshot is a plain-data copy of a Result for use outside the processing
// goroutine, for example by a UI or a telemetry relay.
type Snapshot struct {
	Frequency           float64       `json:"frequency"`
	Clarity             float64       `json:"clarity"`
	MIDINoteNumber      float64       `json:"midiNoteNumber"`
	IsTone              bool          `json:"isTone"`
	NSDF                []float64     `json:"nsdf"`
	KeyMaxima           []KeyMaxPoint `json:"keyMaxima"`
	SelectedKeyMaxIndex int           `json:"selectedKeyMaxIndex"`
	WindowRMS           float64       `json:"windowRms"`
	WindowPeak          float64       `json:"windowPeak"`
	Timestamp           float64       `json:"timestamp"`
}

// SnapshotInto copies r into s, reusing the capacity of s.NSDF and
// s.KeyMaxima. Timestamp is left unchanged. The NSDF is truncated to
// MaxSnapshotNSDF samples.
func (r *Result) SnapshotInto(s *Snapshot) {
	s.Frequency = r.frequency
	s.Clarity = r.clarity
	s.MIDINoteNumber = r.midiNote
	s.IsTone = r.IsTone()
	s.SelectedKeyMaxIndex = r.selected
	s.WindowRMS = r.WindowRMS()
	s.WindowPeak = r.WindowPeak()

	n := min(len(r.nsdf), MaxSnapshotNSDF)
	s.NSDF = core.EnsureLen(s.NSDF, n)
	copy(s.NSDF, r.nsdf[:n])

	s.KeyMaxima = core.EnsureLen(s.KeyMaxima, r.keyMaxCount)
	for i, km := range r.KeyMaxima() {
		s.KeyMaxima[i] = KeyMaxPoint{Lag: km.Lag, Value: km.Value}
	}
}
