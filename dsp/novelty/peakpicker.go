package novelty

// PeakPicker turns a novelty curve into onset events.
//
// It fires once when the input rises above the threshold and re-arms only
// after the input drops below it again.
type PeakPicker struct {
	threshold float64
	disarmed  bool
}

// NewPeakPicker returns an armed PeakPicker.
func NewPeakPicker(threshold float64) *PeakPicker {
	return &PeakPicker{threshold: threshold}
}

// Threshold returns the trigger level.
func (p *PeakPicker) Threshold() float64 { return p.threshold }

// SetThreshold changes the trigger level without changing the armed state.
func (p *PeakPicker) SetThreshold(threshold float64) { p.threshold = threshold }

// Armed reports whether the next crossing will fire.
func (p *PeakPicker) Armed() bool { return !p.disarmed }

// Process feeds one value and reports whether it is an onset.
func (p *PeakPicker) Process(v float64) bool {
	switch {
	case v > p.threshold && !p.disarmed:
		p.disarmed = true
		return true
	case v < p.threshold:
		p.disarmed = false
	}
	return false
}

// Reset re-arms the picker.
func (p *PeakPicker) Reset() { p.disarmed = false }
