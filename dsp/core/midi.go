package core

import (
	"math"
	"strconv"
)

// midiOffset is 69 - 12*log2(440).
const midiOffset = 36.376316562295926

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// FreqToMIDINote converts a frequency in Hz to a fractional MIDI note number
// (A4 = 440 Hz = 69).
//
// The logarithm is approximated; the result deviates from the exact value by
// at most about 0.11 cents. Non-positive or non-finite input yields 0.
func FreqToMIDINote(freq float64) float64 {
	if !(freq > 0) || math.IsInf(freq, 1) {
		return 0
	}
	return 12*log2Approx(freq) - midiOffset
}

// MIDINoteToFreq converts a fractional MIDI note number to Hz.
func MIDINoteToFreq(note float64) float64 {
	return 440 * math.Exp2((note-69)/12)
}

// NoteName returns the name of the nearest equal-tempered note, for example
// "A4" for 69 or "C#-1" for 1.
func NoteName(note float64) string {
	n := int(math.Round(note))
	pc := ((n % 12) + 12) % 12
	octave := (n-pc)/12 - 1
	return noteNames[pc] + strconv.Itoa(octave)
}
