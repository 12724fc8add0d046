package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a sine wave starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// HarmonicTone sums harmonics k*f0 with the given amplitudes (index 0 is
// the fundamental).
func HarmonicTone(f0, sampleRate float64, amplitudes []float64, length int) []float64 {
	out := make([]float64, length)
	for k, a := range amplitudes {
		step := 2 * math.Pi * f0 * float64(k+1) / sampleRate
		for i := range out {
			out[i] += a * math.Sin(step*float64(i))
		}
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Ramp returns [0, 1, 2, ..., length-1].
func Ramp(length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// Impulse generates a unit impulse at pos.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// FeedChunks calls fn with consecutive slices of signal of at most chunk
// samples each.
func FeedChunks(signal []float64, chunk int, fn func([]float64)) {
	if chunk <= 0 {
		chunk = len(signal)
	}
	for start := 0; start < len(signal); start += chunk {
		end := min(start+chunk, len(signal))
		fn(signal[start:end])
	}
}
