// Package audiofile loads WAV clips as mono float64 samples for offline
// analysis.
package audiofile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/cwbudde/algo-vecmath"
	"github.com/mjibson/go-dsp/wav"
)

// Clip is a decoded mono clip.
type Clip struct {
	SampleRate float64
	// Channels is the channel count of the source before the mixdown.
	Channels int
	Samples  []float64
}

// Duration returns the clip length.
func (c *Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(c.Samples)) / c.SampleRate * float64(time.Second))
}

// Load decodes a PCM8, PCM16 or float32 WAV stream. Interleaved channels are
// averaged to mono and PCM data is scaled to [-1, 1).
func Load(r io.Reader) (*Clip, error) {
	w, err := wav.New(r)
	if err != nil {
		return nil, fmt.Errorf("audiofile: read header: %w", err)
	}

	channels := max(int(w.NumChannels), 1)

	// The header's sample count rounds down to a multiple of eight, so the
	// tail is read one sample at a time until the data chunk ends.
	interleaved, err := appendSamples(nil, w, w.Samples)
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("audiofile: truncated data chunk: %w", io.ErrUnexpectedEOF)
	}
	if err != nil {
		return nil, err
	}
	for {
		interleaved, err = appendSamples(interleaved, w, 1)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	return &Clip{
		SampleRate: float64(w.SampleRate),
		Channels:   channels,
		Samples:    mixDown(interleaved, channels),
	}, nil
}

// appendSamples reads n samples from w and appends them to dst scaled to
// float64. A clean end of the data chunk is reported as io.EOF.
func appendSamples(dst []float64, w *wav.Wav, n int) ([]float64, error) {
	if n == 0 {
		return dst, nil
	}

	raw, err := w.ReadSamples(n)
	switch {
	case errors.Is(err, io.EOF):
		return dst, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		return dst, fmt.Errorf("audiofile: truncated data chunk: %w", err)
	case err != nil:
		return dst, fmt.Errorf("audiofile: read samples: %w", err)
	}

	switch data := raw.(type) {
	case []uint8:
		for _, v := range data {
			dst = append(dst, (float64(v)-128)/128)
		}
	case []int16:
		for _, v := range data {
			dst = append(dst, float64(v)/-math.MinInt16)
		}
	case []float32:
		for _, v := range data {
			dst = append(dst, float64(v))
		}
	default:
		return dst, fmt.Errorf("audiofile: unsupported sample type %T", raw)
	}
	return dst, nil
}

func mixDown(interleaved []float64, channels int) []float64 {
	if channels == 1 {
		return interleaved
	}

	frames := len(interleaved) / channels
	mono := make([]float64, frames)
	for i := range mono {
		frame := interleaved[i*channels : (i+1)*channels]
		mono[i] = vecmath.Sum(frame)
	}
	vecmath.ScaleBlockInPlace(mono, 1/float64(channels))
	return mono
}
