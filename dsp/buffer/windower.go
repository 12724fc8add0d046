package buffer

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidWindowSize is returned for a non-positive window size.
	ErrInvalidWindowSize = errors.New("buffer: window size must be > 0")
	// ErrInvalidHopSize is returned for a non-positive hop size.
	ErrInvalidHopSize = errors.New("buffer: hop size must be > 0")
	// ErrHopExceedsWindow is returned when the hop is larger than the window.
	ErrHopExceedsWindow = errors.New("buffer: hop size exceeds window size")
	// ErrInvalidDownsampling is returned for a non-positive decimation factor.
	ErrInvalidDownsampling = errors.New("buffer: downsampling factor must be > 0")
)

// Windower accumulates a sample stream into overlapping analysis windows.
//
// Input is decimated by keeping every Downsampling()-th sample. The decimation
// phase and the partially filled window survive across Process calls, so the
// windows produced do not depend on how the stream is chunked. The first
// window is emitted once WindowSize() decimated samples have arrived, and one
// more window after every further HopSize() decimated samples.
//
// Samples are stored twice in a ring of 2*WindowSize() so that every window
// is a contiguous sub-slice and no data moves on a hop.
type Windower struct {
	size         int
	hop          int
	downsampling int

	ring  []float64
	write int

	pending int
	need    int
	skip    int

	consumed  int64
	windowEnd int64
	windows   uint64

	busy bool
}

// NewWindower creates a Windower. size and hop are in decimated samples.
func NewWindower(size, hop, downsampling int) (*Windower, error) {
	switch {
	case size <= 0:
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindowSize, size)
	case hop <= 0:
		return nil, fmt.Errorf("%w: %d", ErrInvalidHopSize, hop)
	case hop > size:
		return nil, fmt.Errorf("%w: hop %d > window %d", ErrHopExceedsWindow, hop, size)
	case downsampling <= 0:
		return nil, fmt.Errorf("%w: %d", ErrInvalidDownsampling, downsampling)
	}

	return &Windower{
		size:         size,
		hop:          hop,
		downsampling: downsampling,
		ring:         make([]float64, 2*size),
		need:         size,
	}, nil
}

// WindowSize returns the window length in decimated samples.
func (w *Windower) WindowSize() int { return w.size }

// HopSize returns the hop length in decimated samples.
func (w *Windower) HopSize() int { return w.hop }

// Downsampling returns the decimation factor.
func (w *Windower) Downsampling() int { return w.downsampling }

// ProcessedWindowCount returns the number of windows delivered since
// construction or the last Reset.
func (w *Windower) ProcessedWindowCount() uint64 { return w.windows }

// SamplePosition returns the input-rate index one past the last sample of the
// most recently delivered window, or 0 if none was delivered yet.
func (w *Windower) SamplePosition() int64 { return w.windowEnd }

// Process consumes buf and calls handler once per completed window.
//
// The window slice is only valid during the handler call and must not be
// modified. The handler must not call Process on the same Windower. A nil
// handler consumes input without delivering windows.
func (w *Windower) Process(buf []float64, handler func(window []float64)) {
	if w.busy {
		panic("buffer: Windower.Process called re-entrantly from its handler")
	}
	w.busy = true
	defer func() { w.busy = false }()

	i := w.skip
	for ; i < len(buf); i += w.downsampling {
		v := buf[i]
		w.ring[w.write] = v
		w.ring[w.write+w.size] = v
		w.write++
		if w.write == w.size {
			w.write = 0
		}

		w.pending++
		if w.pending < w.need {
			continue
		}

		w.pending = 0
		w.need = w.hop
		w.windows++
		w.windowEnd = w.consumed + int64(i) + 1
		if handler != nil {
			handler(w.ring[w.write : w.write+w.size])
		}
	}

	w.skip = i - len(buf)
	w.consumed += int64(len(buf))
}

// Reset discards buffered samples and restarts decimation at the next input
// sample. No memory is released.
func (w *Windower) Reset() {
	clear(w.ring)
	w.write = 0
	w.pending = 0
	w.need = w.size
	w.skip = 0
	w.consumed = 0
	w.windowEnd = 0
	w.windows = 0
}
