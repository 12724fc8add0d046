package buffer

// Buffer wraps a float64 slice that is reused across calls, typically to
// hold host samples converted from float32.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	return &Buffer{samples: make([]float64, max(length, 0))}
}

// Samples returns the underlying slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Cap returns the capacity of the backing slice.
func (b *Buffer) Cap() int {
	return cap(b.samples)
}

// Resize sets the length to n, reusing existing capacity when possible.
// Newly exposed elements are zeroed.
func (b *Buffer) Resize(n int) {
	n = max(n, 0)
	old := len(b.samples)
	if n <= cap(b.samples) {
		b.samples = b.samples[:n]
	} else {
		s := make([]float64, n)
		copy(s, b.samples)
		b.samples = s
	}
	if n > old {
		clear(b.samples[old:])
	}
}

// SetFloat32 resizes the buffer to len(src) and stores src widened to
// float64. It returns the samples.
func (b *Buffer) SetFloat32(src []float32) []float64 {
	b.Resize(len(src))
	for i, v := range src {
		b.samples[i] = float64(v)
	}
	return b.samples
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	clear(b.samples)
}
