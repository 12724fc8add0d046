package spectrum

import (
	"errors"
	"fmt"
	"math/bits"
)

const (
	// MinFFTSize is the smallest supported transform size.
	MinFFTSize = 8
	// MaxFFTSize is the largest supported transform size.
	MaxFFTSize = 1 << 16
)

// ErrUnsupportedFFTSize is returned for sizes outside the supported set.
var ErrUnsupportedFFTSize = errors.New("spectrum: unsupported FFT size")

// IsSupportedSize reports whether n is a power of two in
// [MinFFTSize, MaxFFTSize].
func IsSupportedSize(n int) bool {
	return n >= MinFFTSize && n <= MaxFFTSize && n&(n-1) == 0
}

// NextSupportedSize returns the smallest supported size >= n.
func NextSupportedSize(n int) (int, error) {
	if n > MaxFFTSize {
		return 0, fmt.Errorf("%w: %d exceeds %d", ErrUnsupportedFFTSize, n, MaxFFTSize)
	}
	if n <= MinFFTSize {
		return MinFFTSize, nil
	}
	return 1 << bits.Len(uint(n-1)), nil
}
