package novelty

import (
	"errors"
	"fmt"

	"github.com/meko-christian/algo-approx"
)

// ErrInvalidCompression is returned for compression parameters that do not
// describe a valid curve.
var ErrInvalidCompression = errors.New("novelty: invalid compression parameters")

// Compression maps a bin power to a compressed value. Curves are designed
// for inputs in [0, 1] and map 0 to 0.
type Compression interface {
	Compress(x float64) float64
}

// HardKneeCompression is a two-segment piecewise linear curve through
// (0, 0), (xKnee, yKnee) and (1, 1).
type HardKneeCompression struct {
	xKnee  float64
	kLow   float64
	kHigh  float64
	offset float64
}

// DefaultHardKneeCompression returns the curve with its knee at (0.1, 0.7).
func DefaultHardKneeCompression() *HardKneeCompression {
	c, _ := NewHardKneeCompression(0.1, 0.7)
	return c
}

// NewHardKneeCompression returns a curve with its knee at (xKnee, yKnee).
// xKnee must lie in (0, 1).
func NewHardKneeCompression(xKnee, yKnee float64) (*HardKneeCompression, error) {
	c := &HardKneeCompression{}
	if err := c.Set(xKnee, yKnee); err != nil {
		return nil, err
	}
	return c, nil
}

// Set moves the knee.
func (c *HardKneeCompression) Set(xKnee, yKnee float64) error {
	if !(xKnee > 0 && xKnee < 1) {
		return fmt.Errorf("%w: knee x %v not in (0, 1)", ErrInvalidCompression, xKnee)
	}

	c.xKnee = xKnee
	c.kLow = yKnee / xKnee
	c.kHigh = (yKnee - 1) / (xKnee - 1)
	c.offset = 1 - c.kHigh
	return nil
}

// Knee returns the knee position.
func (c *HardKneeCompression) Knee() (x, y float64) {
	return c.xKnee, c.kLow * c.xKnee
}

// Compress implements [Compression].
func (c *HardKneeCompression) Compress(x float64) float64 {
	if x < c.xKnee {
		return c.kLow * x
	}
	return c.kHigh*x + c.offset
}

// QuarticCompression maps [0, 1] onto a quartic segment between a and b,
// rescaled so that 0 maps to 0 and 1 maps to 1.
type QuarticCompression struct {
	a     float64
	a4    float64
	span  float64
	scale float64
}

// NewQuarticCompression builds the curve for the segment [a, b]. a^4 and
// b^4 must differ.
func NewQuarticCompression(a, b float64) (*QuarticCompression, error) {
	a4 := a * a * a * a
	b4 := b * b * b * b
	if a4 == b4 {
		return nil, fmt.Errorf("%w: quartic endpoints %v and %v have equal magnitude", ErrInvalidCompression, a, b)
	}

	return &QuarticCompression{
		a:     a,
		a4:    a4,
		span:  b - a,
		scale: 1 / (a4 - b4),
	}, nil
}

// Compress implements [Compression].
func (c *QuarticCompression) Compress(x float64) float64 {
	v := c.a + x*c.span
	v2 := v * v
	return (c.a4 - v2*v2) * c.scale
}

// LogCompression computes log(1 + gamma*x) with a fast logarithm.
type LogCompression struct {
	gamma float64
}

// NewLogCompression returns the curve for a positive gamma.
func NewLogCompression(gamma float64) (*LogCompression, error) {
	if !(gamma > 0) {
		return nil, fmt.Errorf("%w: gamma must be > 0: %v", ErrInvalidCompression, gamma)
	}
	return &LogCompression{gamma: gamma}, nil
}

// Gamma returns the compression strength.
func (c *LogCompression) Gamma() float64 { return c.gamma }

// Compress implements [Compression].
func (c *LogCompression) Compress(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return approx.FastLog(1 + c.gamma*x)
}
