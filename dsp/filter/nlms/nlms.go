package nlms

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

const (
	// DefaultStepSize is the default adaptation rate mu.
	DefaultStepSize = 0.02
	// DefaultRegularization is the default power regularization eps.
	DefaultRegularization = 1e-3
)

var (
	// ErrInvalidOrder is returned for a non-positive filter order.
	ErrInvalidOrder = errors.New("nlms: order must be > 0")
	// ErrInvalidStepSize is returned for a step size outside (0, 2).
	ErrInvalidStepSize = errors.New("nlms: step size must be in (0, 2)")
	// ErrInvalidRegularization is returned for a negative regularization.
	ErrInvalidRegularization = errors.New("nlms: regularization must be >= 0")
)

type config struct {
	stepSize       float64
	regularization float64
}

// Option configures a Filter.
type Option func(*config)

// WithStepSize sets the adaptation rate mu.
func WithStepSize(mu float64) Option {
	return func(c *config) { c.stepSize = mu }
}

// WithRegularization sets eps, added to the reference power before the
// weight update.
func WithRegularization(eps float64) Option {
	return func(c *config) { c.regularization = eps }
}

// Filter is an NLMS adaptive filter. It is not safe for concurrent use.
type Filter struct {
	weights []float64
	history []float64
	scratch []float64
	pos     int

	stepSize       float64
	regularization float64
}

// New creates a Filter with order taps, all weights zero.
func New(order int, opts ...Option) (*Filter, error) {
	cfg := config{
		stepSize:       DefaultStepSize,
		regularization: DefaultRegularization,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	switch {
	case order <= 0:
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	case !(cfg.stepSize > 0 && cfg.stepSize < 2):
		return nil, fmt.Errorf("%w: %v", ErrInvalidStepSize, cfg.stepSize)
	case !(cfg.regularization >= 0):
		return nil, fmt.Errorf("%w: %v", ErrInvalidRegularization, cfg.regularization)
	}

	return &Filter{
		weights:        make([]float64, order),
		history:        make([]float64, 2*order),
		scratch:        make([]float64, order),
		stepSize:       cfg.stepSize,
		regularization: cfg.regularization,
	}, nil
}

// Order returns the number of taps.
func (f *Filter) Order() int { return len(f.weights) }

// StepSize returns mu.
func (f *Filter) StepSize() float64 { return f.stepSize }

// Regularization returns eps.
func (f *Filter) Regularization() float64 { return f.regularization }

// Update pushes reference sample x, predicts d and adapts. It returns the
// prediction error.
//
//	y = w . x_n
//	e = d - y
//	w += mu * e / (x_n . x_n + eps) * x_n
func (f *Filter) Update(x, d float64) float64 {
	n := len(f.weights)

	// history[pos:pos+n] holds x(n), x(n-1), ... in that order.
	f.pos--
	if f.pos < 0 {
		f.pos = n - 1
	}
	f.history[f.pos] = x
	f.history[f.pos+n] = x
	taps := f.history[f.pos : f.pos+n]

	power := vecmath.DotProduct(taps, taps)
	// A residual this small only drives the weights into denormals.
	e := core.FlushDenormals(d - vecmath.DotProduct(f.weights, taps))

	vecmath.ScaleBlock(f.scratch, taps, f.stepSize*e/(power+f.regularization))
	vecmath.AddBlockInPlace(f.weights, f.scratch)
	return e
}

// ProcessBlock runs Update over x and d and writes the errors to e. All
// three slices must have the same length.
func (f *Filter) ProcessBlock(e, x, d []float64) {
	if len(x) != len(d) || len(e) != len(x) {
		panic(fmt.Sprintf("nlms: block length mismatch: e=%d x=%d d=%d", len(e), len(x), len(d)))
	}
	for i := range x {
		e[i] = f.Update(x[i], d[i])
	}
}

// Weights returns the current weights, index 0 applying to the newest
// reference sample. The slice aliases the filter state.
func (f *Filter) Weights() []float64 { return f.weights }

// Reset zeroes the weights and the delay line.
func (f *Filter) Reset() {
	clear(f.weights)
	clear(f.history)
	f.pos = 0
}
