package core

import (
	"errors"
	"fmt"
)

// Stream configuration errors.
var (
	ErrInvalidSampleRate   = errors.New("core: sample rate must be positive and finite")
	ErrInvalidWindowSize   = errors.New("core: window size must be > 0")
	ErrInvalidHopSize      = errors.New("core: hop size must be > 0")
	ErrHopExceedsWindow    = errors.New("core: hop size exceeds window size")
	ErrInvalidDownsampling = errors.New("core: downsampling factor must be > 0")
	ErrWindowNotDivisible  = errors.New("core: window size not divisible by downsampling factor")
	ErrHopNotDivisible     = errors.New("core: hop size not divisible by downsampling factor")
)

// StreamConfig describes how a sample stream is cut into analysis windows.
//
// WindowSize and HopSize are counted in input-rate samples. With a
// downsampling factor D the analysis operates on WindowSize/D samples per
// window, spaced HopSize/D downsampled samples apart, at SampleRate/D.
type StreamConfig struct {
	SampleRate   float64
	WindowSize   int
	HopSize      int
	Downsampling int
}

// StreamOption mutates a StreamConfig.
type StreamOption func(*StreamConfig)

// DefaultStreamConfig returns a 1024-sample window with 50% overlap at
// 44.1 kHz and no downsampling.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		SampleRate:   44100,
		WindowSize:   1024,
		HopSize:      512,
		Downsampling: 1,
	}
}

// WithSampleRate sets the input sample rate in Hz.
func WithSampleRate(sampleRate float64) StreamOption {
	return func(cfg *StreamConfig) {
		cfg.SampleRate = sampleRate
	}
}

// WithWindowSize sets the window size in input-rate samples.
func WithWindowSize(size int) StreamOption {
	return func(cfg *StreamConfig) {
		cfg.WindowSize = size
	}
}

// WithHopSize sets the hop size in input-rate samples.
func WithHopSize(size int) StreamOption {
	return func(cfg *StreamConfig) {
		cfg.HopSize = size
	}
}

// WithDownsampling sets the integer decimation factor.
func WithDownsampling(factor int) StreamOption {
	return func(cfg *StreamConfig) {
		cfg.Downsampling = factor
	}
}

// ApplyStreamOptions applies zero or more options to the default config.
//
// Options store values as given. Call [StreamConfig.Validate] before using
// the result.
func ApplyStreamOptions(opts ...StreamOption) StreamConfig {
	cfg := DefaultStreamConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate checks the configuration and returns the first violation found.
func (c StreamConfig) Validate() error {
	if !(c.SampleRate > 0) || !IsFinite(c.SampleRate) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, c.SampleRate)
	}
	if c.WindowSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWindowSize, c.WindowSize)
	}
	if c.HopSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidHopSize, c.HopSize)
	}
	if c.HopSize > c.WindowSize {
		return fmt.Errorf("%w: hop %d > window %d", ErrHopExceedsWindow, c.HopSize, c.WindowSize)
	}
	if c.Downsampling <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDownsampling, c.Downsampling)
	}
	if c.WindowSize%c.Downsampling != 0 {
		return fmt.Errorf("%w: %d %% %d != 0", ErrWindowNotDivisible, c.WindowSize, c.Downsampling)
	}
	if c.HopSize%c.Downsampling != 0 {
		return fmt.Errorf("%w: %d %% %d != 0", ErrHopNotDivisible, c.HopSize, c.Downsampling)
	}
	return nil
}

// DownsampledWindowSize returns the window length after decimation.
func (c StreamConfig) DownsampledWindowSize() int {
	return c.WindowSize / c.Downsampling
}

// DownsampledHopSize returns the hop length after decimation.
func (c StreamConfig) DownsampledHopSize() int {
	return c.HopSize / c.Downsampling
}

// EffectiveSampleRate returns the sample rate seen by per-window analysis.
func (c StreamConfig) EffectiveSampleRate() float64 {
	return c.SampleRate / float64(c.Downsampling)
}
