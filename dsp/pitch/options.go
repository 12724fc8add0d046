package pitch

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-pitch/dsp/core"
)

// ErrLagExceedsWindow is returned when the lag count exceeds the window size.
var ErrLagExceedsWindow = errors.New("pitch: lag count exceeds window size")

// ErrInvalidLagCount is returned when the lag count leaves no lags after
// decimation.
var ErrInvalidLagCount = errors.New("pitch: lag count must be >= downsampling factor")

// Config holds Detector settings. Sizes are in input-rate samples.
type Config struct {
	core.StreamConfig

	// LagCount is the NSDF length before decimation. Zero selects
	// WindowSize/2.
	LagCount int

	PeakThreshold float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the stream defaults with LagCount = WindowSize/2
// and DefaultPeakThreshold.
func DefaultConfig() Config {
	return Config{
		StreamConfig:  core.DefaultStreamConfig(),
		PeakThreshold: DefaultPeakThreshold,
	}
}

// WithStreamOptions applies core stream options.
func WithStreamOptions(opts ...core.StreamOption) Option {
	return func(cfg *Config) {
		for _, opt := range opts {
			if opt != nil {
				opt(&cfg.StreamConfig)
			}
		}
	}
}

// WithSampleRate sets the input sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return WithStreamOptions(core.WithSampleRate(sampleRate))
}

// WithWindowSize sets the window size in input samples.
func WithWindowSize(size int) Option {
	return WithStreamOptions(core.WithWindowSize(size))
}

// WithHopSize sets the distance between window starts in input samples.
func WithHopSize(size int) Option {
	return WithStreamOptions(core.WithHopSize(size))
}

// WithDownsampling sets the integer decimation factor.
func WithDownsampling(factor int) Option {
	return WithStreamOptions(core.WithDownsampling(factor))
}

// WithLagCount sets the number of NSDF lags in input samples.
func WithLagCount(lags int) Option {
	return func(cfg *Config) {
		cfg.LagCount = lags
	}
}

// WithPeakThreshold sets the key-maximum selection threshold.
func WithPeakThreshold(k float64) Option {
	return func(cfg *Config) {
		cfg.PeakThreshold = k
	}
}

// ApplyOptions applies opts to DefaultConfig and resolves a zero LagCount.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.LagCount == 0 {
		cfg.LagCount = cfg.WindowSize / 2
	}
	return cfg
}

// Validate checks the stream settings, the lag count and the threshold.
func (c Config) Validate() error {
	if err := c.StreamConfig.Validate(); err != nil {
		return err
	}
	if c.LagCount < c.Downsampling {
		return fmt.Errorf("%w: %d < %d", ErrInvalidLagCount, c.LagCount, c.Downsampling)
	}
	if c.LagCount > c.WindowSize {
		return fmt.Errorf("%w: %d > %d", ErrLagExceedsWindow, c.LagCount, c.WindowSize)
	}
	if !(c.PeakThreshold > 0 && c.PeakThreshold <= 1) {
		return fmt.Errorf("%w: %v", ErrInvalidPeakThreshold, c.PeakThreshold)
	}
	return nil
}

// DownsampledLagCount returns the NSDF length after decimation, rounded
// down.
func (c Config) DownsampledLagCount() int {
	return c.LagCount / c.Downsampling
}
