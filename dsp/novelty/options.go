package novelty

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-pitch/dsp/spectrum"
	"github.com/cwbudde/algo-pitch/dsp/window"
)

// ErrWindowNotPowerOfTwo is returned when the decimated window size is not a
// supported FFT size.
var ErrWindowNotPowerOfTwo = errors.New("novelty: decimated window size must be a supported FFT size")

// Config holds Detector settings. Sizes are in input-rate samples.
type Config struct {
	core.StreamConfig

	Window      window.Type
	Compression Compression
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a 1024-sample Hann window with a hop of 512 and the
// default hard-knee compression.
func DefaultConfig() Config {
	return Config{
		StreamConfig: core.DefaultStreamConfig(),
		Window:       window.TypeHann,
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

// WithWindowSize sets the window size in input samples.
func WithWindowSize(size int) Option {
	return WithStreamOptions(core.WithWindowSize(size))
}

// WithHopSize sets the hop size in input samples.
func WithHopSize(size int) Option {
	return WithStreamOptions(core.WithHopSize(size))
}

// WithDownsampling sets the integer decimation factor.
func WithDownsampling(factor int) Option {
	return WithStreamOptions(core.WithDownsampling(factor))
}

// WithWindow selects the weighting window.
func WithWindow(t window.Type) Option {
	return func(cfg *Config) {
		cfg.Window = t
	}
}

// WithCompression selects the compression curve.
func WithCompression(c Compression) Option {
	return func(cfg *Config) {
		cfg.Compression = c
	}
}

// ApplyOptions applies opts to DefaultConfig.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.Compression == nil {
		cfg.Compression = DefaultHardKneeCompression()
	}
	return cfg
}

// Validate checks the stream settings and the FFT size.
func (c Config) Validate() error {
	if err := c.StreamConfig.Validate(); err != nil {
		return err
	}
	if n := c.DownsampledWindowSize(); !spectrum.IsSupportedSize(n) {
		return fmt.Errorf("%w: %d", ErrWindowNotPowerOfTwo, n)
	}
	return nil
}
