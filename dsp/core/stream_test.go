package core

import (
	"errors"
	"math"
	"testing"
)

func TestApplyStreamOptions(t *testing.T) {
	cfg := ApplyStreamOptions(
		WithSampleRate(48000),
		WithWindowSize(2048),
		WithHopSize(256),
		WithDownsampling(4),
		nil,
	)

	want := StreamConfig{SampleRate: 48000, WindowSize: 2048, HopSize: 256, Downsampling: 4}
	if cfg != want {
		t.Fatalf("cfg = %#v, want %#v", cfg, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
	if got := cfg.DownsampledWindowSize(); got != 512 {
		t.Fatalf("DownsampledWindowSize() = %d, want 512", got)
	}
	if got := cfg.DownsampledHopSize(); got != 64 {
		t.Fatalf("DownsampledHopSize() = %d, want 64", got)
	}
	if got := cfg.EffectiveSampleRate(); got != 12000 {
		t.Fatalf("EffectiveSampleRate() = %v, want 12000", got)
	}
}

func TestDefaultStreamConfigValid(t *testing.T) {
	if err := DefaultStreamConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestStreamConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		opts []StreamOption
		want error
	}{
		{name: "zero sample rate", opts: []StreamOption{WithSampleRate(0)}, want: ErrInvalidSampleRate},
		{name: "nan sample rate", opts: []StreamOption{WithSampleRate(math.NaN())}, want: ErrInvalidSampleRate},
		{name: "inf sample rate", opts: []StreamOption{WithSampleRate(math.Inf(1))}, want: ErrInvalidSampleRate},
		{name: "zero window", opts: []StreamOption{WithWindowSize(0)}, want: ErrInvalidWindowSize},
		{name: "zero hop", opts: []StreamOption{WithHopSize(0)}, want: ErrInvalidHopSize},
		{name: "hop exceeds window", opts: []StreamOption{WithWindowSize(16), WithHopSize(17)}, want: ErrHopExceedsWindow},
		{name: "zero downsampling", opts: []StreamOption{WithDownsampling(0)}, want: ErrInvalidDownsampling},
		{
			name: "window not divisible",
			opts: []StreamOption{WithWindowSize(15), WithHopSize(6), WithDownsampling(2)},
			want: ErrWindowNotDivisible,
		},
		{
			name: "hop not divisible",
			opts: []StreamOption{WithWindowSize(16), WithHopSize(5), WithDownsampling(2)},
			want: ErrHopNotDivisible,
		},
		{name: "hop equals window", opts: []StreamOption{WithWindowSize(16), WithHopSize(16)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ApplyStreamOptions(tt.opts...).Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
