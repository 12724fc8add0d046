package shim

import (
	"encoding/json"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-pitch/dsp/pitch"
	"github.com/cwbudde/algo-pitch/internal/testutil"
)

func sine32(freq float64, n int) []float32 {
	s := testutil.DeterministicSine(freq, 44100, 0.5, n)
	out := make([]float32, n)
	for i, v := range s {
		out[i] = float32(v)
	}
	return out
}

func newHandle(t *testing.T, opts ...pitch.Option) *Handle {
	t.Helper()
	h, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return h
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	if _, err := New(pitch.WithHopSize(0)); !errors.Is(err, core.ErrInvalidHopSize) {
		t.Fatalf("New() error = %v, want ErrInvalidHopSize", err)
	}
}

func TestProcessReportsNewWindows(t *testing.T) {
	h := newHandle(t)
	signal := sine32(440, 4096)

	if h.Process(signal[:1000]) {
		t.Fatal("Process() = true before the first window filled")
	}
	if !h.Process(signal[1000:1100]) {
		t.Fatal("Process() = false after the first window filled")
	}
	h.Process(signal[1100:])
	if got := h.WindowCount(); got != 7 {
		t.Fatalf("WindowCount() = %d, want 7", got)
	}

	if f := h.Frequency(); math.Abs(f-440) > 0.5 {
		t.Fatalf("Frequency() = %v, want ~440", f)
	}
	if !h.IsTone() || !h.IsToneWithOptions(0.9, 0.5, 0.05) {
		t.Fatal("expected a tone")
	}
	if c := h.Clarity(); c < 0.9 {
		t.Fatalf("Clarity() = %v, want >= 0.9", c)
	}
	if n := h.MIDINoteNumber(); math.Abs(n-69) > 0.05 {
		t.Fatalf("MIDINoteNumber() = %v, want ~69", n)
	}
	if h.SelectedKeyMaxIndex() < 0 {
		t.Fatal("SelectedKeyMaxIndex() < 0 for a tone")
	}
	if p := h.WindowPeak(); p < 0.49 || p > 0.5 {
		t.Fatalf("WindowPeak() = %v", p)
	}
	if r := h.WindowRMS(); math.Abs(r-0.5/math.Sqrt2) > 0.01 {
		t.Fatalf("WindowRMS() = %v", r)
	}
}

func TestNSDFAndKeyMaximaCopies(t *testing.T) {
	h := newHandle(t)
	h.Process(sine32(440, 2048))

	nsdf := make([]float32, 1024)
	if n := h.NSDF(nsdf); n != 512 {
		t.Fatalf("NSDF() = %d, want 512", n)
	}
	if nsdf[0] < 0.99 {
		t.Fatalf("nsdf[0] = %v, want ~1", nsdf[0])
	}
	if n := h.NSDF(make([]float32, 10)); n != 10 {
		t.Fatalf("NSDF() into short buffer = %d, want 10", n)
	}

	pairs := make([]float32, 2*pitch.MaxKeyMaxima)
	n := h.KeyMaxima(pairs)
	if n == 0 {
		t.Fatal("KeyMaxima() = 0")
	}
	sel := h.SelectedKeyMaxIndex()
	if lag := pairs[2*sel]; math.Abs(44100/float64(lag)-440) > 1 {
		t.Fatalf("selected lag %v does not match 440 Hz", lag)
	}
	if got := h.KeyMaxima(make([]float32, 3)); got != 1 {
		t.Fatalf("KeyMaxima() into 3 slots = %d, want 1", got)
	}
}

func TestSetDownsampling(t *testing.T) {
	h := newHandle(t, pitch.WithSampleRate(48000))

	if err := h.SetDownsampling(3); !errors.Is(err, core.ErrWindowNotDivisible) {
		t.Fatalf("SetDownsampling(3) error = %v, want ErrWindowNotDivisible", err)
	}
	if h.Downsampling() != 1 {
		t.Fatal("failed SetDownsampling replaced the detector")
	}

	if err := h.SetDownsampling(2); err != nil {
		t.Fatalf("SetDownsampling(2): %v", err)
	}
	if h.Downsampling() != 2 || h.SampleRate() != 48000 {
		t.Fatalf("after SetDownsampling: ds=%d sr=%v", h.Downsampling(), h.SampleRate())
	}

	s := testutil.DeterministicSine(300, 48000, 0.5, 4096)
	buf := make([]float32, len(s))
	for i, v := range s {
		buf[i] = float32(v)
	}
	h.Process(buf)
	if f := h.Frequency(); math.Abs(f-300) > 1 {
		t.Fatalf("Frequency() = %v, want ~300", f)
	}
	if h.LagCount() != 256 {
		t.Fatalf("LagCount() = %d, want 256", h.LagCount())
	}
	if n := h.NSDF(make([]float32, 1024)); n != 256 {
		t.Fatalf("NSDF() = %d, want 256 lags after decimation", n)
	}
}

func TestSetSampleRate(t *testing.T) {
	h := newHandle(t)
	if err := h.SetSampleRate(-1); !errors.Is(err, core.ErrInvalidSampleRate) {
		t.Fatalf("SetSampleRate(-1) error = %v", err)
	}
	if err := h.SetSampleRate(22050); err != nil {
		t.Fatalf("SetSampleRate: %v", err)
	}
	if err := h.SetDownsampling(2); err != nil {
		t.Fatalf("SetDownsampling: %v", err)
	}
	if h.SampleRate() != 22050 {
		t.Fatalf("SampleRate() = %v after rebuild, want 22050", h.SampleRate())
	}
}

func TestRepeatedSettingsKeepOptionsBounded(t *testing.T) {
	h := newHandle(t)
	base := len(h.opts)

	for i := range 100 {
		if err := h.SetSampleRate(float64(22050 + i)); err != nil {
			t.Fatalf("SetSampleRate: %v", err)
		}
	}
	for _, factor := range []int{2, 1, 2} {
		if err := h.SetDownsampling(factor); err != nil {
			t.Fatalf("SetDownsampling(%d): %v", factor, err)
		}
	}

	if len(h.opts) != base {
		t.Fatalf("len(opts) = %d after repeated settings, want %d", len(h.opts), base)
	}
	if h.SampleRate() != 22149 || h.Downsampling() != 2 {
		t.Fatalf("SampleRate/Downsampling = %v/%d, want 22149/2", h.SampleRate(), h.Downsampling())
	}
}

func TestSnapshotJSON(t *testing.T) {
	h := newHandle(t)
	h.Process(sine32(440, 2048))

	data, err := h.SnapshotJSON()
	if err != nil {
		t.Fatalf("SnapshotJSON: %v", err)
	}

	var s pitch.Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if math.Abs(s.Frequency-440) > 0.5 || !s.IsTone || len(s.NSDF) != 512 {
		t.Fatalf("snapshot = freq %v tone %v nsdf %d", s.Frequency, s.IsTone, len(s.NSDF))
	}
	if want := 2048.0 / 44100; math.Abs(s.Timestamp-want) > 1e-12 {
		t.Fatalf("Timestamp = %v, want %v", s.Timestamp, want)
	}
	if got := h.Snapshot(); got.Frequency != s.Frequency {
		t.Fatalf("Snapshot().Frequency = %v, want %v", got.Frequency, s.Frequency)
	}
}

func TestReset(t *testing.T) {
	h := newHandle(t)
	h.Process(sine32(440, 2048))
	h.Reset()
	if h.Frequency() != 0 || h.SelectedKeyMaxIndex() != -1 {
		t.Fatalf("after Reset: freq %v selected %d", h.Frequency(), h.SelectedKeyMaxIndex())
	}
	if h.Process(sine32(440, 512)) {
		t.Fatal("Process() = true before the window refilled")
	}
}

func TestConcurrentProcessAndPoll(t *testing.T) {
	h := newHandle(t)
	signal := sine32(440, 256)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 64 {
			h.Process(signal)
		}
	}()
	go func() {
		defer wg.Done()
		nsdf := make([]float32, 512)
		for range 64 {
			h.Frequency()
			h.NSDF(nsdf)
			if _, err := h.SnapshotJSON(); err != nil {
				t.Errorf("SnapshotJSON: %v", err)
				return
			}
		}
	}()
	wg.Wait()

	if got := h.WindowCount(); got != 31 {
		t.Fatalf("WindowCount() = %d, want 31", got)
	}
}
