package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestHarmonicTone(t *testing.T) {
	fund := DeterministicSine(100, 8000, 1, 64)
	tone := HarmonicTone(100, 8000, []float64{1}, 64)
	RequireSliceNearlyEqual(t, tone, fund, 1e-15)

	rich := HarmonicTone(100, 8000, []float64{1, 0.5}, 64)
	second := DeterministicSine(200, 8000, 0.5, 64)
	for i := range rich {
		if math.Abs(rich[i]-fund[i]-second[i]) > 1e-12 {
			t.Fatalf("index %d: harmonic sum mismatch", i)
		}
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	c := DeterministicNoise(43, 1.0, 64)
	RequireSliceNearlyEqual(t, a, b, 0)

	same := true
	for i := range a {
		if a[i] < -1 || a[i] > 1 {
			t.Fatalf("a[%d] = %v out of range", i, a[i])
		}
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestRamp(t *testing.T) {
	r := Ramp(5)
	RequireSliceNearlyEqual(t, r, []float64{0, 1, 2, 3, 4}, 0)
}

func TestImpulse(t *testing.T) {
	s := Impulse(8, 3)
	for i, v := range s {
		want := 0.0
		if i == 3 {
			want = 1
		}
		if v != want {
			t.Fatalf("s[%d] = %v, want %v", i, v, want)
		}
	}
	for _, v := range Impulse(4, 10) {
		if v != 0 {
			t.Fatal("out-of-range impulse should be all zeros")
		}
	}
}

func TestFeedChunks(t *testing.T) {
	var sizes []int
	total := 0
	FeedChunks(Ramp(10), 4, func(chunk []float64) {
		sizes = append(sizes, len(chunk))
		if chunk[0] != float64(total) {
			t.Fatalf("chunk starts at %v, want %d", chunk[0], total)
		}
		total += len(chunk)
	})
	if total != 10 || len(sizes) != 3 || sizes[2] != 2 {
		t.Fatalf("chunk sizes = %v, want [4 4 2]", sizes)
	}
}
