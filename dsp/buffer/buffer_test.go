package buffer

import "testing"

func TestBufferResizeReusesCapacity(t *testing.T) {
	b := New(8)
	b.Samples()[7] = 5

	b.Resize(4)
	if b.Len() != 4 || b.Cap() != 8 {
		t.Fatalf("len/cap = %d/%d, want 4/8", b.Len(), b.Cap())
	}

	b.Resize(8)
	if got := b.Samples()[7]; got != 0 {
		t.Fatalf("re-exposed sample = %v, want 0", got)
	}

	b.Resize(16)
	if b.Len() != 16 {
		t.Fatalf("len = %d, want 16", b.Len())
	}

	b.Resize(-1)
	if b.Len() != 0 {
		t.Fatalf("len = %d, want 0", b.Len())
	}
}

func TestBufferSetFloat32(t *testing.T) {
	b := New(0)
	got := b.SetFloat32([]float32{0.5, -0.25, 1})
	want := []float64{0.5, -0.25, 1}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("samples[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	small := []float32{1, 2}
	allocs := testing.AllocsPerRun(100, func() {
		b.SetFloat32(small)
	})
	if allocs != 0 {
		t.Fatalf("SetFloat32 within capacity allocated %v times", allocs)
	}

	b.Zero()
	for i, v := range b.Samples() {
		if v != 0 {
			t.Fatalf("samples[%d] = %v after Zero", i, v)
		}
	}
}
