package spectrum

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-pitch/internal/testutil"
)

func BenchmarkPowerSpectrum(b *testing.B) {
	for _, n := range []int{256, 1024, 2048, 8192} {
		b.Run(sizeName(n), func(b *testing.B) {
			f, err := NewRealFFT(n)
			if err != nil {
				b.Fatal(err)
			}
			src := testutil.DeterministicNoise(1, 1, n/2)
			dst := make([]float64, f.Bins())

			b.SetBytes(int64(n * 8))
			b.ResetTimer()
			for range b.N {
				f.PowerSpectrum(dst, src)
			}
		})
	}
}

func sizeName(n int) string {
	if n >= 1024 {
		return strconv.Itoa(n/1024) + "K"
	}
	return strconv.Itoa(n)
}
