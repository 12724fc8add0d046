package pitch_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-pitch/dsp/pitch"
)

func ExampleDetector() {
	const sampleRate = 44100

	d, err := pitch.NewDetector(
		pitch.WithSampleRate(sampleRate),
		pitch.WithWindowSize(1024),
		pitch.WithHopSize(512),
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	tone := make([]float64, 2048)
	for i := range tone {
		tone[i] = math.Sin(2 * math.Pi * 440 * float64(i) / sampleRate)
	}

	// Feed the stream in host-sized blocks.
	for start := 0; start < len(tone); start += 256 {
		d.Process(tone[start:start+256], func(r *pitch.Result) {
			if r.IsTone() {
				fmt.Printf("%.1f Hz %s\n", r.Frequency(), core.NoteName(r.MIDINoteNumber()))
			}
		})
	}

	// Output:
	// 440.0 Hz A4
	// 440.0 Hz A4
	// 440.0 Hz A4
}

func ExampleKeyMaximum_Set() {
	var km pitch.KeyMaximum
	km.Set([]float64{-2, 0, -1}, 1)
	fmt.Printf("lag=%.4f value=%.4f\n", km.Lag, km.Value)

	// Output:
	// lag=1.1667 value=0.0417
}
