package main

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cwbudde/algo-pitch/dsp/buffer"
	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-pitch/dsp/novelty"
	"github.com/cwbudde/algo-pitch/dsp/pitch"
	"github.com/cwbudde/algo-pitch/dsp/window"
	"github.com/cwbudde/algo-pitch/internal/audiofile"
	"github.com/cwbudde/algo-pitch/internal/report"
	"github.com/cwbudde/algo-pitch/stats/frequency"
)

type options struct {
	window         int
	hop            int
	lag            int
	downsampling   int
	chunk          int
	threshold      float64
	queue          int
	onsets         bool
	onsetThreshold float64
	// onsetWindow names the window type of the onset detector; empty keeps
	// the novelty default.
	onsetWindow string
}

// pollInterval is how long the consumer waits when the queue is empty.
const pollInterval = time.Millisecond

type onset struct {
	time     float64
	novelty  float64
	centroid float64
	flatness float64
}

type analysis struct {
	readings []report.Reading
	onsets   []onset
	dropped  int
}

// analyze feeds clip to a pitch detector in opts.chunk sized pieces on a
// producer goroutine. Snapshots travel through a fixed-size queue to the
// calling goroutine, which passes each to emit and records it as a reading.
// A full queue drops the snapshot, as a real-time producer would.
func analyze(clip *audiofile.Clip, opts options, emit func(*pitch.Snapshot) error) (analysis, error) {
	if opts.chunk <= 0 {
		return analysis{}, fmt.Errorf("chunk size must be > 0: %d", opts.chunk)
	}

	d, err := pitch.NewDetector(
		pitch.WithSampleRate(clip.SampleRate),
		pitch.WithWindowSize(opts.window),
		pitch.WithHopSize(opts.hop),
		pitch.WithLagCount(opts.lag),
		pitch.WithDownsampling(opts.downsampling),
		pitch.WithPeakThreshold(opts.threshold),
	)
	if err != nil {
		return analysis{}, err
	}

	var (
		nov    *novelty.Detector
		picker *novelty.PeakPicker
		shape  *frequency.Analyzer
		res    analysis
	)
	if opts.onsets {
		novOpts := []novelty.Option{novelty.WithStreamOptions(core.WithSampleRate(clip.SampleRate))}
		if opts.onsetWindow != "" {
			wt, err := window.ParseType(opts.onsetWindow)
			if err != nil {
				return analysis{}, fmt.Errorf("onset window: %w", err)
			}
			novOpts = append(novOpts, novelty.WithWindow(wt))
		}
		nov, err = novelty.NewDetector(novOpts...)
		if err != nil {
			return analysis{}, err
		}
		picker = novelty.NewPeakPicker(opts.onsetThreshold)

		cfg := nov.Config()
		n := cfg.DownsampledWindowSize()
		shape, err = frequency.NewAnalyzer(n/2, cfg.EffectiveSampleRate()/float64(n))
		if err != nil {
			return analysis{}, err
		}
	}

	q, err := buffer.NewQueue[pitch.Snapshot](opts.queue)
	if err != nil {
		return analysis{}, err
	}

	var dropped atomic.Int64
	done := make(chan struct{})
	go func() {
		defer close(done)

		onWindow := func(r *pitch.Result) {
			ok := q.PushWith(func(s *pitch.Snapshot) {
				r.SnapshotInto(s)
				s.Timestamp = d.LatestWindowTimestamp()
			})
			if !ok {
				dropped.Add(1)
			}
		}
		onNovelty := func(f *novelty.SpectralFlux) {
			if picker.Process(f.Novelty()) {
				desc := shape.Describe(f.PowerSpectrum())
				res.onsets = append(res.onsets, onset{
					time:     float64(nov.SamplePosition()) / clip.SampleRate,
					novelty:  f.Novelty(),
					centroid: desc.Centroid,
					flatness: desc.Flatness,
				})
			}
		}

		for start := 0; start < len(clip.Samples); start += opts.chunk {
			chunk := clip.Samples[start:min(start+opts.chunk, len(clip.Samples))]
			d.Process(chunk, onWindow)
			if nov != nil {
				nov.Process(chunk, onNovelty)
			}
		}
	}()

	var emitErr error
	consume := func(s *pitch.Snapshot) {
		res.readings = append(res.readings, report.Reading{
			Time:      s.Timestamp,
			Frequency: s.Frequency,
			Clarity:   s.Clarity,
			MIDINote:  s.MIDINoteNumber,
			IsTone:    s.IsTone,
		})
		if emitErr == nil && emit != nil {
			emitErr = emit(s)
		}
	}
	poll := time.NewTicker(pollInterval)
	defer poll.Stop()
consumer:
	for {
		if q.PopWith(consume) {
			continue
		}
		select {
		case <-done:
			// Drain items pushed between the last pop and the close.
			for q.PopWith(consume) {
			}
			break consumer
		case <-poll.C:
		}
	}

	res.dropped = int(dropped.Load())
	if emitErr != nil {
		return res, fmt.Errorf("write snapshot: %w", emitErr)
	}
	return res, nil
}
