// Command mpmfile runs MPM pitch detection over a WAV file.
//
// Usage:
//
//	mpmfile [flags] file.wav
//
// Use "-" to read from standard input. The clip is fed to the detector in
// host-sized chunks, as an audio callback would, and one row is printed per
// analysed window followed by a summary.
//
// Examples:
//
//	mpmfile voice.wav
//	mpmfile -window 2048 -hop 256 -downsampling 2 voice.wav
//	mpmfile -json voice.wav > track.jsonl
//	mpmfile -onsets -onset-threshold 0.4 piano.wav
//	mpmfile -onsets -onset-window fasthann piano.wav
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-pitch/dsp/pitch"
	"github.com/cwbudde/algo-pitch/internal/audiofile"
	"github.com/cwbudde/algo-pitch/internal/report"
)

func main() {
	var opts options
	flag.IntVar(&opts.window, "window", 1024, "window size in input samples")
	flag.IntVar(&opts.hop, "hop", 512, "hop size in input samples")
	flag.IntVar(&opts.lag, "lag", 0, "NSDF lag count in input samples (0 = window/2)")
	flag.IntVar(&opts.downsampling, "downsampling", 1, "integer decimation factor")
	flag.IntVar(&opts.chunk, "chunk", 256, "samples per process call")
	flag.Float64Var(&opts.threshold, "threshold", pitch.DefaultPeakThreshold, "key maximum selection threshold")
	flag.IntVar(&opts.queue, "queue", 64, "snapshot queue capacity")
	flag.BoolVar(&opts.onsets, "onsets", false, "also list spectral-flux onsets")
	flag.Float64Var(&opts.onsetThreshold, "onset-threshold", 0.4, "novelty level that triggers an onset")
	flag.StringVar(&opts.onsetWindow, "onset-window", "Hann", "onset analysis window (Rectangular, Hann, Hamming, Blackman, Welch, Cosine, FastHann)")
	jsonOut := flag.Bool("json", false, "write one JSON snapshot per window instead of a table")
	all := flag.Bool("all", false, "include non-tonal windows in the table")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mpmfile [flags] file.wav\n\n")
		fmt.Fprintf(os.Stderr, "Runs MPM pitch detection over a WAV file (\"-\" reads stdin).\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  mpmfile voice.wav\n")
		fmt.Fprintf(os.Stderr, "  mpmfile -window 2048 -hop 256 -downsampling 2 voice.wav\n")
		fmt.Fprintf(os.Stderr, "  mpmfile -json voice.wav\n")
		fmt.Fprintf(os.Stderr, "  mpmfile -onsets piano.wav\n")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	clip, err := loadClip(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var enc *json.Encoder
	if *jsonOut {
		enc = json.NewEncoder(os.Stdout)
	}

	res, err := analyze(clip, opts, func(s *pitch.Snapshot) error {
		if enc == nil {
			return nil
		}
		return enc.Encode(s)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if res.dropped > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d snapshots dropped\n", res.dropped)
	}

	if *jsonOut {
		return
	}
	printReadings(os.Stdout, res.readings, *all)
	printSummary(os.Stdout, clip, report.Summarize(res.readings))
	if opts.onsets {
		printOnsets(os.Stdout, res.onsets)
	}
}

func loadClip(path string) (*audiofile.Clip, error) {
	if path == "-" {
		return audiofile.Load(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return audiofile.Load(f)
}

func printReadings(w io.Writer, readings []report.Reading, all bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Time [s]\tFrequency [Hz]\tClarity\tNote\tMIDI\tTone\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(tw, "--------\t--------------\t-------\t----\t----\t----\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for _, r := range readings {
		if !r.IsTone && !all {
			continue
		}
		note := "-"
		if r.Frequency > 0 {
			note = core.NoteName(r.MIDINote)
		}
		if _, err := fmt.Fprintf(tw, "%.3f\t%.2f\t%.3f\t%s\t%.2f\t%t\n",
			r.Time, r.Frequency, r.Clarity, note, r.MIDINote, r.IsTone,
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func printSummary(w io.Writer, clip *audiofile.Clip, s report.Summary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "\nClip\t%v at %.0f Hz, %d channel(s)\n", clip.Duration(), clip.SampleRate, clip.Channels)
	fmt.Fprintf(tw, "Windows\t%d (%d tonal)\n", s.Count, s.TonalCount)
	fmt.Fprintf(tw, "Clarity\tmean %.3f, median %.3f\n", s.MeanClarity, s.MedianClarity)
	if s.TonalCount > 0 {
		fmt.Fprintf(tw, "Frequency\tmean %.2f Hz, median %.2f Hz, stddev %.2f Hz\n",
			s.MeanFrequency, s.MedianFrequency, s.StdDevFrequency)
		fmt.Fprintf(tw, "Median note\t%s (%.2f)\n", s.MedianNoteName, s.MedianMIDINote)
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func printOnsets(w io.Writer, onsets []onset) {
	fmt.Fprintf(w, "\nOnsets: %d\n", len(onsets))
	for _, o := range onsets {
		fmt.Fprintf(w, "  %.3f s  novelty %.4f  centroid %.0f Hz  flatness %.3f\n",
			o.time, o.novelty, o.centroid, o.flatness)
	}
}
