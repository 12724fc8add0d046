// Package pitch implements streaming monophonic pitch detection with the
// McLeod Pitch Method (MPM).
//
// A [Detector] cuts the incoming stream into (optionally overlapping and
// decimated) windows and, for each window, fills a reusable [Result]:
//
//   - the normalized square difference function (NSDF) of the window over
//     LagCount() lags, computed from an FFT autocorrelation and the
//     incremental energy term m'(tau),
//   - the key maxima of the NSDF, one per positive lobe, refined by
//     parabolic interpolation,
//   - the selected key maximum: the first whose value reaches
//     PeakThreshold times the largest one,
//   - frequency, clarity and MIDI note number derived from it.
//
// [Result.IsTone] cross-checks the selected period against the key maximum
// nearest twice that period to reject octave errors and noise.
//
// All buffers are sized at construction. Processing a window performs no
// allocation in the package itself; handlers receive the Detector's Result
// and must copy anything they keep (see [Result.SnapshotInto]).
package pitch
