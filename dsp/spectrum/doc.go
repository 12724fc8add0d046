// Package spectrum provides the fixed-size real FFT kernel used by the
// analysis packages, plus a SIMD power helper over split real and
// imaginary parts.
//
// [RealFFT] only accepts sizes from a fixed supported set (powers of two
// between [MinFFTSize] and [MaxFFTSize]). Use [NextSupportedSize] to pick the
// smallest size that fits a given linear-convolution length. All scratch
// memory is allocated by [NewRealFFT]; the transform methods reuse it.
package spectrum
