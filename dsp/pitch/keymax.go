package pitch

// MaxKeyMaxima is the number of key maxima a Result can hold. Further maxima
// found in one window are dropped.
const MaxKeyMaxima = 64

// KeyMaximum is a local NSDF maximum between a positive and a negative zero
// crossing, a candidate for the pitch period.
type KeyMaximum struct {
	// LagIndex is the NSDF index of the maximum sample.
	LagIndex int
	// ValueAtLagIndex is nsdf[LagIndex].
	ValueAtLagIndex float64
	// Value is the parabola-interpolated peak value.
	Value float64
	// Lag is the parabola-interpolated peak position in samples.
	Lag float64
}

// Set refines the maximum at lagIndex by fitting a parabola through the
// sample and its neighbours. Neighbour indices are clamped to nsdf.
func (k *KeyMaximum) Set(nsdf []float64, lagIndex int) {
	c := nsdf[lagIndex]
	l := nsdf[max(lagIndex-1, 0)]
	r := nsdf[min(lagIndex+1, len(nsdf)-1)]

	// y = a*x^2 + b*x + c through (-1, l), (0, c), (1, r)
	a := 0.5 * (r - 2*c + l)
	b := 0.5 * (r - l)

	x := 0.0
	if a != 0 {
		x = -b / (2 * a)
	}

	k.LagIndex = lagIndex
	k.ValueAtLagIndex = c
	k.Value = a*x*x + b*x + c
	k.Lag = float64(lagIndex) + x
}
