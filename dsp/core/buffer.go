package core

// EnsureLen returns a slice of length n, reusing the capacity of buf when it
// is large enough.
func EnsureLen[T any](buf []T, n int) []T {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}
