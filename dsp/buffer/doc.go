// Package buffer provides the streaming plumbing shared by the analysis
// packages: a [Windower] that cuts an arbitrarily chunked, optionally
// decimated sample stream into fixed overlapping windows, a lock-free
// single-producer/single-consumer [Queue] for handing results to a
// non-real-time goroutine, and a reusable [Buffer] for host sample
// conversion.
//
// None of these types allocate after construction, except [Buffer.Resize]
// when the requested length exceeds the current capacity.
package buffer
