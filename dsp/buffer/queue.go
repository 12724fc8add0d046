package buffer

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrInvalidCapacity is returned for a non-positive queue capacity.
var ErrInvalidCapacity = errors.New("buffer: queue capacity must be > 0")

// Queue is a fixed-capacity lock-free ring for exactly one producer goroutine
// and one consumer goroutine. A full queue rejects new items; the producer
// never blocks or allocates.
//
// PushWith and PopWith give in-place access to a slot so that element types
// holding slices can be reused without allocation.
type Queue[T any] struct {
	slots []T
	head  atomic.Uint64 // next slot to read, owned by the consumer
	tail  atomic.Uint64 // next slot to write, owned by the producer
}

// NewQueue creates a queue holding up to capacity items.
func NewQueue[T any](capacity int) (*Queue[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}
	return &Queue[T]{slots: make([]T, capacity)}, nil
}

// Cap returns the capacity.
func (q *Queue[T]) Cap() int { return len(q.slots) }

// Len returns the number of queued items. The value is a snapshot and may
// be stale by the time it is used.
func (q *Queue[T]) Len() int {
	return int(q.tail.Load() - q.head.Load())
}

// Push appends v. It reports false if the queue is full.
func (q *Queue[T]) Push(v T) bool {
	return q.PushWith(func(slot *T) { *slot = v })
}

// PushWith lets fill write the next item in place. fill sees the value the
// slot held last time it was used. It reports false, without calling fill,
// if the queue is full.
func (q *Queue[T]) PushWith(fill func(slot *T)) bool {
	tail := q.tail.Load()
	if tail-q.head.Load() == uint64(len(q.slots)) {
		return false
	}
	fill(&q.slots[tail%uint64(len(q.slots))])
	q.tail.Store(tail + 1)
	return true
}

// Pop removes and returns the oldest item. It reports false if the queue is
// empty.
func (q *Queue[T]) Pop() (T, bool) {
	var out T
	ok := q.PopWith(func(slot *T) {
		out = *slot
		var zero T
		*slot = zero
	})
	return out, ok
}

// PopWith lets read consume the oldest item in place; the slot is released
// for reuse after read returns. It reports false if the queue is empty.
func (q *Queue[T]) PopWith(read func(slot *T)) bool {
	head := q.head.Load()
	if head == q.tail.Load() {
		return false
	}
	read(&q.slots[head%uint64(len(q.slots))])
	q.head.Store(head + 1)
	return true
}
