// Package spsc implements a bounded single-producer/single-consumer FIFO
// queue with per-slot sequence stamps, after Vyukov's bounded queue.
package spsc

import (
	"errors"
	"sync/atomic"
)

// ErrFull is returned by Push when the queue is at capacity. The producer
// is expected to drop the item and report, not to wait.
var ErrFull = errors.New("spsc: queue is full")

// slot couples a value with its sequence stamp. The stamp tells each side
// whether the slot is theirs to use without any shared lock: a slot is
// writable at position t when seq == t and readable at position h when
// seq == h+1.
type slot[T any] struct {
	seq atomic.Uint64
	val T
}

// Queue is a fixed-capacity FIFO for exactly one producer goroutine and
// exactly one consumer goroutine. Values are moved, not shared: once
// popped, the queue holds no reference to the item.
type Queue[T any] struct {
	buf  []slot[T]
	size uint64
	head atomic.Uint64 // next position to pop; consumer-advanced
	tail atomic.Uint64 // next position to push; producer-advanced
}

// New returns a queue with the given fixed capacity.
func New[T any](capacity int) *Queue[T] {
	if capacity <= 0 {
		panic("spsc: capacity must be positive")
	}
	q := &Queue[T]{
		buf:  make([]slot[T], capacity),
		size: uint64(capacity),
	}
	for i := range q.buf {
		q.buf[i].seq.Store(uint64(i))
	}
	return q
}

// Push enqueues item at the tail, or returns ErrFull when the consumer has
// not yet reclaimed the slot. Producer-only; never blocks.
func (q *Queue[T]) Push(item T) error {
	t := q.tail.Load()
	s := &q.buf[t%q.size]
	if s.seq.Load() != t {
		return ErrFull
	}
	s.val = item
	s.seq.Store(t + 1)
	q.tail.Store(t + 1)
	return nil
}

// Pop dequeues from the head, or returns false when the queue is empty.
// Consumer-only; never blocks.
func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	h := q.head.Load()
	s := &q.buf[h%q.size]
	if s.seq.Load() != h+1 {
		return zero, false
	}
	item := s.val
	s.val = zero
	s.seq.Store(h + q.size)
	q.head.Store(h + 1)
	return item, true
}

// Len reports the number of occupied slots. Exact when called from either
// endpoint's goroutine; a snapshot otherwise.
func (q *Queue[T]) Len() int {
	t := q.tail.Load()
	h := q.head.Load()
	if t < h {
		return 0
	}
	return int(t - h)
}

// Cap reports the fixed capacity.
func (q *Queue[T]) Cap() int { return int(q.size) }

// Empty reports whether the queue holds no items.
func (q *Queue[T]) Empty() bool { return q.Len() == 0 }
