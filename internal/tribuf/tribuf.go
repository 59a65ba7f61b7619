// Package tribuf implements a lock-free triple buffer for handing complete
// values from one producer goroutine to one consumer goroutine.
//
// The buffer is a conflation channel: the consumer always acquires the
// freshest published value, and values the consumer did not poll in time
// are silently skipped. Neither side ever waits on the other, so a slow
// consumer cannot throttle the producer's tick rate and a busy producer
// cannot starve the consumer.
package tribuf

import "sync/atomic"

const (
	indexMask = 0x3
	dirtyBit  = 0x4
)

// Buffer hands successive values of T from exactly one producer to exactly
// one consumer. Three slots rotate between three roles: the producer's
// private write slot, the posted slot holding the most recent publish, and
// the consumer's private read slot. Role ownership is exclusive at all
// times; only slot identity rotates, via a single atomic swap per handoff.
type Buffer[T any] struct {
	slots [3]T

	// posted holds the index of the most recently published slot in its
	// low two bits, with dirtyBit set while that publish is unconsumed.
	// The producer swaps in its write slot on commit; the consumer swaps
	// in its read slot on acquire. The swap transfers slot ownership and
	// orders the slot contents between the two goroutines.
	posted atomic.Uint32

	writeIdx uint32 // producer-owned
	readIdx  uint32 // consumer-owned
	acquired bool   // consumer-owned; true after the first successful acquire
}

// New returns an empty buffer. The producer must publish a first value
// before the consumer can acquire anything.
func New[T any]() *Buffer[T] {
	b := &Buffer[T]{writeIdx: 0, readIdx: 2}
	b.posted.Store(1) // slot 1 is posted and clean: nothing to acquire yet
	return b
}

// StartWrite returns the producer's private write slot. Producer-only.
// Must not be called again before the matching CommitWrite.
func (b *Buffer[T]) StartWrite() *T {
	return &b.slots[b.writeIdx]
}

// CommitWrite publishes the slot returned by the last StartWrite. The slot
// displaced from the posted role becomes the producer's next write target.
// O(1), never blocks, never allocates.
func (b *Buffer[T]) CommitWrite() {
	old := b.posted.Swap(b.writeIdx | dirtyBit)
	b.writeIdx = old & indexMask
}

// TryAcquire makes the most recent publish the consumer's read slot and
// returns true if a value newer than the currently held one exists; the
// read slot is unchanged otherwise. Consumer-only; never blocks.
func (b *Buffer[T]) TryAcquire() bool {
	if b.posted.Load()&dirtyBit == 0 {
		return false
	}
	old := b.posted.Swap(b.readIdx)
	b.readIdx = old & indexMask
	b.acquired = true
	return true
}

// Read returns the consumer's read slot. Valid only after a TryAcquire
// that returned true (or any earlier successful acquire); calling it
// before the first acquire is a programmer error and panics.
func (b *Buffer[T]) Read() *T {
	if !b.acquired {
		panic("tribuf: Read before a successful TryAcquire")
	}
	return &b.slots[b.readIdx]
}
