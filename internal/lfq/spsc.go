// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lfq

import "code.hybscloud.com/atomix"

// SPSC is a single-producer single-consumer bounded queue.
//
// Based on Lamport's ring buffer with cached index optimization.
// The producer caches the consumer's dequeue index, and vice versa,
// reducing cross-core cache line traffic.
//
// Memory: O(capacity) with minimal per-slot overhead.
type SPSC[T any] struct {
	_          pad
	head       atomix.Uint64 // Consumer reads from here
	_          pad
	cachedTail uint64 // Consumer's cached view of tail
	_          pad
	tail       atomix.Uint64 // Producer writes here
	_          pad
	cachedHead uint64 // Producer's cached view of head
	_          pad
	buffer     []T
	mask       uint64
}

// NewSPSC creates a new SPSC queue.
// Capacity rounds up to the next power of 2.
func NewSPSC[T any](capacity int) *SPSC[T] {
	if capacity < 2 {
		panic("lfq: capacity must be >= 2")
	}

	n := uint64(roundToPow2(capacity))
	return &SPSC[T]{
		buffer: make([]T, n),
		mask:   n - 1,
	}
}

// Enqueue adds an element to the queue (producer only).
// Returns ErrWouldBlock if the queue is full.
func (q *SPSC[T]) Enqueue(elem *T) error {
	tail := q.tail.LoadRelaxed()
	if tail-q.cachedHead > q.mask {
		q.cachedHead = q.head.LoadAcquire()
		if tail-q.cachedHead > q.mask {
			return ErrWouldBlock
		}
	}

	q.buffer[tail&q.mask] = *elem
	q.tail.StoreRelease(tail + 1)
	return nil
}

// Dequeue removes and returns an element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *SPSC[T]) Dequeue() (T, error) {
	head := q.head.LoadRelaxed()
	if head >= q.cachedTail {
		q.cachedTail = q.tail.LoadAcquire()
		if head >= q.cachedTail {
			var zero T
			return zero, ErrWouldBlock
		}
	}

	elem := q.buffer[head&q.mask]
	var zero T
	q.buffer[head&q.mask] = zero
	q.head.StoreRelease(head + 1)
	return elem, nil
}

// Slots reports the number of items currently readable by the consumer.
// Race-safe but approximate: the producer side may advance concurrently.
func (q *SPSC[T]) Slots() int {
	tail := q.tail.LoadAcquire()
	head := q.head.LoadRelaxed()
	return int(tail - head)
}

// FreeSlots reports the number of slots currently writable by the producer.
// Race-safe but approximate: the consumer side may advance concurrently.
func (q *SPSC[T]) FreeSlots() int {
	head := q.head.LoadAcquire()
	tail := q.tail.LoadRelaxed()
	return int(q.mask+1) - int(tail-head)
}

// DequeueChunk removes and returns up to n elements in FIFO order
// (consumer only). It returns a nil slice, not an error, if none are
// available; it returns fewer than n items if fewer are available.
func (q *SPSC[T]) DequeueChunk(n int) []T {
	avail := q.Slots()
	if n > avail {
		n = avail
	}
	if n <= 0 {
		return nil
	}
	head := q.head.LoadRelaxed()
	out := make([]T, n)
	for i := 0; i < n; i++ {
		idx := (head + uint64(i)) & q.mask
		out[i] = q.buffer[idx]
		var zero T
		q.buffer[idx] = zero
	}
	q.head.StoreRelease(head + uint64(n))
	return out
}

// Cap returns the queue capacity.
func (q *SPSC[T]) Cap() int {
	return int(q.mask + 1)
}
