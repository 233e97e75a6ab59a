// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package queue

import (
	gods "github.com/Workiva/go-datastructures/queue"
)

// ring is the storage of a bounded queue, backed by a ring buffer.
//
// The ring buffer rounds its size up to the next power of two, so it does not
// enforce the exact capacity on its own. The owning queue gates producers with
// a weighted semaphore sized to the requested capacity; the ring therefore
// never holds more than capacity items and push never has to wait.
type ring[T any] struct {
	underlying *gods.RingBuffer
}

// enforce compilation error
var _ buffer[any] = (*ring[any])(nil)

// newRing creates a ring able to hold at least capacity items.
func newRing[T any](capacity int) *ring[T] {
	return &ring[T]{
		underlying: gods.NewRingBuffer(uint64(capacity)),
	}
}

// push inserts value without blocking. It returns false when the ring has
// no room or has been disposed.
func (r *ring[T]) push(value T) bool {
	ok, err := r.underlying.Offer(value)
	return ok && err == nil
}

// pop removes the next value. Intended for a single consumer: the length
// check guarantees Get does not wait.
func (r *ring[T]) pop() (T, bool) {
	var zero T
	if r.underlying.Len() == 0 {
		return zero, false
	}

	item, err := r.underlying.Get()
	if err != nil {
		return zero, false
	}

	// a nil item is the zero value of an interface-typed T
	if item == nil {
		return zero, true
	}

	value, ok := item.(T)
	return value, ok
}

// len returns the current number of items held by the ring.
func (r *ring[T]) len() int {
	return int(r.underlying.Len())
}

// dispose releases the ring buffer and unblocks any internal waiter.
func (r *ring[T]) dispose() {
	r.underlying.Dispose()
}
