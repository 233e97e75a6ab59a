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
	"sync"
	"sync/atomic"
)

// buffer is the storage behind a queue. Producers call push concurrently,
// a single consumer calls pop.
type buffer[T any] interface {
	push(value T) bool
	pop() (T, bool)
	len() int
	dispose()
}

// mpscNode defines a node of the MPSC list
type mpscNode[T any] struct {
	next atomic.Pointer[mpscNode[T]]
	data T
}

// mpsc is an unbounded, lock-free, multi-producer single-consumer list.
//
// Characteristics:
//   - FIFO ordering across all producers.
//   - Lock-free operations via atomic pointer primitives.
//   - Nodes are recycled through a per-list sync.Pool.
//
// Under heavy contention the consumer can briefly observe the list as empty
// between a producer's tail swap and its link. No item is lost: the producer
// completes the link and the consumer sees it on its next pop.
type mpsc[T any] struct {
	// Separate cache lines to avoid false sharing between producers and consumer
	head  atomic.Pointer[mpscNode[T]] // consumer only
	_pad1 [64]byte
	tail  atomic.Pointer[mpscNode[T]] // producers only
	_pad2 [64]byte

	count atomic.Int64
	pool  sync.Pool
}

// enforce compilation error
var _ buffer[any] = (*mpsc[any])(nil)

// newMpsc creates a mpsc list that starts with a dummy node so that producers
// can append by swapping tail and linking through the previous node.
func newMpsc[T any]() *mpsc[T] {
	m := &mpsc[T]{}
	m.pool.New = func() any { return new(mpscNode[T]) }
	dummy := m.pool.Get().(*mpscNode[T])
	dummy.next.Store(nil)
	m.head.Store(dummy)
	m.tail.Store(dummy)
	return m
}

// push appends value to the list. Never blocks; always returns true.
func (m *mpsc[T]) push(value T) bool {
	n := m.pool.Get().(*mpscNode[T])
	n.data = value
	n.next.Store(nil)

	prev := m.tail.Swap(n)
	prev.next.Store(n)
	m.count.Add(1)
	return true
}

// pop removes the value at the head of the list.
// Must be called by a single consumer goroutine.
func (m *mpsc[T]) pop() (T, bool) {
	var zero T
	head := m.head.Load()
	next := head.next.Load()
	if next == nil {
		return zero, false
	}

	m.head.Store(next)
	value := next.data
	// next becomes the new dummy; drop its reference to the value
	next.data = zero
	m.count.Add(-1)

	head.next.Store(nil)
	m.pool.Put(head)
	return value, true
}

// len returns a snapshot of the number of items in the list.
func (m *mpsc[T]) len() int {
	if n := m.count.Load(); n > 0 {
		return int(n)
	}
	return 0
}

// dispose drops every queued item.
func (m *mpsc[T]) dispose() {
	for {
		if _, ok := m.pop(); !ok {
			return
		}
	}
}
