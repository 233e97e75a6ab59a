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
	"context"
	"errors"
	"runtime"
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrClosed is returned when sending to a queue that no longer accepts items,
	// or when receiving from a queue that is closed and drained.
	ErrClosed = errors.New("queue is closed")
	// ErrFull is returned by TrySend when a bounded queue is at capacity.
	ErrFull = errors.New("queue is full")
	// ErrReleased is returned when using a Sender after Release.
	ErrReleased = errors.New("sender has been released")
	// ErrNoSender is returned by a WeakSender once every strong Sender is gone.
	ErrNoSender = errors.New("queue has no strong sender")
)

// shared is the state behind every handle of a single queue.
type shared[T any] struct {
	// mu serializes close against in-flight pushes: pushes hold the read
	// lock, close and reference count changes hold the write lock.
	mu       sync.RWMutex
	buf      buffer[T]
	slots    *semaphore.Weighted
	capacity int
	strong   int
	closed   bool
	disposed bool

	// ready wakes the consumer after a push. It has a buffer of one so
	// producers never block on it.
	ready chan struct{}
	// closedCtx is canceled once the queue is closed. Producers waiting for a
	// free slot watch it.
	closedCtx context.Context
	markDone  context.CancelFunc
}

// New creates a multi-producer single-consumer queue and returns its first
// strong Sender together with the Receiver.
//
// A capacity less than or equal to zero creates an unbounded queue. Otherwise
// the queue holds at most capacity items.
func New[T any](capacity int) (*Sender[T], *Receiver[T]) {
	q := &shared[T]{
		ready:    make(chan struct{}, 1),
		capacity: capacity,
		strong:   1,
	}
	q.closedCtx, q.markDone = context.WithCancel(context.Background())

	if capacity > 0 {
		q.buf = newRing[T](capacity)
		q.slots = semaphore.NewWeighted(int64(capacity))
	} else {
		q.buf = newMpsc[T]()
	}

	return newSender(q), &Receiver[T]{q: q}
}

func (q *shared[T]) closeLocked() {
	if !q.closed {
		q.closed = true
		q.markDone()
	}
}

func (q *shared[T]) isClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

// retain adds a strong holder only when one still exists. A closed queue
// can still be retained.
func (q *shared[T]) retain() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.strong == 0 {
		return false
	}
	q.strong++
	return true
}

// tryRetain adds a strong holder only when one still exists and the queue
// accepts items.
func (q *shared[T]) tryRetain() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.strong == 0 || q.closed {
		return false
	}
	q.strong++
	return true
}

// drop removes a strong holder. The last one closes the queue.
func (q *shared[T]) drop() {
	q.mu.Lock()
	q.strong--
	if q.strong <= 0 {
		q.strong = 0
		q.closeLocked()
	}
	q.mu.Unlock()
}

func (q *shared[T]) notify() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// acquire reserves a slot in a bounded queue, waiting while it is full.
func (q *shared[T]) acquire(ctx context.Context) error {
	if q.slots.TryAcquire(1) {
		return nil
	}

	if q.isClosed() {
		return ErrClosed
	}

	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(q.closedCtx, cancel)
	defer stop()

	if err := q.slots.Acquire(waitCtx, 1); err != nil {
		if q.closedCtx.Err() != nil {
			return ErrClosed
		}
		return ctx.Err()
	}
	return nil
}

func (q *shared[T]) put(value T) error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		q.freeSlot()
		return ErrClosed
	}

	if !q.buf.push(value) {
		q.mu.RUnlock()
		q.freeSlot()
		return ErrFull
	}
	q.mu.RUnlock()
	q.notify()
	return nil
}

func (q *shared[T]) freeSlot() {
	if q.slots != nil {
		q.slots.Release(1)
	}
}

func (q *shared[T]) send(ctx context.Context, value T) error {
	if q.slots != nil {
		if err := q.acquire(ctx); err != nil {
			return err
		}
	}
	return q.put(value)
}

func (q *shared[T]) trySend(value T) error {
	if q.slots != nil && !q.slots.TryAcquire(1) {
		if q.isClosed() {
			return ErrClosed
		}
		return ErrFull
	}
	return q.put(value)
}

// senderState is the per-handle release flag. It is kept apart from the
// Sender so that the runtime cleanup can release an unreachable Sender.
type senderState[T any] struct {
	q        *shared[T]
	released *atomic.Bool
}

func (s senderState[T]) release() bool {
	if s.released.CompareAndSwap(false, true) {
		s.q.drop()
		return true
	}
	return false
}

// Sender is a strong producer handle. While at least one Sender of a queue is
// not released the queue stays open.
type Sender[T any] struct {
	state   senderState[T]
	cleanup runtime.Cleanup
}

func newSender[T any](q *shared[T]) *Sender[T] {
	s := &Sender[T]{state: senderState[T]{q: q, released: atomic.NewBool(false)}}
	s.cleanup = runtime.AddCleanup(s, func(state senderState[T]) { state.release() }, s.state)
	return s
}

// Send enqueues value. On a bounded queue it waits while the queue is full,
// until a slot frees up, the queue is closed or ctx is done.
func (s *Sender[T]) Send(ctx context.Context, value T) error {
	if s.state.released.Load() {
		return ErrReleased
	}
	return s.state.q.send(ctx, value)
}

// TrySend enqueues value without waiting. It returns ErrFull when a bounded
// queue is at capacity.
func (s *Sender[T]) TrySend(value T) error {
	if s.state.released.Load() {
		return ErrReleased
	}
	return s.state.q.trySend(value)
}

// Clone returns a new strong Sender of the same queue, or nil when s has
// already been released.
func (s *Sender[T]) Clone() *Sender[T] {
	if s.state.released.Load() || !s.state.q.retain() {
		return nil
	}
	return newSender(s.state.q)
}

// Downgrade returns a WeakSender that does not keep the queue open.
func (s *Sender[T]) Downgrade() *WeakSender[T] {
	return &WeakSender[T]{q: s.state.q}
}

// Release gives up this strong holder. It is safe to call more than once.
// Releasing the last strong Sender closes the queue; items already enqueued
// remain available to the Receiver.
func (s *Sender[T]) Release() {
	if s.state.release() {
		s.cleanup.Stop()
	}
}

// Released reports whether Release has been called on this handle.
func (s *Sender[T]) Released() bool {
	return s.state.released.Load()
}

// WeakSender is a non-owning producer handle.
type WeakSender[T any] struct {
	q *shared[T]
}

// Upgrade returns a strong Sender when at least one strong Sender still exists
// and the queue is open.
func (w *WeakSender[T]) Upgrade() (*Sender[T], bool) {
	if !w.q.tryRetain() {
		return nil, false
	}
	return newSender(w.q), true
}

// Send enqueues value while holding a strong reference for the duration of
// the call. It returns ErrNoSender when no strong Sender is left and ErrClosed
// when the queue is closed while strong Senders remain.
func (w *WeakSender[T]) Send(ctx context.Context, value T) error {
	if !w.q.retain() {
		return ErrNoSender
	}
	defer w.q.drop()
	return w.q.send(ctx, value)
}

// TrySend is the non-waiting variant of Send.
func (w *WeakSender[T]) TrySend(value T) error {
	if !w.q.retain() {
		return ErrNoSender
	}
	defer w.q.drop()
	return w.q.trySend(value)
}

// Receiver is the single consumer of a queue.
type Receiver[T any] struct {
	q *shared[T]
}

// TryRecv removes the next item without waiting.
func (r *Receiver[T]) TryRecv() (T, bool) {
	value, ok := r.q.buf.pop()
	if ok {
		r.q.freeSlot()
	}
	return value, ok
}

// Ready returns a channel that receives after items have been enqueued.
// A receive on it is a hint, not a guarantee that TryRecv succeeds.
func (r *Receiver[T]) Ready() <-chan struct{} {
	return r.q.ready
}

// Closed returns a channel that is closed once the queue stops accepting items.
func (r *Receiver[T]) Closed() <-chan struct{} {
	return r.q.closedCtx.Done()
}

// Drained reports whether the queue is closed and holds no more items.
// No item can be added once Drained returns true.
func (r *Receiver[T]) Drained() bool {
	r.q.mu.RLock()
	defer r.q.mu.RUnlock()
	return r.q.closed && r.q.buf.len() == 0
}

// Recv waits for the next item. It returns ErrClosed once the queue is
// closed and every item has been received.
func (r *Receiver[T]) Recv(ctx context.Context) (T, error) {
	var zero T
	for {
		if value, ok := r.TryRecv(); ok {
			return value, nil
		}

		if r.Drained() {
			return zero, ErrClosed
		}

		select {
		case <-r.q.ready:
		case <-r.q.closedCtx.Done():
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

// Close stops the queue from accepting new items. Items already enqueued
// stay available. Close waits for in-flight sends to complete.
func (r *Receiver[T]) Close() {
	r.q.mu.Lock()
	r.q.closeLocked()
	r.q.mu.Unlock()
}

// Dispose closes the queue and discards every remaining item.
// The Receiver must not be used after Dispose.
func (r *Receiver[T]) Dispose() {
	r.q.mu.Lock()
	r.q.closeLocked()
	if r.q.disposed {
		r.q.mu.Unlock()
		return
	}
	r.q.disposed = true
	r.q.mu.Unlock()

	for {
		if _, ok := r.TryRecv(); !ok {
			break
		}
	}
	r.q.buf.dispose()
}

// IsClosed reports whether the queue stopped accepting items.
func (r *Receiver[T]) IsClosed() bool {
	return r.q.isClosed()
}

// Len returns a snapshot of the number of queued items.
func (r *Receiver[T]) Len() int {
	return r.q.buf.len()
}

// Capacity returns the bound of the queue, zero when unbounded.
func (r *Receiver[T]) Capacity() int {
	if r.q.capacity > 0 {
		return r.q.capacity
	}
	return 0
}
