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

// Package oneshot provides a single-use channel: at most one value is ever
// transmitted from any of its senders to its single receiver.
//
// Senders come in two flavors. A strong Sender keeps the channel alive; when
// every strong Sender has been released without sending, the Receiver resolves
// with an absent value. A WeakSender does not count as a holder and must be
// upgraded before it can send.
//
// A Sender is a plain value and can travel inside a message, which makes the
// channel the building block for request/response between actors:
//
//	reply, result := oneshot.New[int]()
//	_ = ref.Send(ctx, Add{Value: 3, Reply: reply})
//	sum, ok, err := result.Recv(ctx)
package oneshot

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"go.uber.org/atomic"
)

var (
	// ErrAlreadySent is returned when a value has already been transmitted.
	ErrAlreadySent = errors.New("oneshot value already sent")
	// ErrClosed is returned when the receiver is gone or the channel resolved
	// without a value.
	ErrClosed = errors.New("oneshot channel is closed")
	// ErrReleased is returned when using a Sender after Release.
	ErrReleased = errors.New("oneshot sender has been released")
)

// channel is the state shared by every handle of a oneshot channel
type channel[T any] struct {
	mu       sync.Mutex
	value    T
	sent     bool
	taken    bool
	resolved bool
	closed   bool
	strong   int
	done     chan struct{}
}

// New creates a oneshot channel and returns its first strong Sender with the
// Receiver.
func New[T any]() (*Sender[T], *Receiver[T]) {
	ch := &channel[T]{
		strong: 1,
		done:   make(chan struct{}),
	}
	return newSender(ch), &Receiver[T]{ch: ch}
}

func (c *channel[T]) resolveLocked() {
	if !c.resolved {
		c.resolved = true
		close(c.done)
	}
}

func (c *channel[T]) send(value T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.sent:
		return ErrAlreadySent
	case c.closed, c.resolved:
		return ErrClosed
	}

	c.value = value
	c.sent = true
	c.resolveLocked()
	return nil
}

// retain adds a strong holder only when one still exists.
func (c *channel[T]) retain() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.strong == 0 {
		return false
	}
	c.strong++
	return true
}

func (c *channel[T]) tryRetain() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.strong == 0 || c.closed {
		return false
	}
	c.strong++
	return true
}

// drop removes a strong holder. Once none remain the channel resolves,
// with an absent value unless one was sent.
func (c *channel[T]) drop() {
	c.mu.Lock()
	c.strong--
	if c.strong <= 0 {
		c.strong = 0
		c.resolveLocked()
	}
	c.mu.Unlock()
}

type senderState[T any] struct {
	ch       *channel[T]
	released *atomic.Bool
}

func (s senderState[T]) release() bool {
	if s.released.CompareAndSwap(false, true) {
		s.ch.drop()
		return true
	}
	return false
}

// Sender is a strong sending handle.
type Sender[T any] struct {
	state   senderState[T]
	cleanup runtime.Cleanup
}

func newSender[T any](ch *channel[T]) *Sender[T] {
	s := &Sender[T]{state: senderState[T]{ch: ch, released: atomic.NewBool(false)}}
	s.cleanup = runtime.AddCleanup(s, func(state senderState[T]) { state.release() }, s.state)
	return s
}

// Send transmits value. Only the first successful Send across all the senders
// of the channel is delivered; later attempts return ErrAlreadySent and the
// caller keeps ownership of value.
func (s *Sender[T]) Send(value T) error {
	if s.state.released.Load() {
		return ErrReleased
	}
	return s.state.ch.send(value)
}

// Clone returns another strong Sender of the same channel, or nil when s has
// been released.
func (s *Sender[T]) Clone() *Sender[T] {
	if s.state.released.Load() || !s.state.ch.retain() {
		return nil
	}
	return newSender(s.state.ch)
}

// Downgrade returns a WeakSender of the same channel.
func (s *Sender[T]) Downgrade() *WeakSender[T] {
	return &WeakSender[T]{ch: s.state.ch}
}

// Release gives up this strong holder. It is safe to call more than once.
func (s *Sender[T]) Release() {
	if s.state.release() {
		s.cleanup.Stop()
	}
}

// WeakSender is a non-owning sending handle.
type WeakSender[T any] struct {
	ch *channel[T]
}

// Upgrade returns a strong Sender when a strong holder still exists and the
// receiver has not been closed.
func (w *WeakSender[T]) Upgrade() (*Sender[T], bool) {
	if !w.ch.tryRetain() {
		return nil, false
	}
	return newSender(w.ch), true
}

// Send upgrades the handle and transmits value. It returns ErrClosed when the
// upgrade fails.
func (w *WeakSender[T]) Send(value T) error {
	sender, ok := w.Upgrade()
	if !ok {
		return ErrClosed
	}
	defer sender.Release()
	return sender.Send(value)
}

// Receiver is the receiving end of a oneshot channel.
type Receiver[T any] struct {
	ch *channel[T]
}

// Done returns a channel closed once the oneshot resolves, either because a
// value was sent or because every strong Sender was released.
func (r *Receiver[T]) Done() <-chan struct{} {
	return r.ch.done
}

// TryRecv returns the outcome without waiting. ready is false while the
// channel is unresolved; ok reports whether a value is present. The value is
// handed out once: later calls report it as absent.
func (r *Receiver[T]) TryRecv() (value T, ok bool, ready bool) {
	r.ch.mu.Lock()
	defer r.ch.mu.Unlock()
	if !r.ch.resolved {
		return value, false, false
	}

	if r.ch.sent && !r.ch.taken {
		r.ch.taken = true
		value = r.ch.value
		var zero T
		r.ch.value = zero
		return value, true, true
	}
	return value, false, true
}

// Recv waits until the channel resolves or ctx is done. ok is false when
// every strong Sender was released without sending.
func (r *Receiver[T]) Recv(ctx context.Context) (T, bool, error) {
	select {
	case <-r.ch.done:
		value, ok, _ := r.TryRecv()
		return value, ok, nil
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	}
}

// Close marks the receiver as gone. Sends that did not happen yet fail with
// ErrClosed and weak senders can no longer be upgraded.
func (r *Receiver[T]) Close() {
	r.ch.mu.Lock()
	r.ch.closed = true
	r.ch.mu.Unlock()
}
