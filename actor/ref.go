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

package actor

import (
	"context"
	"errors"

	"go.uber.org/atomic"

	gerrors "github.com/tochemey/goact/errors"
	"github.com/tochemey/goact/internal/queue"
	"github.com/tochemey/goact/oneshot"
)

// Ref is a strong reference to an actor. While at least one Ref of an actor
// has not been released, the actor keeps running until it is explicitly
// stopped. Once every Ref is released the actor shuts down on its own, after
// handling the messages already in its mailbox.
//
// A Ref is safe for concurrent use. Use Clone to hand a reference to another
// owner and Release when done with it. A Ref that becomes unreachable without
// being released is released by the garbage collector, at an unspecified time.
type Ref[M any] struct {
	id       string
	messages *queue.Sender[M]
	stop     *oneshot.Sender[M]
	released *atomic.Bool
}

func newRef[M any](id string, messages *queue.Sender[M], stop *oneshot.Sender[M]) *Ref[M] {
	return &Ref[M]{
		id:       id,
		messages: messages,
		stop:     stop,
		released: atomic.NewBool(false),
	}
}

// ID returns the actor identifier
func (r *Ref[M]) ID() string {
	return r.id
}

// Send enqueues message in the actor mailbox. On a bounded mailbox it waits
// while the mailbox is full, until a slot frees up or ctx is done.
//
// It returns gerrors.ErrMailboxClosed once the actor no longer accepts
// messages. The message is not delivered whenever an error is returned.
func (r *Ref[M]) Send(ctx context.Context, message M) error {
	if r.released.Load() {
		return gerrors.ErrRefReleased
	}
	return toSendError(r.messages.Send(ctx, message))
}

// TrySend enqueues message without waiting. It returns gerrors.ErrMailboxFull
// when a bounded mailbox is at capacity.
func (r *Ref[M]) TrySend(message M) error {
	if r.released.Load() {
		return gerrors.ErrRefReleased
	}
	return toSendError(r.messages.TrySend(message))
}

// Stop asks the actor to shut down with the given stop message. The actor
// handles the messages already in its mailbox, then passes message to PostStop.
//
// Only one stop message is ever delivered to an actor: once a stop message
// has been sent, later calls return gerrors.ErrAlreadyStopped. Stop returns
// gerrors.ErrDead when the actor has terminated.
func (r *Ref[M]) Stop(message M) error {
	if r.released.Load() {
		return gerrors.ErrRefReleased
	}
	return toStopError(r.stop.Send(message))
}

// Downgrade returns a weak reference to the same actor.
func (r *Ref[M]) Downgrade() *WeakRef[M] {
	return &WeakRef[M]{
		id:       r.id,
		messages: r.messages.Downgrade(),
		stop:     r.stop.Downgrade(),
	}
}

// Clone returns a new strong reference to the same actor, or nil when r has
// been released.
func (r *Ref[M]) Clone() *Ref[M] {
	if r.released.Load() {
		return nil
	}

	messages := r.messages.Clone()
	stop := r.stop.Clone()
	if messages == nil || stop == nil {
		// r got released concurrently
		if messages != nil {
			messages.Release()
		}
		if stop != nil {
			stop.Release()
		}
		return nil
	}
	return newRef(r.id, messages, stop)
}

// Release gives up this reference. It is safe to call more than once.
// Releasing the last strong reference of an actor that has not been stopped
// makes it shut down with a Stop that is not Explicit.
func (r *Ref[M]) Release() {
	if r.released.CompareAndSwap(false, true) {
		r.messages.Release()
		r.stop.Release()
	}
}

// WeakRef is a reference to an actor that does not keep it running. The
// actor receives a WeakRef to itself in its hooks.
type WeakRef[M any] struct {
	id       string
	messages *queue.WeakSender[M]
	stop     *oneshot.WeakSender[M]
}

// ID returns the actor identifier
func (w *WeakRef[M]) ID() string {
	return w.id
}

// Upgrade returns a strong reference when the actor still has one and
// accepts messages. The returned Ref must be released by the caller.
func (w *WeakRef[M]) Upgrade() (*Ref[M], bool) {
	messages, ok := w.messages.Upgrade()
	if !ok {
		return nil, false
	}

	stop, ok := w.stop.Upgrade()
	if !ok {
		messages.Release()
		return nil, false
	}
	return newRef(w.id, messages, stop), true
}

// Send enqueues message while the actor still has a strong reference. It
// returns gerrors.ErrDead when none is left and gerrors.ErrMailboxClosed when
// the actor no longer accepts messages, for instance while it drains.
func (w *WeakRef[M]) Send(ctx context.Context, message M) error {
	stop, ok := w.stop.Upgrade()
	if !ok {
		return gerrors.ErrDead
	}
	defer stop.Release()
	return toSendError(w.messages.Send(ctx, message))
}

// TrySend is the non-waiting variant of Send.
func (w *WeakRef[M]) TrySend(message M) error {
	stop, ok := w.stop.Upgrade()
	if !ok {
		return gerrors.ErrDead
	}
	defer stop.Release()
	return toSendError(w.messages.TrySend(message))
}

// Stop sends the stop message through the stop side only, so an actor can
// stop itself while it drains. It returns gerrors.ErrAlreadyStopped when a
// stop message was already sent and gerrors.ErrDead once the actor is gone.
func (w *WeakRef[M]) Stop(message M) error {
	return toStopError(w.stop.Send(message))
}

func toSendError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, queue.ErrClosed):
		return gerrors.ErrMailboxClosed
	case errors.Is(err, queue.ErrFull):
		return gerrors.ErrMailboxFull
	case errors.Is(err, queue.ErrReleased):
		return gerrors.ErrRefReleased
	case errors.Is(err, queue.ErrNoSender):
		return gerrors.ErrDead
	default:
		return err
	}
}

func toStopError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, oneshot.ErrAlreadySent):
		return gerrors.ErrAlreadyStopped
	case errors.Is(err, oneshot.ErrClosed):
		return gerrors.ErrDead
	case errors.Is(err, oneshot.ErrReleased):
		return gerrors.ErrRefReleased
	default:
		return err
	}
}
