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
	"fmt"
	"reflect"
	"runtime/debug"
	"time"

	"go.uber.org/atomic"

	gerrors "github.com/tochemey/goact/errors"
	"github.com/tochemey/goact/future"
	"github.com/tochemey/goact/internal/metric"
	"github.com/tochemey/goact/internal/queue"
	"github.com/tochemey/goact/log"
	"github.com/tochemey/goact/oneshot"
)

// Run drives the lifecycle of a single actor. It is returned by Spawn
// together with the first strong reference to the actor, and does nothing
// until Run or Start is called.
type Run[M any, A Actor[M]] struct {
	id      string
	actor   A
	mailbox *mailbox[M]
	logger  log.Logger
	metrics *metric.ActorMetric

	state   *atomic.Uint32
	started *atomic.Bool
}

// Spawn prepares actor to run and returns a strong reference to it, usable
// right away, along with the Run that executes it.
//
// Messages sent before the Run is driven wait in the mailbox. The actor stops
// when it is sent a stop message, or when every strong reference is released.
//
// Example:
//
//	ref, run, err := actor.Spawn[int](&Counter{})
//	if err != nil {
//	    return err
//	}
//	result := run.Start(ctx)
//	_ = ref.Send(ctx, 3)
//	_ = ref.Stop(0)
//	counter, err := result.Await(ctx)
func Spawn[M any, A Actor[M]](actor A, opts ...SpawnOption) (*Ref[M], *Run[M, A], error) {
	if isNil(actor) {
		return nil, nil, gerrors.NewSpawnError(gerrors.ErrUndefinedActor)
	}

	config := newSpawnConfig(opts...)
	if err := config.Validate(); err != nil {
		return nil, nil, gerrors.NewSpawnError(err)
	}

	run := &Run[M, A]{
		id:      config.id,
		actor:   actor,
		logger:  config.logger.With("actor", config.id),
		state:   atomic.NewUint32(uint32(Idle)),
		started: atomic.NewBool(false),
	}

	if config.metrics != nil {
		actorMetric, err := metric.NewActorMetric(config.metrics.Meter())
		if err != nil {
			return nil, nil, gerrors.NewSpawnError(err)
		}
		run.metrics = actorMetric
	}

	messagesTx, messagesRx := queue.New[M](config.capacity())
	stopTx, stopRx := oneshot.New[M]()
	ref := newRef(config.id, messagesTx, stopTx)
	run.mailbox = newMailbox(messagesRx, stopRx, ref.Downgrade())
	return ref, run, nil
}

// ID returns the actor identifier
func (r *Run[M, A]) ID() string {
	return r.id
}

// State returns the current lifecycle state of the actor
func (r *Run[M, A]) State() State {
	return State(r.state.Load())
}

// Start drives the actor on a new goroutine and returns a Future completed
// with the outcome of Run.
func (r *Run[M, A]) Start(ctx context.Context) future.Future[A] {
	return future.New(func() (A, error) {
		return r.Run(ctx)
	})
}

// Run drives the actor on the calling goroutine until it terminates. It
// returns the actor once it has stopped gracefully, or the first error
// encountered. A Run can only be driven once; later calls return
// gerrors.ErrAlreadyRunning.
//
// When ctx is done before the actor terminates, Run returns an error wrapping
// gerrors.ErrRunAborted and PostStop is not called.
func (r *Run[M, A]) Run(ctx context.Context) (A, error) {
	var zero A
	if !r.started.CompareAndSwap(false, true) {
		return zero, gerrors.ErrAlreadyRunning
	}

	err := r.lifecycle(ctx)
	r.mailbox.dispose()
	r.transition(Terminated)
	if r.metrics != nil {
		r.metrics.RecordTermination(ctx, r.id, err)
	}

	if err != nil {
		r.logger.Errorf("actor terminated with error: %v", err)
		return zero, err
	}
	return r.actor, nil
}

// lifecycle runs the actor hooks in order and returns the first error.
func (r *Run[M, A]) lifecycle(ctx context.Context) error {
	self := r.mailbox.self

	r.transition(Starting)
	if err := r.guard(func() error { return r.actor.PreStart(ctx, self) }); err != nil {
		return gerrors.NewErrInitFailure(err)
	}

	r.transition(Running)
	for {
		next, err := r.mailbox.receive(ctx)
		if err != nil {
			return gerrors.NewErrRunAborted(err)
		}

		switch next.kind {
		case messageDelivery:
			if err := r.handle(ctx, self, next.message); err != nil {
				return err
			}
		case closedDelivery:
			return r.stop(ctx, Stop[M]{})
		case stopDelivery:
			if err := r.drain(ctx, self); err != nil {
				return err
			}
			return r.stop(ctx, Stop[M]{Message: next.message, Explicit: next.explicit})
		}
	}
}

// drain handles every message enqueued before the stop request. The mailbox
// rejects new messages from then on.
func (r *Run[M, A]) drain(ctx context.Context, self *WeakRef[M]) error {
	r.transition(Draining)
	r.mailbox.seal()

	for {
		message, ok := r.mailbox.next()
		if !ok {
			return nil
		}

		if err := ctx.Err(); err != nil {
			return gerrors.NewErrRunAborted(err)
		}

		if err := r.handle(ctx, self, message); err != nil {
			return err
		}
	}
}

func (r *Run[M, A]) stop(ctx context.Context, stop Stop[M]) error {
	r.transition(Stopping)
	if err := r.guard(func() error { return r.actor.PostStop(ctx, stop) }); err != nil {
		return gerrors.NewErrPostStopFailure(err)
	}
	return nil
}

func (r *Run[M, A]) handle(ctx context.Context, self *WeakRef[M], message M) error {
	start := time.Now()
	err := r.guard(func() error { return r.actor.Receive(ctx, self, message) })
	if r.metrics != nil {
		r.metrics.RecordReceive(ctx, r.id, time.Since(start), err)
	}

	if err != nil {
		return gerrors.NewErrReceiveFailure(err)
	}
	return nil
}

// guard runs a hook and turns a panic into a *gerrors.PanicError.
func (r *Run[M, A]) guard(hook func() error) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			r.logger.Errorf("actor panicked: %v\n%s", recovered, debug.Stack())
			if cause, ok := recovered.(error); ok {
				err = gerrors.NewPanicError(cause)
				return
			}
			err = gerrors.NewPanicError(fmt.Errorf("%#v", recovered))
		}
	}()
	return hook()
}

func (r *Run[M, A]) transition(state State) {
	r.state.Store(uint32(state))
	if r.logger.Enabled(log.DebugLevel) {
		r.logger.Debugf("actor is %s", state)
	}
}

// isNil reports whether actor is a nil interface or a nil pointer
func isNil(actor any) bool {
	if actor == nil {
		return true
	}
	value := reflect.ValueOf(actor)
	switch value.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return value.IsNil()
	default:
		return false
	}
}
