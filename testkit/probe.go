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

// Package testkit helps write unit tests for actors.
package testkit

import (
	"context"
	"fmt"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tochemey/goact/actor"
	"github.com/tochemey/goact/future"
)

const (
	// MessagesQueueMax is the number of received messages a Probe buffers
	MessagesQueueMax int = 1000
	// DefaultTimeout is the time a Probe waits for a message by default
	DefaultTimeout time.Duration = 3 * time.Second
	// NoMessageTimeout is the time ExpectNoMessage waits for
	NoMessageTimeout time.Duration = 100 * time.Millisecond
)

// TestingT is the subset of testing.TB a Probe needs.
type TestingT interface {
	require.TestingT
	Helper()
	Cleanup(func())
}

// probeActor forwards every message it receives to its probe
type probeActor[M any] struct {
	messages chan M
	stop     chan actor.Stop[M]
}

// ensure that probeActor implements the Actor interface
var _ actor.Actor[any] = (*probeActor[any])(nil)

func (x *probeActor[M]) PreStart(context.Context, *actor.WeakRef[M]) error {
	return nil
}

func (x *probeActor[M]) Receive(ctx context.Context, _ *actor.WeakRef[M], message M) error {
	select {
	case x.messages <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (x *probeActor[M]) PostStop(_ context.Context, stop actor.Stop[M]) error {
	x.stop <- stop
	return nil
}

// Probe is an actor recording the messages it receives, so that a test can
// assert what the actor under test sends to it. Hand Ref, or a clone of it, to
// the actor under test.
type Probe[M any] struct {
	t      TestingT
	actor  *probeActor[M]
	ref    *actor.Ref[M]
	result future.Future[*probeActor[M]]
	cancel context.CancelFunc
}

// NewProbe spawns and starts a Probe. The probe is stopped when the test ends
// unless Stop was called before.
func NewProbe[M any](ctx context.Context, t TestingT, opts ...actor.SpawnOption) *Probe[M] {
	t.Helper()
	recorder := &probeActor[M]{
		messages: make(chan M, MessagesQueueMax),
		stop:     make(chan actor.Stop[M], 1),
	}

	ref, run, err := actor.Spawn[M](recorder, opts...)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(ctx)
	probe := &Probe[M]{
		t:      t,
		actor:  recorder,
		ref:    ref,
		result: run.Start(ctx),
		cancel: cancel,
	}
	t.Cleanup(probe.shutdown)
	return probe
}

// Ref returns the strong reference of the probe
func (x *Probe[M]) Ref() *actor.Ref[M] {
	return x.ref
}

// ExpectMessage asserts that the next message received is the expected one
func (x *Probe[M]) ExpectMessage(expected M) {
	x.t.Helper()
	x.ExpectMessageWithin(DefaultTimeout, expected)
}

// ExpectMessageWithin asserts that the next message, received within duration,
// is the expected one
func (x *Probe[M]) ExpectMessageWithin(duration time.Duration, expected M) {
	x.t.Helper()
	received, ok := x.receiveOne(duration)
	require.True(x.t, ok, fmt.Sprintf("timeout (%v) during ExpectMessage while waiting for %v", duration, expected))
	require.Equal(x.t, expected, received)
}

// ExpectAnyMessage asserts that a message is received and returns it
func (x *Probe[M]) ExpectAnyMessage() M {
	x.t.Helper()
	return x.ExpectAnyMessageWithin(DefaultTimeout)
}

// ExpectAnyMessageWithin asserts that a message is received within duration
// and returns it
func (x *Probe[M]) ExpectAnyMessageWithin(duration time.Duration) M {
	x.t.Helper()
	received, ok := x.receiveOne(duration)
	require.True(x.t, ok, fmt.Sprintf("timeout (%v) during ExpectAnyMessage", duration))
	return received
}

// ExpectNoMessage asserts that no message is received for a short while
func (x *Probe[M]) ExpectNoMessage() {
	x.t.Helper()
	received, ok := x.receiveOne(NoMessageTimeout)
	require.False(x.t, ok, fmt.Sprintf("received unexpected message %v", received))
}

// ExpectStopped asserts that the probe shuts down within duration and returns
// the Stop it was given.
func (x *Probe[M]) ExpectStopped(duration time.Duration) actor.Stop[M] {
	x.t.Helper()
	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case stop := <-x.actor.stop:
		return stop
	case <-timer.C:
		require.FailNow(x.t, fmt.Sprintf("timeout (%v) during ExpectStopped", duration))
		return actor.Stop[M]{}
	}
}

// Stop releases the probe reference and waits for the probe to terminate.
func (x *Probe[M]) Stop() {
	x.t.Helper()
	x.ref.Release()

	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()
	_, err := x.result.Await(ctx)
	require.NoError(x.t, err)
}

// shutdown makes sure the probe goroutine is gone when the test ends
func (x *Probe[M]) shutdown() {
	x.ref.Release()
	x.cancel()
	<-x.result.Done()
}

// receiveOne waits for one message within a maximum time duration
func (x *Probe[M]) receiveOne(max time.Duration) (M, bool) {
	timer := time.NewTimer(max)
	defer timer.Stop()

	select {
	case message := <-x.actor.messages:
		return message, true
	case <-timer.C:
		var zero M
		return zero, false
	}
}
