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
)

// Actor represents the interface that will be implemented by any user-defined
// actor. M is the type of the messages the actor handles; the stop message an
// actor may receive at the end of its life has the same type.
//
// An actor is owned by its Run for its entire lifetime and its hooks are never
// called concurrently: the actor can keep plain fields as its state.
type Actor[M any] interface {
	// PreStart is called once before the actor handles any message. self is a
	// weak reference to the actor; holding it does not keep the actor alive.
	// An error terminates the actor right away and PostStop is not called.
	PreStart(ctx context.Context, self *WeakRef[M]) error
	// Receive handles a single message. An error terminates the actor right
	// away: PostStop is not called and the messages still queued are discarded.
	Receive(ctx context.Context, self *WeakRef[M], message M) error
	// PostStop is called once at the end of a graceful shutdown, after every
	// message enqueued before the stop request has been handled.
	PostStop(ctx context.Context, stop Stop[M]) error
}

// Stop describes why an actor is shutting down.
type Stop[M any] struct {
	// Message is the stop message, the zero value when Explicit is false.
	Message M
	// Explicit is true when the actor was stopped with a Stop call and false
	// when every strong reference to it was released.
	Explicit bool
}
