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
	"sync"

	"github.com/tochemey/goact/oneshot"
)

var errBoom = errors.New("boom")

// counter adds every message it receives to its total
type counter struct {
	total       int
	preStarted  bool
	postStopped bool
	stop        Stop[int]
}

var _ Actor[int] = (*counter)(nil)

func (c *counter) PreStart(context.Context, *WeakRef[int]) error {
	c.preStarted = true
	return nil
}

func (c *counter) Receive(_ context.Context, _ *WeakRef[int], message int) error {
	c.total += message
	return nil
}

func (c *counter) PostStop(_ context.Context, stop Stop[int]) error {
	c.postStopped = true
	c.stop = stop
	return nil
}

// recorder keeps track of the hooks calls. It fails on the message failOn
// when failOn is not zero.
type recorder struct {
	mu          sync.Mutex
	failOn      int
	received    []int
	stops       []Stop[int]
	preStarted  int
	postStopped int
}

var _ Actor[int] = (*recorder)(nil)

func (x *recorder) PreStart(context.Context, *WeakRef[int]) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.preStarted++
	return nil
}

func (x *recorder) Receive(_ context.Context, _ *WeakRef[int], message int) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.failOn != 0 && message == x.failOn {
		return errBoom
	}
	x.received = append(x.received, message)
	return nil
}

func (x *recorder) PostStop(_ context.Context, stop Stop[int]) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.postStopped++
	x.stops = append(x.stops, stop)
	return nil
}

func (x *recorder) messages() []int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]int(nil), x.received...)
}

func (x *recorder) postStopCalls() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.postStopped
}

// request asks the accumulator to add value and reply with its total
type request struct {
	value int
	reply *oneshot.Sender[int]
}

// accumulator answers every request with its running total
type accumulator struct {
	total int
}

var _ Actor[request] = (*accumulator)(nil)

func (a *accumulator) PreStart(context.Context, *WeakRef[request]) error {
	return nil
}

func (a *accumulator) Receive(_ context.Context, _ *WeakRef[request], message request) error {
	a.total += message.value
	if message.reply == nil {
		return nil
	}
	defer message.reply.Release()
	return message.reply.Send(a.total)
}

func (a *accumulator) PostStop(context.Context, Stop[request]) error {
	return nil
}
