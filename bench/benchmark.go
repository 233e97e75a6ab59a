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

// Package bench holds the throughput benchmarks of the actor core.
package bench

import (
	"context"

	"go.uber.org/atomic"

	"github.com/tochemey/goact/actor"
	"github.com/tochemey/goact/future"
	"github.com/tochemey/goact/oneshot"
)

// Message is a benchmark message. A nil Reply makes it a fire-and-forget
// message; otherwise the Benchmarker answers with its received count.
type Message struct {
	Reply *oneshot.Sender[int64]
}

// Benchmarker counts the messages it receives
type Benchmarker struct {
	received *atomic.Int64
}

var _ actor.Actor[Message] = (*Benchmarker)(nil)

// NewBenchmarker creates a Benchmarker
func NewBenchmarker() *Benchmarker {
	return &Benchmarker{received: atomic.NewInt64(0)}
}

func (p *Benchmarker) PreStart(context.Context, *actor.WeakRef[Message]) error {
	return nil
}

func (p *Benchmarker) Receive(_ context.Context, _ *actor.WeakRef[Message], message Message) error {
	received := p.received.Inc()
	if message.Reply != nil {
		defer message.Reply.Release()
		_ = message.Reply.Send(received)
	}
	return nil
}

func (p *Benchmarker) PostStop(context.Context, actor.Stop[Message]) error {
	return nil
}

// Received returns the number of messages handled so far
func (p *Benchmarker) Received() int64 {
	return p.received.Load()
}

// Benchmark runs a Benchmarker for the duration of a load test
type Benchmark struct {
	ref    *actor.Ref[Message]
	result future.Future[*Benchmarker]
}

// Start spawns and starts the Benchmarker
func Start(ctx context.Context, opts ...actor.SpawnOption) (*Benchmark, error) {
	ref, run, err := actor.Spawn[Message](NewBenchmarker(), opts...)
	if err != nil {
		return nil, err
	}
	return &Benchmark{
		ref:    ref,
		result: run.Start(ctx),
	}, nil
}

// Tell sends a fire-and-forget message
func (b *Benchmark) Tell(ctx context.Context) error {
	return b.ref.Send(ctx, Message{})
}

// Ask sends a message and waits for the reply
func (b *Benchmark) Ask(ctx context.Context) (int64, error) {
	reply, response := oneshot.New[int64]()
	if err := b.ref.Send(ctx, Message{Reply: reply}); err != nil {
		reply.Release()
		return 0, err
	}
	received, _, err := response.Recv(ctx)
	return received, err
}

// Stop stops the Benchmarker once every message sent has been handled and
// returns the number of messages it received.
func (b *Benchmark) Stop(ctx context.Context) (int64, error) {
	b.ref.Release()
	benchmarker, err := b.result.Await(ctx)
	if err != nil {
		return 0, err
	}
	return benchmarker.Received(), nil
}
