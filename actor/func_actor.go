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

// ReceiveFunc is a message handling placeholder
type ReceiveFunc[M any] func(ctx context.Context, self *WeakRef[M], message M) error

// PreStartFunc defines the PreStart hook of a FuncActor
type PreStartFunc[M any] func(ctx context.Context, self *WeakRef[M]) error

// PostStopFunc defines the PostStop hook of a FuncActor
type PostStopFunc[M any] func(ctx context.Context, stop Stop[M]) error

// FuncOption is the interface that applies a FuncActor option.
type FuncOption[M any] interface {
	// Apply sets the Option value of a config.
	Apply(config *funcConfig[M])
}

var _ FuncOption[any] = funcOption[any](nil)

// funcOption implements the FuncOption interface.
type funcOption[M any] func(config *funcConfig[M])

// Apply implementation
func (f funcOption[M]) Apply(c *funcConfig[M]) {
	f(c)
}

type funcConfig[M any] struct {
	preStart PreStartFunc[M]
	postStop PostStopFunc[M]
}

// WithPreStart defines the PreStart hook
func WithPreStart[M any](fn PreStartFunc[M]) FuncOption[M] {
	return funcOption[M](func(config *funcConfig[M]) {
		config.preStart = fn
	})
}

// WithPostStop defines the PostStop hook
func WithPostStop[M any](fn PostStopFunc[M]) FuncOption[M] {
	return funcOption[M](func(config *funcConfig[M]) {
		config.postStop = fn
	})
}

// FuncActor is an actor built from functions. Its state lives in the
// closures; it is handy for small actors and tests.
type FuncActor[M any] struct {
	receiveFunc ReceiveFunc[M]
	config      funcConfig[M]
}

// enforce compilation error
var _ Actor[any] = (*FuncActor[any])(nil)

// NewFuncActor creates a FuncActor handling messages with receiveFunc.
func NewFuncActor[M any](receiveFunc ReceiveFunc[M], opts ...FuncOption[M]) *FuncActor[M] {
	actor := &FuncActor[M]{receiveFunc: receiveFunc}
	for _, opt := range opts {
		opt.Apply(&actor.config)
	}
	return actor
}

// PreStart runs the PreStart hook when one is set
func (x *FuncActor[M]) PreStart(ctx context.Context, self *WeakRef[M]) error {
	if x.config.preStart != nil {
		return x.config.preStart(ctx, self)
	}
	return nil
}

// Receive handles a message
func (x *FuncActor[M]) Receive(ctx context.Context, self *WeakRef[M], message M) error {
	return x.receiveFunc(ctx, self, message)
}

// PostStop runs the PostStop hook when one is set
func (x *FuncActor[M]) PostStop(ctx context.Context, stop Stop[M]) error {
	if x.config.postStop != nil {
		return x.config.postStop(ctx, stop)
	}
	return nil
}
