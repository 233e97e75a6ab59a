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

package future

import (
	"context"
	"sync"
)

// Future represents a value which may not be available yet but will be at
// some point, or an error if that value could not be produced.
//
// Example usage:
//
//	f := future.New(func() (int, error) {
//	    return compute(), nil
//	})
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	result, err := f.Await(ctx)
type Future[T any] interface {
	// Await blocks until the Future is completed or ctx is done. A canceled
	// ctx does not complete the Future: it can be awaited again later.
	Await(ctx context.Context) (T, error)

	// Done returns a channel closed once the Future is completed.
	Done() <-chan struct{}

	// complete completes the Future with either a value or an error.
	// It is used by [completer] internally.
	complete(T, error)
}

// New creates a Future completed by the given long-running task. The task runs
// in its own goroutine.
func New[T any](task func() (T, error)) Future[T] {
	comp := newCompleter[T]()
	go func() {
		result, err := task()
		if err != nil {
			comp.Failure(err)
			return
		}
		comp.Success(result)
	}()
	return comp.Future()
}

// future implements the Future interface.
type future[T any] struct {
	completeOnce sync.Once
	done         chan struct{}
	value        T
	err          error
}

// Verify future satisfies the Future interface.
var _ Future[any] = (*future[any])(nil)

func newFuture[T any]() *future[T] {
	return &future[T]{done: make(chan struct{})}
}

// Await blocks until the Future is completed or ctx is done.
func (x *future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-x.done:
		return x.value, x.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel closed once the Future is completed.
func (x *future[T]) Done() <-chan struct{} {
	return x.done
}

// complete completes the Future with either a value or an error.
func (x *future[T]) complete(value T, err error) {
	x.completeOnce.Do(func() {
		x.value = value
		x.err = err
		close(x.done)
	})
}

// completer is a writable, single-assignment container which completes
// a Future.
type completer[T any] struct {
	once   sync.Once
	future Future[T]
}

func newCompleter[T any]() *completer[T] {
	return &completer[T]{future: newFuture[T]()}
}

// Success completes the underlying Future with a given value.
func (p *completer[T]) Success(value T) {
	p.once.Do(func() {
		p.future.complete(value, nil)
	})
}

// Failure fails the underlying Future with a given error.
func (p *completer[T]) Failure(err error) {
	p.once.Do(func() {
		var zero T
		p.future.complete(zero, err)
	})
}

// Future returns the underlying Future.
func (p *completer[T]) Future() Future[T] {
	return p.future
}
