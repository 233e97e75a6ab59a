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

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrDead indicates that the actor is no longer alive or has been terminated.
	ErrDead = errors.New("actor is not alive")

	// ErrMailboxFull is returned when a bounded mailbox has reached its capacity.
	ErrMailboxFull = errors.New("mailbox is full")

	// ErrMailboxClosed is returned when a message is sent to a mailbox that no longer
	// accepts messages, either because the actor is draining or because it has terminated.
	ErrMailboxClosed = errors.New("mailbox is closed")

	// ErrAlreadyStopped is returned when a stop message has already been delivered to the actor.
	// Only one stop message is ever observed by an actor instance.
	ErrAlreadyStopped = errors.New("stop message already sent")

	// ErrRefReleased is returned when a strong reference is used after Release.
	ErrRefReleased = errors.New("actor reference has been released")

	// ErrInitFailure is returned when the actor's preStart hook fails during initialization.
	ErrInitFailure = errors.New("preStart failed")

	// ErrReceiveFailure is returned when the actor's receive hook fails while handling a message.
	ErrReceiveFailure = errors.New("receive failed")

	// ErrPostStopFailure is returned when the actor's postStop hook fails.
	ErrPostStopFailure = errors.New("postStop failed")

	// ErrRunAborted is returned when the context driving an actor is done before the actor terminates.
	// The actor's postStop hook is not run in that case.
	ErrRunAborted = errors.New("actor run aborted")

	// ErrAlreadyRunning is returned when an actor run is driven more than once.
	ErrAlreadyRunning = errors.New("actor run already started")

	// ErrInvalidMailboxCapacity is returned when a bounded mailbox is requested with a non-positive capacity.
	ErrInvalidMailboxCapacity = errors.New("invalid mailbox capacity, must be greater than zero")

	// ErrUndefinedActor is returned when spawning a nil actor.
	ErrUndefinedActor = errors.New("actor is not defined")
)

// NewErrInitFailure wraps a base error with ErrInitFailure to indicate a startup failure.
func NewErrInitFailure(err error) error {
	return errors.Join(ErrInitFailure, err)
}

// NewErrReceiveFailure wraps a base error with ErrReceiveFailure.
func NewErrReceiveFailure(err error) error {
	return errors.Join(ErrReceiveFailure, err)
}

// NewErrPostStopFailure wraps a base error with ErrPostStopFailure.
func NewErrPostStopFailure(err error) error {
	return errors.Join(ErrPostStopFailure, err)
}

// NewErrRunAborted wraps the context error that aborted an actor run.
func NewErrRunAborted(err error) error {
	return errors.Join(ErrRunAborted, err)
}

// PanicError defines the panic error
// wrapping the underlying error
type PanicError struct {
	err error
}

// enforce compilation error
var _ error = (*PanicError)(nil)

// NewPanicError creates an instance of PanicError
func NewPanicError(err error) *PanicError {
	return &PanicError{err}
}

// Error implements the standard error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

func (e *PanicError) Unwrap() error {
	return e.err
}

// SpawnError defines the spawn error
type SpawnError struct {
	err error
}

// enforce compilation error
var _ error = (*SpawnError)(nil)

// NewSpawnError returns an instance of SpawnError
func NewSpawnError(err error) *SpawnError {
	return &SpawnError{
		err: fmt.Errorf("spawn error: %w", err),
	}
}

// Error implements the standard error interface
func (s *SpawnError) Error() string {
	return s.err.Error()
}

func (s *SpawnError) Unwrap() error {
	return s.err
}
