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
	"fmt"
)

// State is a step of the actor lifecycle. An actor moves forward only:
// Starting, Running, Draining, Stopping then Terminated. Draining is skipped
// when the actor stops because its mailbox was closed, and any failure jumps
// straight to Terminated.
type State uint32

const (
	// Idle is the state of an actor that has been spawned but not run yet
	Idle State = iota
	// Starting is the state while PreStart runs
	Starting
	// Running is the state while messages are handled
	Running
	// Draining is the state while the messages enqueued before a stop request are handled
	Draining
	// Stopping is the state while PostStop runs
	Stopping
	// Terminated is the final state
	Terminated
)

var stateNames = [...]string{
	Idle:       "Idle",
	Starting:   "Starting",
	Running:    "Running",
	Draining:   "Draining",
	Stopping:   "Stopping",
	Terminated: "Terminated",
}

// String returns the name of the state
func (s State) String() string {
	if s > Terminated {
		return fmt.Sprintf("State(%d)", uint32(s))
	}
	return stateNames[s]
}
