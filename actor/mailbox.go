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

	"github.com/tochemey/goact/internal/queue"
	"github.com/tochemey/goact/oneshot"
)

type deliveryKind int

const (
	// messageDelivery carries a message to handle
	messageDelivery deliveryKind = iota
	// stopDelivery reports that the stop channel resolved, with or without a stop message
	stopDelivery
	// closedDelivery reports that the message queue is closed and empty
	closedDelivery
)

type delivery[M any] struct {
	kind     deliveryKind
	message  M
	explicit bool
}

// mailbox is owned by the running actor. It holds the receiving ends of the
// message queue and of the stop channel, and a weak reference to the actor so
// that it never keeps its own actor alive.
type mailbox[M any] struct {
	messages *queue.Receiver[M]
	stop     *oneshot.Receiver[M]
	self     *WeakRef[M]
}

func newMailbox[M any](messages *queue.Receiver[M], stop *oneshot.Receiver[M], self *WeakRef[M]) *mailbox[M] {
	return &mailbox[M]{
		messages: messages,
		stop:     stop,
		self:     self,
	}
}

// receive waits for the next delivery. The stop channel is always checked
// first, so a resolved stop channel wins over queued messages. Nothing is
// taken from the message queue unless it is returned.
func (m *mailbox[M]) receive(ctx context.Context) (delivery[M], error) {
	for {
		select {
		case <-m.stop.Done():
			message, ok, _ := m.stop.TryRecv()
			return delivery[M]{kind: stopDelivery, message: message, explicit: ok}, nil
		default:
		}

		if message, ok := m.messages.TryRecv(); ok {
			return delivery[M]{kind: messageDelivery, message: message}, nil
		}

		if m.messages.Drained() {
			return delivery[M]{kind: closedDelivery}, nil
		}

		select {
		case <-m.stop.Done():
		case <-m.messages.Ready():
		case <-m.messages.Closed():
		case <-ctx.Done():
			return delivery[M]{}, ctx.Err()
		}
	}
}

// seal stops the message queue from accepting new messages. The messages
// already enqueued remain available through next.
func (m *mailbox[M]) seal() {
	m.messages.Close()
}

// next returns the next enqueued message without waiting.
func (m *mailbox[M]) next() (M, bool) {
	return m.messages.TryRecv()
}

// dispose discards the remaining messages and closes both channels.
// Senders fail from then on and weak references can no longer be upgraded.
func (m *mailbox[M]) dispose() {
	m.stop.Close()
	m.messages.Dispose()
}
