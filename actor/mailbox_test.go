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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tochemey/goact/internal/queue"
	"github.com/tochemey/goact/oneshot"
)

func newTestMailbox(capacity int) (*Ref[string], *mailbox[string]) {
	messagesTx, messagesRx := queue.New[string](capacity)
	stopTx, stopRx := oneshot.New[string]()
	ref := newRef("test", messagesTx, stopTx)
	return ref, newMailbox(messagesRx, stopRx, ref.Downgrade())
}

func TestMailbox(t *testing.T) {
	t.Run("With stop taking priority over queued messages", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		ctx := context.Background()
		ref, mbox := newTestMailbox(0)

		require.NoError(t, ref.Send(ctx, "a"))
		require.NoError(t, ref.Send(ctx, "b"))
		require.NoError(t, ref.Stop("halt"))

		next, err := mbox.receive(ctx)
		require.NoError(t, err)
		assert.Equal(t, stopDelivery, next.kind)
		assert.Equal(t, "halt", next.message)
		assert.True(t, next.explicit)

		// nothing was taken from the queue
		mbox.seal()
		for _, expected := range []string{"a", "b"} {
			message, ok := mbox.next()
			require.True(t, ok)
			assert.Equal(t, expected, message)
		}
		_, ok := mbox.next()
		assert.False(t, ok)

		ref.Release()
		mbox.dispose()
	})
	t.Run("With messages delivered in order", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		ctx := context.Background()
		ref, mbox := newTestMailbox(4)

		require.NoError(t, ref.Send(ctx, "a"))
		require.NoError(t, ref.Send(ctx, "b"))
		for _, expected := range []string{"a", "b"} {
			next, err := mbox.receive(ctx)
			require.NoError(t, err)
			assert.Equal(t, messageDelivery, next.kind)
			assert.Equal(t, expected, next.message)
		}

		ref.Release()
		mbox.dispose()
	})
	t.Run("With a waiting receive woken up by a message", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		ctx := context.Background()
		ref, mbox := newTestMailbox(0)

		go func() {
			time.Sleep(20 * time.Millisecond)
			_ = ref.Send(ctx, "late")
		}()

		next, err := mbox.receive(ctx)
		require.NoError(t, err)
		assert.Equal(t, messageDelivery, next.kind)
		assert.Equal(t, "late", next.message)

		ref.Release()
		mbox.dispose()
	})
	t.Run("With queue closed and drained", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		ctx := context.Background()
		ref, mbox := newTestMailbox(0)
		require.NoError(t, ref.Send(ctx, "a"))
		ref.messages.Release()

		next, err := mbox.receive(ctx)
		require.NoError(t, err)
		assert.Equal(t, messageDelivery, next.kind)

		next, err = mbox.receive(ctx)
		require.NoError(t, err)
		assert.Equal(t, closedDelivery, next.kind)

		ref.Release()
		mbox.dispose()
	})
	t.Run("With stop side released without a message", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		ctx := context.Background()
		ref, mbox := newTestMailbox(0)
		ref.stop.Release()

		next, err := mbox.receive(ctx)
		require.NoError(t, err)
		assert.Equal(t, stopDelivery, next.kind)
		assert.False(t, next.explicit)
		assert.Empty(t, next.message)

		ref.Release()
		mbox.dispose()
	})
	t.Run("With context canceled", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		ref, mbox := newTestMailbox(0)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := mbox.receive(ctx)
		require.ErrorIs(t, err, context.DeadlineExceeded)

		ref.Release()
		mbox.dispose()
	})
}
