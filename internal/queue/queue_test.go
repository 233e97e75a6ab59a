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

package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	goset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestQueue(t *testing.T) {
	t.Run("With unbounded FIFO", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		ctx := context.Background()
		sender, receiver := New[int](0)

		for i := range 100 {
			require.NoError(t, sender.Send(ctx, i))
		}
		assert.Equal(t, 100, receiver.Len())
		assert.Zero(t, receiver.Capacity())

		for i := range 100 {
			v, err := receiver.Recv(ctx)
			require.NoError(t, err)
			assert.Equal(t, i, v)
		}

		_, ok := receiver.TryRecv()
		assert.False(t, ok)
		sender.Release()
		receiver.Dispose()
	})
	t.Run("With bounded capacity", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		ctx := context.Background()
		// 3 is not a power of two: the ring rounds up but the queue must not
		sender, receiver := New[int](3)
		assert.Equal(t, 3, receiver.Capacity())

		for i := range 3 {
			require.NoError(t, sender.TrySend(i))
		}
		require.ErrorIs(t, sender.TrySend(3), ErrFull)

		v, ok := receiver.TryRecv()
		require.True(t, ok)
		assert.Zero(t, v)

		require.NoError(t, sender.TrySend(3))
		for _, expected := range []int{1, 2, 3} {
			v, err := receiver.Recv(ctx)
			require.NoError(t, err)
			assert.Equal(t, expected, v)
		}
		sender.Release()
		receiver.Dispose()
	})
	t.Run("With Send waiting for a free slot", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		ctx := context.Background()
		sender, receiver := New[string](1)
		require.NoError(t, sender.Send(ctx, "a"))

		done := make(chan error, 1)
		go func() {
			done <- sender.Send(ctx, "b")
		}()

		select {
		case <-done:
			t.Fatal("send should wait while the queue is full")
		case <-time.After(50 * time.Millisecond):
		}

		v, ok := receiver.TryRecv()
		require.True(t, ok)
		assert.Equal(t, "a", v)

		require.NoError(t, <-done)
		v, err := receiver.Recv(ctx)
		require.NoError(t, err)
		assert.Equal(t, "b", v)

		sender.Release()
		receiver.Dispose()
	})
	t.Run("With Send canceled by the context", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		sender, receiver := New[int](1)
		require.NoError(t, sender.TrySend(1))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		err := sender.Send(ctx, 2)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, 1, receiver.Len())

		sender.Release()
		receiver.Dispose()
	})
	t.Run("With waiting Send woken up by Dispose", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		sender, receiver := New[int](1)
		require.NoError(t, sender.TrySend(1))

		done := make(chan error, 1)
		go func() {
			done <- sender.Send(context.Background(), 2)
		}()

		time.Sleep(20 * time.Millisecond)
		receiver.Dispose()
		require.ErrorIs(t, <-done, ErrClosed)
		sender.Release()
	})
	t.Run("With Close keeping queued items", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		ctx := context.Background()
		sender, receiver := New[int](0)
		require.NoError(t, sender.Send(ctx, 1))
		require.NoError(t, sender.Send(ctx, 2))

		receiver.Close()
		assert.True(t, receiver.IsClosed())
		require.ErrorIs(t, sender.Send(ctx, 3), ErrClosed)
		require.ErrorIs(t, sender.TrySend(3), ErrClosed)
		assert.False(t, receiver.Drained())

		for _, expected := range []int{1, 2} {
			v, err := receiver.Recv(ctx)
			require.NoError(t, err)
			assert.Equal(t, expected, v)
		}

		assert.True(t, receiver.Drained())
		_, err := receiver.Recv(ctx)
		require.ErrorIs(t, err, ErrClosed)
		sender.Release()
		receiver.Dispose()
	})
	t.Run("With last strong Sender released", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		ctx := context.Background()
		sender, receiver := New[int](0)
		clone := sender.Clone()
		require.NotNil(t, clone)

		require.NoError(t, sender.Send(ctx, 7))
		sender.Release()
		assert.False(t, receiver.IsClosed())
		require.ErrorIs(t, sender.Send(ctx, 8), ErrReleased)
		assert.Nil(t, sender.Clone())

		clone.Release()
		// releasing twice must not affect the count
		clone.Release()
		assert.True(t, receiver.IsClosed())

		select {
		case <-receiver.Closed():
		default:
			t.Fatal("closed channel should be closed")
		}

		v, err := receiver.Recv(ctx)
		require.NoError(t, err)
		assert.Equal(t, 7, v)
		_, err = receiver.Recv(ctx)
		require.ErrorIs(t, err, ErrClosed)
		receiver.Dispose()
	})
	t.Run("With weak Sender upgrade", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		sender, receiver := New[int](0)
		weak := sender.Downgrade()

		upgraded, ok := weak.Upgrade()
		require.True(t, ok)
		require.NotNil(t, upgraded)

		sender.Release()
		assert.False(t, receiver.IsClosed())
		upgraded.Release()
		assert.True(t, receiver.IsClosed())

		upgraded, ok = weak.Upgrade()
		assert.False(t, ok)
		assert.Nil(t, upgraded)
		receiver.Dispose()
	})
	t.Run("With weak Sender upgrade after Close", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		sender, receiver := New[int](0)
		weak := sender.Downgrade()
		receiver.Close()

		_, ok := weak.Upgrade()
		assert.False(t, ok)
		sender.Release()
		receiver.Dispose()
	})
	t.Run("With weak Sender Send", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		ctx := context.Background()
		sender, receiver := New[int](1)
		weak := sender.Downgrade()

		require.NoError(t, weak.Send(ctx, 1))
		require.ErrorIs(t, weak.TrySend(2), ErrFull)
		v, ok := receiver.TryRecv()
		require.True(t, ok)
		assert.Equal(t, 1, v)

		// a closed queue with strong Senders left rejects the item
		receiver.Close()
		require.ErrorIs(t, weak.Send(ctx, 3), ErrClosed)
		require.ErrorIs(t, weak.TrySend(3), ErrClosed)

		sender.Release()
		require.ErrorIs(t, weak.Send(ctx, 4), ErrNoSender)
		require.ErrorIs(t, weak.TrySend(4), ErrNoSender)
		receiver.Dispose()
	})
	t.Run("With weak Sender Send not keeping the queue open", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		sender, receiver := New[int](0)
		weak := sender.Downgrade()

		require.NoError(t, weak.Send(context.Background(), 1))
		sender.Release()
		assert.True(t, receiver.IsClosed())
		v, ok := receiver.TryRecv()
		require.True(t, ok)
		assert.Equal(t, 1, v)
		receiver.Dispose()
	})
	t.Run("With Clone after the last strong holder is gone", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		sender, receiver := New[int](0)
		weak := sender.Downgrade()

		// the count drops to zero before the released flag of sender is seen
		sender.state.q.drop()
		assert.Nil(t, sender.Clone())

		_, ok := weak.Upgrade()
		assert.False(t, ok)
		assert.True(t, receiver.IsClosed())
		sender.Release()
		receiver.Dispose()
	})
	t.Run("With Recv canceled by the context", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		sender, receiver := New[int](0)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := receiver.Recv(ctx)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		sender.Release()
		receiver.Dispose()
	})
	t.Run("With Dispose discarding items", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		ctx := context.Background()
		sender, receiver := New[int](4)
		for i := range 4 {
			require.NoError(t, sender.Send(ctx, i))
		}

		receiver.Dispose()
		receiver.Dispose()
		assert.Zero(t, receiver.Len())
		require.ErrorIs(t, sender.Send(ctx, 5), ErrClosed)
		sender.Release()
	})
}

func TestQueueMultipleProducers(t *testing.T) {
	for _, capacity := range []int{0, 8} {
		t.Run(fmt.Sprintf("With capacity %d", capacity), func(t *testing.T) {
			defer goleak.VerifyNone(t)
			ctx := context.Background()
			producers := 4
			perProducer := 250
			sender, receiver := New[int](capacity)

			var wg sync.WaitGroup
			wg.Add(producers)
			for p := range producers {
				producer := sender.Clone()
				go func() {
					defer wg.Done()
					defer producer.Release()
					for i := range perProducer {
						assert.NoError(t, producer.Send(ctx, p*perProducer+i))
					}
				}()
			}
			sender.Release()

			received := goset.NewThreadUnsafeSet[int]()
			last := make(map[int]int, producers)
			for {
				v, err := receiver.Recv(ctx)
				if err != nil {
					require.ErrorIs(t, err, ErrClosed)
					break
				}

				// items from one producer arrive in send order
				p := v / perProducer
				if prev, ok := last[p]; ok {
					require.Greater(t, v, prev)
				}
				last[p] = v
				received.Add(v)
			}

			wg.Wait()
			assert.Equal(t, producers*perProducer, received.Cardinality())
			receiver.Dispose()
		})
	}
}

func BenchmarkQueue(b *testing.B) {
	sender, receiver := New[int](0)
	done := make(chan struct{})

	go func(target int) {
		processed := 0
		for processed < target {
			if _, ok := receiver.TryRecv(); ok {
				processed++
			}
		}
		close(done)
	}(b.N)

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = sender.TrySend(1)
		}
	})
	<-done
	b.StopTimer()
	sender.Release()
	receiver.Dispose()
}
