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

package bench

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/goleak"

	"github.com/tochemey/goact/actor"
)

func TestBenchmark(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx := context.Background()
	benchmark, err := Start(ctx, actor.WithMailboxCapacity(8))
	require.NoError(t, err)

	for range 10 {
		require.NoError(t, benchmark.Tell(ctx))
	}
	received, err := benchmark.Ask(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 11, received)

	total, err := benchmark.Stop(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 11, total)
}

func BenchmarkActor(b *testing.B) {
	for _, bench := range []struct {
		name string
		opts []actor.SpawnOption
	}{
		{name: "Tell(unbounded mailbox)"},
		{name: "Tell(bounded mailbox)", opts: []actor.SpawnOption{actor.WithMailboxCapacity(1_024)}},
	} {
		b.Run(bench.name, func(b *testing.B) {
			ctx := context.Background()
			benchmark, err := Start(ctx, bench.opts...)
			require.NoError(b, err)

			sent := atomic.NewInt64(0)
			b.ResetTimer()
			b.ReportAllocs()
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					if err := benchmark.Tell(ctx); err != nil {
						b.Error(err)
						return
					}
					sent.Inc()
				}
			})

			total, err := benchmark.Stop(ctx)
			b.StopTimer()
			require.NoError(b, err)
			require.Equal(b, sent.Load(), total)
			b.ReportMetric(float64(total)/b.Elapsed().Seconds(), "messages/s")
		})
	}

	b.Run("Ask", func(b *testing.B) {
		ctx := context.Background()
		benchmark, err := Start(ctx)
		require.NoError(b, err)

		b.ResetTimer()
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				if _, err := benchmark.Ask(ctx); err != nil {
					b.Error(err)
					return
				}
			}
		})

		b.StopTimer()
		_, err = benchmark.Stop(ctx)
		require.NoError(b, err)
	})
}
