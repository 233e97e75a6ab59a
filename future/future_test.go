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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestFuture(t *testing.T) {
	t.Run("With success", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		f := New(func() (int, error) {
			return 10, nil
		})

		value, err := f.Await(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 10, value)

		// awaiting again returns the same outcome
		value, err = f.Await(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 10, value)
	})
	t.Run("With failure", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		expected := errors.New("boom")
		f := New(func() (string, error) {
			return "ignored", expected
		})

		value, err := f.Await(context.Background())
		require.ErrorIs(t, err, expected)
		assert.Empty(t, value)
	})
	t.Run("With context canceled before completion", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		release := make(chan struct{})
		f := New(func() (int, error) {
			<-release
			return 1, nil
		})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := f.Await(ctx)
		require.ErrorIs(t, err, context.DeadlineExceeded)

		select {
		case <-f.Done():
			t.Fatal("future should not be completed")
		default:
		}

		close(release)
		value, err := f.Await(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, value)
	})
	t.Run("With completer completing once", func(t *testing.T) {
		comp := newCompleter[int]()
		comp.Success(1)
		comp.Failure(errors.New("late"))
		comp.Success(2)

		<-comp.Future().Done()
		value, err := comp.Future().Await(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, value)
	})
}

func BenchmarkFuture(b *testing.B) {
	ctx := context.Background()
	b.ReportAllocs()
	for b.Loop() {
		f := New(func() (int, error) {
			return 1, nil
		})
		_, _ = f.Await(ctx)
	}
}
