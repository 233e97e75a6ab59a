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

package metric

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const actorIDKey = attribute.Key("actor.id")

// ActorMetric defines the actor instrumentation
type ActorMetric struct {
	// Specifies the total number of messages handled without error
	processedCount metric.Int64Counter
	// Specifies the total number of runs that ended with an error
	failureCount metric.Int64Counter
	// Specifies the total number of runs that went through teardown
	stoppedCount metric.Int64Counter
	// Specifies the time spent in the message handler, in milliseconds
	receiveDuration metric.Float64Histogram
}

// NewActorMetric creates an instance of ActorMetric
func NewActorMetric(meter metric.Meter) (*ActorMetric, error) {
	actorMetric := new(ActorMetric)
	var err error

	if actorMetric.processedCount, err = meter.Int64Counter(
		"actor_processed_count",
		metric.WithDescription("Total number of messages processed"),
	); err != nil {
		return nil, fmt.Errorf("failed to create processedCount instrument, %w", err)
	}

	if actorMetric.failureCount, err = meter.Int64Counter(
		"actor_failure_count",
		metric.WithDescription("Total number of actor runs terminated by an error"),
	); err != nil {
		return nil, fmt.Errorf("failed to create failureCount instrument, %w", err)
	}

	if actorMetric.stoppedCount, err = meter.Int64Counter(
		"actor_stopped_count",
		metric.WithDescription("Total number of actor runs that completed their teardown"),
	); err != nil {
		return nil, fmt.Errorf("failed to create stoppedCount instrument, %w", err)
	}

	if actorMetric.receiveDuration, err = meter.Float64Histogram(
		"actor_received_duration",
		metric.WithDescription("The latency of the messages processed in milliseconds"),
		metric.WithUnit("ms"),
	); err != nil {
		return nil, fmt.Errorf("failed to create receiveDuration instrument, %w", err)
	}

	return actorMetric, nil
}

// RecordReceive records a message handled by the given actor.
func (x *ActorMetric) RecordReceive(ctx context.Context, actorID string, elapsed time.Duration, err error) {
	attrs := metric.WithAttributes(actorIDKey.String(actorID))
	x.receiveDuration.Record(ctx, float64(elapsed)/float64(time.Millisecond), attrs)
	if err == nil {
		x.processedCount.Add(ctx, 1, attrs)
	}
}

// RecordTermination records the outcome of an actor run.
func (x *ActorMetric) RecordTermination(ctx context.Context, actorID string, err error) {
	attrs := metric.WithAttributes(actorIDKey.String(actorID))
	if err != nil {
		x.failureCount.Add(ctx, 1, attrs)
		return
	}
	x.stoppedCount.Add(ctx, 1, attrs)
}
