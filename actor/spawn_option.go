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
	"errors"
	"math"

	"github.com/google/uuid"
	otelmetric "go.opentelemetry.io/otel/metric"

	gerrors "github.com/tochemey/goact/errors"
	"github.com/tochemey/goact/internal/metric"
	"github.com/tochemey/goact/internal/validation"
	"github.com/tochemey/goact/log"
)

// spawnConfig defines the configuration to apply when spawning an actor
type spawnConfig struct {
	// id identifies the actor in logs and metrics. Defaults to a random UUID.
	id string
	// mailboxCapacity bounds the mailbox. A nil value means unbounded.
	mailboxCapacity *int
	logger          log.Logger
	// metrics is set when instrumentation is enabled
	metrics *metric.Provider
}

// newSpawnConfig creates an instance of spawnConfig
func newSpawnConfig(opts ...SpawnOption) *spawnConfig {
	config := &spawnConfig{
		id:     uuid.NewString(),
		logger: log.DiscardLogger,
	}

	for _, opt := range opts {
		opt.Apply(config)
	}
	return config
}

// Validate checks the configuration
func (c *spawnConfig) Validate() error {
	if c.mailboxCapacity != nil {
		if err := validation.NewRangeValidator("mailbox capacity", *c.mailboxCapacity, 1, math.MaxInt32).Validate(); err != nil {
			return errors.Join(gerrors.ErrInvalidMailboxCapacity, err)
		}
	}

	return validation.New(validation.FailFast()).
		AddValidator(validation.NewIDValidator(c.id)).
		AddAssertion(c.logger != nil, "the [logger] is required").
		Validate()
}

// capacity returns the queue capacity, zero when unbounded
func (c *spawnConfig) capacity() int {
	if c.mailboxCapacity == nil {
		return 0
	}
	return *c.mailboxCapacity
}

// SpawnOption is the interface that applies to Spawn
type SpawnOption interface {
	// Apply sets the Option value of a config.
	Apply(config *spawnConfig)
}

var _ SpawnOption = spawnOption(nil)

// spawnOption implements the SpawnOption interface.
type spawnOption func(config *spawnConfig)

// Apply sets the Option value of a config.
func (f spawnOption) Apply(c *spawnConfig) {
	f(c)
}

// WithMailboxCapacity bounds the actor mailbox to capacity messages, which
// must be greater than zero. By default the mailbox is unbounded.
//
// Senders of a full mailbox wait with Ref.Send or fail with
// gerrors.ErrMailboxFull with Ref.TrySend.
func WithMailboxCapacity(capacity int) SpawnOption {
	return spawnOption(func(config *spawnConfig) {
		config.mailboxCapacity = &capacity
	})
}

// WithID sets the actor identifier. It must start with a letter or a digit and
// contain only letters, digits, hyphens, underscores and dots.
func WithID(id string) SpawnOption {
	return spawnOption(func(config *spawnConfig) {
		config.id = id
	})
}

// WithLogger sets the logger of the actor. Lifecycle transitions are logged at
// debug level and failures at error level. Nothing is logged by default.
func WithLogger(logger log.Logger) SpawnOption {
	return spawnOption(func(config *spawnConfig) {
		config.logger = logger
	})
}

// WithMetrics enables the actor instrumentation using the global OpenTelemetry
// meter provider.
func WithMetrics() SpawnOption {
	return spawnOption(func(config *spawnConfig) {
		config.metrics = metric.New()
	})
}

// WithMeterProvider enables the actor instrumentation using the given
// OpenTelemetry meter provider.
func WithMeterProvider(provider otelmetric.MeterProvider) SpawnOption {
	return spawnOption(func(config *spawnConfig) {
		config.metrics = metric.New(metric.WithMeterProvider(provider))
	})
}
