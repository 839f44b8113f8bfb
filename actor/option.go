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
	"time"

	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/tochemey/hive/log"
	"github.com/tochemey/hive/placement"
)

// Option is the interface that applies a configuration option to the runtime.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(runtime *Runtime)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(runtime *Runtime)

// Apply applies the options to the config
func (f OptionFunc) Apply(runtime *Runtime) {
	f(runtime)
}

// WithLogger sets the runtime logger.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(runtime *Runtime) {
		runtime.logger = logger
	})
}

// WithPlacement sets the placement policy. The default is MostAvailable.
func WithPlacement(policy placement.Policy) Option {
	return OptionFunc(func(runtime *Runtime) {
		runtime.policy = policy
	})
}

// WithLauncher overrides the launcher hosting actor processes. The default
// is the in-process LocalLauncher.
func WithLauncher(launcher Launcher) Option {
	return OptionFunc(func(runtime *Runtime) {
		runtime.launcher = launcher
	})
}

// WithInventory sets the node inventory the ledger is seeded from.
func WithInventory(inventory Inventory) Option {
	return OptionFunc(func(runtime *Runtime) {
		runtime.inventory = inventory
	})
}

// WithDurableState persists actor records under the given directory so that
// an unclean shutdown leaves an auditable trail. Without it records live in
// memory only.
func WithDurableState(dir string) Option {
	return OptionFunc(func(runtime *Runtime) {
		runtime.durableDir = dir
	})
}

// WithShutdownTimeout bounds the graceful drain of every actor during Stop.
func WithShutdownTimeout(timeout time.Duration) Option {
	return OptionFunc(func(runtime *Runtime) {
		runtime.shutdownTimeout = timeout
	})
}

// WithReaperInterval sets how often terminated records are swept.
func WithReaperInterval(interval time.Duration) Option {
	return OptionFunc(func(runtime *Runtime) {
		runtime.reaperInterval = interval
	})
}

// WithTombstoneGrace sets how long terminated records stay visible to late
// lookups before the reaper purges them.
func WithTombstoneGrace(grace time.Duration) Option {
	return OptionFunc(func(runtime *Runtime) {
		runtime.tombstoneGrace = grace
	})
}

// WithInventoryRefreshInterval sets how often node capacities are re-read
// from the inventory.
func WithInventoryRefreshInterval(interval time.Duration) Option {
	return OptionFunc(func(runtime *Runtime) {
		runtime.refreshInterval = interval
	})
}

// WithMailboxCapacity sets the default mailbox capacity of new actors.
func WithMailboxCapacity(capacity int) Option {
	return OptionFunc(func(runtime *Runtime) {
		runtime.mailboxCapacity = capacity
	})
}

// WithPlacementRetries bounds how often a creation re-runs placement after
// losing a reservation race.
func WithPlacementRetries(retries int) Option {
	return OptionFunc(func(runtime *Runtime) {
		runtime.placementRetries = retries
	})
}

// WithMetrics enables the runtime's OpenTelemetry instruments on the given
// meter provider. A nil provider falls back to the global one.
func WithMetrics(meterProvider otelmetric.MeterProvider) Option {
	return OptionFunc(func(runtime *Runtime) {
		runtime.metricsEnabled = true
		runtime.meterProvider = meterProvider
	})
}
