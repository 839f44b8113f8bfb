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

	"go.opentelemetry.io/otel/metric"
)

// RuntimeMetrics bundles the observable instruments of one runtime instance.
type RuntimeMetrics struct {
	// ActorsCount is the number of live actors tracked by the registry
	ActorsCount metric.Int64ObservableGauge
	// NodesCount is the number of nodes registered in the ledger
	NodesCount metric.Int64ObservableGauge
	// Uptime is the number of seconds since the runtime started
	Uptime metric.Int64ObservableGauge
	// RejectedPlacements is the total number of creations rejected for
	// lack of a feasible node
	RejectedPlacements metric.Int64ObservableCounter

	registration metric.Registration
}

// NewRuntimeMetrics creates the runtime instruments on the given meter.
func NewRuntimeMetrics(meter metric.Meter) (*RuntimeMetrics, error) {
	metrics := new(RuntimeMetrics)
	var err error

	if metrics.ActorsCount, err = meter.Int64ObservableGauge(
		actorsCounterName,
		metric.WithDescription("The total number of live actors in the runtime"),
	); err != nil {
		return nil, fmt.Errorf("failed to create actors count instrument, %w", err)
	}

	if metrics.NodesCount, err = meter.Int64ObservableGauge(
		nodesCounterName,
		metric.WithDescription("The total number of nodes registered in the resource ledger"),
	); err != nil {
		return nil, fmt.Errorf("failed to create nodes count instrument, %w", err)
	}

	if metrics.Uptime, err = meter.Int64ObservableGauge(
		uptimeCounterName,
		metric.WithDescription("The number of seconds since the runtime started"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("failed to create uptime instrument, %w", err)
	}

	if metrics.RejectedPlacements, err = meter.Int64ObservableCounter(
		rejectedCounterName,
		metric.WithDescription("The total number of actor creations rejected for lack of a feasible node"),
	); err != nil {
		return nil, fmt.Errorf("failed to create rejected placements instrument, %w", err)
	}

	return metrics, nil
}

// Register wires the observation callback. The supplied observe function is
// invoked on every metrics collection cycle.
func (m *RuntimeMetrics) Register(meter metric.Meter, observe func(ctx context.Context, observer metric.Observer) error) error {
	registration, err := meter.RegisterCallback(observe,
		m.ActorsCount,
		m.NodesCount,
		m.Uptime,
		m.RejectedPlacements,
	)
	if err != nil {
		return fmt.Errorf("failed to register metrics callback, %w", err)
	}
	m.registration = registration
	return nil
}

// Unregister stops the observation callback.
func (m *RuntimeMetrics) Unregister() error {
	if m.registration == nil {
		return nil
	}
	return m.registration.Unregister()
}
