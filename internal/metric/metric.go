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

// Package metric exposes the runtime's OpenTelemetry instruments.
package metric

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	instrumentationName = "github.com/tochemey/hive"

	actorsCounterName   = "hive_actors_count"
	nodesCounterName    = "hive_nodes_count"
	uptimeCounterName   = "hive_uptime_seconds"
	rejectedCounterName = "hive_placements_rejected_count"
)

// Provider holds the meter the runtime registers its instruments on.
type Provider struct {
	MeterProvider metric.MeterProvider
	Meter         metric.Meter
}

// Option configures the metric provider at creation time.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(provider *Provider)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(provider *Provider)

// Apply implementation
func (f OptionFunc) Apply(provider *Provider) {
	f(provider)
}

// WithMeterProvider overrides the global OpenTelemetry meter provider.
func WithMeterProvider(meterProvider metric.MeterProvider) Option {
	return OptionFunc(func(provider *Provider) {
		provider.MeterProvider = meterProvider
	})
}

// NewProvider creates a Provider backed by the global OpenTelemetry meter
// provider unless one is supplied as an option.
func NewProvider(options ...Option) *Provider {
	provider := &Provider{
		MeterProvider: otel.GetMeterProvider(),
	}
	for _, opt := range options {
		opt.Apply(provider)
	}
	provider.Meter = provider.MeterProvider.Meter(instrumentationName)
	return provider
}
