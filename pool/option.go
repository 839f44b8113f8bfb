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

package pool

import "github.com/tochemey/hive/log"

// DefaultQueueCapacity bounds the pool's task queue.
const DefaultQueueCapacity = 1024

// config defines the pool configuration
type config struct {
	queueCapacity int
	logger        log.Logger
}

// Option is the interface that applies a configuration option to the pool.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(config *config)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(config *config)

// Apply applies the options to the config
func (f OptionFunc) Apply(config *config) {
	f(config)
}

// WithQueueCapacity bounds the task queue. Submit blocks once the queue is
// full.
func WithQueueCapacity(capacity int) Option {
	return OptionFunc(func(config *config) {
		config.queueCapacity = capacity
	})
}

// WithLogger sets the pool logger.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(config *config) {
		config.logger = logger
	})
}
