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

import "context"

// ReceiveFunc is the handler signature of a function-backed actor.
type ReceiveFunc func(rctx *ReceiveContext)

// funcConfig defines the configuration of a function-backed actor
type funcConfig struct {
	preStart func(ctx context.Context) error
	postStop func(ctx context.Context) error
}

// FuncOption is the interface that applies a configuration option to a
// function-backed actor.
type FuncOption interface {
	// Apply sets the Option value of a config.
	Apply(config *funcConfig)
}

// enforce compilation error
var _ FuncOption = funcOptionFunc(nil)

// funcOptionFunc implements the FuncOption interface.
type funcOptionFunc func(config *funcConfig)

// Apply applies the options to the config
func (f funcOptionFunc) Apply(config *funcConfig) {
	f(config)
}

// WithPreStart sets the hook that runs before the actor starts.
func WithPreStart(hook func(ctx context.Context) error) FuncOption {
	return funcOptionFunc(func(config *funcConfig) {
		config.preStart = hook
	})
}

// WithPostStop sets the hook that runs during graceful termination.
func WithPostStop(hook func(ctx context.Context) error) FuncOption {
	return funcOptionFunc(func(config *funcConfig) {
		config.postStop = hook
	})
}

// FuncActor adapts a plain function into an Actor, for callers that do not
// want to define a struct for a small piece of behavior.
type FuncActor struct {
	receive ReceiveFunc
	config  *funcConfig
}

// enforce compilation error
var _ Actor = (*FuncActor)(nil)

// NewFuncActor creates a function-backed actor from the given handler.
func NewFuncActor(receive ReceiveFunc, opts ...FuncOption) *FuncActor {
	config := new(funcConfig)
	for _, opt := range opts {
		opt.Apply(config)
	}
	return &FuncActor{
		receive: receive,
		config:  config,
	}
}

// PreStart runs the configured pre-start hook when one is set.
func (x *FuncActor) PreStart(ctx context.Context) error {
	if x.config.preStart != nil {
		return x.config.preStart(ctx)
	}
	return nil
}

// Receive hands the invocation to the wrapped function.
func (x *FuncActor) Receive(rctx *ReceiveContext) {
	x.receive(rctx)
}

// PostStop runs the configured post-stop hook when one is set.
func (x *FuncActor) PostStop(ctx context.Context) error {
	if x.config.postStop != nil {
		return x.config.postStop(ctx)
	}
	return nil
}
