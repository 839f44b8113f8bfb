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
	"github.com/tochemey/hive/resource"
)

// spawnSettings is the resolved creation request.
type spawnSettings struct {
	lifetime Lifetime
	request  resource.Request
	mailbox  int
	holder   string
}

// SpawnOption is the interface that applies an option to one creation.
type SpawnOption interface {
	// Apply sets the Option value of a config.
	Apply(settings *spawnSettings)
}

// enforce compilation error
var _ SpawnOption = spawnOptionFunc(nil)

// spawnOptionFunc implements the SpawnOption interface.
type spawnOptionFunc func(settings *spawnSettings)

// Apply applies the options to the config
func (f spawnOptionFunc) Apply(settings *spawnSettings) {
	f(settings)
}

// WithLifetime sets the actor lifetime. The default is Owned.
func WithLifetime(lifetime Lifetime) SpawnOption {
	return spawnOptionFunc(func(settings *spawnSettings) {
		settings.lifetime = lifetime
	})
}

// WithResources sets the capacity the actor needs on its node. A zero
// request places the actor without charging any capacity.
func WithResources(request resource.Request) SpawnOption {
	return spawnOptionFunc(func(settings *spawnSettings) {
		settings.request = request.Clone()
	})
}

// WithMailbox bounds the actor's invocation queue for this creation only.
func WithMailbox(capacity int) SpawnOption {
	return spawnOptionFunc(func(settings *spawnSettings) {
		settings.mailbox = capacity
	})
}

// WithHolder names the holder owning the original handle. When unset a
// holder identifier is generated.
func WithHolder(holder string) SpawnOption {
	return spawnOptionFunc(func(settings *spawnSettings) {
		settings.holder = holder
	})
}
