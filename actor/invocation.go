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
	"context"

	"github.com/tochemey/hive/internal/future"
)

// Invocation is one in-flight method call on an actor. The embedded future
// is write-once: whichever of the actor's response, a method error, or a
// forced-kill failure lands first is the outcome, later writes are dropped.
type Invocation struct {
	ctx      context.Context
	method   string
	argument any
	fut      *future.Future[any]
}

func newInvocation(ctx context.Context, method string, argument any) *Invocation {
	return &Invocation{
		ctx:      ctx,
		method:   method,
		argument: argument,
		fut:      future.New[any](),
	}
}

// Method returns the invoked method name.
func (i *Invocation) Method() string {
	return i.method
}

// Argument returns the invocation argument, possibly nil.
func (i *Invocation) Argument() any {
	return i.argument
}

// complete resolves the invocation with the actor's response.
func (i *Invocation) complete(response any) {
	i.fut.Complete(response)
}

// fail resolves the invocation with an error.
func (i *Invocation) fail(err error) {
	i.fut.Fail(err)
}

// Result blocks until the invocation resolves or the context is done.
func (i *Invocation) Result(ctx context.Context) (any, error) {
	result := i.fut.AwaitContext(ctx)
	if err := result.Failure(); err != nil {
		return nil, err
	}
	return result.Success(), nil
}
