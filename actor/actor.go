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

	"github.com/tochemey/hive/log"
)

// Actor is the contract every hosted actor must satisfy. One actor instance
// processes its invocations strictly one at a time, in arrival order, so the
// implementation never needs its own locking around actor state.
type Actor interface {
	// PreStart runs once before the first invocation is delivered. A non-nil
	// error aborts the creation: the actor never starts and every side effect
	// of placement is rolled back.
	PreStart(ctx context.Context) error
	// Receive handles one invocation. Use the receive context to read the
	// method and argument and to respond or fail.
	Receive(rctx *ReceiveContext)
	// PostStop runs once during graceful termination, after the last queued
	// invocation has drained. A forced kill skips it.
	PostStop(ctx context.Context) error
}

// ReceiveContext carries one invocation into the actor and the actor's
// response back out. It is only valid for the duration of the Receive call.
type ReceiveContext struct {
	ctx      context.Context
	self     Ref
	method   string
	argument any
	response any
	err      error
	exit     bool
	logger   log.Logger
}

// Context returns the caller's context for the invocation.
func (c *ReceiveContext) Context() context.Context {
	return c.ctx
}

// Self returns a descriptor of the actor handling the invocation.
func (c *ReceiveContext) Self() Ref {
	return c.self
}

// Method returns the invoked method name.
func (c *ReceiveContext) Method() string {
	return c.method
}

// Argument returns the invocation argument, possibly nil.
func (c *ReceiveContext) Argument() any {
	return c.argument
}

// Logger returns the runtime logger scoped to this actor.
func (c *ReceiveContext) Logger() log.Logger {
	return c.logger
}

// Respond sets the invocation result returned to the caller.
func (c *ReceiveContext) Respond(response any) {
	c.response = response
}

// Err fails the invocation with the given method error. The actor stays
// alive; a method error is the actor's answer, not a crash.
func (c *ReceiveContext) Err(err error) {
	c.err = err
}

// Exit asks the runtime to gracefully terminate this actor once the current
// invocation returns. Invocations already queued behind it still drain.
func (c *ReceiveContext) Exit() {
	c.exit = true
}
