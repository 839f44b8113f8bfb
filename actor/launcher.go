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
	"github.com/tochemey/hive/resource"
)

// ProcessSpec describes the actor process a launcher must start.
type ProcessSpec struct {
	// ID is the identity the runtime assigned to the actor.
	ID ID
	// Name is the optional actor name, used for logging only.
	Name string
	// Self is the descriptor handed to the actor's receive context.
	Self Ref
	// Actor is the behavior to host.
	Actor Actor
	// MailboxCapacity bounds the actor's invocation queue.
	MailboxCapacity int
	// Logger is the runtime logger scoped to this actor.
	Logger log.Logger
	// OnSelfExit is invoked when the actor asks to exit from inside a
	// handler. The launcher calls it at most once, off the receive loop.
	OnSelfExit func(id ID)
}

// ProcessHandle is the launcher-side face of a running actor process.
type ProcessHandle interface {
	// ID returns the identity of the hosted actor.
	ID() ID
	// Deliver enqueues one invocation for processing. It fails with
	// ErrActorUnavailable once the process stopped accepting work.
	Deliver(invocation *Invocation) error
}

// Launcher starts and stops actor processes on nodes. The runtime drives it
// through the lifecycle: a Spawn error rolls the creation back, and exactly
// one Terminate is issued per successfully spawned process.
type Launcher interface {
	// Spawn starts the actor on the given node. PreStart runs before Spawn
	// returns; its error is the Spawn error.
	Spawn(ctx context.Context, node resource.NodeID, spec *ProcessSpec) (ProcessHandle, error)
	// Terminate stops the process. Graceful termination drains queued
	// invocations and runs PostStop; forced termination fails pending work
	// and skips PostStop.
	Terminate(ctx context.Context, handle ProcessHandle, graceful bool) error
}
