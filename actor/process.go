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
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"

	gerrors "github.com/tochemey/hive/errors"
	"github.com/tochemey/hive/internal/types"
	"github.com/tochemey/hive/log"
)

// forcedStopGrace bounds how long a forced stop waits for the receive loop.
// A handler that never returns must not block the kill.
const forcedStopGrace = 100 * time.Millisecond

// poisonPill is the drain marker of graceful termination. It is enqueued
// behind the last accepted invocation; when the receive loop dequeues it,
// everything before it has been processed.
var poisonPill = newInvocation(context.Background(), "", nil)

// process hosts one actor: a mailbox, a single receive loop, and the stop
// protocol. Invocations are handled strictly one at a time in FIFO order.
type process struct {
	id         ID
	name       string
	self       Ref
	actor      Actor
	mailbox    *mailbox
	logger     log.Logger
	onSelfExit func(id ID)

	// accepting gates Deliver. It flips to false exactly once, before any
	// drain or disposal starts.
	accepting *atomic.Bool
	// forced marks an escalated teardown. The receive loop fails instead of
	// handling every invocation it dequeues afterwards.
	forced  *atomic.Bool
	current atomic.Pointer[Invocation]
	// done closes when the receive loop returns.
	done     chan types.Unit
	exitOnce sync.Once
}

// enforce compilation error
var _ ProcessHandle = (*process)(nil)

func newProcess(spec *ProcessSpec, capacity int) *process {
	return &process{
		id:         spec.ID,
		name:       spec.Name,
		self:       spec.Self,
		actor:      spec.Actor,
		mailbox:    newMailbox(capacity),
		logger:     spec.Logger,
		onSelfExit: spec.OnSelfExit,
		accepting:  atomic.NewBool(true),
		forced:     atomic.NewBool(false),
		done:       make(chan types.Unit),
	}
}

// ID returns the identity of the hosted actor.
func (p *process) ID() ID {
	return p.id
}

// Deliver enqueues one invocation. It blocks while the mailbox is full and
// fails with ErrActorUnavailable once the process stopped accepting work.
func (p *process) Deliver(invocation *Invocation) error {
	if !p.accepting.Load() {
		return gerrors.NewErrActorUnavailable(p.id.String())
	}
	if err := p.mailbox.enqueue(invocation); err != nil {
		return gerrors.NewErrActorUnavailable(p.id.String())
	}
	return nil
}

// run is the receive loop. It exits either by dequeuing the poison pill of a
// graceful stop, after running PostStop, or when a forced stop disposes the
// mailbox under it.
func (p *process) run() {
	defer close(p.done)
	for {
		invocation, err := p.mailbox.dequeue()
		if err != nil {
			return
		}
		if invocation == poisonPill {
			p.runPostStop()
			return
		}
		if p.forced.Load() {
			invocation.fail(gerrors.NewErrActorUnavailable(p.id.String()))
			continue
		}
		p.handle(invocation)
	}
}

// handle runs one invocation through the actor. A panic in the handler fails
// only that invocation; the loop keeps going.
func (p *process) handle(invocation *Invocation) {
	p.current.Store(invocation)
	defer p.current.Store(nil)

	rctx := &ReceiveContext{
		ctx:      invocation.ctx,
		self:     p.self,
		method:   invocation.method,
		argument: invocation.argument,
		logger:   p.logger,
	}

	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			invocation.fail(gerrors.NewPanicError(err))
		}
	}()

	p.actor.Receive(rctx)

	if rctx.err != nil {
		invocation.fail(rctx.err)
	} else {
		invocation.complete(rctx.response)
	}

	if rctx.exit {
		p.accepting.Store(false)
		p.exitOnce.Do(func() {
			if p.onSelfExit != nil {
				// runs off the loop: the exit path terminates this very
				// process and must not wait on itself
				go p.onSelfExit(p.id)
			}
		})
	}
}

// runPostStop gives the actor its shutdown hook. Failures are logged, not
// propagated: the actor is going away either way.
func (p *process) runPostStop() {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Errorf("actor=(%s) panicked in PostStop: %v", p.id, r)
		}
	}()
	if err := p.actor.PostStop(context.Background()); err != nil {
		p.logger.Errorf("actor=(%s) failed in PostStop: %v", p.id, err)
	}
}

// stop drives the stop protocol. Graceful: stop accepting, enqueue the
// poison pill, wait for the loop to drain and run PostStop. Forced, or a
// graceful drain outliving the context: fail the in-flight and queued
// invocations and dispose the mailbox, skipping PostStop. The write-once
// invocation future makes the escalation race benign.
func (p *process) stop(ctx context.Context, graceful bool) error {
	p.accepting.Store(false)

	if graceful {
		// enqueue off-goroutine: a full mailbox with a stuck consumer would
		// otherwise block the stop call itself
		go func() {
			_ = p.mailbox.enqueue(poisonPill)
		}()
		select {
		case <-p.done:
			p.mailbox.dispose()
			return nil
		case <-ctx.Done():
			p.logger.Warnf("actor=(%s) graceful drain timed out, escalating to forced stop", p.id)
		}
	}

	p.forced.Store(true)
	if invocation := p.current.Load(); invocation != nil {
		invocation.fail(gerrors.NewErrActorUnavailable(p.id.String()))
	}
	for {
		invocation, err := p.mailbox.poll(time.Millisecond)
		if err != nil {
			break
		}
		if invocation != poisonPill {
			invocation.fail(gerrors.NewErrActorUnavailable(p.id.String()))
		}
	}
	p.mailbox.dispose()

	select {
	case <-p.done:
	case <-ctx.Done():
		p.logger.Warnf("actor=(%s) receive loop did not stop in time", p.id)
	case <-time.After(forcedStopGrace):
		// the loop is stuck inside actor code; it will exit on its own once
		// the handler returns and finds the mailbox disposed
		p.logger.Warnf("actor=(%s) is stuck in a handler, not waiting for it", p.id)
	}
	return nil
}
