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

	"go.uber.org/atomic"

	gerrors "github.com/tochemey/hive/errors"
)

// Handle is one holder's reference to an actor. The creation handle is the
// original: releasing it is what arms the automatic teardown of an Owned
// actor. Handles obtained later, through GetActor or Share, are secondary.
//
// A handle belongs to a single holder and is released at most once; using it
// afterwards fails with ErrHandleReleased.
type Handle struct {
	id       ID
	name     string
	holder   string
	original bool
	released *atomic.Bool
	runtime  *Runtime
}

// ID returns the identity of the referenced actor.
func (h *Handle) ID() ID {
	return h.id
}

// Name returns the actor name or the empty string for anonymous actors.
func (h *Handle) Name() string {
	return h.name
}

// Holder returns the holder owning this reference.
func (h *Handle) Holder() string {
	return h.holder
}

// IsOriginal reports whether this is the creation handle.
func (h *Handle) IsOriginal() bool {
	return h.original
}

// Ref returns the current descriptor of the referenced actor.
func (h *Handle) Ref() (Ref, error) {
	rec, ok := h.runtime.registry.get(h.id)
	if !ok {
		return Ref{}, gerrors.NewErrActorNotFound(h.id.String())
	}
	return rec.ref(), nil
}

// Invoke calls the given method on the actor and blocks until the actor
// responds, the actor fails the call, or the context is done. Invocations
// from any number of handles are serialized by the actor's receive loop.
func (h *Handle) Invoke(ctx context.Context, method string, argument any) (any, error) {
	if h.released.Load() {
		return nil, gerrors.ErrHandleReleased
	}
	return h.runtime.invoke(ctx, h.id, method, argument)
}

// Share acquires a secondary reference on the same actor for another holder.
func (h *Handle) Share(ctx context.Context, holder string) (*Handle, error) {
	if h.released.Load() {
		return nil, gerrors.ErrHandleReleased
	}
	return h.runtime.GetActorByID(ctx, h.id, holder)
}

// Release drops this reference. For the original handle of an Owned actor
// this may trigger the actor's graceful termination once no secondary
// references remain.
func (h *Handle) Release(ctx context.Context) error {
	if !h.released.CompareAndSwap(false, true) {
		return gerrors.ErrHandleReleased
	}
	return h.runtime.releaseReference(ctx, h.id, h.holder, h.original)
}
