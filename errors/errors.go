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

// Package errors defines the error taxonomy of the runtime. Callers are
// expected to match errors with errors.Is against the exported sentinels.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRuntimeName is returned when the runtime name contains invalid characters.
	// A valid name must consist of only alphanumeric characters ([a-zA-Z0-9]), with optional
	// hyphens or underscores that are not leading.
	ErrInvalidRuntimeName = errors.New("invalid runtime name, must contain only word characters (i.e. [a-zA-Z0-9] plus non-leading '-' or '_')")

	// ErrNameRequired is returned when a runtime name is required but not provided.
	ErrNameRequired = errors.New("runtime name is required")

	// ErrInvalidActorName is returned when an actor name contains invalid characters.
	ErrInvalidActorName = errors.New("invalid actor name, must contain only word characters (i.e. [a-zA-Z0-9] plus non-leading '-' or '_')")

	// ErrRuntimeNotStarted indicates that the runtime has not been started before use.
	ErrRuntimeNotStarted = errors.New("runtime has not started")

	// ErrRuntimeAlreadyStarted is returned when starting a runtime that is already running.
	ErrRuntimeAlreadyStarted = errors.New("runtime has already started")

	// ErrRuntimeStopped indicates that the runtime is shutting down or has been stopped.
	ErrRuntimeStopped = errors.New("runtime is stopped")

	// ErrInsufficientResources is returned when a node cannot cover a resource
	// request with its currently available capacity. The reservation is not
	// applied, not even partially.
	ErrInsufficientResources = errors.New("insufficient resources")

	// ErrNoFeasibleNode is returned when no node in the inventory can satisfy a
	// resource request after the placement retry budget is exhausted.
	ErrNoFeasibleNode = errors.New("no feasible node")

	// ErrNodeNotFound is returned when a node is not registered in the ledger.
	ErrNodeNotFound = errors.New("node not found")

	// ErrNodeNotDrained is returned when removing a node that still carries
	// live reservations.
	ErrNodeNotDrained = errors.New("node still has live reservations")

	// ErrInvalidQuantity is returned when a resource request carries a negative
	// or otherwise unusable quantity.
	ErrInvalidQuantity = errors.New("invalid resource quantity")

	// ErrDuplicateName is returned when creating a named actor while another
	// live actor already holds the name.
	ErrDuplicateName = errors.New("actor name already taken")

	// ErrActorNotFound indicates that the actor does not exist or has already terminated.
	ErrActorNotFound = errors.New("actor not found")

	// ErrActorUnavailable is returned when an invocation reaches an actor that
	// is terminating or was forcefully killed. It is distinct from a method
	// error returned by the actor's own code.
	ErrActorUnavailable = errors.New("actor is not available")

	// ErrSpawnFailed indicates that the launcher could not start the actor
	// process on the chosen node. Any reservation made for the actor has been
	// rolled back when this error is returned.
	ErrSpawnFailed = errors.New("actor spawn failed")

	// ErrReferenceNotHeld is returned when releasing a handle reference the
	// holder does not hold.
	ErrReferenceNotHeld = errors.New("handle reference not held")

	// ErrHandleReleased is returned when using a handle after it was released.
	ErrHandleReleased = errors.New("handle already released")

	// ErrEmptyPool is returned when constructing a pool with no actor handles.
	ErrEmptyPool = errors.New("pool requires at least one actor handle")

	// ErrPoolClosed is returned for tasks that were still pending when the
	// pool stopped.
	ErrPoolClosed = errors.New("pool is closed")

	// ErrRecordStoreClosed is returned when a record store is used after Close.
	ErrRecordStoreClosed = errors.New("record store is closed")
)

// NewErrInvalidQuantity formats an ErrInvalidQuantity for the given resource kind.
func NewErrInvalidQuantity(kind string) error {
	return fmt.Errorf("kind=(%s) %w", kind, ErrInvalidQuantity)
}

// NewErrInsufficientResources formats an ErrInsufficientResources for the given node.
func NewErrInsufficientResources(node string) error {
	return fmt.Errorf("node=(%s) %w", node, ErrInsufficientResources)
}

// NewErrNodeNotFound formats an ErrNodeNotFound with the given node identifier.
func NewErrNodeNotFound(node string) error {
	return fmt.Errorf("node=(%s) %w", node, ErrNodeNotFound)
}

// NewErrNoFeasibleNode wraps a base error with ErrNoFeasibleNode to carry the
// last placement failure.
func NewErrNoFeasibleNode(err error) error {
	if err == nil {
		return ErrNoFeasibleNode
	}
	return errors.Join(ErrNoFeasibleNode, err)
}

// NewErrDuplicateName formats an ErrDuplicateName with the given actor name.
func NewErrDuplicateName(name string) error {
	return fmt.Errorf("actor=(%s) %w", name, ErrDuplicateName)
}

// NewErrActorNotFound formats an ErrActorNotFound with the given actor identity.
func NewErrActorNotFound(identity string) error {
	return fmt.Errorf("(actor=%s) %w", identity, ErrActorNotFound)
}

// NewErrActorUnavailable formats an ErrActorUnavailable with the given actor identity.
func NewErrActorUnavailable(identity string) error {
	return fmt.Errorf("(actor=%s) %w", identity, ErrActorUnavailable)
}

// NewErrSpawnFailed wraps a base error with ErrSpawnFailed to indicate a launcher failure.
func NewErrSpawnFailed(err error) error {
	return errors.Join(ErrSpawnFailed, err)
}

// NewErrReferenceNotHeld formats an ErrReferenceNotHeld for the given holder and actor.
func NewErrReferenceNotHeld(holder, identity string) error {
	return fmt.Errorf("holder=(%s) actor=(%s) %w", holder, identity, ErrReferenceNotHeld)
}

// PanicError wraps a panic recovered from actor code so it can travel as a
// regular error.
type PanicError struct {
	err error
}

// enforce compilation error
var _ error = (*PanicError)(nil)

// NewPanicError creates an instance of PanicError
func NewPanicError(err error) *PanicError {
	return &PanicError{err}
}

// Error implements the standard error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

func (e *PanicError) Unwrap() error {
	return e.err
}

// InternalError defines an error that is explicit to the runtime internals.
type InternalError struct {
	err error
}

// enforce compilation error
var _ error = (*InternalError)(nil)

// NewInternalError returns an instance of InternalError
func NewInternalError(err error) *InternalError {
	return &InternalError{
		err: fmt.Errorf("internal error: %w", err),
	}
}

// Error implements the standard error interface
func (i *InternalError) Error() string {
	return i.err.Error()
}

func (i *InternalError) Unwrap() error {
	return i.err
}
