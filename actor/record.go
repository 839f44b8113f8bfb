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
	"strconv"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/atomic"

	"github.com/tochemey/hive/internal/store"
	"github.com/tochemey/hive/resource"
)

// record is the registry-owned bookkeeping entry of one actor instance.
// The mutex serializes every mutation of a single record; the state word is
// additionally atomic so that hot-path reads (invocation dispatch) never
// take the lock.
type record struct {
	id       ID
	name     string
	request  resource.Request
	lifetime Lifetime
	creator  string

	// mu is a leaf lock: no code path acquires another record's lock or a
	// ledger lock while holding it.
	mu               sync.Mutex
	node             resource.NodeID
	holders          mapset.Set[string]
	originalAcquired bool
	originalReleased bool

	state  *atomic.Int32
	forced *atomic.Bool
	// finalized, reservationFreed and retired are the exactly-once guards of
	// teardown: one finalization, one ledger release, one live-counter
	// decrement per record, whichever of a kill, a rollback or a drain gets
	// there first.
	finalized        *atomic.Bool
	reservationFreed *atomic.Bool
	retired          *atomic.Bool
	proc             ProcessHandle

	createdAt    time.Time
	terminatedAt *atomic.Time
}

func newRecord(id ID, name string, request resource.Request, lifetime Lifetime, creator string) *record {
	return &record{
		id:           id,
		name:         name,
		request:      request.Clone(),
		lifetime:     lifetime,
		creator:      creator,
		holders:          mapset.NewSet[string](),
		state:            atomic.NewInt32(int32(Pending)),
		forced:           atomic.NewBool(false),
		finalized:        atomic.NewBool(false),
		reservationFreed: atomic.NewBool(false),
		retired:          atomic.NewBool(false),
		createdAt:        time.Now().UTC(),
		terminatedAt:     atomic.NewTime(time.Time{}),
	}
}

// getState returns the current lifecycle state.
func (r *record) getState() State {
	return State(r.state.Load())
}

// setState moves the record to the given state.
func (r *record) setState(state State) {
	r.state.Store(int32(state))
}

// advance moves the record forward to the given creation state. It refuses
// to leave Terminating or Terminated, so a termination that already began
// can never be overwritten by a late creation step. It reports whether the
// transition happened.
func (r *record) advance(state State) bool {
	for {
		current := r.state.Load()
		if State(current) >= Terminating {
			return false
		}
		if r.state.CompareAndSwap(current, int32(state)) {
			return true
		}
	}
}

// beginTermination flips the record into Terminating. It returns false when
// termination had already begun, so exactly one caller drives teardown. A
// forced caller still records the escalation so an in-progress graceful
// teardown skips its drain.
func (r *record) beginTermination(forced bool) bool {
	if forced {
		r.forced.Store(true)
	}
	for {
		current := r.state.Load()
		if State(current) >= Terminating {
			return false
		}
		if r.state.CompareAndSwap(current, int32(Terminating)) {
			return true
		}
	}
}

// isForced reports whether a forced kill won the termination race.
func (r *record) isForced() bool {
	return r.forced.Load()
}

// ref builds a point-in-time descriptor of the record.
func (r *record) ref() Ref {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Ref{
		id:             r.id,
		name:           r.name,
		node:           r.node,
		lifetime:       r.lifetime,
		state:          r.getState(),
		referenceCount: r.holders.Cardinality(),
		request:        r.request.Clone(),
	}
}

// snapshot renders the record for the durable store.
func (r *record) snapshot() *store.RecordState {
	r.mu.Lock()
	defer r.mu.Unlock()
	resources := make(map[string]string, len(r.request))
	for kind, quantity := range r.request {
		resources[string(kind)] = quantity.String()
	}
	return &store.RecordState{
		ID:        r.id.String(),
		Name:      r.name,
		Node:      string(r.node),
		Lifetime:  r.lifetime.String(),
		State:     r.getState().String(),
		Resources: resources,
		UpdatedAt: time.Now().UTC(),
	}
}

// Ref is a read-only descriptor of an actor as seen at one point in time.
type Ref struct {
	id             ID
	name           string
	node           resource.NodeID
	lifetime       Lifetime
	state          State
	referenceCount int
	request        resource.Request
}

// ID returns the actor identity
func (r Ref) ID() ID {
	return r.id
}

// Name returns the actor name or the empty string for anonymous actors
func (r Ref) Name() string {
	return r.name
}

// Node returns the node the actor is placed on
func (r Ref) Node() resource.NodeID {
	return r.node
}

// Lifetime returns the actor lifetime
func (r Ref) Lifetime() Lifetime {
	return r.lifetime
}

// State returns the lifecycle state at capture time
func (r Ref) State() State {
	return r.state
}

// ReferenceCount returns the number of live handle references
func (r Ref) ReferenceCount() int {
	return r.referenceCount
}

// Resources returns a copy of the actor's resource request
func (r Ref) Resources() resource.Request {
	return r.request
}

// String implements fmt.Stringer
func (r Ref) String() string {
	name := r.name
	if name == "" {
		name = "<anonymous>"
	}
	return "actor=(" + r.id.String() + ") name=(" + name + ") node=(" + string(r.node) +
		") state=(" + r.state.String() + ") refs=(" + strconv.Itoa(r.referenceCount) + ")"
}
