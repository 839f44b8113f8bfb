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
	"sort"
	"sync"
	"time"

	csmap "github.com/mhmtszr/concurrent-swiss-map"
	"github.com/zeebo/xxh3"
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/hive/errors"
	"github.com/tochemey/hive/log"
	"github.com/tochemey/hive/resource"
)

// nameIndex maps a live actor name to the identity holding it. Reservation
// and lookup share one small mutex so that two concurrent creations of the
// same name can never both succeed.
type nameIndex struct {
	mu    sync.Mutex
	names map[string]ID
}

func newNameIndex() *nameIndex {
	return &nameIndex{names: make(map[string]ID)}
}

// reserve claims the name for the given identity. It returns false when the
// name is already held by a different identity.
func (x *nameIndex) reserve(name string, id ID) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	if holder, taken := x.names[name]; taken && holder != id {
		return false
	}
	x.names[name] = id
	return true
}

// resolve returns the identity currently holding the name.
func (x *nameIndex) resolve(name string) (ID, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()
	id, ok := x.names[name]
	return id, ok
}

// free releases the name, but only when it is still held by the given
// identity. A later actor that reused the name keeps it.
func (x *nameIndex) free(name string, id ID) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if holder, taken := x.names[name]; taken && holder == id {
		delete(x.names, name)
	}
}

// registry owns every actor record of one runtime. Records are kept past
// termination as tombstones for a grace window so that late lookups can tell
// "terminated" apart from "never existed"; the reaper purges them afterwards.
type registry struct {
	records *csmap.CsMap[ID, *record]
	names   *nameIndex
	// counter tracks live, non-terminated records
	counter *atomic.Int64
	// onZero fires when an Owned record loses its last reference. It runs
	// outside the record lock on the releasing caller's goroutine.
	onZero func(*record)
	logger log.Logger
}

func newRegistry(logger log.Logger, onZero func(*record)) *registry {
	return &registry{
		records: csmap.Create[ID, *record](
			csmap.WithShardCount[ID, *record](32),
			csmap.WithCustomHasher[ID, *record](func(key ID) uint64 {
				return xxh3.Hash([]byte(key))
			}),
		),
		names:   newNameIndex(),
		counter: atomic.NewInt64(0),
		onZero:  onZero,
		logger:  logger,
	}
}

// create registers a new Pending record under a fresh identity. For named
// actors the name is reserved first, so exactly one of any number of
// concurrent creations with the same name can win.
func (r *registry) create(name string, request resource.Request, lifetime Lifetime, creator string) (*record, error) {
	id := NewID()
	if name != "" {
		if err := validateActorName(name); err != nil {
			return nil, err
		}
		if !r.names.reserve(name, id) {
			return nil, gerrors.NewErrDuplicateName(name)
		}
	}

	rec := newRecord(id, name, request, lifetime, creator)
	r.records.Store(id, rec)
	r.counter.Inc()
	return rec, nil
}

// get returns the record for the identity, tombstones included.
func (r *registry) get(id ID) (*record, bool) {
	return r.records.Load(id)
}

// acquire adds the holder to the record's reference set. Acquisition fails
// once termination has begun; a holder acquiring a reference it already has
// is a no-op. The original flag marks the creator's first reference, whose
// release is what arms Owned teardown.
func (r *registry) acquire(rec *record, holder string, original bool) error {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.getState() >= Terminating {
		return gerrors.NewErrActorNotFound(rec.id.String())
	}
	rec.holders.Add(holder)
	if original {
		rec.originalAcquired = true
	}
	return nil
}

// acquireByName resolves the name and acquires a reference in one step, so a
// concurrent termination cannot slip between lookup and acquisition.
func (r *registry) acquireByName(name, holder string) (*record, error) {
	id, ok := r.names.resolve(name)
	if !ok {
		return nil, gerrors.NewErrActorNotFound(name)
	}
	rec, ok := r.records.Load(id)
	if !ok {
		return nil, gerrors.NewErrActorNotFound(name)
	}
	if err := r.acquire(rec, holder, false); err != nil {
		return nil, err
	}
	return rec, nil
}

// release drops the holder's reference. When the released reference is the
// creator's original one and the record is Owned, the record becomes
// eligible for teardown as soon as the reference set empties; the zeroed
// callback then fires exactly once.
func (r *registry) release(rec *record, holder string, original bool) error {
	rec.mu.Lock()
	if !rec.holders.Contains(holder) {
		rec.mu.Unlock()
		return gerrors.NewErrReferenceNotHeld(holder, rec.id.String())
	}
	rec.holders.Remove(holder)
	if original {
		rec.originalReleased = true
	}
	zeroed := rec.lifetime == Owned &&
		rec.originalReleased &&
		rec.holders.IsEmpty() &&
		rec.getState() < Terminating
	rec.mu.Unlock()

	if zeroed && r.onZero != nil {
		r.onZero(rec)
	}
	return nil
}

// releaseHolder drops every reference the holder has across the registry.
// It is the cleanup path for holders that go away without releasing their
// handles one by one.
func (r *registry) releaseHolder(holder string) {
	var held []*record
	r.records.Range(func(_ ID, rec *record) bool {
		rec.mu.Lock()
		if rec.holders.Contains(holder) {
			held = append(held, rec)
		}
		rec.mu.Unlock()
		return false
	})
	for _, rec := range held {
		original := rec.creator == holder
		if err := r.release(rec, holder, original); err != nil {
			r.logger.Warnf("failed to release holder=(%s) reference on actor=(%s): %v", holder, rec.id, err)
		}
	}
}

// remove deletes the record and frees its name, used to roll back creations
// that never reached Running. A kill racing the rollback may have tombstoned
// the record already; the retired guard keeps the live counter exact.
func (r *registry) remove(rec *record) {
	if rec.name != "" {
		r.names.free(rec.name, rec.id)
	}
	r.records.Delete(rec.id)
	if rec.retired.CompareAndSwap(false, true) {
		r.counter.Dec()
	}
}

// tombstone marks the record Terminated and frees its name for reuse. The
// record itself stays in the map until the reaper purges it.
func (r *registry) tombstone(rec *record) {
	rec.setState(Terminated)
	rec.terminatedAt.Store(time.Now().UTC())
	if rec.name != "" {
		r.names.free(rec.name, rec.id)
	}
	if rec.retired.CompareAndSwap(false, true) {
		r.counter.Dec()
	}
}

// purgeTombstones drops Terminated records older than the grace window and
// returns how many were purged.
func (r *registry) purgeTombstones(grace time.Duration) int {
	var stale []ID
	deadline := time.Now().UTC().Add(-grace)
	r.records.Range(func(id ID, rec *record) bool {
		if rec.getState() == Terminated && rec.terminatedAt.Load().Before(deadline) {
			stale = append(stale, id)
		}
		return false
	})
	for _, id := range stale {
		r.records.Delete(id)
	}
	return len(stale)
}

// refs returns a descriptor of every live record, sorted by identity.
func (r *registry) refs() []Ref {
	refs := make([]Ref, 0, r.records.Count())
	r.records.Range(func(_ ID, rec *record) bool {
		if rec.getState() != Terminated {
			refs = append(refs, rec.ref())
		}
		return false
	})
	sort.Slice(refs, func(i, j int) bool { return refs[i].id < refs[j].id })
	return refs
}

// size returns the number of live, non-terminated records.
func (r *registry) size() int {
	return int(r.counter.Load())
}
