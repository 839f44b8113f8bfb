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

package resource

import (
	"sort"
	"sync"

	csmap "github.com/mhmtszr/concurrent-swiss-map"
	"github.com/zeebo/xxh3"

	gerrors "github.com/tochemey/hive/errors"
	"github.com/tochemey/hive/log"
)

// Ledger tracks, per node, how much capacity is reserved by live actors.
// Reservations are all-or-nothing: either every kind of a request fits and
// all of them are applied, or nothing is.
//
// Each node has its own lock, so reservations against different nodes never
// contend. There is no global ledger lock and no consensus; the ledger is
// the single in-memory source of truth of this control plane.
//
// The ledger only accounts. It never decides when to release: the actor
// lifecycle guarantees exactly one release per reservation.
type Ledger struct {
	nodes *csmap.CsMap[NodeID, *nodeAccount]
	// createMu serializes account creation so two racing upserts of a new
	// node can never overwrite each other's account
	createMu sync.Mutex
	logger   log.Logger
}

// nodeAccount is the lock domain of a single node.
type nodeAccount struct {
	mu       sync.Mutex
	total    Request
	reserved Request
	// removed marks an account that lost the race between a lookup and
	// RemoveNode; late operations against it must fail.
	removed bool
}

func (a *nodeAccount) available(kind Kind) Quantity {
	available := a.total[kind].DeepCopy()
	reserved := a.reserved[kind]
	available.Sub(reserved)
	return available
}

// NewLedger creates an empty ledger.
func NewLedger(logger log.Logger) *Ledger {
	if logger == nil {
		logger = log.DefaultLogger
	}
	return &Ledger{
		nodes: csmap.Create[NodeID, *nodeAccount](
			csmap.WithShardCount[NodeID, *nodeAccount](32),
			csmap.WithCustomHasher[NodeID, *nodeAccount](func(key NodeID) uint64 {
				return xxh3.Hash([]byte(key))
			}),
		),
		logger: logger,
	}
}

// UpsertNode registers a node or updates its total capacity. When the new
// total of a kind falls below what is currently reserved, the total is
// clamped to the reservation so that Reserved never exceeds Total; the next
// inventory sync after those reservations drain restores the reported value.
func (l *Ledger) UpsertNode(node NodeID, total Request) error {
	if err := total.Validate(); err != nil {
		return err
	}

	account, exists := l.nodes.Load(node)
	if !exists {
		l.createMu.Lock()
		// re-check under the lock: a racing upsert may have created the
		// account, and its reservations must survive this one
		if account, exists = l.nodes.Load(node); !exists {
			l.nodes.Store(node, &nodeAccount{
				total:    total.Clone(),
				reserved: make(Request),
			})
			l.createMu.Unlock()
			return nil
		}
		l.createMu.Unlock()
	}

	account.mu.Lock()
	defer account.mu.Unlock()
	if account.removed {
		return gerrors.NewErrNodeNotFound(string(node))
	}

	next := total.Clone()
	for kind, reserved := range account.reserved {
		if reserved.IsZero() {
			continue
		}
		ceiling := next[kind]
		if ceiling.Cmp(reserved) < 0 {
			l.logger.Warnf("node=(%s) reports kind=(%s) total=(%s) below reserved=(%s), clamping",
				node, kind, ceiling.String(), reserved.String())
			next[kind] = reserved.DeepCopy()
		}
	}
	account.total = next
	return nil
}

// RemoveNode drops a node from the ledger. It fails with ErrNodeNotDrained
// when the node still carries reservations.
func (l *Ledger) RemoveNode(node NodeID) error {
	account, exists := l.nodes.Load(node)
	if !exists {
		return gerrors.NewErrNodeNotFound(string(node))
	}

	account.mu.Lock()
	defer account.mu.Unlock()
	if account.removed {
		return gerrors.NewErrNodeNotFound(string(node))
	}
	if !account.reserved.IsZero() {
		return gerrors.ErrNodeNotDrained
	}
	account.removed = true
	l.nodes.Delete(node)
	return nil
}

// Reserve charges the request against the node. The reservation is applied
// atomically across all kinds; on ErrInsufficientResources nothing at all
// was charged.
func (l *Ledger) Reserve(node NodeID, request Request) error {
	if err := request.Validate(); err != nil {
		return err
	}

	account, exists := l.nodes.Load(node)
	if !exists {
		return gerrors.NewErrNodeNotFound(string(node))
	}

	account.mu.Lock()
	defer account.mu.Unlock()
	if account.removed {
		return gerrors.NewErrNodeNotFound(string(node))
	}

	for kind, asked := range request {
		if asked.Sign() <= 0 {
			continue
		}
		available := account.available(kind)
		if available.Cmp(asked) < 0 {
			return gerrors.NewErrInsufficientResources(string(node))
		}
	}

	for kind, asked := range request {
		if asked.Sign() <= 0 {
			continue
		}
		reserved := account.reserved[kind].DeepCopy()
		reserved.Add(asked)
		account.reserved[kind] = reserved
	}
	return nil
}

// Release hands the request's capacity back to the node. Releasing more than
// is reserved clamps at zero and logs, so a misbehaving caller can never
// corrupt the Reserved<=Total invariant.
func (l *Ledger) Release(node NodeID, request Request) error {
	account, exists := l.nodes.Load(node)
	if !exists {
		return gerrors.NewErrNodeNotFound(string(node))
	}

	account.mu.Lock()
	defer account.mu.Unlock()
	if account.removed {
		return gerrors.NewErrNodeNotFound(string(node))
	}

	for kind, returned := range request {
		if returned.Sign() <= 0 {
			continue
		}
		reserved := account.reserved[kind].DeepCopy()
		reserved.Sub(returned)
		if reserved.Sign() < 0 {
			l.logger.Warnf("node=(%s) kind=(%s) released more than reserved, clamping to zero", node, kind)
			reserved = NewQuantity(0)
		}
		account.reserved[kind] = reserved
	}
	return nil
}

// Snapshot returns a read-only copy of the node's accounting state.
func (l *Ledger) Snapshot(node NodeID) (NodeSnapshot, error) {
	account, exists := l.nodes.Load(node)
	if !exists {
		return NodeSnapshot{}, gerrors.NewErrNodeNotFound(string(node))
	}

	account.mu.Lock()
	defer account.mu.Unlock()
	if account.removed {
		return NodeSnapshot{}, gerrors.NewErrNodeNotFound(string(node))
	}
	return NodeSnapshot{
		ID: node,
		Capacity: NodeCapacity{
			Total:    account.total.Clone(),
			Reserved: account.reserved.Clone(),
		},
	}, nil
}

// Snapshots returns a read-only copy of every node's accounting state,
// sorted by node id. Each node is copied under its own lock; the slice as a
// whole is not one atomic cut across nodes.
func (l *Ledger) Snapshots() []NodeSnapshot {
	snapshots := make([]NodeSnapshot, 0, l.nodes.Count())
	l.nodes.Range(func(node NodeID, account *nodeAccount) bool {
		account.mu.Lock()
		if !account.removed {
			snapshots = append(snapshots, NodeSnapshot{
				ID: node,
				Capacity: NodeCapacity{
					Total:    account.total.Clone(),
					Reserved: account.reserved.Clone(),
				},
			})
		}
		account.mu.Unlock()
		return false
	})
	sort.Slice(snapshots, func(i, j int) bool { return snapshots[i].ID < snapshots[j].ID })
	return snapshots
}

// Nodes returns the ids of all registered nodes in lexical order.
func (l *Ledger) Nodes() []NodeID {
	nodes := make([]NodeID, 0, l.nodes.Count())
	l.nodes.Range(func(node NodeID, _ *nodeAccount) bool {
		nodes = append(nodes, node)
		return false
	})
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	return nodes
}

// Size returns the number of registered nodes.
func (l *Ledger) Size() int {
	return l.nodes.Count()
}
