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

// Package placement decides which node an actor is placed on. Policies are
// pure functions over ledger snapshots: they rank candidates but never
// reserve, so the runtime can retry a decision that lost a reservation race
// without side effects.
package placement

import (
	"sort"

	gerrors "github.com/tochemey/hive/errors"
	"github.com/tochemey/hive/resource"
)

// Policy chooses the node an actor should be placed on.
//
// ChooseNode must be side-effect free. It returns ErrNoFeasibleNode when no
// candidate can cover the request; the caller owns retries and reservation.
type Policy interface {
	ChooseNode(request resource.Request, candidates []resource.NodeSnapshot) (resource.NodeID, error)
}

// feasible keeps the candidates able to cover the request, ordered by node
// id so that policies behave deterministically for equal inputs.
func feasible(request resource.Request, candidates []resource.NodeSnapshot) []resource.NodeSnapshot {
	nodes := make([]resource.NodeSnapshot, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.Capacity.Fits(request) {
			nodes = append(nodes, candidate)
		}
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}

// ErrNoFeasibleNode re-exports the sentinel matched by callers of any Policy.
var ErrNoFeasibleNode = gerrors.ErrNoFeasibleNode
