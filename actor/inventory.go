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

	"github.com/tochemey/hive/resource"
)

// Inventory reports the nodes the runtime may place actors on, with their
// total capacities. The runtime seeds its ledger from it at start and
// refreshes periodically; reservations always live in the ledger, never in
// the inventory.
type Inventory interface {
	// ListNodes returns the current node set.
	ListNodes(ctx context.Context) ([]resource.Node, error)
}

// StaticInventory is a fixed node set, the typical choice for a single
// process runtime and for tests.
type StaticInventory struct {
	nodes []resource.Node
}

// enforce compilation error
var _ Inventory = (*StaticInventory)(nil)

// NewStaticInventory creates an inventory from the given nodes.
func NewStaticInventory(nodes ...resource.Node) *StaticInventory {
	cloned := make([]resource.Node, 0, len(nodes))
	for _, node := range nodes {
		cloned = append(cloned, node.Clone())
	}
	return &StaticInventory{nodes: cloned}
}

// ListNodes returns the fixed node set.
func (x *StaticInventory) ListNodes(context.Context) ([]resource.Node, error) {
	nodes := make([]resource.Node, 0, len(x.nodes))
	for _, node := range x.nodes {
		nodes = append(nodes, node.Clone())
	}
	return nodes, nil
}
