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

// NodeID uniquely identifies a cluster node in the inventory.
type NodeID string

// Node describes one node as reported by the cluster inventory: its identity
// and the total capacity it offers per resource kind.
type Node struct {
	ID       NodeID
	Capacity Request
}

// Clone returns a deep copy of the node.
func (n Node) Clone() Node {
	return Node{
		ID:       n.ID,
		Capacity: n.Capacity.Clone(),
	}
}

// NodeCapacity is the accounting state of one node. Reserved never exceeds
// Total for any kind.
type NodeCapacity struct {
	Total    Request
	Reserved Request
}

// Available returns Total minus Reserved for the given kind.
func (c NodeCapacity) Available(kind Kind) Quantity {
	available := c.Total[kind].DeepCopy()
	reserved := c.Reserved[kind]
	available.Sub(reserved)
	return available
}

// Fits reports whether the remaining capacity covers every kind of the
// given request.
func (c NodeCapacity) Fits(request Request) bool {
	for kind, asked := range request {
		if asked.Sign() <= 0 {
			continue
		}
		available := c.Available(kind)
		if available.Cmp(asked) < 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the capacity.
func (c NodeCapacity) Clone() NodeCapacity {
	return NodeCapacity{
		Total:    c.Total.Clone(),
		Reserved: c.Reserved.Clone(),
	}
}

// NodeSnapshot is a point-in-time, read-only view of one node's accounting
// state. Placement policies rank candidates using snapshots so that a
// decision never observes a half-applied reservation.
type NodeSnapshot struct {
	ID       NodeID
	Capacity NodeCapacity
}
