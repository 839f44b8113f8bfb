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

package placement

import (
	"sort"

	gerrors "github.com/tochemey/hive/errors"
	"github.com/tochemey/hive/resource"
)

// MostAvailable places actors on the feasible node with the most available
// CPU; ties break on the lowest node id. Equal ledger states always produce
// the same decision, which keeps placement reproducible.
type MostAvailable struct{}

// enforce compilation error
var _ Policy = (*MostAvailable)(nil)

// NewMostAvailable creates an instance of MostAvailable
func NewMostAvailable() *MostAvailable {
	return &MostAvailable{}
}

// ChooseNode implements Policy
func (p *MostAvailable) ChooseNode(request resource.Request, candidates []resource.NodeSnapshot) (resource.NodeID, error) {
	nodes := feasible(request, candidates)
	if len(nodes) == 0 {
		return "", gerrors.ErrNoFeasibleNode
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		left := nodes[i].Capacity.Available(resource.CPU)
		right := nodes[j].Capacity.Available(resource.CPU)
		if cmp := left.Cmp(right); cmp != 0 {
			return cmp > 0
		}
		return nodes[i].ID < nodes[j].ID
	})
	return nodes[0].ID, nil
}
