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
	"go.uber.org/atomic"

	gerrors "github.com/tochemey/hive/errors"
	"github.com/tochemey/hive/resource"
)

// RoundRobin rotates placement over the feasible nodes so that successive
// creations spread evenly. The rotation counter is shared across calls and
// safe for concurrent use.
type RoundRobin struct {
	next *atomic.Uint32
}

// enforce compilation error
var _ Policy = (*RoundRobin)(nil)

// NewRoundRobin creates an instance of RoundRobin
func NewRoundRobin() *RoundRobin {
	return &RoundRobin{
		next: atomic.NewUint32(0),
	}
}

// ChooseNode implements Policy
func (p *RoundRobin) ChooseNode(request resource.Request, candidates []resource.NodeSnapshot) (resource.NodeID, error) {
	nodes := feasible(request, candidates)
	if len(nodes) == 0 {
		return "", gerrors.ErrNoFeasibleNode
	}

	n := p.next.Inc()
	return nodes[(int(n)-1)%len(nodes)].ID, nil
}
