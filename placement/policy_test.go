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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/hive/resource"
)

func snapshot(id string, totalCPU, reservedCPU string) resource.NodeSnapshot {
	return resource.NodeSnapshot{
		ID: resource.NodeID(id),
		Capacity: resource.NodeCapacity{
			Total:    resource.NewRequest("cpu", totalCPU),
			Reserved: resource.NewRequest("cpu", reservedCPU),
		},
	}
}

func TestMostAvailable(t *testing.T) {
	t.Run("With most available cpu winning", func(t *testing.T) {
		policy := NewMostAvailable()
		candidates := []resource.NodeSnapshot{
			snapshot("node-1", "8", "6"),
			snapshot("node-2", "8", "2"),
			snapshot("node-3", "4", "0"),
		}
		node, err := policy.ChooseNode(resource.NewRequest("cpu", "1"), candidates)
		require.NoError(t, err)
		assert.Equal(t, resource.NodeID("node-2"), node)
	})
	t.Run("With ties broken on lowest node id", func(t *testing.T) {
		policy := NewMostAvailable()
		candidates := []resource.NodeSnapshot{
			snapshot("node-2", "8", "0"),
			snapshot("node-1", "8", "0"),
		}
		node, err := policy.ChooseNode(resource.NewRequest("cpu", "1"), candidates)
		require.NoError(t, err)
		assert.Equal(t, resource.NodeID("node-1"), node)
	})
	t.Run("With infeasible candidates filtered out", func(t *testing.T) {
		policy := NewMostAvailable()
		candidates := []resource.NodeSnapshot{
			snapshot("node-1", "8", "0"),
			snapshot("node-2", "2", "0"),
		}
		// node-2 cannot cover the gpu ask even though it has cpu room
		request := resource.NewRequest("cpu", "1", "gpu", "1")
		candidates[0].Capacity.Total[resource.GPU] = resource.NewQuantity(2)
		node, err := policy.ChooseNode(request, candidates)
		require.NoError(t, err)
		assert.Equal(t, resource.NodeID("node-1"), node)
	})
	t.Run("With no feasible node", func(t *testing.T) {
		policy := NewMostAvailable()
		candidates := []resource.NodeSnapshot{
			snapshot("node-1", "2", "2"),
		}
		node, err := policy.ChooseNode(resource.NewRequest("cpu", "1"), candidates)
		require.ErrorIs(t, err, ErrNoFeasibleNode)
		assert.Empty(t, node)
	})
	t.Run("With deterministic repeated decisions", func(t *testing.T) {
		policy := NewMostAvailable()
		candidates := []resource.NodeSnapshot{
			snapshot("node-3", "8", "1"),
			snapshot("node-1", "8", "1"),
			snapshot("node-2", "8", "4"),
		}
		first, err := policy.ChooseNode(resource.NewRequest("cpu", "1"), candidates)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			again, err := policy.ChooseNode(resource.NewRequest("cpu", "1"), candidates)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	})
}

func TestRoundRobin(t *testing.T) {
	t.Run("With rotation over feasible nodes", func(t *testing.T) {
		policy := NewRoundRobin()
		candidates := []resource.NodeSnapshot{
			snapshot("node-2", "8", "0"),
			snapshot("node-1", "8", "0"),
			snapshot("node-3", "8", "0"),
		}
		request := resource.NewRequest("cpu", "1")
		var picked []resource.NodeID
		for i := 0; i < 6; i++ {
			node, err := policy.ChooseNode(request, candidates)
			require.NoError(t, err)
			picked = append(picked, node)
		}
		expected := []resource.NodeID{"node-1", "node-2", "node-3", "node-1", "node-2", "node-3"}
		assert.Equal(t, expected, picked)
	})
	t.Run("With no feasible node", func(t *testing.T) {
		policy := NewRoundRobin()
		_, err := policy.ChooseNode(resource.NewRequest("cpu", "1"), nil)
		assert.ErrorIs(t, err, ErrNoFeasibleNode)
	})
}

func TestRandom(t *testing.T) {
	t.Run("With only feasible nodes picked", func(t *testing.T) {
		policy := NewRandom()
		candidates := []resource.NodeSnapshot{
			snapshot("node-1", "8", "8"),
			snapshot("node-2", "8", "0"),
		}
		request := resource.NewRequest("cpu", "1")
		for i := 0; i < 20; i++ {
			node, err := policy.ChooseNode(request, candidates)
			require.NoError(t, err)
			assert.Equal(t, resource.NodeID("node-2"), node)
		}
	})
	t.Run("With no feasible node", func(t *testing.T) {
		policy := NewRandom()
		_, err := policy.ChooseNode(resource.NewRequest("cpu", "1"), []resource.NodeSnapshot{})
		assert.ErrorIs(t, err, ErrNoFeasibleNode)
	})
}
