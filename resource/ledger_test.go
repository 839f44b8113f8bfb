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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/hive/errors"
	"github.com/tochemey/hive/log"
)

func TestLedger(t *testing.T) {
	t.Run("With reserve and release", func(t *testing.T) {
		ledger := NewLedger(log.DiscardLogger)
		require.NoError(t, ledger.UpsertNode("node-1", NewRequest("cpu", "4", "gpu", "2")))

		request := NewRequest("cpu", "2", "gpu", "1")
		require.NoError(t, ledger.Reserve("node-1", request))

		snapshot, err := ledger.Snapshot("node-1")
		require.NoError(t, err)
		reserved := snapshot.Capacity.Reserved[CPU]
		assert.Zero(t, reserved.Cmp(NewQuantity(2)))

		require.NoError(t, ledger.Release("node-1", request))
		snapshot, err = ledger.Snapshot("node-1")
		require.NoError(t, err)
		assert.True(t, snapshot.Capacity.Reserved.IsZero())
	})
	t.Run("With all-or-nothing reservation", func(t *testing.T) {
		ledger := NewLedger(log.DiscardLogger)
		require.NoError(t, ledger.UpsertNode("node-1", NewRequest("cpu", "4", "gpu", "1")))

		// cpu fits, gpu does not: nothing must be charged
		err := ledger.Reserve("node-1", NewRequest("cpu", "1", "gpu", "2"))
		require.ErrorIs(t, err, gerrors.ErrInsufficientResources)

		snapshot, err := ledger.Snapshot("node-1")
		require.NoError(t, err)
		assert.True(t, snapshot.Capacity.Reserved.IsZero())
	})
	t.Run("With unknown node", func(t *testing.T) {
		ledger := NewLedger(log.DiscardLogger)
		assert.ErrorIs(t, ledger.Reserve("nowhere", NewRequest("cpu", "1")), gerrors.ErrNodeNotFound)
		assert.ErrorIs(t, ledger.Release("nowhere", NewRequest("cpu", "1")), gerrors.ErrNodeNotFound)
		_, err := ledger.Snapshot("nowhere")
		assert.ErrorIs(t, err, gerrors.ErrNodeNotFound)
		assert.ErrorIs(t, ledger.RemoveNode("nowhere"), gerrors.ErrNodeNotFound)
	})
	t.Run("With invalid quantity rejected", func(t *testing.T) {
		ledger := NewLedger(log.DiscardLogger)
		require.NoError(t, ledger.UpsertNode("node-1", NewRequest("cpu", "4")))
		negative := Request{CPU: NewQuantity(-1)}
		assert.ErrorIs(t, ledger.Reserve("node-1", negative), gerrors.ErrInvalidQuantity)
		assert.ErrorIs(t, ledger.UpsertNode("node-2", negative), gerrors.ErrInvalidQuantity)
	})
	t.Run("With node removal refused while reserved", func(t *testing.T) {
		ledger := NewLedger(log.DiscardLogger)
		require.NoError(t, ledger.UpsertNode("node-1", NewRequest("cpu", "4")))
		require.NoError(t, ledger.Reserve("node-1", NewRequest("cpu", "1")))

		assert.ErrorIs(t, ledger.RemoveNode("node-1"), gerrors.ErrNodeNotDrained)

		require.NoError(t, ledger.Release("node-1", NewRequest("cpu", "1")))
		require.NoError(t, ledger.RemoveNode("node-1"))
		assert.Zero(t, ledger.Size())
	})
	t.Run("With shrinking total clamped to reservation", func(t *testing.T) {
		ledger := NewLedger(log.DiscardLogger)
		require.NoError(t, ledger.UpsertNode("node-1", NewRequest("cpu", "8")))
		require.NoError(t, ledger.Reserve("node-1", NewRequest("cpu", "6")))

		// the inventory now reports less than what is already reserved
		require.NoError(t, ledger.UpsertNode("node-1", NewRequest("cpu", "4")))

		snapshot, err := ledger.Snapshot("node-1")
		require.NoError(t, err)
		total := snapshot.Capacity.Total[CPU]
		reserved := snapshot.Capacity.Reserved[CPU]
		assert.True(t, total.Cmp(reserved) >= 0)
	})
	t.Run("With release clamped at zero", func(t *testing.T) {
		ledger := NewLedger(log.DiscardLogger)
		require.NoError(t, ledger.UpsertNode("node-1", NewRequest("cpu", "4")))
		require.NoError(t, ledger.Reserve("node-1", NewRequest("cpu", "1")))
		require.NoError(t, ledger.Release("node-1", NewRequest("cpu", "3")))

		snapshot, err := ledger.Snapshot("node-1")
		require.NoError(t, err)
		reserved := snapshot.Capacity.Reserved[CPU]
		assert.True(t, reserved.Sign() >= 0)
	})
	t.Run("With reserved never exceeding total under concurrency", func(t *testing.T) {
		ledger := NewLedger(log.DiscardLogger)
		require.NoError(t, ledger.UpsertNode("node-1", NewRequest("cpu", "10")))

		workers := 20
		rounds := 50
		var wg sync.WaitGroup
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()
				request := NewRequest("cpu", "1")
				for j := 0; j < rounds; j++ {
					if err := ledger.Reserve("node-1", request); err == nil {
						_ = ledger.Release("node-1", request)
					}
				}
			}()
		}
		wg.Wait()

		snapshot, err := ledger.Snapshot("node-1")
		require.NoError(t, err)
		total := snapshot.Capacity.Total[CPU]
		reserved := snapshot.Capacity.Reserved[CPU]
		assert.True(t, total.Cmp(reserved) >= 0)
		assert.True(t, snapshot.Capacity.Reserved.IsZero())
	})
	t.Run("With oversubscription impossible under contention", func(t *testing.T) {
		ledger := NewLedger(log.DiscardLogger)
		require.NoError(t, ledger.UpsertNode("node-1", NewRequest("cpu", "5")))

		// 20 goroutines race for 5 single-core slots: exactly 5 must win
		var wg sync.WaitGroup
		var mu sync.Mutex
		won := 0
		wg.Add(20)
		for i := 0; i < 20; i++ {
			go func() {
				defer wg.Done()
				if err := ledger.Reserve("node-1", NewRequest("cpu", "1")); err == nil {
					mu.Lock()
					won++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 5, won)

		snapshot, err := ledger.Snapshot("node-1")
		require.NoError(t, err)
		reserved := snapshot.Capacity.Reserved[CPU]
		assert.Zero(t, reserved.Cmp(NewQuantity(5)))
	})
	t.Run("With concurrent upserts preserving reservations", func(t *testing.T) {
		ledger := NewLedger(log.DiscardLogger)

		// racing upserts of the same node must converge on one account and
		// never wipe a reservation taken in between
		var wg sync.WaitGroup
		wg.Add(17)
		for i := 0; i < 16; i++ {
			go func() {
				defer wg.Done()
				_ = ledger.UpsertNode("node-1", NewRequest("cpu", "8"))
			}()
		}
		go func() {
			defer wg.Done()
			for {
				if err := ledger.Reserve("node-1", NewRequest("cpu", "2")); err == nil {
					return
				}
			}
		}()
		wg.Wait()

		snapshot, err := ledger.Snapshot("node-1")
		require.NoError(t, err)
		reserved := snapshot.Capacity.Reserved[CPU]
		assert.Zero(t, reserved.Cmp(NewQuantity(2)))
	})
	t.Run("With snapshots sorted by node id", func(t *testing.T) {
		ledger := NewLedger(log.DiscardLogger)
		require.NoError(t, ledger.UpsertNode("node-2", NewRequest("cpu", "2")))
		require.NoError(t, ledger.UpsertNode("node-1", NewRequest("cpu", "2")))
		require.NoError(t, ledger.UpsertNode("node-3", NewRequest("cpu", "2")))

		snapshots := ledger.Snapshots()
		require.Len(t, snapshots, 3)
		assert.Equal(t, []NodeID{"node-1", "node-2", "node-3"}, ledger.Nodes())
		assert.Equal(t, NodeID("node-1"), snapshots[0].ID)
		assert.Equal(t, NodeID("node-3"), snapshots[2].ID)
	})
}

func TestRequest(t *testing.T) {
	t.Run("With validation of negative quantities", func(t *testing.T) {
		request := Request{CPU: NewQuantity(-2), GPU: NewQuantity(1)}
		assert.ErrorIs(t, request.Validate(), gerrors.ErrInvalidQuantity)
		assert.NoError(t, NewRequest("cpu", "500m").Validate())
		assert.NoError(t, Request{}.Validate())
	})
	t.Run("With clone independence", func(t *testing.T) {
		request := NewRequest("cpu", "2")
		clone := request.Clone()
		extra := clone[CPU]
		extra.Add(NewQuantity(5))
		clone[CPU] = extra

		original := request[CPU]
		assert.Zero(t, original.Cmp(NewQuantity(2)))
		assert.Nil(t, Request(nil).Clone())
	})
	t.Run("With stable string rendering", func(t *testing.T) {
		request := NewRequest("gpu", "1", "cpu", "500m")
		assert.Equal(t, "cpu=500m, gpu=1", request.String())
		assert.Equal(t, "none", Request{}.String())
	})
	t.Run("With zero detection", func(t *testing.T) {
		assert.True(t, Request{}.IsZero())
		assert.True(t, Request{CPU: NewQuantity(0)}.IsZero())
		assert.False(t, NewRequest("cpu", "1").IsZero())
	})
	t.Run("With capacity fit checks", func(t *testing.T) {
		capacity := NodeCapacity{
			Total:    NewRequest("cpu", "4", "gpu", "1"),
			Reserved: NewRequest("cpu", "3"),
		}
		assert.True(t, capacity.Fits(NewRequest("cpu", "1")))
		assert.False(t, capacity.Fits(NewRequest("cpu", "2")))
		assert.True(t, capacity.Fits(NewRequest("gpu", "1")))
		// unknown kinds have zero capacity
		assert.False(t, capacity.Fits(NewRequest("fpga", "1")))
	})
}
