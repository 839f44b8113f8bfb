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

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/hive/errors"
)

func sampleRecord(id string) *RecordState {
	return &RecordState{
		ID:        id,
		Name:      "worker",
		Node:      "node-1",
		Lifetime:  "owned",
		State:     "running",
		Resources: map[string]string{"cpu": "2", "gpu": "1"},
		UpdatedAt: time.Now().UTC(),
	}
}

func runStoreSuite(t *testing.T, factory func(t *testing.T) Store) {
	t.Helper()
	ctx := context.TODO()

	t.Run("With persist and get", func(t *testing.T) {
		testee := factory(t)
		defer func() { require.NoError(t, testee.Close()) }()

		record := sampleRecord("actor-1")
		require.NoError(t, testee.PersistRecord(ctx, record))

		fetched, ok := testee.GetRecord(ctx, "actor-1")
		require.True(t, ok)
		assert.Equal(t, record.ID, fetched.ID)
		assert.Equal(t, record.Name, fetched.Name)
		assert.Equal(t, record.Resources, fetched.Resources)

		// update in place
		record.State = "terminated"
		require.NoError(t, testee.PersistRecord(ctx, record))
		fetched, ok = testee.GetRecord(ctx, "actor-1")
		require.True(t, ok)
		assert.Equal(t, "terminated", fetched.State)
	})
	t.Run("With missing record", func(t *testing.T) {
		testee := factory(t)
		defer func() { require.NoError(t, testee.Close()) }()

		_, ok := testee.GetRecord(ctx, "ghost")
		assert.False(t, ok)
	})
	t.Run("With nil record ignored", func(t *testing.T) {
		testee := factory(t)
		defer func() { require.NoError(t, testee.Close()) }()

		require.NoError(t, testee.PersistRecord(ctx, nil))
		records, err := testee.ListRecords(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
	t.Run("With delete", func(t *testing.T) {
		testee := factory(t)
		defer func() { require.NoError(t, testee.Close()) }()

		require.NoError(t, testee.PersistRecord(ctx, sampleRecord("actor-1")))
		require.NoError(t, testee.DeleteRecord(ctx, "actor-1"))
		_, ok := testee.GetRecord(ctx, "actor-1")
		assert.False(t, ok)
		// deleting twice is a no-op
		require.NoError(t, testee.DeleteRecord(ctx, "actor-1"))
	})
	t.Run("With listing in id order", func(t *testing.T) {
		testee := factory(t)
		defer func() { require.NoError(t, testee.Close()) }()

		require.NoError(t, testee.PersistRecord(ctx, sampleRecord("actor-2")))
		require.NoError(t, testee.PersistRecord(ctx, sampleRecord("actor-1")))
		require.NoError(t, testee.PersistRecord(ctx, sampleRecord("actor-3")))

		records, err := testee.ListRecords(ctx)
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "actor-1", records[0].ID)
		assert.Equal(t, "actor-3", records[2].ID)
	})
	t.Run("With cancelled context", func(t *testing.T) {
		testee := factory(t)
		defer func() { require.NoError(t, testee.Close()) }()

		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		assert.Error(t, testee.PersistRecord(cancelled, sampleRecord("actor-1")))
		_, ok := testee.GetRecord(cancelled, "actor-1")
		assert.False(t, ok)
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, func(*testing.T) Store {
		return NewMemoryStore()
	})

	t.Run("With clone isolation", func(t *testing.T) {
		testee := NewMemoryStore()
		record := sampleRecord("actor-1")
		require.NoError(t, testee.PersistRecord(context.TODO(), record))

		fetched, ok := testee.GetRecord(context.TODO(), "actor-1")
		require.True(t, ok)
		fetched.Resources["cpu"] = "mutated"

		again, ok := testee.GetRecord(context.TODO(), "actor-1")
		require.True(t, ok)
		assert.Equal(t, "2", again.Resources["cpu"])
	})
}

func TestBoltStore(t *testing.T) {
	runStoreSuite(t, func(t *testing.T) Store {
		testee, err := NewBoltStore(t.TempDir())
		require.NoError(t, err)
		return testee
	})

	t.Run("With records surviving reopen", func(t *testing.T) {
		ctx := context.TODO()
		dir := t.TempDir()

		first, err := NewBoltStore(dir)
		require.NoError(t, err)
		require.NoError(t, first.PersistRecord(ctx, sampleRecord("actor-1")))
		require.NoError(t, first.Close())

		second, err := NewBoltStore(dir)
		require.NoError(t, err)
		defer func() { require.NoError(t, second.Close()) }()

		fetched, ok := second.GetRecord(ctx, "actor-1")
		require.True(t, ok)
		assert.Equal(t, "worker", fetched.Name)
	})
	t.Run("With use after close", func(t *testing.T) {
		testee, err := NewBoltStore(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, testee.Close())
		// double close is safe
		require.NoError(t, testee.Close())

		assert.ErrorIs(t, testee.PersistRecord(context.TODO(), sampleRecord("actor-1")), gerrors.ErrRecordStoreClosed)
		_, ok := testee.GetRecord(context.TODO(), "actor-1")
		assert.False(t, ok)
		_, err = testee.ListRecords(context.TODO())
		assert.ErrorIs(t, err, gerrors.ErrRecordStoreClosed)
	})
}
