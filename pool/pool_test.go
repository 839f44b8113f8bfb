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

package pool

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tochemey/hive/actor"
	gerrors "github.com/tochemey/hive/errors"
	"github.com/tochemey/hive/log"
	"github.com/tochemey/hive/resource"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

func startTestRuntime(t *testing.T) *actor.Runtime {
	t.Helper()
	runtime, err := actor.NewRuntime("poolSys",
		actor.WithInventory(actor.NewStaticInventory(resource.Node{
			ID:       "node-1",
			Capacity: resource.NewRequest(string(resource.CPU), "8"),
		})),
		actor.WithLogger(log.DiscardLogger),
		actor.WithShutdownTimeout(time.Second),
	)
	require.NoError(t, err)
	require.NoError(t, runtime.Start(context.TODO()))
	return runtime
}

func doubler() actor.Actor {
	return actor.NewFuncActor(func(rctx *actor.ReceiveContext) {
		switch rctx.Method() {
		case "double":
			value, ok := rctx.Argument().(int)
			if !ok {
				rctx.Err(errors.New("not an int"))
				return
			}
			rctx.Respond(2 * value)
		default:
			rctx.Err(fmt.Errorf("unknown method %s", rctx.Method()))
		}
	})
}

func spawnHandles(t *testing.T, runtime *actor.Runtime, count int) []*actor.Handle {
	t.Helper()
	handles := make([]*actor.Handle, 0, count)
	for index := 0; index < count; index++ {
		handle, err := runtime.CreateActor(context.TODO(), fmt.Sprintf("routee-%d", index), doubler())
		require.NoError(t, err)
		handles = append(handles, handle)
	}
	return handles
}

func TestPool(t *testing.T) {
	ctx := context.TODO()

	t.Run("With empty handle set", func(t *testing.T) {
		_, err := New(nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrEmptyPool)
	})
	t.Run("With submit and result", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		testee, err := New(spawnHandles(t, runtime, 2), WithLogger(log.DiscardLogger))
		require.NoError(t, err)
		defer func() { require.NoError(t, testee.Stop()) }()
		assert.Equal(t, 2, testee.Size())

		task, err := testee.Submit(ctx, "double", 21)
		require.NoError(t, err)
		result, err := task.Result(ctx)
		require.NoError(t, err)
		assert.Equal(t, 42, result)
		assert.Equal(t, "double", task.Method())
		assert.Equal(t, 21, task.Argument())
	})
	t.Run("With map preserving argument order", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		testee, err := New(spawnHandles(t, runtime, 2), WithLogger(log.DiscardLogger))
		require.NoError(t, err)
		defer func() { require.NoError(t, testee.Stop()) }()

		results, err := testee.Map(ctx, "double", []any{1, 2, 3, 4})
		require.NoError(t, err)
		assert.Equal(t, []any{2, 4, 6, 8}, results)
	})
	t.Run("With map surfacing the first failure", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		testee, err := New(spawnHandles(t, runtime, 2), WithLogger(log.DiscardLogger))
		require.NoError(t, err)
		defer func() { require.NoError(t, testee.Stop()) }()

		results, err := testee.Map(ctx, "double", []any{1, "oops", 3})
		require.Error(t, err)
		assert.EqualError(t, err, "not an int")
		require.Len(t, results, 3)
		assert.Equal(t, 2, results[0])
		assert.Nil(t, results[1])
		assert.Equal(t, 6, results[2])
	})
	t.Run("With submit after stop", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		testee, err := New(spawnHandles(t, runtime, 1), WithLogger(log.DiscardLogger))
		require.NoError(t, err)
		require.NoError(t, testee.Stop())
		// stopping twice is a no-op
		require.NoError(t, testee.Stop())

		_, err = testee.Submit(ctx, "double", 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrPoolClosed)
		_, err = testee.Map(ctx, "double", []any{1})
		assert.ErrorIs(t, err, gerrors.ErrPoolClosed)
	})
	t.Run("With broken routee dropped from rotation", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		handles := spawnHandles(t, runtime, 2)
		testee, err := New(handles, WithLogger(log.DiscardLogger))
		require.NoError(t, err)
		defer func() { require.NoError(t, testee.Stop()) }()

		// take down one routee behind the pool's back
		require.NoError(t, runtime.Kill(ctx, handles[1].ID()))

		failures := 0
		for value := 1; value <= 6; value++ {
			task, err := testee.Submit(ctx, "double", value)
			require.NoError(t, err)
			if _, err := task.Result(ctx); err != nil {
				require.ErrorIs(t, err, gerrors.ErrActorUnavailable)
				failures++
			}
		}
		// only the task that discovered the dead routee failed, everything
		// after it went to the survivor
		assert.Equal(t, 1, failures)
	})
	t.Run("With all routees broken closing the pool", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		handles := spawnHandles(t, runtime, 2)
		testee, err := New(handles, WithLogger(log.DiscardLogger))
		require.NoError(t, err)

		require.NoError(t, runtime.Kill(ctx, handles[0].ID()))
		require.NoError(t, runtime.Kill(ctx, handles[1].ID()))

		for value := 1; value <= 2; value++ {
			if task, err := testee.Submit(ctx, "double", value); err == nil {
				_, _ = task.Result(ctx)
			}
		}
		assert.Eventually(t, func() bool {
			_, err := testee.Submit(ctx, "double", 1)
			return errors.Is(err, gerrors.ErrPoolClosed)
		}, time.Second, 10*time.Millisecond)
		require.NoError(t, testee.Stop())
	})
}
