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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/hive/errors"
	"github.com/tochemey/hive/resource"
)

func TestRuntime(t *testing.T) {
	ctx := context.TODO()

	t.Run("With invalid name", func(t *testing.T) {
		_, err := NewRuntime("test sys")
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrInvalidRuntimeName)

		_, err = NewRuntime("")
		require.Error(t, err)
	})
	t.Run("With start and stop", func(t *testing.T) {
		runtime := startTestRuntime(t)
		assert.True(t, runtime.Running())
		assert.Equal(t, "testSys", runtime.Name())
		assert.Equal(t, 2, runtime.Ledger().Size())

		assert.ErrorIs(t, runtime.Start(ctx), gerrors.ErrRuntimeAlreadyStarted)
		require.NoError(t, runtime.Stop(ctx))
		assert.False(t, runtime.Running())
	})
	t.Run("With operations before start", func(t *testing.T) {
		runtime, err := NewRuntime("testSys")
		require.NoError(t, err)

		_, err = runtime.CreateActor(ctx, "worker", newEchoActor())
		assert.ErrorIs(t, err, gerrors.ErrRuntimeNotStarted)
		_, err = runtime.GetActor(ctx, "worker", "reader")
		assert.ErrorIs(t, err, gerrors.ErrRuntimeNotStarted)
		assert.ErrorIs(t, runtime.Stop(ctx), gerrors.ErrRuntimeNotStarted)
	})
	t.Run("With create and invoke", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		handle, err := runtime.CreateActor(ctx, "worker", newEchoActor())
		require.NoError(t, err)
		require.NotNil(t, handle)
		assert.True(t, handle.IsOriginal())
		assert.Equal(t, 1, runtime.NumActors())

		reply, err := handle.Invoke(ctx, "echo", "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello", reply)

		ref, err := handle.Ref()
		require.NoError(t, err)
		assert.Equal(t, Running, ref.State())
		assert.Equal(t, Owned, ref.Lifetime())
		assert.Equal(t, 1, ref.ReferenceCount())
	})
	t.Run("With method error kept apart from runtime errors", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		handle, err := runtime.CreateActor(ctx, "worker", newEchoActor())
		require.NoError(t, err)

		_, err = handle.Invoke(ctx, "fail", nil)
		require.Error(t, err)
		assert.EqualError(t, err, "boom")

		// the actor survives its own errors
		reply, err := handle.Invoke(ctx, "echo", 42)
		require.NoError(t, err)
		assert.Equal(t, 42, reply)
	})
	t.Run("With panic failing only the invocation", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		handle, err := runtime.CreateActor(ctx, "worker", newEchoActor())
		require.NoError(t, err)

		_, err = handle.Invoke(ctx, "panic", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "panic")

		reply, err := handle.Invoke(ctx, "echo", "still alive")
		require.NoError(t, err)
		assert.Equal(t, "still alive", reply)
	})
	t.Run("With duplicate name", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		_, err := runtime.CreateActor(ctx, "worker", newEchoActor())
		require.NoError(t, err)
		_, err = runtime.CreateActor(ctx, "worker", newEchoActor())
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrDuplicateName)
	})
	t.Run("With owned teardown on last release", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		tester := newEchoActor()
		request := resource.NewRequest(string(resource.CPU), "2")
		handle, err := runtime.CreateActor(ctx, "worker", tester, WithResources(request))
		require.NoError(t, err)

		secondary, err := runtime.GetActor(ctx, "worker", "reader")
		require.NoError(t, err)

		// the original release alone does not terminate while a secondary
		// reference remains
		require.NoError(t, handle.Release(ctx))
		_, err = secondary.Invoke(ctx, "echo", "ping")
		require.NoError(t, err)

		require.NoError(t, secondary.Release(ctx))
		assert.Eventually(t, func() bool {
			return runtime.NumActors() == 0
		}, time.Second, 10*time.Millisecond)
		assert.True(t, tester.stopped.Load())

		// the reservation is handed back
		for _, snapshot := range runtime.Ledger().Snapshots() {
			assert.True(t, snapshot.Capacity.Reserved.IsZero())
		}
	})
	t.Run("With release order irrelevant for owned teardown", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		handle, err := runtime.CreateActor(ctx, "worker", newEchoActor())
		require.NoError(t, err)
		secondary, err := runtime.GetActor(ctx, "worker", "reader")
		require.NoError(t, err)

		// secondary first, then the original
		require.NoError(t, secondary.Release(ctx))
		reply, err := handle.Invoke(ctx, "echo", "ping")
		require.NoError(t, err)
		assert.Equal(t, "ping", reply)

		require.NoError(t, handle.Release(ctx))
		assert.Eventually(t, func() bool {
			return runtime.NumActors() == 0
		}, time.Second, 10*time.Millisecond)
	})
	t.Run("With detached actor surviving all releases", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		handle, err := runtime.CreateActor(ctx, "", newEchoActor(), WithLifetime(Detached))
		require.NoError(t, err)
		id := handle.ID()
		require.NoError(t, handle.Release(ctx))

		// still reachable through its identity
		again, err := runtime.GetActorByID(ctx, id, "reader")
		require.NoError(t, err)
		reply, err := again.Invoke(ctx, "echo", "ping")
		require.NoError(t, err)
		assert.Equal(t, "ping", reply)

		// only an explicit kill takes it down
		require.NoError(t, runtime.Kill(ctx, id))
		assert.Zero(t, runtime.NumActors())
	})
	t.Run("With handle reuse after release", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		handle, err := runtime.CreateActor(ctx, "", newEchoActor(), WithLifetime(Detached))
		require.NoError(t, err)
		require.NoError(t, handle.Release(ctx))

		_, err = handle.Invoke(ctx, "echo", "ping")
		assert.ErrorIs(t, err, gerrors.ErrHandleReleased)
		assert.ErrorIs(t, handle.Release(ctx), gerrors.ErrHandleReleased)
	})
	t.Run("With forced kill failing in-flight work", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		tester := newSlowActor()
		request := resource.NewRequest(string(resource.CPU), "1")
		handle, err := runtime.CreateActor(ctx, "slow", tester, WithResources(request))
		require.NoError(t, err)

		errCh := make(chan error, 1)
		go func() {
			_, err := handle.Invoke(ctx, "work", nil)
			errCh <- err
		}()
		<-tester.entered

		require.NoError(t, runtime.Kill(ctx, handle.ID()))
		close(tester.release)

		select {
		case err := <-errCh:
			require.Error(t, err)
			assert.ErrorIs(t, err, gerrors.ErrActorUnavailable)
		case <-time.After(time.Second):
			t.Fatal("in-flight invocation did not fail after the kill")
		}

		// forced kill skips PostStop and still releases the reservation
		assert.False(t, tester.stopped.Load())
		for _, snapshot := range runtime.Ledger().Snapshots() {
			assert.True(t, snapshot.Capacity.Reserved.IsZero())
		}

		_, err = handle.Invoke(ctx, "work", nil)
		require.Error(t, err)
	})
	t.Run("With kill of an unknown actor", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		err := runtime.Kill(ctx, NewID())
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrActorNotFound)
	})
	t.Run("With self exit draining gracefully", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		tester := newEchoActor()
		handle, err := runtime.CreateActor(ctx, "worker", tester)
		require.NoError(t, err)

		reply, err := handle.Invoke(ctx, "exit", nil)
		require.NoError(t, err)
		assert.Equal(t, "bye", reply)

		assert.Eventually(t, func() bool {
			return runtime.NumActors() == 0
		}, time.Second, 10*time.Millisecond)
		assert.True(t, tester.stopped.Load())
	})
	t.Run("With no feasible node", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		request := resource.NewRequest(string(resource.GPU), "1")
		_, err := runtime.CreateActor(ctx, "worker", newEchoActor(), WithResources(request))
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrNoFeasibleNode)

		// nothing was reserved and the name is free again
		for _, snapshot := range runtime.Ledger().Snapshots() {
			assert.True(t, snapshot.Capacity.Reserved.IsZero())
		}
		_, err = runtime.CreateActor(ctx, "worker", newEchoActor())
		require.NoError(t, err)
	})
	t.Run("With spawn failure rolled back", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		request := resource.NewRequest(string(resource.CPU), "2")
		_, err := runtime.CreateActor(ctx, "worker", new(failingActor), WithResources(request))
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrSpawnFailed)

		assert.Zero(t, runtime.NumActors())
		for _, snapshot := range runtime.Ledger().Snapshots() {
			assert.True(t, snapshot.Capacity.Reserved.IsZero())
		}
		// the name was freed by the rollback
		_, err = runtime.CreateActor(ctx, "worker", newEchoActor())
		require.NoError(t, err)
	})
	t.Run("With resource accounting across creations", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		request := resource.NewRequest(string(resource.CPU), "3")
		first, err := runtime.CreateActor(ctx, "first", newEchoActor(), WithResources(request))
		require.NoError(t, err)
		second, err := runtime.CreateActor(ctx, "second", newEchoActor(), WithResources(request))
		require.NoError(t, err)

		firstRef, err := first.Ref()
		require.NoError(t, err)
		secondRef, err := second.Ref()
		require.NoError(t, err)
		// each node has 4 cpu, so two 3-cpu actors cannot share one
		assert.NotEqual(t, firstRef.Node(), secondRef.Node())

		// a third one finds no room anywhere
		_, err = runtime.CreateActor(ctx, "third", newEchoActor(), WithResources(request))
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrNoFeasibleNode)
	})
	t.Run("With lifecycle events published", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		subscriber := runtime.Subscribe()
		defer runtime.Unsubscribe(subscriber)

		handle, err := runtime.CreateActor(ctx, "worker", newEchoActor())
		require.NoError(t, err)
		require.NoError(t, runtime.Kill(ctx, handle.ID()))

		var created, started, terminated bool
		assert.Eventually(t, func() bool {
			for message := range subscriber.Iterator() {
				switch message.Payload().(type) {
				case *ActorCreated:
					created = true
				case *ActorStarted:
					started = true
				case *ActorTerminated:
					terminated = true
				}
			}
			return created && started && terminated
		}, time.Second, 10*time.Millisecond)
	})
	t.Run("With actor refs listing", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		_, err := runtime.CreateActor(ctx, "alpha", newEchoActor())
		require.NoError(t, err)
		_, err = runtime.CreateActor(ctx, "beta", newEchoActor())
		require.NoError(t, err)

		refs := runtime.ActorRefs()
		require.Len(t, refs, 2)
		for _, ref := range refs {
			assert.Equal(t, Running, ref.State())
			assert.NotEmpty(t, ref.Node())
		}
	})
	t.Run("With holder wide release", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		_, err := runtime.CreateActor(ctx, "first", newEchoActor(), WithHolder("owner"))
		require.NoError(t, err)
		_, err = runtime.CreateActor(ctx, "second", newEchoActor(), WithHolder("owner"))
		require.NoError(t, err)
		require.Equal(t, 2, runtime.NumActors())

		runtime.ReleaseHolder("owner")
		assert.Eventually(t, func() bool {
			return runtime.NumActors() == 0
		}, time.Second, 10*time.Millisecond)
	})
	t.Run("With stop draining live actors", func(t *testing.T) {
		runtime := startTestRuntime(t)

		tester := newEchoActor()
		_, err := runtime.CreateActor(ctx, "worker", tester)
		require.NoError(t, err)

		require.NoError(t, runtime.Stop(ctx))
		assert.True(t, tester.stopped.Load())
		assert.Zero(t, runtime.NumActors())
	})
	t.Run("With durable records audited on restart", func(t *testing.T) {
		dir := t.TempDir()
		runtime := startTestRuntime(t, WithDurableState(dir))

		_, err := runtime.CreateActor(ctx, "worker", newEchoActor())
		require.NoError(t, err)
		// simulate a crash: close the store without deleting records
		require.NoError(t, runtime.recordStore.Close())

		// a clean start sweeps the stale records and comes up empty
		second := startTestRuntime(t, WithDurableState(dir))
		assert.Zero(t, second.NumActors())
		records, err := second.recordStore.ListRecords(ctx)
		require.NoError(t, err)
		assert.Empty(t, records)
		require.NoError(t, second.Stop(ctx))

		// the first runtime still winds down cleanly, store errors are only
		// logged
		require.NoError(t, runtime.Stop(ctx))
	})
	t.Run("With kill racing an in-progress creation", func(t *testing.T) {
		launcher := newGatedLauncher()
		runtime := startTestRuntime(t, WithLauncher(launcher))
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		type outcome struct {
			handle *Handle
			err    error
		}
		done := make(chan outcome, 1)
		request := resource.NewRequest(string(resource.CPU), "2")
		go func() {
			handle, err := runtime.CreateActor(ctx, "raced", newEchoActor(), WithResources(request))
			done <- outcome{handle: handle, err: err}
		}()

		// the creation is parked inside Spawn with the node already reserved
		id := <-launcher.entered
		require.NoError(t, runtime.Kill(ctx, id))
		close(launcher.release)

		result := <-done
		require.Error(t, result.err)
		assert.ErrorIs(t, result.err, gerrors.ErrActorNotFound)
		assert.Nil(t, result.handle)

		// no live actor, no reservation, no held name may survive the kill
		assert.Zero(t, runtime.NumActors())
		for _, snapshot := range runtime.Ledger().Snapshots() {
			assert.True(t, snapshot.Capacity.Reserved.IsZero())
		}
		handle, err := runtime.CreateActor(ctx, "raced", newEchoActor())
		require.NoError(t, err)
		require.NoError(t, runtime.Kill(ctx, handle.ID()))
	})
	t.Run("With stuck handler escalated on last release", func(t *testing.T) {
		runtime := startTestRuntime(t)
		defer func() { require.NoError(t, runtime.Stop(ctx)) }()

		tester := newSlowActor()
		request := resource.NewRequest(string(resource.CPU), "1")
		handle, err := runtime.CreateActor(ctx, "stuck", tester, WithResources(request))
		require.NoError(t, err)

		errCh := make(chan error, 1)
		go func() {
			_, err := handle.Invoke(ctx, "work", nil)
			errCh <- err
		}()
		<-tester.entered

		// dropping the last reference starts a graceful drain; the parked
		// handler must not hold the teardown beyond the shutdown timeout
		require.NoError(t, handle.Release(ctx))

		select {
		case err := <-errCh:
			require.Error(t, err)
			assert.ErrorIs(t, err, gerrors.ErrActorUnavailable)
		case <-time.After(3 * time.Second):
			t.Fatal("teardown never escalated past the stuck handler")
		}

		assert.Eventually(t, func() bool {
			return runtime.NumActors() == 0
		}, time.Second, 10*time.Millisecond)
		for _, snapshot := range runtime.Ledger().Snapshots() {
			assert.True(t, snapshot.Capacity.Reserved.IsZero())
		}
		// the escalation is forced, so PostStop is skipped
		assert.False(t, tester.stopped.Load())
		close(tester.release)
	})
	t.Run("With unusable durable directory", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "not-a-dir")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

		runtime, err := NewRuntime("testSys",
			WithInventory(NewStaticInventory(testNode("node-1", "4"))),
			WithDurableState(filepath.Join(blocker, "state")),
		)
		require.NoError(t, err)

		err = runtime.Start(ctx)
		require.Error(t, err)
		var internal *gerrors.InternalError
		assert.ErrorAs(t, err, &internal)
		assert.False(t, runtime.Running())
	})
}
