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

// Package actor implements a resource-aware actor runtime: actors are placed
// on nodes by a pluggable policy against a capacity ledger, reached through
// reference-counted handles, and torn down gracefully or forcefully through
// a single-writer lifecycle.
package actor

import (
	"context"
	"errors"
	"time"

	"github.com/flowchartsman/retry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	gerrors "github.com/tochemey/hive/errors"
	"github.com/tochemey/hive/eventstream"
	hivemetric "github.com/tochemey/hive/internal/metric"
	"github.com/tochemey/hive/internal/store"
	"github.com/tochemey/hive/internal/ticker"
	"github.com/tochemey/hive/internal/types"
	"github.com/tochemey/hive/log"
	"github.com/tochemey/hive/placement"
	"github.com/tochemey/hive/resource"
)

// Runtime is the control plane of one actor system: it owns the resource
// ledger, the placement policy, the handle registry, and the launcher, and
// drives every actor through its lifecycle.
type Runtime struct {
	name      string
	logger    log.Logger
	ledger    *resource.Ledger
	registry  *registry
	policy    placement.Policy
	launcher  Launcher
	inventory Inventory
	events    eventstream.Stream

	durableDir  string
	recordStore store.Store

	started   *atomic.Bool
	stopping  *atomic.Bool
	startedAt *atomic.Time

	shutdownTimeout  time.Duration
	reaperInterval   time.Duration
	tombstoneGrace   time.Duration
	refreshInterval  time.Duration
	mailboxCapacity  int
	placementRetries int

	reaperTicker  *ticker.Ticker
	refreshTicker *ticker.Ticker
	tickerStopSig chan types.Unit

	metricsEnabled     bool
	meterProvider      metric.MeterProvider
	runtimeMetrics     *hivemetric.RuntimeMetrics
	rejectedPlacements *atomic.Int64
}

// NewRuntime creates a runtime with the given name. The runtime accepts no
// work until Start is called.
func NewRuntime(name string, opts ...Option) (*Runtime, error) {
	if err := validateRuntimeName(name); err != nil {
		return nil, err
	}

	runtime := &Runtime{
		name:               name,
		logger:             log.DefaultLogger,
		policy:             placement.NewMostAvailable(),
		inventory:          NewStaticInventory(),
		events:             eventstream.New(),
		started:            atomic.NewBool(false),
		stopping:           atomic.NewBool(false),
		startedAt:          atomic.NewTime(time.Time{}),
		shutdownTimeout:    DefaultShutdownTimeout,
		reaperInterval:     DefaultReaperInterval,
		tombstoneGrace:     DefaultTombstoneGrace,
		refreshInterval:    DefaultInventoryRefreshInterval,
		mailboxCapacity:    DefaultMailboxCapacity,
		placementRetries:   DefaultPlacementRetries,
		rejectedPlacements: atomic.NewInt64(0),
	}

	for _, opt := range opts {
		opt.Apply(runtime)
	}

	runtime.ledger = resource.NewLedger(runtime.logger)
	runtime.registry = newRegistry(runtime.logger, runtime.onReferenceCountZero)
	if runtime.launcher == nil {
		runtime.launcher = NewLocalLauncher(runtime.logger)
	}
	return runtime, nil
}

// Name returns the runtime name.
func (r *Runtime) Name() string {
	return r.name
}

// Logger returns the runtime logger.
func (r *Runtime) Logger() log.Logger {
	return r.logger
}

// Ledger returns the runtime's resource ledger.
func (r *Runtime) Ledger() *resource.Ledger {
	return r.ledger
}

// Running reports whether the runtime is started and not stopping.
func (r *Runtime) Running() bool {
	return r.started.Load() && !r.stopping.Load()
}

// Uptime returns the number of seconds since the runtime started.
func (r *Runtime) Uptime() int64 {
	if !r.started.Load() {
		return 0
	}
	return int64(time.Since(r.startedAt.Load()).Seconds())
}

// Start brings the runtime up: it opens the record store, audits records
// left behind by an unclean shutdown, seeds the ledger from the inventory,
// and starts the background sweeps.
func (r *Runtime) Start(ctx context.Context) error {
	if r.started.Load() {
		return gerrors.ErrRuntimeAlreadyStarted
	}

	if err := r.openRecordStore(); err != nil {
		return err
	}
	if err := r.auditStaleRecords(ctx); err != nil {
		return err
	}
	if err := r.refreshInventory(ctx); err != nil {
		return err
	}
	if err := r.registerMetrics(); err != nil {
		return err
	}

	r.tickerStopSig = make(chan types.Unit)
	r.reaperTicker = ticker.New(r.reaperInterval)
	r.refreshTicker = ticker.New(r.refreshInterval)
	r.reaperTicker.Start()
	r.refreshTicker.Start()
	go r.backgroundLoop()

	r.startedAt.Store(time.Now())
	r.stopping.Store(false)
	r.started.Store(true)
	r.logger.Infof("runtime=(%s) started with %d node(s)", r.name, r.ledger.Size())
	return nil
}

// Stop drains every live actor gracefully, escalating to a forced stop for
// actors that outlive the shutdown timeout, then tears the runtime down.
func (r *Runtime) Stop(ctx context.Context) error {
	if !r.started.Load() {
		return gerrors.ErrRuntimeNotStarted
	}
	if !r.stopping.CompareAndSwap(false, true) {
		return gerrors.ErrRuntimeStopped
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, r.shutdownTimeout)
	defer cancel()

	eg, _ := errgroup.WithContext(shutdownCtx)
	r.registry.records.Range(func(_ ID, rec *record) bool {
		if rec.getState() < Terminating {
			eg.Go(func() error {
				return r.terminate(shutdownCtx, rec, true)
			})
		}
		return false
	})
	err := eg.Wait()

	r.reaperTicker.Stop()
	r.refreshTicker.Stop()
	close(r.tickerStopSig)

	if r.runtimeMetrics != nil {
		err = multierr.Append(err, r.runtimeMetrics.Unregister())
	}
	r.events.Close()
	err = multierr.Append(err, r.recordStore.Close())

	r.started.Store(false)
	r.logger.Infof("runtime=(%s) stopped", r.name)
	return err
}

// CreateActor places and starts a new actor and returns its original handle.
// An empty name creates an anonymous actor, reachable only through handles.
//
// On any failure past placement every side effect is rolled back: the
// reservation is released, the name is freed, and no event is published.
func (r *Runtime) CreateActor(ctx context.Context, name string, actor Actor, opts ...SpawnOption) (*Handle, error) {
	if err := r.ensureRunning(); err != nil {
		return nil, err
	}

	settings := &spawnSettings{
		lifetime: Owned,
		request:  make(resource.Request),
		mailbox:  r.mailboxCapacity,
		holder:   "holder-" + uuid.NewString(),
	}
	for _, opt := range opts {
		opt.Apply(settings)
	}
	if err := settings.request.Validate(); err != nil {
		return nil, err
	}

	rec, err := r.registry.create(name, settings.request, settings.lifetime, settings.holder)
	if err != nil {
		return nil, err
	}

	node, err := r.place(rec)
	if err != nil {
		r.registry.remove(rec)
		r.rejectedPlacements.Inc()
		return nil, err
	}

	rec.mu.Lock()
	rec.node = node
	rec.mu.Unlock()
	if !rec.advance(Placed) {
		// a concurrent kill finalized before the reservation was visible
		// to it; undo the reservation here
		r.releaseReservation(rec)
		return nil, gerrors.NewErrActorNotFound(rec.id.String())
	}

	if err := r.registry.acquire(rec, settings.holder, true); err != nil {
		r.rollbackPlacement(rec)
		return nil, err
	}

	spec := &ProcessSpec{
		ID:              rec.id,
		Name:            name,
		Self:            rec.ref(),
		Actor:           actor,
		MailboxCapacity: settings.mailbox,
		Logger:          r.logger.With("actor", rec.id.String()),
		OnSelfExit:      r.onSelfExit,
	}
	proc, err := r.launcher.Spawn(ctx, node, spec)
	if err != nil {
		r.rollbackPlacement(rec)
		return nil, gerrors.NewErrSpawnFailed(err)
	}

	rec.mu.Lock()
	rec.proc = proc
	rec.mu.Unlock()
	if !rec.advance(Running) {
		// a kill won while the process was starting; it either stopped the
		// process already or finalized before seeing it
		if err := r.launcher.Terminate(ctx, proc, false); err != nil {
			r.logger.Debugf("orphaned process of actor=(%s) already stopped: %v", rec.id, err)
		}
		return nil, gerrors.NewErrActorNotFound(rec.id.String())
	}

	if err := r.recordStore.PersistRecord(ctx, rec.snapshot()); err != nil {
		r.logger.Warnf("failed to persist record of actor=(%s): %v", rec.id, err)
	}

	now := time.Now().UTC()
	r.events.Publish(TopicActorCreated, &ActorCreated{
		ID:        rec.id,
		Name:      name,
		Node:      node,
		Lifetime:  settings.lifetime,
		Resources: settings.request.Clone(),
		CreatedAt: now,
	})
	r.events.Publish(TopicActorStarted, &ActorStarted{
		ID:        rec.id,
		Name:      name,
		Node:      node,
		StartedAt: now,
	})

	return &Handle{
		id:       rec.id,
		name:     name,
		holder:   settings.holder,
		original: true,
		released: atomic.NewBool(false),
		runtime:  r,
	}, nil
}

// GetActor acquires a secondary reference on the named actor.
func (r *Runtime) GetActor(ctx context.Context, name, holder string) (*Handle, error) {
	if err := r.ensureRunning(); err != nil {
		return nil, err
	}
	rec, err := r.registry.acquireByName(name, holder)
	if err != nil {
		return nil, err
	}
	return &Handle{
		id:       rec.id,
		name:     rec.name,
		holder:   holder,
		original: false,
		released: atomic.NewBool(false),
		runtime:  r,
	}, nil
}

// GetActorByID acquires a secondary reference by identity. This is the only
// lookup path for anonymous Detached actors.
func (r *Runtime) GetActorByID(ctx context.Context, id ID, holder string) (*Handle, error) {
	if err := r.ensureRunning(); err != nil {
		return nil, err
	}
	rec, ok := r.registry.get(id)
	if !ok {
		return nil, gerrors.NewErrActorNotFound(id.String())
	}
	if err := r.registry.acquire(rec, holder, false); err != nil {
		return nil, err
	}
	return &Handle{
		id:       rec.id,
		name:     rec.name,
		holder:   holder,
		original: false,
		released: atomic.NewBool(false),
		runtime:  r,
	}, nil
}

// Kill forcefully terminates the actor: the in-flight and queued invocations
// fail with ErrActorUnavailable and PostStop does not run.
func (r *Runtime) Kill(ctx context.Context, id ID) error {
	if err := r.ensureRunning(); err != nil {
		return err
	}
	rec, ok := r.registry.get(id)
	if !ok || rec.getState() == Terminated {
		return gerrors.NewErrActorNotFound(id.String())
	}
	return r.terminate(ctx, rec, false)
}

// ReleaseHolder drops every reference the holder has across the runtime. It
// is the cleanup path for holders that disappear without releasing their
// handles one by one.
func (r *Runtime) ReleaseHolder(holder string) {
	r.registry.releaseHolder(holder)
}

// ActorRefs returns a descriptor of every live actor, sorted by identity.
func (r *Runtime) ActorRefs() []Ref {
	return r.registry.refs()
}

// NumActors returns the number of live actors.
func (r *Runtime) NumActors() int {
	return r.registry.size()
}

// Subscribe returns a subscriber receiving lifecycle events on the given
// topics, all of them when none is named.
func (r *Runtime) Subscribe(topics ...string) eventstream.Subscriber {
	subscriber := r.events.AddSubscriber()
	if len(topics) == 0 {
		topics = []string{TopicActorCreated, TopicActorStarted, TopicActorTerminated}
	}
	for _, topic := range topics {
		r.events.Subscribe(subscriber, topic)
	}
	return subscriber
}

// Unsubscribe removes the subscriber from the event stream.
func (r *Runtime) Unsubscribe(subscriber eventstream.Subscriber) {
	r.events.RemoveSubscriber(subscriber)
}

// invoke delivers one method call to the actor and waits for its outcome.
func (r *Runtime) invoke(ctx context.Context, id ID, method string, argument any) (any, error) {
	if err := r.ensureRunning(); err != nil {
		return nil, err
	}
	rec, ok := r.registry.get(id)
	if !ok {
		return nil, gerrors.NewErrActorNotFound(id.String())
	}
	if rec.getState() != Running {
		return nil, gerrors.NewErrActorUnavailable(id.String())
	}
	rec.mu.Lock()
	proc := rec.proc
	rec.mu.Unlock()
	if proc == nil {
		return nil, gerrors.NewErrActorUnavailable(id.String())
	}

	invocation := newInvocation(ctx, method, argument)
	if err := proc.Deliver(invocation); err != nil {
		return nil, err
	}
	return invocation.Result(ctx)
}

// releaseReference drops one holder reference, possibly arming the Owned
// teardown.
func (r *Runtime) releaseReference(ctx context.Context, id ID, holder string, original bool) error {
	rec, ok := r.registry.get(id)
	if !ok {
		return gerrors.NewErrActorNotFound(id.String())
	}
	return r.registry.release(rec, holder, original)
}

// place runs the placement policy against fresh ledger snapshots and
// reserves the chosen node's capacity. Losing a reservation race re-runs the
// policy with fresh snapshots, up to the configured attempts; infeasibility stops
// retrying immediately.
func (r *Runtime) place(rec *record) (resource.NodeID, error) {
	var chosen resource.NodeID
	retrier := retry.NewRetrier(r.placementRetries, DefaultPlacementRetryMinBackoff, DefaultPlacementRetryMaxBackoff)
	err := retrier.Run(func() error {
		node, err := r.policy.ChooseNode(rec.request, r.ledger.Snapshots())
		if err != nil {
			return retry.Stop(err)
		}
		if err := r.ledger.Reserve(node, rec.request); err != nil {
			if errors.Is(err, gerrors.ErrInsufficientResources) {
				return err
			}
			return retry.Stop(err)
		}
		chosen = node
		return nil
	})
	if err != nil {
		if errors.Is(err, gerrors.ErrNoFeasibleNode) {
			return "", err
		}
		return "", gerrors.NewErrNoFeasibleNode(err)
	}
	return chosen, nil
}

// rollbackPlacement undoes a placement whose actor never reached Running.
func (r *Runtime) rollbackPlacement(rec *record) {
	r.releaseReservation(rec)
	r.registry.remove(rec)
}

// releaseReservation returns the actor's reservation to the ledger. The
// reservationFreed guard makes the release happen exactly once no matter
// whether a teardown, a rollback or a racing kill gets here first.
func (r *Runtime) releaseReservation(rec *record) {
	rec.mu.Lock()
	node := rec.node
	rec.mu.Unlock()
	if node == "" || rec.request.IsZero() {
		return
	}
	if !rec.reservationFreed.CompareAndSwap(false, true) {
		return
	}
	if err := r.ledger.Release(node, rec.request); err != nil {
		r.logger.Warnf("failed to release resources of actor=(%s) on node=(%s): %v", rec.id, node, err)
	}
}

// terminate drives one actor's teardown. The first caller to flip the record
// into Terminating wins; everyone else returns immediately. A forced caller
// losing that race still marks the escalation so the drain is cut short.
func (r *Runtime) terminate(ctx context.Context, rec *record, graceful bool) error {
	if !rec.beginTermination(!graceful) {
		return nil
	}

	rec.mu.Lock()
	proc := rec.proc
	node := rec.node
	rec.mu.Unlock()

	if proc != nil {
		if err := r.launcher.Terminate(ctx, proc, graceful && !rec.isForced()); err != nil {
			r.logger.Warnf("failed to stop process of actor=(%s): %v", rec.id, err)
		}
	}
	r.finalize(ctx, rec, node)
	return nil
}

// finalize releases the actor's reservation, frees its name, and publishes
// the termination event. It runs exactly once per record.
func (r *Runtime) finalize(ctx context.Context, rec *record, node resource.NodeID) {
	if !rec.finalized.CompareAndSwap(false, true) {
		return
	}

	r.releaseReservation(rec)
	r.registry.tombstone(rec)
	if err := r.recordStore.DeleteRecord(ctx, rec.id.String()); err != nil {
		r.logger.Warnf("failed to delete record of actor=(%s): %v", rec.id, err)
	}

	r.events.Publish(TopicActorTerminated, &ActorTerminated{
		ID:           rec.id,
		Name:         rec.name,
		Node:         node,
		Forced:       rec.isForced(),
		TerminatedAt: rec.terminatedAt.Load(),
	})
	r.logger.Infof("actor=(%s) terminated, forced=(%v)", rec.id, rec.isForced())
}

// onReferenceCountZero is the registry callback for Owned actors whose last
// reference went away. The teardown runs off the releasing goroutine so a
// Release call never blocks on the actor's drain.
func (r *Runtime) onReferenceCountZero(rec *record) {
	go func() {
		// bound the drain so a stuck handler escalates to a forced stop
		ctx, cancel := context.WithTimeout(context.Background(), r.shutdownTimeout)
		defer cancel()
		if err := r.terminate(ctx, rec, true); err != nil {
			r.logger.Warnf("failed to terminate actor=(%s) on last release: %v", rec.id, err)
		}
	}()
}

// onSelfExit is the launcher callback for actors that asked to exit from
// inside a handler. The launcher already runs it off the receive loop.
func (r *Runtime) onSelfExit(id ID) {
	rec, ok := r.registry.get(id)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.shutdownTimeout)
	defer cancel()
	if err := r.terminate(ctx, rec, true); err != nil {
		r.logger.Warnf("failed to terminate self-exiting actor=(%s): %v", id, err)
	}
}

// ensureRunning gates every user-facing operation.
func (r *Runtime) ensureRunning() error {
	if !r.started.Load() {
		return gerrors.ErrRuntimeNotStarted
	}
	if r.stopping.Load() {
		return gerrors.ErrRuntimeStopped
	}
	return nil
}

// openRecordStore opens the durable store when configured, an in-memory one
// otherwise.
func (r *Runtime) openRecordStore() error {
	if r.durableDir == "" {
		r.recordStore = store.NewMemoryStore()
		return nil
	}
	boltStore, err := store.NewBoltStore(r.durableDir)
	if err != nil {
		return gerrors.NewInternalError(err)
	}
	r.recordStore = boltStore
	return nil
}

// auditStaleRecords reports and clears records a previous run left behind.
// Their presence means that run did not stop cleanly.
func (r *Runtime) auditStaleRecords(ctx context.Context) error {
	records, err := r.recordStore.ListRecords(ctx)
	if err != nil {
		return err
	}
	for _, stale := range records {
		r.logger.Warnf("found stale record of actor=(%s) name=(%s) state=(%s) from an unclean shutdown",
			stale.ID, stale.Name, stale.State)
		if err := r.recordStore.DeleteRecord(ctx, stale.ID); err != nil {
			return err
		}
	}
	return nil
}

// refreshInventory re-reads node capacities into the ledger. Nodes that left
// the inventory are removed once drained.
func (r *Runtime) refreshInventory(ctx context.Context) error {
	nodes, err := r.inventory.ListNodes(ctx)
	if err != nil {
		return err
	}

	seen := make(map[resource.NodeID]bool, len(nodes))
	for _, node := range nodes {
		seen[node.ID] = true
		if err := r.ledger.UpsertNode(node.ID, node.Capacity); err != nil {
			return err
		}
	}
	for _, node := range r.ledger.Nodes() {
		if !seen[node] {
			if err := r.ledger.RemoveNode(node); err != nil {
				r.logger.Warnf("cannot remove node=(%s) from the ledger: %v", node, err)
			}
		}
	}
	return nil
}

// backgroundLoop runs the reaper and inventory sweeps until Stop.
func (r *Runtime) backgroundLoop() {
	for {
		select {
		case <-r.reaperTicker.Ticks:
			if purged := r.registry.purgeTombstones(r.tombstoneGrace); purged > 0 {
				r.logger.Debugf("reaper purged %d terminated record(s)", purged)
			}
		case <-r.refreshTicker.Ticks:
			if err := r.refreshInventory(context.Background()); err != nil {
				r.logger.Warnf("inventory refresh failed: %v", err)
			}
		case <-r.tickerStopSig:
			return
		}
	}
}

// registerMetrics wires the observable instruments when metrics are enabled.
func (r *Runtime) registerMetrics() error {
	if !r.metricsEnabled {
		return nil
	}

	var providerOpts []hivemetric.Option
	if r.meterProvider != nil {
		providerOpts = append(providerOpts, hivemetric.WithMeterProvider(r.meterProvider))
	}
	provider := hivemetric.NewProvider(providerOpts...)

	runtimeMetrics, err := hivemetric.NewRuntimeMetrics(provider.Meter)
	if err != nil {
		return err
	}
	if err := runtimeMetrics.Register(provider.Meter, func(_ context.Context, observer metric.Observer) error {
		observer.ObserveInt64(runtimeMetrics.ActorsCount, int64(r.registry.size()))
		observer.ObserveInt64(runtimeMetrics.NodesCount, int64(r.ledger.Size()))
		observer.ObserveInt64(runtimeMetrics.Uptime, r.Uptime())
		observer.ObserveInt64(runtimeMetrics.RejectedPlacements, r.rejectedPlacements.Load())
		return nil
	}); err != nil {
		return err
	}
	r.runtimeMetrics = runtimeMetrics
	return nil
}
