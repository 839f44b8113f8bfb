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

// Package pool fans work out over a fixed set of actor handles. Tasks are
// dispatched in submission order to the next idle actor; each actor still
// processes its own tasks one at a time.
package pool

import (
	"context"
	"errors"
	"sync"
	"time"

	gods "github.com/Workiva/go-datastructures/queue"
	"go.uber.org/atomic"

	"github.com/tochemey/hive/actor"
	gerrors "github.com/tochemey/hive/errors"
	"github.com/tochemey/hive/internal/types"
	"github.com/tochemey/hive/log"
)

// Pool dispatches submitted tasks over a fixed set of actor handles. The
// handle set never grows or shrinks: an actor that becomes unavailable is
// dropped from rotation, and the pool closes once no usable actor remains.
type Pool struct {
	handles []*actor.Handle
	tasks   *gods.RingBuffer
	// idle carries the indices of actors with no task in flight. Preloading
	// it in handle order makes dispatch round-robin while everyone is idle.
	idle    chan int
	broken  *atomic.Int32
	stopped *atomic.Bool
	stopSig chan types.Unit
	// done closes when the dispatch loop returns
	done   chan types.Unit
	wg     sync.WaitGroup
	logger log.Logger
}

// New creates a pool over the given handles and starts its dispatch loop.
func New(handles []*actor.Handle, opts ...Option) (*Pool, error) {
	if len(handles) == 0 {
		return nil, gerrors.ErrEmptyPool
	}

	config := &config{
		queueCapacity: DefaultQueueCapacity,
		logger:        log.DefaultLogger,
	}
	for _, opt := range opts {
		opt.Apply(config)
	}

	pool := &Pool{
		handles: handles,
		tasks:   gods.NewRingBuffer(uint64(config.queueCapacity)),
		idle:    make(chan int, len(handles)),
		broken:  atomic.NewInt32(0),
		stopped: atomic.NewBool(false),
		stopSig: make(chan types.Unit),
		done:    make(chan types.Unit),
		logger:  config.logger,
	}
	for index := range handles {
		pool.idle <- index
	}

	go pool.dispatch()
	return pool, nil
}

// Size returns the number of handles the pool was built over.
func (p *Pool) Size() int {
	return len(p.handles)
}

// Submit enqueues one task. The returned task resolves once an actor has
// processed it; submission order is dispatch order.
func (p *Pool) Submit(ctx context.Context, method string, argument any) (*Task, error) {
	if p.stopped.Load() {
		return nil, gerrors.ErrPoolClosed
	}
	task := newTask(ctx, method, argument)
	if err := p.tasks.Put(task); err != nil {
		return nil, gerrors.ErrPoolClosed
	}
	return task, nil
}

// Map submits one task per argument and waits for all of them. Results come
// back in argument order regardless of which actor processed what. The
// returned error is the first failure in argument order; the other results
// are still returned.
func (p *Pool) Map(ctx context.Context, method string, arguments []any) ([]any, error) {
	tasks := make([]*Task, 0, len(arguments))
	for _, argument := range arguments {
		task, err := p.Submit(ctx, method, argument)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	var firstErr error
	results := make([]any, len(tasks))
	for index, task := range tasks {
		result, err := task.Result(ctx)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		results[index] = result
	}
	return results, firstErr
}

// Stop closes the pool. Undispatched tasks fail with ErrPoolClosed; tasks
// already handed to an actor run to completion.
func (p *Pool) Stop() error {
	if !p.stopped.CompareAndSwap(false, true) {
		return nil
	}
	close(p.stopSig)

	for {
		item, err := p.tasks.Poll(time.Millisecond)
		if err != nil {
			break
		}
		if task, ok := item.(*Task); ok {
			task.fail(gerrors.ErrPoolClosed)
		}
	}
	p.tasks.Dispose()

	<-p.done
	p.wg.Wait()
	return nil
}

// dispatch is the single dequeue loop: it takes tasks in FIFO order and
// hands each to the next idle actor.
func (p *Pool) dispatch() {
	defer close(p.done)
	for {
		item, err := p.tasks.Get()
		if err != nil {
			return
		}
		task, ok := item.(*Task)
		if !ok {
			continue
		}

		select {
		case index := <-p.idle:
			p.wg.Add(1)
			go p.run(index, task)
		case <-p.stopSig:
			task.fail(gerrors.ErrPoolClosed)
			return
		}
	}
}

// run executes one task on one actor. A method error resolves only the task;
// an unavailable actor is dropped from rotation for good.
func (p *Pool) run(index int, task *Task) {
	defer p.wg.Done()

	result, err := p.handles[index].Invoke(task.ctx, task.method, task.argument)
	switch {
	case err == nil:
		task.complete(result)
	case errors.Is(err, gerrors.ErrActorUnavailable) || errors.Is(err, gerrors.ErrHandleReleased):
		task.fail(err)
		p.logger.Warnf("pool actor=(%s) is gone, dropping it from rotation", p.handles[index].ID())
		if int(p.broken.Inc()) >= len(p.handles) {
			// no usable actor left, close so queued tasks fail instead of
			// waiting forever
			go func() {
				_ = p.Stop()
			}()
		}
		return
	default:
		task.fail(err)
	}
	p.idle <- index
}
