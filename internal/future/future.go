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

// Package future provides a single-assignment promise used to hand a result
// from the goroutine that produces it to the goroutine that awaits it.
package future

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tochemey/hive/internal/types"
)

// ErrFutureTimeout is returned when awaiting a future past its deadline.
var ErrFutureTimeout = errors.New("future timeout")

// Result carries the outcome of a completed future.
type Result[T any] interface {
	// Success returns the successful result of the future
	Success() T
	// Failure returns the error
	Failure() error
}

type result[T any] struct {
	success T
	failure error
}

// Success returns the successful result of the future
func (x *result[T]) Success() T {
	return x.success
}

// Failure returns the error
func (x *result[T]) Failure() error {
	return x.failure
}

// Future is a write-once cell. Exactly one Complete or Fail wins; every
// later completion attempt is dropped, which makes it safe for a forced
// teardown to race the regular responder.
type Future[T any] struct {
	once   sync.Once
	result *result[T]
	done   chan types.Unit
}

// New creates an incomplete future.
func New[T any]() *Future[T] {
	return &Future[T]{
		result: new(result[T]),
		done:   make(chan types.Unit),
	}
}

// Complete fulfills the future with a value. It reports whether this call
// won the completion race.
func (x *Future[T]) Complete(value T) bool {
	won := false
	x.once.Do(func() {
		x.result.success = value
		close(x.done)
		won = true
	})
	return won
}

// Fail fulfills the future with an error. It reports whether this call won
// the completion race.
func (x *Future[T]) Fail(err error) bool {
	won := false
	x.once.Do(func() {
		x.result.failure = err
		close(x.done)
		won = true
	})
	return won
}

// Completed reports whether the future already holds a result.
func (x *Future[T]) Completed() bool {
	select {
	case <-x.done:
		return true
	default:
		return false
	}
}

// Await returns the result within the given deadline or a result carrying
// ErrFutureTimeout. The future itself stays incomplete on timeout: a slow
// producer can still complete it for another awaiter.
func (x *Future[T]) Await(deadline time.Duration) Result[T] {
	timer := time.NewTimer(deadline)
	defer timer.Stop()
	select {
	case <-x.done:
		return x.result
	case <-timer.C:
		return &result[T]{failure: ErrFutureTimeout}
	}
}

// AwaitContext returns the result once available or the context error when
// the context expires first.
func (x *Future[T]) AwaitContext(ctx context.Context) Result[T] {
	select {
	case <-x.done:
		return x.result
	case <-ctx.Done():
		return &result[T]{failure: ctx.Err()}
	}
}

// AwaitUninterruptible blocks until the future is completed.
func (x *Future[T]) AwaitUninterruptible() Result[T] {
	<-x.done
	return x.result
}
