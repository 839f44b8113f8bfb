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

	"github.com/tochemey/hive/internal/future"
)

// Task is one submitted unit of work. Its outcome resolves exactly once:
// with the actor's response, with the actor's method error, or with
// ErrPoolClosed when the pool stopped before dispatching it.
type Task struct {
	ctx      context.Context
	method   string
	argument any
	fut      *future.Future[any]
}

func newTask(ctx context.Context, method string, argument any) *Task {
	return &Task{
		ctx:      ctx,
		method:   method,
		argument: argument,
		fut:      future.New[any](),
	}
}

// Method returns the invoked method name.
func (t *Task) Method() string {
	return t.method
}

// Argument returns the task argument, possibly nil.
func (t *Task) Argument() any {
	return t.argument
}

// complete resolves the task with the actor's response.
func (t *Task) complete(response any) {
	t.fut.Complete(response)
}

// fail resolves the task with an error.
func (t *Task) fail(err error) {
	t.fut.Fail(err)
}

// Result blocks until the task resolves or the context is done.
func (t *Task) Result(ctx context.Context) (any, error) {
	result := t.fut.AwaitContext(ctx)
	if err := result.Failure(); err != nil {
		return nil, err
	}
	return result.Success(), nil
}
