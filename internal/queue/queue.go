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

package queue

import "sync"

// minQueueLen is the smallest capacity that queue may have.
// Must be power of 2 for bitwise modulus: x % n == x & (n - 1).
const minQueueLen = 16

// Queue is an unbounded, thread-safe FIFO queue backed by an auto-resizing
// ring buffer. Consumers can block on Wait until an item arrives or the
// queue is closed, which makes it suitable for dispatcher loops that must
// be woken up both by new work and by shutdown.
type Queue[T any] struct {
	mu      sync.RWMutex
	cond    *sync.Cond
	nodes   []*T
	head    int
	tail    int
	count   int
	closed  bool
	initCap int
}

// New creates an empty unbounded queue.
func New[T any]() *Queue[T] {
	sq := &Queue[T]{
		initCap: minQueueLen,
		nodes:   make([]*T, minQueueLen),
	}
	sq.cond = sync.NewCond(&sq.mu)
	return sq
}

// Push adds an item to the back of the queue.
// It can be safely called from multiple goroutines.
// It returns false when the queue is closed; the item is dropped.
func (q *Queue[T]) Push(i T) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	if q.count == len(q.nodes) {
		q.resize()
	}
	q.nodes[q.tail] = &i
	// bitwise modulus
	q.tail = (q.tail + 1) & (len(q.nodes) - 1)
	q.count++
	q.cond.Signal()
	q.mu.Unlock()
	return true
}

// Close closes the queue and discards all queued entries.
// Every goroutine blocked in Wait returns.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.count = 0
	q.nodes = nil
	q.cond.Broadcast()
}

// CloseRemaining closes the queue and returns all entries that were still
// queued, in FIFO order. Every goroutine blocked in Wait returns.
func (q *Queue[T]) CloseRemaining() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return []T{}
	}
	rem := make([]T, 0, q.count)
	for q.count > 0 {
		i := q.nodes[q.head]
		// bitwise modulus
		q.head = (q.head + 1) & (len(q.nodes) - 1)
		q.count--
		rem = append(rem, *i)
	}
	q.closed = true
	q.count = 0
	q.nodes = nil
	q.cond.Broadcast()
	return rem
}

// IsClosed returns true when the queue has been closed.
// Only a true return value has a definite meaning since the queue can be
// closed concurrently right after the call.
func (q *Queue[T]) IsClosed() bool {
	q.mu.RLock()
	c := q.closed
	q.mu.RUnlock()
	return c
}

// Wait blocks until an item is available or the queue is closed.
// When an item is already queued it is returned immediately.
// It returns the zero value and false when the queue is closed.
func (q *Queue[T]) Wait() (T, bool) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		var zero T
		return zero, false
	}
	if q.count != 0 {
		q.mu.Unlock()
		return q.Pop()
	}
	q.cond.Wait()
	q.mu.Unlock()
	return q.Pop()
}

// Pop removes the item at the front of the queue.
// A false return value means the queue was empty or closed.
func (q *Queue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.count == 0 {
		var zero T
		return zero, false
	}
	i := q.nodes[q.head]
	q.nodes[q.head] = nil
	// bitwise modulus
	q.head = (q.head + 1) & (len(q.nodes) - 1)
	q.count--
	// Resize down if buffer 1/4 full.
	if len(q.nodes) > minQueueLen && (q.count<<2) == len(q.nodes) {
		q.resize()
	}

	return *i, true
}

// Cap returns the current capacity without allocating.
func (q *Queue[T]) Cap() int {
	q.mu.RLock()
	c := cap(q.nodes)
	q.mu.RUnlock()
	return c
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.RLock()
	l := q.count
	q.mu.RUnlock()
	return l
}

// IsEmpty returns true when the queue is empty.
func (q *Queue[T]) IsEmpty() bool {
	q.mu.RLock()
	cnt := q.count
	q.mu.RUnlock()
	return cnt == 0
}

// resize doubles the ring buffer and compacts the live window at the front.
func (q *Queue[T]) resize() {
	nodes := make([]*T, q.count<<1)
	if q.tail > q.head {
		copy(nodes, q.nodes[q.head:q.tail])
	} else {
		n := copy(nodes, q.nodes[q.head:])
		copy(nodes[n:], q.nodes[:q.tail])
	}

	q.tail = q.count
	q.head = 0
	q.nodes = nodes
}
