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
	"time"

	gods "github.com/Workiva/go-datastructures/queue"
)

// mailbox is a bounded, blocking MPSC invocation queue backed by a ring
// buffer. Multiple producers enqueue; the single receive loop dequeues in
// FIFO order. A full mailbox blocks producers, which is the backpressure
// signal of the runtime.
type mailbox struct {
	underlying *gods.RingBuffer
}

func newMailbox(capacity int) *mailbox {
	return &mailbox{
		underlying: gods.NewRingBuffer(uint64(capacity)),
	}
}

// enqueue inserts one invocation, blocking while the mailbox is full. It
// returns an error once the mailbox is disposed.
func (m *mailbox) enqueue(invocation *Invocation) error {
	return m.underlying.Put(invocation)
}

// dequeue removes the next invocation, blocking while the mailbox is empty.
// It returns an error once the mailbox is disposed.
func (m *mailbox) dequeue() (*Invocation, error) {
	item, err := m.underlying.Get()
	if err != nil {
		return nil, err
	}
	invocation, _ := item.(*Invocation)
	return invocation, nil
}

// poll removes the next invocation without blocking longer than the given
// timeout. It is the drain primitive of forced termination.
func (m *mailbox) poll(timeout time.Duration) (*Invocation, error) {
	item, err := m.underlying.Poll(timeout)
	if err != nil {
		return nil, err
	}
	invocation, _ := item.(*Invocation)
	return invocation, nil
}

// len returns a snapshot of the number of queued invocations.
func (m *mailbox) len() int64 {
	return int64(m.underlying.Len())
}

// dispose unblocks every producer and the receive loop. The mailbox must not
// be used afterwards.
func (m *mailbox) dispose() {
	m.underlying.Dispose()
}
