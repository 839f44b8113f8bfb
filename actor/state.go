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

// State is one step of the actor life cycle. States only ever move forward:
// Terminating and Terminated dominate every earlier state, so a forced kill
// racing any other transition always wins.
type State int32

const (
	// Pending is the entry state of a creation request, before any node is
	// assigned or any capacity reserved.
	Pending State = iota
	// Placed means a node has been chosen and its capacity reserved, but
	// the worker process has not yet acknowledged startup.
	Placed
	// Running is the only state in which invocations are dispatched.
	Running
	// Terminating means teardown has begun. Whether queued invocations
	// drain or fail depends on the trigger (graceful or forced).
	Terminating
	// Terminated is terminal: resources are released and the identity's
	// name, if any, is available again.
	Terminated
)

// String implements fmt.Stringer
func (s State) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Placed:
		return "Placed"
	case Running:
		return "Running"
	case Terminating:
		return "Terminating"
	case Terminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// Lifetime states what keeps an actor alive.
type Lifetime int

const (
	// Owned ties the actor to its original handle: when the creator has
	// released the original handle and no secondary references remain, the
	// actor is gracefully terminated.
	Owned Lifetime = iota
	// Detached decouples the actor from every handle. It only ever goes
	// away through an explicit kill or a self-exit.
	Detached
)

// String implements fmt.Stringer
func (l Lifetime) String() string {
	switch l {
	case Detached:
		return "Detached"
	default:
		return "Owned"
	}
}
