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

import "time"

const (
	// DefaultMailboxCapacity bounds an actor's invocation queue.
	DefaultMailboxCapacity = 1024
	// DefaultShutdownTimeout is the grace period a stopping runtime gives
	// every actor to drain before escalating to a forced stop.
	DefaultShutdownTimeout = 3 * time.Second
	// DefaultReaperInterval is how often terminated records are swept.
	DefaultReaperInterval = 30 * time.Second
	// DefaultTombstoneGrace is how long a terminated record stays visible so
	// late lookups can tell "terminated" apart from "never existed".
	DefaultTombstoneGrace = 2 * time.Minute
	// DefaultInventoryRefreshInterval is how often node capacities are
	// re-read from the inventory.
	DefaultInventoryRefreshInterval = 30 * time.Second
	// DefaultPlacementRetries bounds how often a creation re-runs placement
	// after losing a reservation race.
	DefaultPlacementRetries = 5
	// DefaultPlacementRetryMinBackoff is the initial backoff between
	// placement attempts.
	DefaultPlacementRetryMinBackoff = 10 * time.Millisecond
	// DefaultPlacementRetryMaxBackoff caps the backoff between placement
	// attempts.
	DefaultPlacementRetryMaxBackoff = 100 * time.Millisecond
)
