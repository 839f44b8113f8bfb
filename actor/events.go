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

	"github.com/tochemey/hive/resource"
)

const (
	// TopicActorCreated carries ActorCreated events.
	TopicActorCreated = "hive.actors.created"
	// TopicActorStarted carries ActorStarted events.
	TopicActorStarted = "hive.actors.started"
	// TopicActorTerminated carries ActorTerminated events.
	TopicActorTerminated = "hive.actors.terminated"
)

// ActorCreated is published once a creation has a node and a reservation.
// Creations that fail before that point publish nothing.
type ActorCreated struct {
	ID        ID
	Name      string
	Node      resource.NodeID
	Lifetime  Lifetime
	Resources resource.Request
	CreatedAt time.Time
}

// ActorStarted is published once the actor process is running and accepting
// invocations.
type ActorStarted struct {
	ID        ID
	Name      string
	Node      resource.NodeID
	StartedAt time.Time
}

// ActorTerminated is published exactly once per terminated actor, after its
// resources were released.
type ActorTerminated struct {
	ID           ID
	Name         string
	Node         resource.NodeID
	Forced       bool
	TerminatedAt time.Time
}
