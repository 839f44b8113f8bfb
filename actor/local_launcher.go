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

	gerrors "github.com/tochemey/hive/errors"
	"github.com/tochemey/hive/internal/xsync"
	"github.com/tochemey/hive/log"
	"github.com/tochemey/hive/resource"
)

// LocalLauncher hosts actor processes in the runtime's own process. Node
// identifiers are pure accounting labels here; every actor runs locally.
type LocalLauncher struct {
	procs  *xsync.Map[ID, *process]
	logger log.Logger
}

// enforce compilation error
var _ Launcher = (*LocalLauncher)(nil)

// NewLocalLauncher creates an in-process launcher.
func NewLocalLauncher(logger log.Logger) *LocalLauncher {
	if logger == nil {
		logger = log.DefaultLogger
	}
	return &LocalLauncher{
		procs:  xsync.NewMap[ID, *process](),
		logger: logger,
	}
}

// Spawn starts the actor process. PreStart runs synchronously; its failure
// is returned without starting the receive loop, so there is nothing for the
// caller to stop.
func (l *LocalLauncher) Spawn(ctx context.Context, node resource.NodeID, spec *ProcessSpec) (ProcessHandle, error) {
	capacity := spec.MailboxCapacity
	if capacity <= 0 {
		capacity = DefaultMailboxCapacity
	}

	proc := newProcess(spec, capacity)
	if err := spec.Actor.PreStart(ctx); err != nil {
		return nil, err
	}

	go proc.run()
	l.procs.Set(spec.ID, proc)
	l.logger.Infof("actor=(%s) name=(%s) started on node=(%s)", spec.ID, spec.Name, node)
	return proc, nil
}

// Terminate stops the process and forgets it.
func (l *LocalLauncher) Terminate(ctx context.Context, handle ProcessHandle, graceful bool) error {
	proc, ok := l.procs.Get(handle.ID())
	if !ok {
		return gerrors.NewErrActorNotFound(handle.ID().String())
	}
	err := proc.stop(ctx, graceful)
	l.procs.Delete(handle.ID())
	return err
}

// Len returns the number of live processes.
func (l *LocalLauncher) Len() int {
	return l.procs.Len()
}
