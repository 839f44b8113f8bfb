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

// Package store persists actor record snapshots so that bookkeeping survives
// a runtime crash: a restarting runtime can audit which actors were live and
// which reservations may have leaked.
package store

import (
	"context"
	"time"
)

// RecordState is the persisted snapshot of one actor record. It carries the
// accounting facts only, never the in-memory process handle.
type RecordState struct {
	ID        string            `json:"id"`
	Name      string            `json:"name,omitempty"`
	Node      string            `json:"node,omitempty"`
	Lifetime  string            `json:"lifetime"`
	State     string            `json:"state"`
	Resources map[string]string `json:"resources,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Store is the persistence contract of the registry.
type Store interface {
	// PersistRecord stores or updates a record snapshot
	PersistRecord(ctx context.Context, record *RecordState) error
	// GetRecord returns the snapshot for the given actor id, when present
	GetRecord(ctx context.Context, id string) (*RecordState, bool)
	// DeleteRecord removes the snapshot of the given actor id
	DeleteRecord(ctx context.Context, id string) error
	// ListRecords returns every persisted snapshot
	ListRecords(ctx context.Context) ([]*RecordState, error)
	// Close releases the store
	Close() error
}

func contextErr(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
