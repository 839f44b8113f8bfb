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

package store

import (
	"context"
	"maps"
	"sort"
	"sync"
)

// MemoryStore keeps record snapshots in a mutex-protected map. It is the
// default store: suitable for tests and single-process deployments where
// durability across restarts is not required.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*RecordState
}

var _ Store = (*MemoryStore)(nil) // enforce compilation error

// NewMemoryStore returns a new in-memory Store implementation.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*RecordState),
	}
}

// PersistRecord stores (create or update) the given record snapshot. A nil
// record is ignored. The record is cloned before storage to ensure
// encapsulation.
func (m *MemoryStore) PersistRecord(ctx context.Context, record *RecordState) error {
	if record == nil {
		return nil
	}
	if err := contextErr(ctx); err != nil {
		return err
	}

	clone := cloneRecord(record)
	m.mu.Lock()
	m.records[record.ID] = clone
	m.mu.Unlock()
	return nil
}

// GetRecord retrieves the snapshot for the given actor id. The returned
// state (if found) is a clone, so modifications will not affect the store.
func (m *MemoryStore) GetRecord(_ context.Context, id string) (*RecordState, bool) {
	m.mu.RLock()
	record, ok := m.records[id]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return cloneRecord(record), true
}

// DeleteRecord removes the snapshot for the given actor id. It is a no-op
// when the id does not exist.
func (m *MemoryStore) DeleteRecord(ctx context.Context, id string) error {
	if err := contextErr(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.records, id)
	m.mu.Unlock()
	return nil
}

// ListRecords returns every persisted snapshot sorted by actor id.
func (m *MemoryStore) ListRecords(ctx context.Context) ([]*RecordState, error) {
	if err := contextErr(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	records := make([]*RecordState, 0, len(m.records))
	for _, record := range m.records {
		records = append(records, cloneRecord(record))
	}
	m.mu.RUnlock()
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

// Close clears all retained snapshots. It always returns nil.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	clear(m.records)
	m.mu.Unlock()
	return nil
}

func cloneRecord(record *RecordState) *RecordState {
	clone := *record
	if record.Resources != nil {
		clone.Resources = maps.Clone(record.Resources)
	}
	return &clone
}
