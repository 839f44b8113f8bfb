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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	bbolt "go.etcd.io/bbolt"

	gerrors "github.com/tochemey/hive/errors"
)

const (
	boltFileMode      os.FileMode = 0o600
	boltBucketName                = "actor_records"
	boltFileName                  = "records.db"
)

var (
	boltTimeout        = 5 * time.Second
	defaultBoltOptions = &bbolt.Options{Timeout: boltTimeout, NoGrowSync: true}
)

// BoltStore implements Store using go.etcd.io/bbolt for durable persistence.
//
// Concurrency:
//   - bbolt provides single-writer/multi-reader semantics. We only guard the
//     close state to prevent operations once the store is shut down.
//
// Efficiency:
//   - Record snapshots are marshaled as JSON and packed into a dedicated
//     bucket keyed by actor id. The DB is opened with a short timeout to
//     avoid blocking on locked files.
type BoltStore struct {
	db     *bbolt.DB
	bucket []byte
	path   string
	closed atomic.Bool
}

var _ Store = (*BoltStore)(nil)

// NewBoltStore opens (or creates) a BoltDB-backed Store rooted in the given
// directory. The backing file survives Close, which is the point: a
// restarting runtime reopens the same file and can audit the records a
// crashed predecessor left behind.
func NewBoltStore(dir string) (*BoltStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: unable to create boltdb directory: %w", err)
	}
	path := filepath.Join(dir, boltFileName)

	optionsCopy := *defaultBoltOptions
	db, err := bbolt.Open(path, boltFileMode, &optionsCopy)
	if err != nil {
		return nil, fmt.Errorf("store: opening boltdb: %w", err)
	}

	bucket := []byte(boltBucketName)
	if err := db.Update(func(tx *bbolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(bucket)
		return e
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: initializing boltdb bucket: %w", err)
	}

	return &BoltStore{db: db, bucket: bucket, path: path}, nil
}

// PersistRecord stores or updates the provided record snapshot.
func (s *BoltStore) PersistRecord(ctx context.Context, record *RecordState) error {
	if record == nil {
		return nil
	}
	if err := s.ensureOpen(); err != nil {
		return err
	}
	if err := contextErr(ctx); err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("store: marshaling record %s: %w", record.ID, err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("store: bucket %q missing", s.bucket)
		}
		return bucket.Put([]byte(record.ID), data)
	})
}

// GetRecord returns the persisted snapshot (if any) for the given actor id.
func (s *BoltStore) GetRecord(ctx context.Context, id string) (*RecordState, bool) {
	if err := s.ensureOpen(); err != nil {
		return nil, false
	}
	if err := contextErr(ctx); err != nil {
		return nil, false
	}

	var state *RecordState
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("store: bucket %q missing", s.bucket)
		}
		raw := bucket.Get([]byte(id))
		if raw == nil {
			return nil
		}
		record := new(RecordState)
		if unmarshalErr := json.Unmarshal(raw, record); unmarshalErr != nil {
			return unmarshalErr
		}
		state = record
		return nil
	})
	if err != nil || state == nil {
		return nil, false
	}
	return state, true
}

// DeleteRecord removes the entry associated with the given actor id.
func (s *BoltStore) DeleteRecord(ctx context.Context, id string) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	if err := contextErr(ctx); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("store: bucket %q missing", s.bucket)
		}
		return bucket.Delete([]byte(id))
	})
}

// ListRecords returns every persisted snapshot in key order.
func (s *BoltStore) ListRecords(ctx context.Context) ([]*RecordState, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}
	if err := contextErr(ctx); err != nil {
		return nil, err
	}

	var records []*RecordState
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(s.bucket)
		if bucket == nil {
			return fmt.Errorf("store: bucket %q missing", s.bucket)
		}
		return bucket.ForEach(func(key, raw []byte) error {
			record := new(RecordState)
			if unmarshalErr := json.Unmarshal(raw, record); unmarshalErr != nil {
				return fmt.Errorf("store: corrupt record %q: %w", key, unmarshalErr)
			}
			records = append(records, record)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Close releases the underlying BoltDB handle. The backing file is kept so
// the next runtime start can reopen it.
func (s *BoltStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

// Path returns the location of the backing database file.
func (s *BoltStore) Path() string {
	return s.path
}

func (s *BoltStore) ensureOpen() error {
	if s.closed.Load() {
		return gerrors.ErrRecordStoreClosed
	}
	return nil
}
