// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/strindex/core"
	"github.com/poiesic/strindex/storage"
)

// StringRepository implements storage.StringRepository for BadgerDB.
type StringRepository struct {
	backend *Backend
	idSeq   *badger.Sequence

	// mu serializes writers so insert-if-absent is atomic
	mu sync.Mutex
}

var _ storage.StringRepository = (*StringRepository)(nil)

// NewStringRepository creates a new StringRepository.
// hashAlgorithm is recorded on first use; reopening the store with a
// different algorithm fails with storage.ErrHashMismatch.
func NewStringRepository(backend *Backend, hashAlgorithm string) (*StringRepository, error) {
	if err := checkHashAlgorithm(backend, hashAlgorithm); err != nil {
		return nil, err
	}

	idSeq, err := backend.GetSequence(stringRecordSeq)
	if err != nil {
		return nil, err
	}

	return &StringRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

func checkHashAlgorithm(backend *Backend, hashAlgorithm string) error {
	return backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(metaHashAlgorithm))
		if errors.Is(err, badger.ErrKeyNotFound) {
			if err := tx.Set([]byte(metaHashAlgorithm), []byte(hashAlgorithm)); err != nil {
				return err
			}
			return tx.Commit()
		}
		if err != nil {
			return err
		}

		stored, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		if string(stored) != hashAlgorithm {
			return fmt.Errorf("%w: store uses %q, requested %q", storage.ErrHashMismatch, stored, hashAlgorithm)
		}
		return nil
	}, true)
}

// Close releases the ID sequence.
func (r *StringRepository) Close() error {
	return r.idSeq.Release()
}

// AddRecord inserts record unless its ID is already present.
func (r *StringRepository) AddRecord(ctx context.Context, record *core.StoredRecord) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.backend.WithTx(func(tx *badger.Txn) error {
		hashKey := makeHashKey(record.ID)
		_, err := tx.Get(hashKey)
		if err == nil {
			return storage.ErrDuplicateKey
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		seq, err := r.idSeq.Next()
		if err != nil {
			return err
		}

		// Store primary record
		if err := tx.Set(makeRecordKey(seq), storage.MarshalStoredRecord(record)); err != nil {
			return err
		}

		// Update hash index
		if err := tx.Set(hashKey, storage.MarshalSequence(seq)); err != nil {
			return err
		}

		err = tx.Commit()
		if errors.Is(err, badger.ErrConflict) {
			return storage.ErrDuplicateKey
		}
		return err
	}, true)
}

// GetRecord retrieves a single record by ID.
func (r *StringRepository) GetRecord(ctx context.Context, id string) (*core.StoredRecord, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var result *core.StoredRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		seq, err := readSequence(tx, id)
		if err != nil {
			return err
		}
		result, err = readRecord(tx, makeRecordKey(seq))
		return err
	}, false)
	return result, err
}

// DeleteRecord removes a record and its hash index entry.
func (r *StringRepository) DeleteRecord(ctx context.Context, id string) error {
	if r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.backend.WithTx(func(tx *badger.Txn) error {
		seq, err := readSequence(tx, id)
		if err != nil {
			return err
		}

		if err := tx.Delete(makeRecordKey(seq)); err != nil {
			return err
		}
		if err := tx.Delete(makeHashKey(id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// ListRecords returns all records in insertion order from one read
// transaction.
func (r *StringRepository) ListRecords(ctx context.Context) ([]*core.StoredRecord, error) {
	if r.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	results := []*core.StoredRecord{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(stringRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var record *core.StoredRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalStoredRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, record)
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return results, nil
}

// CountRecords counts hash index entries without reading values.
func (r *StringRepository) CountRecords(ctx context.Context) (int, error) {
	if r.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(stringHashPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// Helper methods

// readSequence looks up the insertion sequence of a record by ID.
func readSequence(tx *badger.Txn, id string) (uint64, error) {
	item, err := tx.Get(makeHashKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return 0, storage.ErrNotFound
		}
		return 0, err
	}

	var seq uint64
	err = item.Value(func(val []byte) error {
		seq, err = storage.UnmarshalSequence(val)
		return err
	})
	return seq, err
}

// readRecord reads a record from the transaction.
func readRecord(tx *badger.Txn, key []byte) (*core.StoredRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	var record *core.StoredRecord
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalStoredRecord(val)
		return err
	})
	return record, err
}
