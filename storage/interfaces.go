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


package storage

import (
	"context"

	"github.com/poiesic/strindex/core"
)

// StringRepository stores analyzed strings keyed by content hash.
// Implementations must be thread-safe; each method is atomic with respect
// to the others.
type StringRepository interface {
	// AddRecord inserts record if no record with the same ID exists.
	// Returns ErrDuplicateKey otherwise and leaves the store unchanged.
	AddRecord(ctx context.Context, record *core.StoredRecord) error

	// GetRecord retrieves a record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetRecord(ctx context.Context, id string) (*core.StoredRecord, error)

	// DeleteRecord removes a record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	DeleteRecord(ctx context.Context, id string) error

	// ListRecords returns every record in insertion order.
	// The result is a snapshot; later writes do not affect it.
	ListRecords(ctx context.Context) ([]*core.StoredRecord, error)

	// CountRecords returns the number of stored records.
	CountRecords(ctx context.Context) (int, error)

	// Close releases resources held by the repository.
	Close() error
}
