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


// Package storage provides the storage abstraction layer for strindex.
//
// This package defines the StringRepository interface, which decouples the
// record store from the query façade, together with the binary codec used
// to persist records. The BadgerDB implementation lives in storage/badger
// and runs either on disk or fully in memory.
//
// # Usage
//
// Create a repository instance:
//
//	backend, err := badger.OpenBackend("/path/to/db", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//	repo, err := badger.NewStringRepository(backend, analysis.SHA256)
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemoryRepository()
//
// # Ordering
//
// Records are enumerated in insertion order. Each record is assigned a
// monotonically increasing sequence number when it is added, and the
// primary key is derived from that number.
//
// # Thread Safety
//
// All repository implementations must be thread-safe. Concurrent inserts
// of the same ID must result in exactly one success.
package storage
