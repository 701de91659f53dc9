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


package strindex

import (
	"log/slog"

	"github.com/poiesic/strindex/analysis"
	"github.com/poiesic/strindex/ingestion"
	"github.com/poiesic/strindex/server"
	"github.com/poiesic/strindex/service"
	"github.com/poiesic/strindex/storage"
	"github.com/poiesic/strindex/storage/badger"
)

// Database wires the record store, the analyzer and the query façade.
type Database struct {
	backend *badger.Backend
	repo    storage.StringRepository
	svc     *service.Service
	logger  *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	hashAlgorithm analysis.HashAlgorithm
	logger        *slog.Logger
}

// WithHashAlgorithm selects the content hash used for record identity.
// A store remembers the algorithm it was created with.
func WithHashAlgorithm(algorithm analysis.HashAlgorithm) DatabaseOption {
	return func(o *databaseOptions) {
		o.hashAlgorithm = algorithm
	}
}

// WithLogger sets the logger passed down to the service.
func WithLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewDatabase opens the store at filePath. An empty path opens an
// in-memory store.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		hashAlgorithm: analysis.SHA256,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	algorithm, err := analysis.ParseHashAlgorithm(string(options.hashAlgorithm))
	if err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackend(filePath, filePath == "")
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewStringRepository(backend, string(algorithm))
	if err != nil {
		backend.Close()
		return nil, err
	}

	svc, err := service.NewService(repo,
		service.WithAnalyzer(analysis.NewAnalyzer(algorithm)),
		service.WithLogger(options.logger))
	if err != nil {
		repo.Close()
		backend.Close()
		return nil, err
	}

	return &Database{
		backend: backend,
		repo:    repo,
		svc:     svc,
		logger:  options.logger,
	}, nil
}

func (db *Database) Close() error {
	if err := db.repo.Close(); err != nil {
		db.logger.Error("error closing string repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) StringRepository() storage.StringRepository {
	return db.repo
}

// Service returns the query façade.
func (db *Database) Service() *service.Service {
	return db.svc
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.svc, opts...)
}

func (db *Database) NewServer(config *server.Config, opts ...server.Option) (*server.Server, error) {
	return server.NewServer(db.svc, config, opts...)
}
