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


package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/poiesic/strindex/analysis"
	"github.com/poiesic/strindex/core"
	"github.com/poiesic/strindex/filter"
	"github.com/poiesic/strindex/query"
	"github.com/poiesic/strindex/storage"
)

// Service implements the create, lookup, delete and listing operations.
// It is safe for concurrent use.
type Service struct {
	repo     storage.StringRepository
	analyzer analysis.Analyzer
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures a Service.
type Option func(*Service) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithAnalyzer sets the analyzer used to compute properties and identities.
// It must match the hash algorithm the repository was opened with.
// Default is SHA-256.
func WithAnalyzer(analyzer analysis.Analyzer) Option {
	return func(s *Service) error {
		s.analyzer = analyzer
		return nil
	}
}

// WithClock overrides the source of creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) error {
		if now != nil {
			s.now = now
		}
		return nil
	}
}

// NewService creates a new service over repo.
func NewService(repo storage.StringRepository, opts ...Option) (*Service, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	s := &Service{
		repo:   repo,
		now:    time.Now,
		logger: slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// ListResult is the outcome of a structured listing.
type ListResult struct {
	Records []*core.StoredRecord
	Filters core.FilterSpec
}

// PhraseResult is the outcome of a natural-language listing.
type PhraseResult struct {
	Records        []*core.StoredRecord
	Interpretation query.Interpretation
}

// Create analyzes value and stores it.
// Returns core.ErrDuplicate if the value is already stored.
func (s *Service) Create(ctx context.Context, value string) (*core.StoredRecord, error) {
	props := s.analyzer.Compute(value)
	record := &core.StoredRecord{
		ID:         props.ContentHash,
		Value:      value,
		Properties: props,
		// Stored with microsecond precision
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	}

	if err := s.repo.AddRecord(ctx, record); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			s.logger.Debug("duplicate string", "id", record.ID)
			return nil, core.ErrDuplicate
		}
		s.logger.Error("error storing string", "id", record.ID, "err", err)
		return nil, err
	}

	s.logger.Debug("stored string", "id", record.ID, "length", props.Length)
	return record, nil
}

// GetByValue retrieves the record for value.
// Returns core.ErrNotFound if the value was never stored.
func (s *Service) GetByValue(ctx context.Context, value string) (*core.StoredRecord, error) {
	record, err := s.repo.GetRecord(ctx, s.analyzer.Hash(value))
	if err != nil {
		return nil, translate(err)
	}
	return record, nil
}

// DeleteByValue removes the record for value.
// Returns core.ErrNotFound if the value was never stored.
func (s *Service) DeleteByValue(ctx context.Context, value string) error {
	id := s.analyzer.Hash(value)
	if err := s.repo.DeleteRecord(ctx, id); err != nil {
		return translate(err)
	}
	s.logger.Debug("deleted string", "id", id)
	return nil
}

// ListFiltered returns the stored records matching spec in insertion order.
// The spec is validated before the store is read.
func (s *Service) ListFiltered(ctx context.Context, spec core.FilterSpec) (*ListResult, error) {
	if err := core.ValidateFilterSpec(spec); err != nil {
		return nil, err
	}

	records, err := s.filtered(ctx, spec)
	if err != nil {
		return nil, err
	}
	return &ListResult{Records: records, Filters: spec}, nil
}

// ListByPhrase interprets phrase and returns the matching records along with
// the inferred spec.
func (s *Service) ListByPhrase(ctx context.Context, phrase string) (*PhraseResult, error) {
	interp, err := query.Parse(phrase)
	if err != nil {
		s.logger.Debug("phrase not interpreted", "phrase", phrase, "err", err)
		return nil, err
	}

	records, err := s.filtered(ctx, interp.ParsedFilters)
	if err != nil {
		return nil, err
	}
	return &PhraseResult{Records: records, Interpretation: *interp}, nil
}

// Count returns the number of stored records.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.CountRecords(ctx)
}

func (s *Service) filtered(ctx context.Context, spec core.FilterSpec) ([]*core.StoredRecord, error) {
	all, err := s.repo.ListRecords(ctx)
	if err != nil {
		s.logger.Error("error listing strings", "err", err)
		return nil, err
	}
	return filter.Apply(all, spec), nil
}

// translate maps storage errors onto the core taxonomy.
func translate(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return core.ErrNotFound
	}
	return err
}
