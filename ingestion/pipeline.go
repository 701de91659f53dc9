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


package ingestion

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/strindex/core"
)

// Creator stores a single analyzed string. *service.Service implements it.
type Creator interface {
	Create(ctx context.Context, value string) (*core.StoredRecord, error)
}

// Pipeline orchestrates concurrent creation of many strings.
type Pipeline struct {
	creator        Creator
	pool           *ants.Pool
	progressWriter io.Writer
	reportInterval int
	logger         *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithProgress reports progress to w every interval values.
func WithProgress(w io.Writer, interval int) Option {
	return func(p *Pipeline) error {
		if interval < 1 {
			interval = 1
		}
		p.progressWriter = w
		p.reportInterval = interval
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
// Call Release when done.
func NewPipeline(creator Creator, opts ...Option) (*Pipeline, error) {
	if creator == nil {
		return nil, ErrCreatorRequired
	}

	poolSize := runtime.NumCPU()
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		creator: creator,
		pool:    pool,
		logger:  slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Outcome is the result of ingesting one value.
type Outcome struct {
	Value  string
	Record *core.StoredRecord
	Err    error
}

// Report summarizes an ingestion run. Outcomes are in input order.
type Report struct {
	Created    int
	Duplicates int
	Failed     int
	Outcomes   []Outcome
}

// Ingest creates every value, running up to the pool size concurrently.
// Per-value failures (including duplicates) are recorded in the report and
// do not stop the batch. If ctx is cancelled, values not yet submitted are
// marked with the context error and that error is returned with the report.
func (p *Pipeline) Ingest(ctx context.Context, values []string) (*Report, error) {
	outcomes := make([]Outcome, len(values))

	var tracker *ProgressTracker
	if p.progressWriter != nil {
		tracker = NewProgressTracker(p.progressWriter, len(values), p.reportInterval)
		tracker.Start()
	}

	var wg sync.WaitGroup
	var ctxErr error
	for i, value := range values {
		outcomes[i].Value = value

		if err := ctx.Err(); err != nil {
			ctxErr = err
			outcomes[i].Err = err
			continue
		}

		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			record, err := p.creator.Create(ctx, value)
			outcomes[i].Record = record
			outcomes[i].Err = err
			if tracker != nil {
				tracker.Increment(1)
			}
		})
		if err != nil {
			wg.Done()
			outcomes[i].Err = err
			p.logger.Error("error submitting value to pool", "err", err)
		}
	}
	wg.Wait()

	if tracker != nil {
		tracker.Finish()
	}

	report := &Report{Outcomes: outcomes}
	for _, o := range outcomes {
		switch {
		case o.Err == nil:
			report.Created++
		case errors.Is(o.Err, core.ErrDuplicate):
			report.Duplicates++
		default:
			report.Failed++
		}
	}

	p.logger.Info("ingestion finished",
		"total", len(values),
		"created", report.Created,
		"duplicates", report.Duplicates,
		"failed", report.Failed)

	return report, ctxErr
}

// Release releases resources including the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
