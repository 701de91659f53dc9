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


package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/strindex"
	"github.com/poiesic/strindex/analysis"
	"github.com/poiesic/strindex/core"
	"github.com/poiesic/strindex/ingestion"
	"github.com/poiesic/strindex/server"
	"github.com/poiesic/strindex/service"
)

const defaultShutdownTimeout = 15 * time.Second

// maxLineBytes bounds a single value read by ingest.
const maxLineBytes = 1 << 20

// listFlags maps list command flags to structured filter parameters.
var listFlags = map[string]string{
	"is-palindrome":      service.ParamIsPalindrome,
	"min-length":         service.ParamMinLength,
	"max-length":         service.ParamMaxLength,
	"word-count":         service.ParamWordCount,
	"contains-character": service.ParamContainsCharacter,
}

func hashAlgorithm(c *cli.Context) (analysis.HashAlgorithm, error) {
	return analysis.ParseHashAlgorithm(setting(c, "hash", fileConfigFrom(c).Hash))
}

func openDatabase(c *cli.Context) (*strindex.Database, error) {
	algorithm, err := hashAlgorithm(c)
	if err != nil {
		return nil, err
	}

	dbPath := setting(c, "db", fileConfigFrom(c).DB)
	db, err := strindex.NewDatabase(dbPath, strindex.WithHashAlgorithm(algorithm))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func singleArg(c *cli.Context) (string, error) {
	if c.Args().Len() != 1 {
		return "", fmt.Errorf("%s expects exactly one VALUE, got %d", c.Command.Name, c.Args().Len())
	}
	return c.Args().First(), nil
}

func serveCommand(c *cli.Context) error {
	config := serverConfig(c)
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid server configuration: %w", err)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	srv, err := db.NewServer(config)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

func analyzeCommand(c *cli.Context) error {
	values := c.Args().Slice()
	if len(values) == 0 {
		return errors.New("at least one VALUE is required")
	}

	if c.Bool("dry-run") {
		algorithm, err := hashAlgorithm(c)
		if err != nil {
			return err
		}
		analyzer := analysis.NewAnalyzer(algorithm)
		for _, v := range values {
			if err := printJSON(c.App.Writer, analyzer.Compute(v)); err != nil {
				return err
			}
		}
		return nil
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, v := range values {
		record, err := db.Service().Create(c.Context, v)
		if err != nil {
			return fmt.Errorf("%q: %w", v, err)
		}
		if err := printJSON(c.App.Writer, record); err != nil {
			return err
		}
	}
	return nil
}

func getCommand(c *cli.Context) error {
	value, err := singleArg(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	record, err := db.Service().GetByValue(c.Context, value)
	if err != nil {
		return fmt.Errorf("%q: %w", value, err)
	}
	return printJSON(c.App.Writer, record)
}

func deleteCommand(c *cli.Context) error {
	value, err := singleArg(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Service().DeleteByValue(c.Context, value); err != nil {
		return fmt.Errorf("%q: %w", value, err)
	}
	fmt.Fprintf(c.App.Writer, "deleted %q\n", value)
	return nil
}

func listCommand(c *cli.Context) error {
	params := make(map[string][]string)
	for flag, param := range listFlags {
		if c.IsSet(flag) {
			params[param] = []string{c.String(flag)}
		}
	}

	spec, err := service.ParseFilterParams(params)
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := db.Service().ListFiltered(c.Context, spec)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, server.NewListResponse(result))
}

func queryCommand(c *cli.Context) error {
	phrase := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if phrase == "" {
		return errors.New("a PHRASE is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := db.Service().ListByPhrase(c.Context, phrase)
	if err != nil {
		return err
	}
	return printJSON(c.App.Writer, server.NewPhraseResponse(result))
}

func ingestCommand(c *cli.Context) error {
	values, err := readValues(c.String("file"), c.App.Reader)
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := []ingestion.Option{
		ingestion.WithProgress(c.App.ErrWriter, c.Int("report-interval")),
	}
	workers := c.Int("workers")
	if !c.IsSet("workers") && fileConfigFrom(c).Ingest.Workers > 0 {
		workers = fileConfigFrom(c).Ingest.Workers
	}
	if workers > 0 {
		opts = append(opts, ingestion.WithPoolSize(workers))
	}

	pipeline, err := db.NewIngestionPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create ingestion pipeline: %w", err)
	}
	defer pipeline.Release()

	report, err := pipeline.Ingest(c.Context, values)
	if err != nil {
		return fmt.Errorf("ingestion interrupted: %w", err)
	}

	for _, o := range report.Outcomes {
		if o.Err != nil && !errors.Is(o.Err, core.ErrDuplicate) {
			fmt.Fprintf(c.App.Writer, "failed %q: %v\n", o.Value, o.Err)
		}
	}
	fmt.Fprintf(c.App.Writer, "created %d, duplicates %d, failed %d\n",
		report.Created, report.Duplicates, report.Failed)

	if report.Failed > 0 {
		return fmt.Errorf("%d values failed", report.Failed)
	}
	return nil
}

// readValues reads one value per line from path, or from stdin for "-".
// Blank lines are skipped.
func readValues(path string, stdin io.Reader) ([]string, error) {
	var r io.Reader
	if path == "-" {
		r = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var values []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		values = append(values, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return values, nil
}
