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
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "strindex",
		Usage: "Analyze, store and query strings",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"STRINDEX_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory (empty for in-memory)",
				EnvVars: []string{"STRINDEX_DB"},
			},
			&cli.StringFlag{
				Name:    "hash",
				Usage:   "Content hash algorithm (sha256, blake2b)",
				Value:   "sha256",
				EnvVars: []string{"STRINDEX_HASH"},
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to TOML configuration file",
				EnvVars: []string{"STRINDEX_CONFIG"},
			},
		},
		Before: before,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the HTTP API",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Listen address",
						Value:   ":8000",
						EnvVars: []string{"STRINDEX_ADDR"},
					},
					&cli.Float64Flag{
						Name:    "rate-limit",
						Usage:   "Requests per second allowed per client (0 disables)",
						EnvVars: []string{"STRINDEX_RATE_LIMIT"},
					},
					&cli.IntFlag{
						Name:    "rate-burst",
						Usage:   "Burst size per client",
						Value:   20,
						EnvVars: []string{"STRINDEX_RATE_BURST"},
					},
					&cli.BoolFlag{
						Name:    "gzip",
						Usage:   "Compress responses",
						Value:   true,
						EnvVars: []string{"STRINDEX_GZIP"},
					},
					&cli.DurationFlag{
						Name:  "shutdown-timeout",
						Usage: "Graceful shutdown timeout",
						Value: defaultShutdownTimeout,
					},
				},
			},
			{
				Name:      "analyze",
				Usage:     "Analyze and store strings",
				ArgsUsage: "VALUE...",
				Action:    analyzeCommand,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Print properties without storing",
					},
				},
			},
			{
				Name:      "get",
				Usage:     "Print the stored record for a string",
				ArgsUsage: "VALUE",
				Action:    getCommand,
			},
			{
				Name:   "list",
				Usage:  "List stored strings matching structured filters",
				Action: listCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "is-palindrome", Usage: "Filter by palindrome status (true, false)"},
					&cli.StringFlag{Name: "min-length", Usage: "Minimum length, inclusive"},
					&cli.StringFlag{Name: "max-length", Usage: "Maximum length, inclusive"},
					&cli.StringFlag{Name: "word-count", Usage: "Exact word count"},
					&cli.StringFlag{Name: "contains-character", Usage: "Single character the string must contain"},
				},
			},
			{
				Name:      "query",
				Usage:     "List stored strings matching a natural-language phrase",
				ArgsUsage: "PHRASE...",
				Action:    queryCommand,
			},
			{
				Name:      "delete",
				Usage:     "Delete the stored record for a string",
				ArgsUsage: "VALUE",
				Action:    deleteCommand,
			},
			{
				Name:   "ingest",
				Usage:  "Store every line of a file",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "File with one value per line (- for stdin)",
						Required: true,
					},
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Number of concurrent workers (0 for one per CPU)",
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N values",
						Value: 1000,
					},
				},
			},
		},
	}
}

// before loads the optional config file and installs the logger.
func before(c *cli.Context) error {
	cfg, err := loadFileConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[fileConfigKey] = cfg

	return setupLogger(c)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(setting(c, "log-level", fileConfigFrom(c).LogLevel))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
