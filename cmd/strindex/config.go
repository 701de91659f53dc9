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

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/strindex/server"
)

const fileConfigKey = "strindex.config"

// fileConfig mirrors the global and serve flags. Explicitly set flags and
// environment variables take precedence over file values.
type fileConfig struct {
	LogLevel string `toml:"log_level"`
	DB       string `toml:"db"`
	Hash     string `toml:"hash"`

	Server *server.Config `toml:"server"`

	Ingest struct {
		Workers int `toml:"workers"`
	} `toml:"ingest"`
}

func newFileConfig() *fileConfig {
	return &fileConfig{Server: server.DefaultConfig()}
}

func loadFileConfig(path string) (*fileConfig, error) {
	cfg := newFileConfig()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config keys in %s: %v", path, undecoded)
	}
	return cfg, nil
}

func fileConfigFrom(c *cli.Context) *fileConfig {
	if cfg, ok := c.App.Metadata[fileConfigKey].(*fileConfig); ok {
		return cfg
	}
	return newFileConfig()
}

// setting returns the flag value when it was set explicitly or the file
// leaves it empty, otherwise the file value.
func setting(c *cli.Context, name, fromFile string) string {
	if c.IsSet(name) || fromFile == "" {
		return c.String(name)
	}
	return fromFile
}

// serverConfig applies explicitly set serve flags over the file's [server]
// table, which itself starts from server.DefaultConfig.
func serverConfig(c *cli.Context) *server.Config {
	config := *fileConfigFrom(c).Server

	var opts []server.ConfigOption
	if c.IsSet("addr") {
		opts = append(opts, server.WithAddr(c.String("addr")))
	}
	if c.IsSet("rate-limit") || c.IsSet("rate-burst") {
		opts = append(opts, server.WithRateLimit(
			pickFloat(c, "rate-limit", config.RateLimit),
			pickInt(c, "rate-burst", config.RateBurst)))
	}
	if c.IsSet("gzip") {
		opts = append(opts, server.WithGzip(c.Bool("gzip")))
	}
	if c.IsSet("shutdown-timeout") {
		opts = append(opts, server.WithShutdownTimeout(c.Duration("shutdown-timeout")))
	}

	for _, opt := range opts {
		opt(&config)
	}
	return &config
}

func pickFloat(c *cli.Context, name string, fallback float64) float64 {
	if c.IsSet(name) {
		return c.Float64(name)
	}
	return fallback
}

func pickInt(c *cli.Context, name string, fallback int) int {
	if c.IsSet(name) {
		return c.Int(name)
	}
	return fallback
}
