// Breadbasket - Market Basket Analysis for Sales Data
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/breadbasket

// Package config loads Breadbasket configuration from defaults, an optional
// YAML file and environment variables, in that order of precedence.
package config

import (
	"time"

	"github.com/tomtom215/breadbasket/internal/basket"
)

// Config is the complete application configuration.
type Config struct {
	Mining    MiningConfig    `koanf:"mining"`
	Database  DatabaseConfig  `koanf:"database"`
	Export    ExportConfig    `koanf:"export"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Cache     CacheConfig     `koanf:"cache"`
	Scheduler SchedulerConfig `koanf:"scheduler"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// MiningConfig holds the default thresholds of a mining run. Requests may
// override the two thresholds.
type MiningConfig struct {
	MinSupport    float64 `koanf:"min_support"`
	MinConfidence float64 `koanf:"min_confidence"`

	// MaxLength caps itemset size; 0 means unbounded.
	MaxLength int `koanf:"max_length"`

	// Workers bounds support-counting goroutines; 0 uses GOMAXPROCS.
	Workers int `koanf:"workers"`

	PruneSubsets bool `koanf:"prune_subsets"`
}

// Params converts the section into engine parameters.
func (m MiningConfig) Params() basket.Params {
	return basket.Params{
		MineOptions: basket.MineOptions{
			MinSupport:   m.MinSupport,
			MaxLength:    m.MaxLength,
			Workers:      m.Workers,
			PruneSubsets: m.PruneSubsets,
		},
		MinConfidence: m.MinConfidence,
	}
}

// DatabaseConfig configures the DuckDB sales store.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`
}

// ExportConfig configures the JSON result files.
type ExportConfig struct {
	Enabled bool   `koanf:"enabled"`
	DataDir string `koanf:"data_dir"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SecurityConfig holds CORS and rate-limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// CacheConfig configures the in-memory result cache.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	TTL        time.Duration `koanf:"ttl"`
	MaxEntries int           `koanf:"max_entries"`
}

// SchedulerConfig configures periodic mining over every stored date.
// Disabled by default.
type SchedulerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	Interval     time.Duration `koanf:"interval"`
	RunOnStartup bool          `koanf:"run_on_startup"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads the configuration from every source and validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
