// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration of the myself CLI. It is
// populated by merging built-in defaults, environment variables,
// command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds key-derivation and logging settings plus the version stamped
	// into exported packages.
	App App `envPrefix:"APP_"`

	// Storage holds the local database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Session holds unlock-session lifetimes and the expiry sweep cadence.
	Session Session `envPrefix:"SESSION_"`

	// Export holds defaults for the export command.
	Export Export `envPrefix:"EXPORT_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// Version is written into version.json and the dataset of every export.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// KDFIterations is the PBKDF2 iteration count for newly derived keys.
	// Values below the library minimum are rejected by validate.
	// Env: APP_KDF_ITERATIONS
	KDFIterations int `env:"KDF_ITERATIONS"`

	// LogPath is the file the CLI appends JSON logs to. Empty means a "logs"
	// file next to the executable.
	// Env: APP_LOG_PATH
	LogPath string `env:"LOG_PATH"`
}

// Storage groups local persistence settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the SQLite connection settings.
type DB struct {
	// DSN is the go-sqlite3 data source name, e.g. "file:myself.db".
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Session controls how long an unlock stays valid.
type Session struct {
	// ShortTTL applies to sessions started without "remember me".
	// Env: SESSION_SHORT_TTL
	ShortTTL time.Duration `env:"SHORT_TTL"`

	// LongTTL applies to remembered sessions.
	// Env: SESSION_LONG_TTL
	LongTTL time.Duration `env:"LONG_TTL"`

	// SweepInterval is how often the background sweeper purges expired
	// sessions.
	// Env: SESSION_SWEEP_INTERVAL
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"`
}

// Export holds export command defaults.
type Export struct {
	// Dir is where export packages are written.
	// Env: EXPORT_DIR
	Dir string `env:"DIR"`

	// SkipCard omits the card.png preview from the container.
	// Env: EXPORT_SKIP_CARD
	SkipCard bool `env:"SKIP_CARD"`
}

// Default values applied before any other source.
const (
	DefaultVersion       = "1.0.0"
	DefaultKDFIterations = 100_000
	DefaultShortTTL      = 24 * time.Hour
	DefaultLongTTL       = 30 * 24 * time.Hour
	DefaultSweepInterval = 10 * time.Minute
	DefaultExportDir     = "."
)

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version:       DefaultVersion,
			KDFIterations: DefaultKDFIterations,
		},
		Session: Session{
			ShortTTL:      DefaultShortTTL,
			LongTTL:       DefaultLongTTL,
			SweepInterval: DefaultSweepInterval,
		},
		Export: Export{Dir: DefaultExportDir},
	}
}

// GetStructuredConfig loads, merges and validates the configuration. Sources
// are applied in this order, later non-zero fields winning:
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags parsed from args
//  4. JSON file (path resolved from sources 2 and 3)
//
// The arguments left after flag parsing (the subcommand and its operands)
// are returned alongside the config.
func GetStructuredConfig(args []string) (*StructuredConfig, []string, error) {
	b := newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(args).
		withJSON()

	cfg, err := b.build()
	if err != nil {
		return nil, nil, err
	}
	return cfg, b.rest, nil
}
