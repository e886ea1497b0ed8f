// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// post-board server. It aggregates all sub-configurations and is populated
// by merging defaults, environment variables, command-line flags and an
// optional JSON or YAML file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as cryptographic keys and
	// token parameters.
	App App `envPrefix:"APP_"`

	// Storage holds the persistence backend settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address, timeout and body size settings for the
	// HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Admission holds the rate limiter and throttle settings.
	Admission Admission `envPrefix:"ADMISSION_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// FilePath is the optional path to a JSON or YAML configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	FilePath string `env:"CONFIG"`
}

// Storage groups the configuration for the storage backend.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`
}

// App holds application-level configuration values that control security
// and the token lifecycle.
type App struct {
	// PasswordHashKey is the pepper mixed into every password with
	// HMAC-SHA256 before Argon2id stretching. Must be kept confidential.
	// Env: APP_PASSWORD_HASH_KEY
	PasswordHashKey string `env:"PASSWORD_HASH_KEY"`

	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Must be kept confidential. Changing it invalidates every issued token.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// It identifies the service that issued the token and is validated on
	// every authenticated request.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "168h").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:3000").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for handler work on a
	// single inbound request (e.g. "30s", "1m"). Throttle delays are not
	// counted against it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// BodyLimit is the maximum accepted request body size in bytes.
	// Env: SERVER_BODY_LIMIT
	BodyLimit int64 `env:"BODY_LIMIT"`
}

// DB holds connection settings for the storage backend.
type DB struct {
	// DSN selects and configures the backend:
	//   - "postgres://..." or "postgresql://..." for PostgreSQL;
	//   - "file:..." or a path ending in ".db" / ".sqlite" for SQLite;
	//   - "memory://" for the in-process store.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Admission holds the per-client admission control settings.
type Admission struct {
	// Window is the length of the fixed counting window.
	// Env: ADMISSION_WINDOW
	Window time.Duration `env:"WINDOW"`

	// Limit is the maximum number of requests per client per window.
	// Env: ADMISSION_LIMIT
	Limit int `env:"LIMIT"`

	// DelayAfter is the number of requests per window served without delay.
	// Env: ADMISSION_DELAY_AFTER
	DelayAfter int `env:"DELAY_AFTER"`

	// DelayStep is the delay added per request over DelayAfter.
	// Env: ADMISSION_DELAY_STEP
	DelayStep time.Duration `env:"DELAY_STEP"`

	// MaxDelay caps the throttle delay. Zero means unbounded.
	// Env: ADMISSION_MAX_DELAY
	MaxDelay time.Duration `env:"MAX_DELAY"`

	// TrustedProxies lists IP addresses or CIDR prefixes of reverse
	// proxies whose forwarding headers are honoured. Empty means the
	// transport peer is always the client.
	// Env: ADMISSION_TRUSTED_PROXIES (comma separated)
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SweepInterval is how often expired admission windows are dropped.
	// Env: WORKERS_SWEEP_INTERVAL
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order (last source
// wins for non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON or YAML file (path resolved from sources 2 and 3)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(os.Args[1:]).
		withFile().
		build()
}
