// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Security   SecurityConfig   `koanf:"security"`
	Places     PlacesConfig     `koanf:"places"`
	Storage    StorageConfig    `koanf:"storage"`
	Selection  SelectionConfig  `koanf:"selection"`
	Recent     RecentConfig     `koanf:"recent"`
	Defaults   DefaultsConfig   `koanf:"defaults"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging or production
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json or console
	Caller bool   `koanf:"caller"`
}

// SecurityConfig holds CORS and inbound rate limiting.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// PlacesConfig configures the Google Places client.
type PlacesConfig struct {
	APIKey        string        `koanf:"api_key"`
	BaseURL       string        `koanf:"base_url"`
	Timeout       time.Duration `koanf:"timeout"`
	RatePerSecond float64       `koanf:"rate_per_second"`
	Burst         int           `koanf:"burst"`

	// DetailsCacheSize bounds the place details cache. Zero disables it.
	DetailsCacheSize int           `koanf:"details_cache_size"`
	DetailsCacheTTL  time.Duration `koanf:"details_cache_ttl"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig tunes the places circuit breaker.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// StorageConfig selects and tunes the key-value store.
type StorageConfig struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string `koanf:"path"`

	// InMemory keeps recent suggestions and profiles in process memory.
	InMemory bool `koanf:"in_memory"`

	RecentPrefix  string `koanf:"recent_prefix"`
	ProfilePrefix string `koanf:"profile_prefix"`
}

// SelectionConfig tunes the selection engine.
type SelectionConfig struct {
	Mode             string `koanf:"mode"`               // uniform or weighted
	Digest           string `koanf:"digest"`             // sha256 or blake2b
	ZeroWeightPolicy string `koanf:"zero_weight_policy"` // uniform or last
	RelaxRecency     bool   `koanf:"relax_recency"`
	FetchDetails     bool   `koanf:"fetch_details"`
}

// RecentConfig controls how long suggestions stay excluded.
type RecentConfig struct {
	TTL             time.Duration `koanf:"ttl"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// DefaultsConfig holds the settings given to users who have not saved any.
type DefaultsConfig struct {
	SearchRadius     float64  `koanf:"search_radius"` // miles
	PriceRange       []int    `koanf:"price_range"`
	ExcludedCuisines []string `koanf:"excluded_cuisines"`
	LocationEnabled  bool     `koanf:"location_enabled"`
}

// SupervisorConfig tunes the suture tree.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return joinHostPort(c.Server.Host, c.Server.Port)
}
