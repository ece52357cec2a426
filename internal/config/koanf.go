// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/idk/config.yaml",
	"/etc/idk/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			Host:        "0.0.0.0",
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Places: PlacesConfig{
			BaseURL:       "https://maps.googleapis.com/maps/api/place",
			Timeout:       10 * time.Second,
			RatePerSecond: 10,
			Burst:         5,

			DetailsCacheSize: 512,
			DetailsCacheTTL:  15 * time.Minute,

			Breaker: BreakerConfig{
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      2 * time.Minute,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		Storage: StorageConfig{
			Path:          "/data/idk",
			RecentPrefix:  "recent:",
			ProfilePrefix: "profile:",
		},
		Selection: SelectionConfig{
			Mode:             "uniform",
			Digest:           "sha256",
			ZeroWeightPolicy: "uniform",
			RelaxRecency:     true,
			FetchDetails:     true,
		},
		Recent: RecentConfig{
			TTL:             7 * 24 * time.Hour,
			CleanupInterval: time.Hour,
		},
		Defaults: DefaultsConfig{
			SearchRadius:     5,
			PriceRange:       []int{1, 2, 3},
			ExcludedCuisines: []string{},
			LocationEnabled:  true,
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5,
			FailureDecay:     30,
			FailureBackoff:   15 * time.Second,
			ShutdownTimeout:  10 * time.Second,
		},
	}
}

// Load reads defaults, the optional config file and the environment, then validates.
func Load() (*Config, error) {
	return load(findConfigFile())
}

// LoadFile is Load with an explicit config file. An empty path skips the file layer.
func LoadFile(path string) (*Config, error) {
	return load(path)
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are split on commas when they arrive as strings.
var sliceConfigPaths = []string{
	"security.cors_origins",
	"defaults.price_range",
	"defaults.excluded_cuisines",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	// Server
	"http_port":    "server.port",
	"http_host":    "server.host",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Places
	"google_places_api_key":        "places.api_key",
	"places_base_url":              "places.base_url",
	"places_timeout":               "places.timeout",
	"places_rate_per_second":       "places.rate_per_second",
	"places_burst":                 "places.burst",
	"places_details_cache_size":    "places.details_cache_size",
	"places_details_cache_ttl":     "places.details_cache_ttl",
	"places_breaker_max_requests":  "places.breaker.max_requests",
	"places_breaker_interval":      "places.breaker.interval",
	"places_breaker_timeout":       "places.breaker.timeout",
	"places_breaker_min_requests":  "places.breaker.min_requests",
	"places_breaker_failure_ratio": "places.breaker.failure_ratio",

	// Storage
	"badger_path":        "storage.path",
	"storage_in_memory":  "storage.in_memory",
	"recent_key_prefix":  "storage.recent_prefix",
	"profile_key_prefix": "storage.profile_prefix",

	// Selection
	"selection_mode":      "selection.mode",
	"entropy_digest":      "selection.digest",
	"zero_weight_policy":  "selection.zero_weight_policy",
	"relax_recency":       "selection.relax_recency",
	"fetch_place_details": "selection.fetch_details",

	// Recent suggestions
	"recent_ttl":              "recent.ttl",
	"recent_restaurant_ttl":   "recent.ttl",
	"recent_cleanup_interval": "recent.cleanup_interval",

	// User defaults
	"default_search_radius":     "defaults.search_radius",
	"default_price_range":       "defaults.price_range",
	"default_excluded_cuisines": "defaults.excluded_cuisines",
	"default_location_enabled":  "defaults.location_enabled",

	// Supervisor
	"supervisor_failure_threshold": "supervisor.failure_threshold",
	"supervisor_failure_decay":     "supervisor.failure_decay",
	"supervisor_failure_backoff":   "supervisor.failure_backoff",
	"supervisor_shutdown_timeout":  "supervisor.shutdown_timeout",
}

// envTransformFunc maps an environment variable to its koanf path.
// Unmapped variables return "" and are skipped.
//
//	GOOGLE_PLACES_API_KEY -> places.api_key
//	RECENT_TTL            -> recent.ttl
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
