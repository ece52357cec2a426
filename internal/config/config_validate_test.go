// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Places.APIKey = testAPIKey
	return cfg
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults with key", mutate: func(*Config) {}},
		{name: "missing api key", mutate: func(c *Config) { c.Places.APIKey = " " }, wantErr: "GOOGLE_PLACES_API_KEY"},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "HTTP_PORT"},
		{name: "bad environment", mutate: func(c *Config) { c.Server.Environment = "prod" }, wantErr: "ENVIRONMENT"},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "LOG_LEVEL"},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "LOG_FORMAT"},
		{name: "rate limit window", mutate: func(c *Config) { c.Security.RateLimitWindow = 2 * time.Hour }, wantErr: "RATE_LIMIT_WINDOW"},
		{
			name: "rate limit ignored when disabled",
			mutate: func(c *Config) {
				c.Security.RateLimitDisabled = true
				c.Security.RateLimitReqs = 0
			},
		},
		{name: "base url scheme", mutate: func(c *Config) { c.Places.BaseURL = "ftp://maps.example" }, wantErr: "PLACES_BASE_URL"},
		{name: "negative cache size", mutate: func(c *Config) { c.Places.DetailsCacheSize = -1 }, wantErr: "PLACES_DETAILS_CACHE_SIZE"},
		{name: "cache ttl", mutate: func(c *Config) { c.Places.DetailsCacheTTL = 0 }, wantErr: "PLACES_DETAILS_CACHE_TTL"},
		{name: "breaker ratio", mutate: func(c *Config) { c.Places.Breaker.FailureRatio = 1.5 }, wantErr: "FAILURE_RATIO"},
		{name: "badger path", mutate: func(c *Config) { c.Storage.Path = "" }, wantErr: "BADGER_PATH"},
		{
			name: "in memory needs no path",
			mutate: func(c *Config) {
				c.Storage.Path = ""
				c.Storage.InMemory = true
			},
		},
		{name: "overlapping prefixes", mutate: func(c *Config) { c.Storage.ProfilePrefix = "recent:p:" }, wantErr: "overlap"},
		{name: "selection mode", mutate: func(c *Config) { c.Selection.Mode = "" }, wantErr: "SELECTION_MODE"},
		{name: "digest", mutate: func(c *Config) { c.Selection.Digest = "md5" }, wantErr: "ENTROPY_DIGEST"},
		{name: "zero weight policy", mutate: func(c *Config) { c.Selection.ZeroWeightPolicy = "first" }, wantErr: "ZERO_WEIGHT_POLICY"},
		{name: "recent ttl", mutate: func(c *Config) { c.Recent.TTL = 0 }, wantErr: "RECENT_TTL"},
		{name: "default price range", mutate: func(c *Config) { c.Defaults.PriceRange = []int{5} }, wantErr: "price_range"},
		{name: "default radius", mutate: func(c *Config) { c.Defaults.SearchRadius = 0 }, wantErr: "search_radius"},
		{name: "supervisor", mutate: func(c *Config) { c.Supervisor.FailureBackoff = 0 }, wantErr: "SUPERVISOR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_CollectsAllSections(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Server.Port = -1
	cfg.Selection.Mode = "lottery"
	cfg.Recent.CleanupInterval = 0

	err := cfg.Validate()
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("Validate() error = %T, want *multierror.Error", err)
	}
	if len(merr.Errors) != 3 {
		t.Errorf("got %d section errors, want 3: %v", len(merr.Errors), merr)
	}
}

func TestDefaultSettings_Copies(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	s := cfg.DefaultSettings()
	s.PriceRange[0] = 4
	s.ExcludedCuisines = append(s.ExcludedCuisines, "pizza")

	if cfg.Defaults.PriceRange[0] != 1 || len(cfg.Defaults.ExcludedCuisines) != 0 {
		t.Errorf("DefaultSettings() shares backing arrays: %+v", cfg.Defaults)
	}
}
