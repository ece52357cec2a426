// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/tomtom215/idk/internal/logging"
	"github.com/tomtom215/idk/internal/picker"
	"github.com/tomtom215/idk/internal/profile"
	"github.com/tomtom215/idk/internal/selection"
	"github.com/tomtom215/idk/internal/validation"
)

// Rate limit bounds
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

var validEnvironments = map[string]bool{
	"development": true,
	"staging":     true,
	"production":  true,
}

// Validate checks every section and reports all problems together.
func (c *Config) Validate() error {
	var result *multierror.Error
	for _, check := range []func() error{
		c.validateServer,
		c.validateLogging,
		c.validateSecurity,
		c.validatePlaces,
		c.validateStorage,
		c.validateSelection,
		c.validateRecent,
		c.validateDefaults,
		c.validateSupervisor,
	} {
		if err := check(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func (c *Config) validateServer() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.Timeout <= 0 {
		errs = append(errs, errors.New("HTTP_TIMEOUT must be positive"))
	}
	if !validEnvironments[c.Server.Environment] {
		errs = append(errs, fmt.Errorf("ENVIRONMENT must be one of: development, staging, production, got %q", c.Server.Environment))
	}
	return errors.Join(errs...)
}

func (c *Config) validateLogging() error {
	var errs []error
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	if c.Logging.Format != "" && !logging.ValidFormat(c.Logging.Format) {
		errs = append(errs, errors.New("LOG_FORMAT must be one of: json, console"))
	}
	return errors.Join(errs...)
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	var errs []error
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests))
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow))
	}
	return errors.Join(errs...)
}

// ShouldWarnAboutCORS reports a wildcard origin in production.
func (c *Config) ShouldWarnAboutCORS() bool {
	if !c.IsProduction() {
		return false
	}
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func (c *Config) validatePlaces() error {
	p := c.Places
	var errs []error
	if strings.TrimSpace(p.APIKey) == "" {
		errs = append(errs, errors.New("GOOGLE_PLACES_API_KEY is required"))
	}
	if err := validateHTTPURL(p.BaseURL, "PLACES_BASE_URL"); err != nil {
		errs = append(errs, err)
	}
	if p.Timeout <= 0 {
		errs = append(errs, errors.New("PLACES_TIMEOUT must be positive"))
	}
	if p.RatePerSecond <= 0 {
		errs = append(errs, errors.New("PLACES_RATE_PER_SECOND must be positive"))
	}
	if p.Burst < 1 {
		errs = append(errs, errors.New("PLACES_BURST must be at least 1"))
	}
	if p.DetailsCacheSize < 0 {
		errs = append(errs, errors.New("PLACES_DETAILS_CACHE_SIZE must not be negative"))
	}
	if p.DetailsCacheSize > 0 && p.DetailsCacheTTL <= 0 {
		errs = append(errs, errors.New("PLACES_DETAILS_CACHE_TTL must be positive when the cache is enabled"))
	}
	if p.Breaker.MaxRequests < 1 {
		errs = append(errs, errors.New("PLACES_BREAKER_MAX_REQUESTS must be at least 1"))
	}
	if p.Breaker.Timeout <= 0 {
		errs = append(errs, errors.New("PLACES_BREAKER_TIMEOUT must be positive"))
	}
	if p.Breaker.FailureRatio <= 0 || p.Breaker.FailureRatio > 1 {
		errs = append(errs, errors.New("PLACES_BREAKER_FAILURE_RATIO must be in (0, 1]"))
	}
	return errors.Join(errs...)
}

func (c *Config) validateStorage() error {
	s := c.Storage
	var errs []error
	if !s.InMemory && strings.TrimSpace(s.Path) == "" {
		errs = append(errs, errors.New("BADGER_PATH is required unless STORAGE_IN_MEMORY is set"))
	}
	if s.RecentPrefix == "" || s.ProfilePrefix == "" {
		errs = append(errs, errors.New("RECENT_KEY_PREFIX and PROFILE_KEY_PREFIX must not be empty"))
	} else if strings.HasPrefix(s.RecentPrefix, s.ProfilePrefix) || strings.HasPrefix(s.ProfilePrefix, s.RecentPrefix) {
		// Both stores share one database; overlapping prefixes would mix their keys.
		errs = append(errs, fmt.Errorf("RECENT_KEY_PREFIX %q and PROFILE_KEY_PREFIX %q overlap", s.RecentPrefix, s.ProfilePrefix))
	}
	return errors.Join(errs...)
}

func (c *Config) validateSelection() error {
	var errs []error
	if mode, err := picker.ParseMode(c.Selection.Mode); err != nil || mode == "" {
		errs = append(errs, fmt.Errorf("SELECTION_MODE must be one of: uniform, weighted, got %q", c.Selection.Mode))
	}
	if _, err := selection.ParseDigest(c.Selection.Digest); err != nil {
		errs = append(errs, fmt.Errorf("ENTROPY_DIGEST: %w", err))
	}
	if _, err := selection.ParseZeroWeightPolicy(c.Selection.ZeroWeightPolicy); err != nil {
		errs = append(errs, fmt.Errorf("ZERO_WEIGHT_POLICY: %w", err))
	}
	return errors.Join(errs...)
}

func (c *Config) validateRecent() error {
	var errs []error
	if c.Recent.TTL <= 0 {
		errs = append(errs, errors.New("RECENT_TTL must be positive"))
	}
	if c.Recent.CleanupInterval <= 0 {
		errs = append(errs, errors.New("RECENT_CLEANUP_INTERVAL must be positive"))
	}
	return errors.Join(errs...)
}

func (c *Config) validateDefaults() error {
	settings := c.DefaultSettings()
	if verr := validation.ValidateStruct(&settings); verr != nil {
		return fmt.Errorf("default user settings: %w", verr)
	}
	return nil
}

func (c *Config) validateSupervisor() error {
	s := c.Supervisor
	if s.FailureThreshold <= 0 || s.FailureDecay <= 0 || s.FailureBackoff <= 0 || s.ShutdownTimeout <= 0 {
		return errors.New("SUPERVISOR_* values must be positive")
	}
	return nil
}

// DefaultSettings converts the defaults section into user settings.
func (c *Config) DefaultSettings() profile.Settings {
	return profile.Settings{
		SearchRadius:     c.Defaults.SearchRadius,
		PriceRange:       append([]int(nil), c.Defaults.PriceRange...),
		ExcludedCuisines: append([]string{}, c.Defaults.ExcludedCuisines...),
		LocationEnabled:  c.Defaults.LocationEnabled,
	}
}

// validateHTTPURL checks for an absolute http or https URL without query.
func validateHTTPURL(rawURL, fieldName string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if u.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters", fieldName)
	}
	return nil
}
