// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// defaultCleanupInterval applies when the configured interval is not positive.
const defaultCleanupInterval = time.Hour

// ExpiredCleaner removes entries whose TTL has passed.
// Satisfied by recent.Store and places.CachingSearcher.
type ExpiredCleaner interface {
	CleanupExpired(ctx context.Context) (int, error)
}

// CleanupService periodically purges expired entries from a store.
// Reads already ignore expired entries; this only reclaims space.
type CleanupService struct {
	store    ExpiredCleaner
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger
	name     string
}

// NewRecentCleanupService sweeps expired recent suggestions.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRecentCleanupService(store ExpiredCleaner, interval time.Duration, logger zerolog.Logger) *CleanupService {
	return newCleanupService("recent-cleanup", store, interval, logger)
}

// NewDetailsCacheCleanupService sweeps stale place details.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewDetailsCacheCleanupService(c ExpiredCleaner, interval time.Duration, logger zerolog.Logger) *CleanupService {
	return newCleanupService("details-cache-cleanup", c, interval, logger)
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func newCleanupService(name string, store ExpiredCleaner, interval time.Duration, logger zerolog.Logger) *CleanupService {
	if interval <= 0 {
		interval = defaultCleanupInterval
	}
	return &CleanupService{
		store:    store,
		interval: interval,
		timeout:  interval / 2,
		logger:   logger.With().Str("service", name).Logger(),
		name:     name,
	}
}

// Serve implements suture.Service. A sweep runs at startup and then every interval.
// Sweep failures are logged and retried on the next tick.
func (s *CleanupService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("cleanup service starting")

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("cleanup service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *CleanupService) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	removed, err := s.store.CleanupExpired(sweepCtx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn().Err(err).Msg("expired entry cleanup failed")
		}
		return
	}

	event := s.logger.Debug()
	if removed > 0 {
		event = s.logger.Info()
	}
	event.Int("removed", removed).Dur("duration", time.Since(start)).Msg("expired entries cleaned up")
}

// String names the service in supervisor logs.
func (s *CleanupService) String() string {
	return s.name
}
