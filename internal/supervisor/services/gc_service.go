// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package services

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// Value log GC tuning
const (
	defaultGCInterval     = 10 * time.Minute
	defaultGCDiscardRatio = 0.5

	// maxGCRounds bounds the rewrites done per tick.
	maxGCRounds = 8
)

// ValueLogCollector rewrites value log files with reclaimable space.
// Satisfied by *badger.DB.
type ValueLogCollector interface {
	RunValueLogGC(discardRatio float64) error
}

// ValueLogGCService runs badger's value log garbage collection on a schedule.
// Expired TTL entries only free disk space once their value log file is rewritten.
type ValueLogGCService struct {
	db           ValueLogCollector
	interval     time.Duration
	discardRatio float64
	logger       zerolog.Logger
	name         string
}

// NewValueLogGCService creates the GC loop. A non-positive interval means 10m.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewValueLogGCService(db ValueLogCollector, interval time.Duration, logger zerolog.Logger) *ValueLogGCService {
	if interval <= 0 {
		interval = defaultGCInterval
	}
	return &ValueLogGCService{
		db:           db,
		interval:     interval,
		discardRatio: defaultGCDiscardRatio,
		logger:       logger.With().Str("service", "badger-gc").Logger(),
		name:         "badger-gc",
	}
}

// Serve implements suture.Service.
func (s *ValueLogGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rewritten, err := s.collect(ctx)
			if err != nil {
				s.logger.Warn().Err(err).Int("rewritten", rewritten).Msg("value log GC failed")
				continue
			}
			if rewritten > 0 {
				s.logger.Info().Int("rewritten", rewritten).Msg("value log GC complete")
			}
		}
	}
}

// collect repeats GC until badger reports nothing left to rewrite.
func (s *ValueLogGCService) collect(ctx context.Context) (int, error) {
	rewritten := 0
	for rewritten < maxGCRounds && ctx.Err() == nil {
		err := s.db.RunValueLogGC(s.discardRatio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) {
			return rewritten, nil
		}
		if err != nil {
			return rewritten, err
		}
		rewritten++
	}
	return rewritten, nil
}

// String names the service in supervisor logs.
func (s *ValueLogGCService) String() string {
	return s.name
}
