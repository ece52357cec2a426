// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/idk/internal/config"
	"github.com/tomtom215/idk/internal/logging"
	"github.com/tomtom215/idk/internal/profile"
	"github.com/tomtom215/idk/internal/recent"
)

var errStorageClosed = errors.New("storage is closed")

// storage bundles the stores and the badger handle they share.
type storage struct {
	db       *badger.DB // nil in memory mode
	recent   recent.Store
	profiles profile.Store
}

// initStorage opens BadgerDB, or builds in-memory stores when configured.
func initStorage(cfg *config.Config) (*storage, error) {
	profileOpts := []profile.Option{profile.WithDefaults(cfg.DefaultSettings())}

	if cfg.Storage.InMemory {
		logging.Warn().Msg("In-memory storage enabled: recent suggestions and settings are lost on restart")
		return &storage{
			recent:   recent.NewMemoryStore(),
			profiles: profile.NewMemoryStore(profileOpts...),
		}, nil
	}

	opts := badger.DefaultOptions(cfg.Storage.Path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().Str("path", cfg.Storage.Path).Msg("BadgerDB opened")
	return &storage{
		db:       db,
		recent:   recent.NewBadgerStore(db, cfg.Storage.RecentPrefix),
		profiles: profile.NewBadgerStore(db, cfg.Storage.ProfilePrefix, profileOpts...),
	}, nil
}

// check is the readiness probe.
func (s *storage) check(context.Context) error {
	if s.db != nil && s.db.IsClosed() {
		return errStorageClosed
	}
	return nil
}

// close releases the stores, then the shared database.
func (s *storage) close() error {
	var errs []error
	if err := s.recent.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close recent store: %w", err))
	}
	if err := s.profiles.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close profile store: %w", err))
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close BadgerDB: %w", err))
		}
	}
	return errors.Join(errs...)
}
