// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package profile

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/tomtom215/idk/internal/logging"
	"github.com/tomtom215/idk/internal/metrics"
)

// DefaultKeyPrefix namespaces profile keys in a shared BadgerDB.
const DefaultKeyPrefix = "profile:"

// BadgerStore is a BadgerDB-backed profile store.
//
// Key layout:
//   - prefix + "settings:" + userID
//   - prefix + "feedback:" + userID + 0x00 + unix-nano (big endian) + feedbackID
//   - prefix + "search:" + userID + 0x00 + unix-nano (big endian) + recordID
//   - prefix + "selection:" + userID + 0x00 + unix-nano (big endian) + recordID
//
// History keys carry a TTL of the retention window.
type BadgerStore struct {
	db     *badger.DB
	prefix string
	opts   options
	closed bool
	mu     sync.RWMutex
}

// NewBadgerStore creates a BadgerDB-backed profile store. The DB is shared and
// is not closed by Close.
func NewBadgerStore(db *badger.DB, prefix string, opts ...Option) *BadgerStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &BadgerStore{
		db:     db,
		prefix: prefix,
		opts:   applyOptions(opts),
	}
}

func (s *BadgerStore) settingsKey(userID string) []byte {
	return []byte(s.prefix + "settings:" + userID)
}

func (s *BadgerStore) userPrefix(kind, userID string) []byte {
	return append([]byte(s.prefix+kind+":"+userID), 0x00)
}

func (s *BadgerStore) timedKey(kind, userID string, ts time.Time, id string) []byte {
	key := s.userPrefix(kind, userID)
	key = binary.BigEndian.AppendUint64(key, uint64(ts.UnixNano())) //nolint:gosec // G115: ordering only
	return append(key, id...)
}

func (s *BadgerStore) feedbackPrefix(userID string) []byte {
	return s.userPrefix("feedback", userID)
}

func (s *BadgerStore) feedbackKey(fb *Feedback) []byte {
	return s.timedKey("feedback", fb.UserID, fb.Timestamp, fb.ID)
}

func (s *BadgerStore) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Settings returns the user's settings or the defaults.
func (s *BadgerStore) Settings(_ context.Context, userID string) (Settings, error) {
	if s.isClosed() {
		return Settings{}, ErrStoreClosed
	}
	if userID == "" {
		return Settings{}, ErrInvalidUser
	}

	var st Settings
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		st, err = s.loadSettings(txn, userID)
		return err
	})
	metrics.RecordProfileOperation("get_settings", err)
	return st, err
}

// loadSettings reads the user's settings inside txn, falling back to defaults.
func (s *BadgerStore) loadSettings(txn *badger.Txn, userID string) (Settings, error) {
	item, err := txn.Get(s.settingsKey(userID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return s.opts.defaults.Clone(), nil
	}
	if err != nil {
		return Settings{}, err
	}

	var st Settings
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &st)
	})
	return st, err
}

func (s *BadgerStore) storeSettings(txn *badger.Txn, userID string, st *Settings) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return txn.Set(s.settingsKey(userID), data)
}

// SaveSettings replaces the user's settings.
func (s *BadgerStore) SaveSettings(_ context.Context, userID string, settings Settings) error {
	if s.isClosed() {
		return ErrStoreClosed
	}
	if userID == "" {
		return ErrInvalidUser
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		return s.storeSettings(txn, userID, &settings)
	})
	metrics.RecordProfileOperation("save_settings", err)
	return err
}

// AddExcludedCuisine appends cuisine to the user's exclusions in one transaction.
func (s *BadgerStore) AddExcludedCuisine(_ context.Context, userID, cuisine string) (Settings, bool, error) {
	if s.isClosed() {
		return Settings{}, false, ErrStoreClosed
	}
	if userID == "" {
		return Settings{}, false, ErrInvalidUser
	}

	cuisine = normalizeCuisine(cuisine)
	var (
		st    Settings
		added bool
	)
	err := s.db.Update(func(txn *badger.Txn) error {
		var err error
		st, err = s.loadSettings(txn, userID)
		if err != nil {
			return err
		}
		if cuisine == "" {
			return nil
		}
		if added = st.addCuisine(cuisine); !added {
			return nil
		}
		return s.storeSettings(txn, userID, &st)
	})
	if errors.Is(err, badger.ErrConflict) {
		logging.Warn().Str("user_id", userID).Msg("Concurrent settings update, cuisine exclusion not applied")
	}
	metrics.RecordProfileOperation("add_excluded_cuisine", err)
	if err != nil {
		return Settings{}, false, err
	}
	return st, added, nil
}

// AddFeedback stores a feedback record.
func (s *BadgerStore) AddFeedback(_ context.Context, fb *Feedback) error {
	if s.isClosed() {
		return ErrStoreClosed
	}
	if err := s.opts.prepareFeedback(fb); err != nil {
		metrics.RecordProfileOperation("add_feedback", err)
		return err
	}

	data, err := json.Marshal(fb)
	if err != nil {
		return err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.feedbackKey(fb), data)
	})
	metrics.RecordProfileOperation("add_feedback", err)
	return err
}

// Feedback returns the user's newest feedback records.
func (s *BadgerStore) Feedback(_ context.Context, userID string, limit int) ([]Feedback, error) {
	if s.isClosed() {
		return nil, ErrStoreClosed
	}

	var list []Feedback
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = s.feedbackPrefix(userID)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var fb Feedback
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &fb)
			}); err != nil {
				return err
			}
			list = append(list, fb)
		}
		return nil
	})
	metrics.RecordProfileOperation("list_feedback", err)
	if err != nil {
		return nil, err
	}
	return newestFeedback(list, limit), nil
}

// AddSearch records a nearby search.
func (s *BadgerStore) AddSearch(_ context.Context, rec *SearchRecord) error {
	if s.isClosed() {
		return ErrStoreClosed
	}
	err := s.opts.prepareSearch(rec)
	if err == nil {
		err = s.putHistory(s.timedKey("search", rec.UserID, rec.Timestamp, rec.ID), rec)
	}
	metrics.RecordProfileOperation("add_search", err)
	return err
}

// Searches returns the user's newest search records.
func (s *BadgerStore) Searches(_ context.Context, userID string, limit int) ([]SearchRecord, error) {
	if s.isClosed() {
		return nil, ErrStoreClosed
	}
	list, err := scanNewest[SearchRecord](s.db, s.userPrefix("search", userID), limit)
	metrics.RecordProfileOperation("list_searches", err)
	return list, err
}

// AddSelection records an action on a suggestion.
func (s *BadgerStore) AddSelection(_ context.Context, rec *SelectionRecord) error {
	if s.isClosed() {
		return ErrStoreClosed
	}
	err := s.opts.prepareSelection(rec)
	if err == nil {
		err = s.putHistory(s.timedKey("selection", rec.UserID, rec.Timestamp, rec.ID), rec)
	}
	metrics.RecordProfileOperation("add_selection", err)
	return err
}

// Selections returns the user's newest selection records.
func (s *BadgerStore) Selections(_ context.Context, userID string, limit int) ([]SelectionRecord, error) {
	if s.isClosed() {
		return nil, ErrStoreClosed
	}
	list, err := scanNewest[SelectionRecord](s.db, s.userPrefix("selection", userID), limit)
	metrics.RecordProfileOperation("list_selections", err)
	return list, err
}

func (s *BadgerStore) putHistory(key []byte, rec interface{}) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(key, data).WithTTL(s.opts.retention))
	})
}

// scanNewest walks prefix backwards so the newest limit records are read first.
func scanNewest[T any](db *badger.DB, prefix []byte, limit int) ([]T, error) {
	limit = historyLimit(limit)
	var list []T
	err := db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		// Every key under prefix sorts below prefix+0xFF: the next byte is
		// the high byte of a non-negative unix-nano.
		seek := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seek); it.Valid() && len(list) < limit; it.Next() {
			var rec T
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			list = append(list, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Close closes the store. The shared DB stays open.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
