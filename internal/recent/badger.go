// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package recent

import (
	"context"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/tomtom215/idk/internal/logging"
	"github.com/tomtom215/idk/internal/metrics"
)

// DefaultKeyPrefix namespaces recent entries in a shared BadgerDB.
const DefaultKeyPrefix = "recent:"

const keySeparator = 0x00

// BadgerStore is a BadgerDB-backed recent store that survives restarts.
type BadgerStore struct {
	db     *badger.DB
	prefix []byte
	now    func() time.Time
	closed bool
	mu     sync.RWMutex
}

// NewBadgerStore creates a new BadgerDB-backed recent store.
//
// Parameters:
//   - db: BadgerDB instance (shared with other components, not closed by Close)
//   - prefix: Key prefix for entries (default: "recent:")
func NewBadgerStore(db *badger.DB, prefix string, opts ...Option) *BadgerStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	o := applyOptions(opts)
	return &BadgerStore{
		db:     db,
		prefix: []byte(prefix),
		now:    o.now,
	}
}

func (s *BadgerStore) userPrefix(userID string) []byte {
	key := make([]byte, 0, len(s.prefix)+len(userID)+1)
	key = append(key, s.prefix...)
	key = append(key, userID...)
	return append(key, keySeparator)
}

func (s *BadgerStore) makeKey(userID, placeID string) []byte {
	return append(s.userPrefix(userID), placeID...)
}

func (s *BadgerStore) isClosed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Add records a suggestion. The Badger key carries a native TTL so entries
// disappear even if cleanup never runs.
func (s *BadgerStore) Add(_ context.Context, entry *Entry, ttl time.Duration) error {
	if s.isClosed() {
		metrics.RecordRecentOperation("add", ErrStoreClosed)
		return ErrStoreClosed
	}

	now := s.now()
	if err := stamp(entry, ttl, now); err != nil {
		metrics.RecordRecentOperation("add", err)
		return err
	}

	remaining := entry.ExpiresAt.Sub(now)
	if remaining <= 0 {
		// Already stale; nothing to remember.
		metrics.RecordRecentOperation("add", nil)
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		metrics.RecordRecentOperation("add", err)
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(s.makeKey(entry.UserID, entry.PlaceID), data).WithTTL(remaining)
		return txn.SetEntry(e)
	})
	metrics.RecordRecentOperation("add", err)
	return err
}

// List returns the user's fresh entries, newest first.
func (s *BadgerStore) List(_ context.Context, userID string) ([]Entry, error) {
	if s.isClosed() {
		return nil, ErrStoreClosed
	}

	now := s.now()
	var out []Entry

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = s.userPrefix(userID)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var e Entry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				logging.Warn().Err(err).Str("user_id", userID).Msg("Skipping unreadable recent entry")
				continue
			}
			if !e.Expired(now) {
				out = append(out, e)
			}
		}
		return nil
	})
	if err != nil {
		metrics.RecordRecentOperation("list", err)
		return nil, err
	}

	sortNewestFirst(out)
	metrics.RecordRecentOperation("list", nil)
	return out, nil
}

// Clear removes every entry for the user.
func (s *BadgerStore) Clear(_ context.Context, userID string) (int, error) {
	if s.isClosed() {
		return 0, ErrStoreClosed
	}

	count, err := s.deleteWhere(s.userPrefix(userID), func(*Entry) bool { return true })
	metrics.RecordRecentOperation("clear", err)
	return count, err
}

// CleanupExpired removes expired entries.
// BadgerDB drops expired keys on its own during compaction; this makes the
// removal immediate and also honors an injected clock.
func (s *BadgerStore) CleanupExpired(_ context.Context) (int, error) {
	if s.isClosed() {
		return 0, ErrStoreClosed
	}

	now := s.now()
	count, err := s.deleteWhere(s.prefix, func(e *Entry) bool { return e.Expired(now) })
	if err != nil {
		metrics.RecordRecentOperation("cleanup", err)
		return count, err
	}

	metrics.RecordRecentOperation("cleanup", nil)
	metrics.RecentCleanedUp.Add(float64(count))
	return count, nil
}

// deleteWhere deletes every key under prefix whose entry matches. Undecodable
// values are deleted as well.
func (s *BadgerStore) deleteWhere(prefix []byte, match func(*Entry) bool) (int, error) {
	count := 0
	err := s.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)

		var keysToDelete [][]byte
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			var e Entry
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			})
			if err != nil || match(&e) {
				keysToDelete = append(keysToDelete, item.KeyCopy(nil))
			}
		}
		it.Close()

		for _, key := range keysToDelete {
			if err := txn.Delete(key); err != nil {
				return err
			}
			count++
		}
		return nil
	})
	return count, err
}

// Size returns the approximate number of entries.
func (s *BadgerStore) Size(_ context.Context) (int, error) {
	if s.isClosed() {
		return 0, ErrStoreClosed
	}

	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = s.prefix
		opts.PrefetchValues = false // keys only
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})

	metrics.RecentStoreSize.Set(float64(count))
	return count, err
}

// Close closes the store. The shared DB stays open.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
