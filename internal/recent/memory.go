// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package recent

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/idk/internal/metrics"
)

// MemoryStore is an in-memory recent store.
// Entries are lost on restart.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]map[string]Entry // userID -> placeID -> entry
	now     func() time.Time
	closed  bool
}

// NewMemoryStore creates a new in-memory recent store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	o := applyOptions(opts)
	return &MemoryStore{
		entries: make(map[string]map[string]Entry),
		now:     o.now,
	}
}

// Add records a suggestion.
func (s *MemoryStore) Add(_ context.Context, entry *Entry, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		metrics.RecordRecentOperation("add", ErrStoreClosed)
		return ErrStoreClosed
	}
	if err := stamp(entry, ttl, s.now()); err != nil {
		metrics.RecordRecentOperation("add", err)
		return err
	}

	user, ok := s.entries[entry.UserID]
	if !ok {
		user = make(map[string]Entry)
		s.entries[entry.UserID] = user
	}
	user[entry.PlaceID] = *entry

	metrics.RecordRecentOperation("add", nil)
	metrics.RecentStoreSize.Set(float64(s.sizeLocked()))
	return nil
}

// List returns the user's fresh entries, newest first.
func (s *MemoryStore) List(_ context.Context, userID string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	now := s.now()
	out := make([]Entry, 0, len(s.entries[userID]))
	for _, e := range s.entries[userID] {
		if !e.Expired(now) {
			out = append(out, e)
		}
	}
	sortNewestFirst(out)

	metrics.RecordRecentOperation("list", nil)
	return out, nil
}

// Clear removes every entry for the user.
func (s *MemoryStore) Clear(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrStoreClosed
	}

	n := len(s.entries[userID])
	delete(s.entries, userID)

	metrics.RecordRecentOperation("clear", nil)
	metrics.RecentStoreSize.Set(float64(s.sizeLocked()))
	return n, nil
}

// CleanupExpired removes expired entries.
func (s *MemoryStore) CleanupExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrStoreClosed
	}

	count := 0
	now := s.now()
	for userID, user := range s.entries {
		for placeID, e := range user {
			if e.Expired(now) {
				delete(user, placeID)
				count++
			}
		}
		if len(user) == 0 {
			delete(s.entries, userID)
		}
	}

	metrics.RecordRecentOperation("cleanup", nil)
	metrics.RecentCleanedUp.Add(float64(count))
	metrics.RecentStoreSize.Set(float64(s.sizeLocked()))
	return count, nil
}

// Size returns the number of stored entries, including expired ones not yet cleaned.
func (s *MemoryStore) Size(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, ErrStoreClosed
	}
	return s.sizeLocked(), nil
}

func (s *MemoryStore) sizeLocked() int {
	n := 0
	for _, user := range s.entries {
		n += len(user)
	}
	return n
}

// Close closes the store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.entries = nil
	return nil
}
