// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package recent

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/tomtom215/idk/internal/selection"
)

// DefaultTTL is how long a suggestion stays excluded.
const DefaultTTL = 7 * 24 * time.Hour

var (
	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("recent store is closed")

	// ErrInvalidEntry indicates an entry without a user or place ID.
	ErrInvalidEntry = errors.New("recent entry requires user_id and place_id")
)

// Entry is one recently suggested restaurant.
type Entry struct {
	UserID      string    `json:"user_id"`
	PlaceID     string    `json:"place_id"`
	Name        string    `json:"name,omitempty"`
	SuggestedAt time.Time `json:"suggested_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the entry is no longer fresh at now.
func (e *Entry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Store defines the interface for recent suggestion stores.
type Store interface {
	// Add records a suggestion. SuggestedAt defaults to now and ExpiresAt is
	// set to SuggestedAt + ttl. An existing entry for the same place is replaced.
	Add(ctx context.Context, entry *Entry, ttl time.Duration) error

	// List returns the user's fresh entries, newest first.
	List(ctx context.Context, userID string) ([]Entry, error)

	// Clear removes every entry for the user and returns how many were removed.
	Clear(ctx context.Context, userID string) (int, error)

	// CleanupExpired removes expired entries for all users.
	CleanupExpired(ctx context.Context) (int, error)

	// Size returns the approximate number of stored entries.
	Size(ctx context.Context) (int, error)

	// Close releases the store.
	Close() error
}

// Option configures a store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces the time source used for stamping and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func applyOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// IDs returns the set of fresh place IDs for the user.
func IDs(ctx context.Context, s Store, userID string) (selection.IDSet, error) {
	entries, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return IDSet(entries), nil
}

// IDSet collects the place IDs of entries.
func IDSet(entries []Entry) selection.IDSet {
	set := make(selection.IDSet, len(entries))
	for i := range entries {
		set[entries[i].PlaceID] = struct{}{}
	}
	return set
}

// stamp validates entry and fills its timestamps.
func stamp(entry *Entry, ttl time.Duration, now time.Time) error {
	if entry == nil || entry.UserID == "" || entry.PlaceID == "" {
		return ErrInvalidEntry
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if entry.SuggestedAt.IsZero() {
		entry.SuggestedAt = now
	}
	entry.ExpiresAt = entry.SuggestedAt.Add(ttl)
	return nil
}

func sortNewestFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SuggestedAt.After(entries[j].SuggestedAt)
	})
}
