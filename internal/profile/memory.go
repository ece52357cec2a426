// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package profile

import (
	"context"
	"sync"

	"github.com/tomtom215/idk/internal/metrics"
)

// MemoryStore is an in-memory profile store for tests and development.
type MemoryStore struct {
	mu       sync.RWMutex
	opts     options
	settings   map[string]Settings
	feedback   map[string][]Feedback
	searches   map[string][]SearchRecord
	selections map[string][]SelectionRecord
	closed     bool
}

// NewMemoryStore creates a new in-memory profile store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{
		opts:       applyOptions(opts),
		settings:   make(map[string]Settings),
		feedback:   make(map[string][]Feedback),
		searches:   make(map[string][]SearchRecord),
		selections: make(map[string][]SelectionRecord),
	}
}

// Settings returns the user's settings or the defaults.
func (s *MemoryStore) Settings(_ context.Context, userID string) (Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Settings{}, ErrStoreClosed
	}
	if userID == "" {
		return Settings{}, ErrInvalidUser
	}
	if st, ok := s.settings[userID]; ok {
		return st.Clone(), nil
	}
	return s.opts.defaults.Clone(), nil
}

// SaveSettings replaces the user's settings.
func (s *MemoryStore) SaveSettings(_ context.Context, userID string, settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if userID == "" {
		return ErrInvalidUser
	}
	s.settings[userID] = settings.Clone()
	metrics.RecordProfileOperation("save_settings", nil)
	return nil
}

// AddExcludedCuisine appends cuisine to the user's exclusions.
func (s *MemoryStore) AddExcludedCuisine(_ context.Context, userID, cuisine string) (Settings, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Settings{}, false, ErrStoreClosed
	}
	if userID == "" {
		return Settings{}, false, ErrInvalidUser
	}

	st, ok := s.settings[userID]
	if !ok {
		st = s.opts.defaults.Clone()
	}
	cuisine = normalizeCuisine(cuisine)
	if cuisine == "" {
		return st.Clone(), false, nil
	}

	added := st.addCuisine(cuisine)
	s.settings[userID] = st
	metrics.RecordProfileOperation("add_excluded_cuisine", nil)
	return st.Clone(), added, nil
}

// AddFeedback stores a feedback record.
func (s *MemoryStore) AddFeedback(_ context.Context, fb *Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if err := s.opts.prepareFeedback(fb); err != nil {
		metrics.RecordProfileOperation("add_feedback", err)
		return err
	}
	s.feedback[fb.UserID] = append(s.feedback[fb.UserID], *fb)
	metrics.RecordProfileOperation("add_feedback", nil)
	return nil
}

// Feedback returns the user's newest feedback records.
func (s *MemoryStore) Feedback(_ context.Context, userID string, limit int) ([]Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	list := append([]Feedback(nil), s.feedback[userID]...)
	return newestFeedback(list, limit), nil
}

// Close closes the store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.settings = nil
	s.feedback = nil
	s.searches = nil
	s.selections = nil
	return nil
}

// AddSearch records a nearby search. Each user keeps the newest 500.
func (s *MemoryStore) AddSearch(_ context.Context, rec *SearchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	err := s.opts.prepareSearch(rec)
	if err == nil {
		s.searches[rec.UserID] = appendBounded(s.searches[rec.UserID], *rec)
	}
	metrics.RecordProfileOperation("add_search", err)
	return err
}

// Searches returns the user's newest search records within the retention window.
func (s *MemoryStore) Searches(_ context.Context, userID string, limit int) ([]SearchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	cutoff := s.opts.now().Add(-s.opts.retention)
	return newestFresh(s.searches[userID], searchStamp, cutoff, limit), nil
}

// AddSelection records an action on a suggestion. Each user keeps the newest 500.
func (s *MemoryStore) AddSelection(_ context.Context, rec *SelectionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	err := s.opts.prepareSelection(rec)
	if err == nil {
		s.selections[rec.UserID] = appendBounded(s.selections[rec.UserID], *rec)
	}
	metrics.RecordProfileOperation("add_selection", err)
	return err
}

// Selections returns the user's newest selection records within the retention window.
func (s *MemoryStore) Selections(_ context.Context, userID string, limit int) ([]SelectionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	cutoff := s.opts.now().Add(-s.opts.retention)
	return newestFresh(s.selections[userID], selectionStamp, cutoff, limit), nil
}
