// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

// Package profile stores per-user picker settings, reroll feedback and the
// search and selection history.
package profile

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultFeedbackLimit is the number of feedback records returned when no limit is given.
	DefaultFeedbackLimit = 10

	// MaxExcludedCuisines bounds Settings.ExcludedCuisines.
	MaxExcludedCuisines = 64
)

var (
	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("profile store is closed")

	// ErrInvalidUser indicates an empty user ID.
	ErrInvalidUser = errors.New("profile operation requires a user id")

	// ErrInvalidFeedback indicates feedback without a place or reason.
	ErrInvalidFeedback = errors.New("feedback requires place_id and reason")
)

// Settings are the per-user search preferences.
type Settings struct {
	// SearchRadius is the nearby search radius in miles.
	SearchRadius float64 `json:"search_radius" validate:"gt=0,lte=31"`

	// PriceRange lists the accepted price levels (0 free to 4 very expensive).
	PriceRange []int `json:"price_range" validate:"required,min=1,max=5,dive,gte=0,lte=4"`

	// ExcludedCuisines are category terms never suggested to the user.
	ExcludedCuisines []string `json:"excluded_cuisines" validate:"max=64,dive,required,max=128"`

	// LocationEnabled records whether the user allows location lookups.
	LocationEnabled bool `json:"location_enabled"`
}

// DefaultSettings returns the settings given to users who never saved any.
func DefaultSettings() Settings {
	return Settings{
		SearchRadius:     5,
		PriceRange:       []int{1, 2, 3},
		ExcludedCuisines: []string{},
		LocationEnabled:  true,
	}
}

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	out := s
	out.PriceRange = append([]int(nil), s.PriceRange...)
	out.ExcludedCuisines = append([]string{}, s.ExcludedCuisines...)
	return out
}

// PriceBounds returns the lowest and highest accepted price level.
// ok is false when the range is empty.
func (s Settings) PriceBounds() (minPrice, maxPrice int, ok bool) {
	if len(s.PriceRange) == 0 {
		return 0, 0, false
	}
	minPrice, maxPrice = s.PriceRange[0], s.PriceRange[0]
	for _, p := range s.PriceRange[1:] {
		minPrice = min(minPrice, p)
		maxPrice = max(maxPrice, p)
	}
	return minPrice, maxPrice, true
}

// addCuisine appends cuisine unless already present in any letter case.
// At MaxExcludedCuisines the oldest exclusion is dropped so the list stays
// within what SaveSettings accepts. Returns whether it was added.
func (s *Settings) addCuisine(cuisine string) bool {
	for _, c := range s.ExcludedCuisines {
		if strings.EqualFold(c, cuisine) {
			return false
		}
	}
	list := append(s.ExcludedCuisines, cuisine)
	if over := len(list) - MaxExcludedCuisines; over > 0 {
		list = append([]string{}, list[over:]...)
	}
	s.ExcludedCuisines = list
	return true
}

// Feedback records why a user rejected a suggestion.
type Feedback struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	PlaceID         string    `json:"place_id"`
	Reason          string    `json:"reason"`
	ExcludedCuisine string    `json:"excluded_cuisine,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// Store defines the interface for profile stores.
type Store interface {
	// Settings returns the user's settings, or the store defaults when none are saved.
	Settings(ctx context.Context, userID string) (Settings, error)

	// SaveSettings replaces the user's settings.
	SaveSettings(ctx context.Context, userID string, settings Settings) error

	// AddExcludedCuisine appends a cuisine to the user's exclusions without
	// duplicating it. Returns the updated settings and whether it was added.
	AddExcludedCuisine(ctx context.Context, userID, cuisine string) (Settings, bool, error)

	// AddFeedback stores a feedback record, assigning its ID and timestamp.
	AddFeedback(ctx context.Context, fb *Feedback) error

	// Feedback returns up to limit records for the user, newest first.
	Feedback(ctx context.Context, userID string, limit int) ([]Feedback, error)

	// AddSearch records a nearby search, assigning its ID and timestamp.
	AddSearch(ctx context.Context, rec *SearchRecord) error

	// Searches returns up to limit search records for the user, newest first.
	Searches(ctx context.Context, userID string, limit int) ([]SearchRecord, error)

	// AddSelection records an action on a suggestion, assigning its ID and timestamp.
	AddSelection(ctx context.Context, rec *SelectionRecord) error

	// Selections returns up to limit selection records for the user, newest first.
	Selections(ctx context.Context, userID string, limit int) ([]SelectionRecord, error)

	// Close releases the store.
	Close() error
}

// Option configures a store.
type Option func(*options)

type options struct {
	defaults  Settings
	now       func() time.Time
	newID     func() string
	retention time.Duration
}

// WithDefaults sets the settings returned for users without saved settings.
func WithDefaults(s Settings) Option {
	return func(o *options) {
		o.defaults = s.Clone()
	}
}

// WithClock replaces the feedback and history timestamp source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func applyOptions(opts []Option) options {
	o := options{
		defaults:  DefaultSettings(),
		now:       time.Now,
		newID:     uuid.NewString,
		retention: DefaultHistoryRetention,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o *options) prepareFeedback(fb *Feedback) error {
	if fb == nil || fb.UserID == "" {
		return ErrInvalidUser
	}
	if fb.PlaceID == "" || fb.Reason == "" {
		return ErrInvalidFeedback
	}
	if fb.ID == "" {
		fb.ID = o.newID()
	}
	if fb.Timestamp.IsZero() {
		fb.Timestamp = o.now()
	}
	return nil
}

func normalizeCuisine(c string) string {
	return strings.TrimSpace(c)
}

func newestFeedback(list []Feedback, limit int) []Feedback {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Timestamp.After(list[j].Timestamp)
	})
	if limit <= 0 {
		limit = DefaultFeedbackLimit
	}
	if len(list) > limit {
		list = list[:limit]
	}
	return list
}
