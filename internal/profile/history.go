// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package profile

import (
	"errors"
	"time"

	"github.com/tomtom215/idk/internal/geo"
)

const (
	// DefaultHistoryLimit is the number of history records returned when no limit is given.
	DefaultHistoryLimit = 10

	// DefaultHistoryRetention is how long search and selection records are kept.
	DefaultHistoryRetention = 90 * 24 * time.Hour

	// maxHistoryPerUser bounds each per-user list in the memory store.
	maxHistoryPerUser = 500
)

// ErrInvalidHistory indicates a selection record without a place or action.
var ErrInvalidHistory = errors.New("selection record requires place_id and action")

// SearchRecord is one nearby search made on behalf of a user.
type SearchRecord struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Location         geo.Point `json:"location"`
	RadiusMiles      float64   `json:"radius_miles"`
	PriceRange       []int     `json:"price_range"`
	ExcludedCuisines []string  `json:"excluded_cuisines"`
	Results          int       `json:"results"`
	Timestamp        time.Time `json:"timestamp"`
}

// SelectionRecord is one action a user took on a suggestion.
type SelectionRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PlaceID   string    `json:"place_id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// WithHistoryRetention sets how long history records are kept.
func WithHistoryRetention(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.retention = d
		}
	}
}

func (o *options) prepareSearch(rec *SearchRecord) error {
	if rec == nil || rec.UserID == "" {
		return ErrInvalidUser
	}
	if rec.ID == "" {
		rec.ID = o.newID()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = o.now()
	}
	rec.PriceRange = append([]int{}, rec.PriceRange...)
	rec.ExcludedCuisines = append([]string{}, rec.ExcludedCuisines...)
	return nil
}

func (o *options) prepareSelection(rec *SelectionRecord) error {
	if rec == nil || rec.UserID == "" {
		return ErrInvalidUser
	}
	if rec.PlaceID == "" || rec.Action == "" {
		return ErrInvalidHistory
	}
	if rec.ID == "" {
		rec.ID = o.newID()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = o.now()
	}
	return nil
}

func historyLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	return limit
}

// newestFresh returns up to limit records younger than the cutoff, newest
// first. list must be in insertion order.
func newestFresh[T any](list []T, stamp func(*T) time.Time, cutoff time.Time, limit int) []T {
	limit = historyLimit(limit)
	out := make([]T, 0, min(limit, len(list)))
	for i := len(list) - 1; i >= 0 && len(out) < limit; i-- {
		if stamp(&list[i]).After(cutoff) {
			out = append(out, list[i])
		}
	}
	return out
}

// appendBounded appends rec and drops the oldest records beyond maxHistoryPerUser.
func appendBounded[T any](list []T, rec T) []T {
	list = append(list, rec)
	if over := len(list) - maxHistoryPerUser; over > 0 {
		list = append(list[:0:0], list[over:]...)
	}
	return list
}

func searchStamp(r *SearchRecord) time.Time       { return r.Timestamp }
func selectionStamp(r *SelectionRecord) time.Time { return r.Timestamp }
