// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package models

import (
	"github.com/tomtom215/idk/internal/geo"
	"github.com/tomtom215/idk/internal/places"
	"github.com/tomtom215/idk/internal/recent"
	"github.com/tomtom215/idk/internal/selection"
)

// SelectRequest runs the selection engine over caller-supplied candidates.
// An empty candidate list is not a validation error; it is answered with NO_CANDIDATES.
type SelectRequest struct {
	Candidates         []selection.Candidate `json:"candidates" validate:"max=1000,dive"`
	ExcludedIDs        []string              `json:"excluded_ids,omitempty" validate:"max=1000"`
	ExcludedCategories []string              `json:"excluded_categories,omitempty" validate:"max=64,dive,max=128"`
	Mode               string                `json:"mode,omitempty" validate:"omitempty,oneof=uniform weighted"`

	// Reference is the user's location for the weighted mode's distance term.
	Reference *geo.Point `json:"reference,omitempty" validate:"omitempty"`
}

// SelectResponse carries the chosen candidate.
type SelectResponse struct {
	Candidate selection.Candidate `json:"candidate"`
	Mode      string              `json:"mode"`
	Eligible  int                 `json:"eligible"`
}

// PickRequest asks for a restaurant near the given coordinates.
type PickRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
	Mode      string   `json:"mode,omitempty" validate:"omitempty,oneof=uniform weighted"`
}

// RerollRequest rejects the current suggestion.
type RerollRequest struct {
	PlaceID        string   `json:"place_id" validate:"notblank,max=256"`
	Reason         string   `json:"reason" validate:"required,max=64"`
	ExcludeSimilar bool     `json:"exclude_similar"`
	Types          []string `json:"types,omitempty" validate:"max=64,dive,max=128"`
}

// EventRequest records a client-side action on a suggestion.
type EventRequest struct {
	PlaceID string `json:"place_id" validate:"notblank,max=256"`
	Action  string `json:"action" validate:"required,oneof=view directions order details"`
}

// RecentResponse lists the user's fresh suggestions.
type RecentResponse struct {
	Entries []recent.Entry `json:"entries"`
	Count   int            `json:"count"`
}

// ClearedResponse reports how many entries were removed.
type ClearedResponse struct {
	Removed int `json:"removed"`
}

// PlacesSearchResponse wraps a text search result.
type PlacesSearchResponse struct {
	Places []places.Place `json:"places"`
	Count  int            `json:"count"`
}

// AutocompleteResponse wraps autocomplete predictions.
type AutocompleteResponse struct {
	Predictions []places.Prediction `json:"predictions"`
}
