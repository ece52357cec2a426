// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package places

import (
	"github.com/tomtom215/idk/internal/geo"
	"github.com/tomtom215/idk/internal/selection"
)

// Place is a restaurant as returned by the places API.
// Search results carry a subset of the fields that Details returns.
type Place struct {
	PlaceID              string        `json:"place_id"`
	Name                 string        `json:"name"`
	Vicinity             string        `json:"vicinity,omitempty"`
	FormattedAddress     string        `json:"formatted_address,omitempty"`
	Geometry             *Geometry     `json:"geometry,omitempty"`
	PriceLevel           *int          `json:"price_level,omitempty"`
	Rating               *float64      `json:"rating,omitempty"`
	UserRatingsTotal     int           `json:"user_ratings_total,omitempty"`
	OpeningHours         *OpeningHours `json:"opening_hours,omitempty"`
	Website              string        `json:"website,omitempty"`
	FormattedPhoneNumber string        `json:"formatted_phone_number,omitempty"`
	Types                []string      `json:"types,omitempty"`
	BusinessStatus       string        `json:"business_status,omitempty"`
	Delivery             *bool         `json:"delivery,omitempty"`
	DineIn               *bool         `json:"dine_in,omitempty"`
	Takeout              *bool         `json:"takeout,omitempty"`
}

// Geometry holds the place coordinates.
type Geometry struct {
	Location LatLng `json:"location"`
}

// LatLng is the API's coordinate encoding.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OpeningHours is the subset of opening hours the picker shows.
type OpeningHours struct {
	OpenNow     *bool    `json:"open_now,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

// Prediction is an autocomplete suggestion.
type Prediction struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}

// Location returns the place coordinates, or nil when the API omitted them.
func (p *Place) Location() *geo.Point {
	if p.Geometry == nil {
		return nil
	}
	return &geo.Point{Lat: p.Geometry.Location.Lat, Lng: p.Geometry.Location.Lng}
}

// Address prefers the full formatted address and falls back to the vicinity.
func (p *Place) Address() string {
	if p.FormattedAddress != "" {
		return p.FormattedAddress
	}
	return p.Vicinity
}

// PrimaryType returns the first type tag, or "" when there is none.
func (p *Place) PrimaryType() string {
	if len(p.Types) == 0 {
		return ""
	}
	return p.Types[0]
}

// Candidate converts the place into a selection candidate.
func (p *Place) Candidate() selection.Candidate {
	return selection.Candidate{
		ID:         p.PlaceID,
		Rating:     p.Rating,
		Location:   p.Location(),
		Categories: p.Types,
	}
}

// Candidates converts places in order.
func Candidates(places []Place) []selection.Candidate {
	out := make([]selection.Candidate, len(places))
	for i := range places {
		out[i] = places[i].Candidate()
	}
	return out
}
