// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/idk/internal/geo"
	"github.com/tomtom215/idk/internal/models"
	"github.com/tomtom215/idk/internal/places"
	"github.com/tomtom215/idk/internal/validation"
)

const maxQueryLen = 256

// PlacesSearch handles GET /api/v1/places/search?q=&lat=&lng=.
func (h *Handler) PlacesSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	query, loc, ok := searchParams(w, r, "q")
	if !ok {
		return
	}
	found, err := h.picker.Places().TextSearch(r.Context(), query, loc)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if found == nil {
		found = []places.Place{}
	}
	respondSuccess(w, r, http.StatusOK, models.PlacesSearchResponse{Places: found, Count: len(found)}, start)
}

// PlacesAutocomplete handles GET /api/v1/places/autocomplete?input=&lat=&lng=.
func (h *Handler) PlacesAutocomplete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	input, loc, ok := searchParams(w, r, "input")
	if !ok {
		return
	}
	predictions, err := h.picker.Places().Autocomplete(r.Context(), input, loc)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if predictions == nil {
		predictions = []places.Prediction{}
	}
	respondSuccess(w, r, http.StatusOK, models.AutocompleteResponse{Predictions: predictions}, start)
}

// PlaceDetails handles GET /api/v1/places/{placeID}.
func (h *Handler) PlaceDetails(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	placeID := strings.TrimSpace(chi.URLParam(r, "placeID"))
	if placeID == "" || len(placeID) > maxQueryLen {
		respondError(w, r, http.StatusBadRequest, validation.ErrorCode, "Invalid place ID", nil)
		return
	}

	place, err := h.picker.Places().Details(r.Context(), placeID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, place, start)
}

// searchParams reads a text parameter plus lat/lng, writing a 400 when any is invalid.
func searchParams(w http.ResponseWriter, r *http.Request, textKey string) (string, geo.Point, bool) {
	text := strings.TrimSpace(r.URL.Query().Get(textKey))
	if text == "" || len(text) > maxQueryLen {
		respondError(w, r, http.StatusBadRequest, validation.ErrorCode, "Parameter "+textKey+" is required", nil)
		return "", geo.Point{}, false
	}

	lat, latOK := getFloatParam(r, "lat")
	lng, lngOK := getFloatParam(r, "lng")
	if !latOK || !lngOK || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		respondError(w, r, http.StatusBadRequest, validation.ErrorCode, "Parameters lat and lng must be valid coordinates", nil)
		return "", geo.Point{}, false
	}
	return text, geo.Point{Lat: lat, Lng: lng}, true
}
