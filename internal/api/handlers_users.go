// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/idk/internal/geo"
	"github.com/tomtom215/idk/internal/models"
	"github.com/tomtom215/idk/internal/picker"
	"github.com/tomtom215/idk/internal/profile"
	"github.com/tomtom215/idk/internal/recent"
)

// Feedback and history listing bounds
const (
	defaultFeedbackLimit = 20
	maxFeedbackLimit     = 100
	maxHistoryLimit      = 100
)

// Pick handles POST /api/v1/users/{userID}/pick.
func (h *Handler) Pick(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	var req models.PickRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.picker.Pick(r.Context(), picker.PickRequest{
		UserID:   userID,
		Location: geo.Point{Lat: *req.Latitude, Lng: *req.Longitude},
		Mode:     picker.Mode(req.Mode),
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, result, start)
}

// Reroll handles POST /api/v1/users/{userID}/reroll.
func (h *Handler) Reroll(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	var req models.RerollRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.picker.Reroll(r.Context(), picker.RerollRequest{
		UserID:         userID,
		PlaceID:        req.PlaceID,
		Reason:         req.Reason,
		ExcludeSimilar: req.ExcludeSimilar,
		Types:          req.Types,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, result, start)
}

// RecordEvent handles POST /api/v1/users/{userID}/events.
func (h *Handler) RecordEvent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	var req models.EventRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.picker.RecordEvent(r.Context(), userID, req.PlaceID, req.Action); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusAccepted, req, start)
}

// Recent handles GET /api/v1/users/{userID}/recent.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	entries, err := h.picker.Recent(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if entries == nil {
		entries = []recent.Entry{}
	}
	respondSuccess(w, r, http.StatusOK, models.RecentResponse{Entries: entries, Count: len(entries)}, start)
}

// ClearRecent handles DELETE /api/v1/users/{userID}/recent.
func (h *Handler) ClearRecent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	removed, err := h.picker.ClearRecent(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, models.ClearedResponse{Removed: removed}, start)
}

// Settings handles GET /api/v1/users/{userID}/settings.
func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	settings, err := h.picker.Settings(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, settings, start)
}

// SaveSettings handles PUT /api/v1/users/{userID}/settings.
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	var settings profile.Settings
	if !decodeAndValidate(w, r, &settings) {
		return
	}
	if settings.ExcludedCuisines == nil {
		settings.ExcludedCuisines = []string{}
	}

	if err := h.picker.SaveSettings(r.Context(), userID, settings); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondSuccess(w, r, http.StatusOK, settings, start)
}

// Feedback handles GET /api/v1/users/{userID}/feedback?limit=N.
func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	limit := getIntParam(r, "limit", defaultFeedbackLimit)
	if limit < 1 || limit > maxFeedbackLimit {
		limit = defaultFeedbackLimit
	}

	list, err := h.picker.Feedback(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if list == nil {
		list = []profile.Feedback{}
	}
	respondSuccess(w, r, http.StatusOK, list, start)
}

// historyLimit reads ?limit=N, falling back to the default when it is missing or out of range.
func historyLimit(r *http.Request) int {
	limit := getIntParam(r, "limit", profile.DefaultHistoryLimit)
	if limit < 1 || limit > maxHistoryLimit {
		return profile.DefaultHistoryLimit
	}
	return limit
}

// Searches handles GET /api/v1/users/{userID}/searches?limit=N, newest first.
func (h *Handler) Searches(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	list, err := h.picker.Searches(r.Context(), userID, historyLimit(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if list == nil {
		list = []profile.SearchRecord{}
	}
	respondSuccess(w, r, http.StatusOK, list, start)
}

// Selections handles GET /api/v1/users/{userID}/selections?limit=N, newest first.
func (h *Handler) Selections(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	list, err := h.picker.Selections(r.Context(), userID, historyLimit(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if list == nil {
		list = []profile.SelectionRecord{}
	}
	respondSuccess(w, r, http.StatusOK, list, start)
}
