// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/idk/internal/models"
	"github.com/tomtom215/idk/internal/picker"
	"github.com/tomtom215/idk/internal/selection"
)

// Select handles POST /api/v1/select.
// It draws one candidate from the request body after applying its exclusions.
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.SelectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	excluded := selection.ExclusionSet{
		IDs:        selection.NewIDSet(req.ExcludedIDs...),
		Categories: req.ExcludedCategories,
	}

	chosen, err := h.picker.Select(r.Context(), picker.Mode(req.Mode), req.Candidates, excluded, req.Reference)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	mode := req.Mode
	if mode == "" {
		mode = string(h.picker.Mode())
	}

	respondSuccess(w, r, http.StatusOK, models.SelectResponse{
		Candidate: chosen,
		Mode:      mode,
		Eligible:  len(excluded.Apply(req.Candidates)),
	}, start)
}

// RerollReasons handles GET /api/v1/reroll-reasons.
func (h *Handler) RerollReasons(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, picker.RerollReasons(), time.Now())
}
