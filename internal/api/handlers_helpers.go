// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/idk/internal/logging"
	"github.com/tomtom215/idk/internal/models"
	"github.com/tomtom215/idk/internal/picker"
	"github.com/tomtom215/idk/internal/places"
	"github.com/tomtom215/idk/internal/selection"
	"github.com/tomtom215/idk/internal/validation"
)

// maxBodyBytes bounds request bodies. A full candidate list fits comfortably.
const maxBodyBytes = 1 << 20

// maxUserIDLen bounds the {userID} path parameter.
const maxUserIDLen = 128

// sanitizeLogValue escapes control characters to prevent log injection.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// respondJSON sends a JSON response with an ETag.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondSuccess wraps data in a success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, status int, data interface{}, start time.Time) {
	respondJSON(w, status, &models.APIResponse{
		Status: models.StatusSuccess,
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			RequestID:   logging.RequestIDFromContext(r.Context()),
		},
	})
}

// generateETag creates an ETag from data using FNV-1a.
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondError sends an error response. err is logged, never returned to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	respondAPIError(w, r, status, &models.APIError{Code: code, Message: message}, err)
}

func respondAPIError(w http.ResponseWriter, r *http.Request, status int, apiErr *models.APIError, err error) {
	if err != nil {
		event := logging.CtxWarn(r.Context())
		if status >= http.StatusInternalServerError {
			event = logging.Ctx(r.Context()).Error()
		}
		event.
			Str("code", sanitizeLogValue(apiErr.Code)).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: models.StatusError,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
		Error: apiErr,
	})
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil when validation passes.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// decodeAndValidate reads a JSON body into dst and validates it.
// On failure it writes the 400 response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		msg := "Invalid JSON body"
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			msg = "Request body is required"
		case errors.As(err, &tooLarge):
			msg = "Request body too large"
		}
		respondError(w, r, http.StatusBadRequest, validation.ErrorCode, msg, err)
		return false
	}

	if apiErr := validateRequest(dst); apiErr != nil {
		respondAPIError(w, r, http.StatusBadRequest, apiErr, nil)
		return false
	}
	return true
}

// userIDParam returns the {userID} path parameter, writing a 400 when it is unusable.
func userIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(chi.URLParam(r, "userID"))
	if userID == "" || len(userID) > maxUserIDLen {
		respondError(w, r, http.StatusBadRequest, validation.ErrorCode, "Invalid user ID", nil)
		return "", false
	}
	return userID, true
}

// getIntParam extracts an integer query parameter with a default value.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// getFloatParam extracts a float query parameter. ok is false when it is missing or malformed.
func getFloatParam(r *http.Request, key string) (float64, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// respondServiceError maps domain errors to HTTP responses.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var statusErr *places.StatusError

	switch {
	case errors.Is(err, selection.ErrEmptyInput):
		respondError(w, r, http.StatusUnprocessableEntity, "NO_CANDIDATES", "No candidates were provided", err)
	case errors.Is(err, selection.ErrNoEligibleItems):
		respondError(w, r, http.StatusConflict, "NO_ELIGIBLE_CANDIDATES", "Every candidate was excluded", err)
	case errors.Is(err, selection.ErrEntropySource):
		respondError(w, r, http.StatusServiceUnavailable, "ENTROPY_UNAVAILABLE", "Secure random source unavailable", err)
	case errors.Is(err, places.ErrUnavailable):
		respondError(w, r, http.StatusServiceUnavailable, "PLACES_UNAVAILABLE", "Restaurant search is temporarily unavailable", err)
	case errors.Is(err, picker.ErrNoPlaces):
		respondError(w, r, http.StatusNotFound, "NO_PLACES_FOUND", "No restaurants found nearby", err)
	case errors.Is(err, picker.ErrInvalidReason),
		errors.Is(err, picker.ErrInvalidAction),
		errors.Is(err, picker.ErrInvalidRequest):
		respondError(w, r, http.StatusBadRequest, validation.ErrorCode, err.Error(), nil)
	case errors.As(err, &statusErr) && statusErr.Status == places.StatusNotFound:
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Place not found", err)
	case errors.As(err, &statusErr):
		respondError(w, r, http.StatusBadGateway, "PLACES_ERROR", "Restaurant search failed", err)
	default:
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", err)
	}
}
