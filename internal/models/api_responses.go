// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package models

import "time"

// Response status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// APIResponse is the envelope for every API response.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how the response was produced.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError is a machine-readable error code plus a message for humans.
//
// Codes:
//   - VALIDATION_ERROR: malformed or out of range input
//   - NO_CANDIDATES: the candidate list was empty
//   - NO_ELIGIBLE_CANDIDATES: every candidate was excluded
//   - NO_PLACES_FOUND: the nearby search returned nothing
//   - ENTROPY_UNAVAILABLE: the secure random source failed
//   - PLACES_UNAVAILABLE: the places API is failing or its breaker is open
//   - PLACES_ERROR: the places API rejected the request
//   - NOT_FOUND: unknown place
//   - RATE_LIMIT_EXCEEDED: too many requests
//   - INTERNAL_ERROR: anything else
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is returned by the health endpoints.
type HealthStatus struct {
	Status        string            `json:"status"` // healthy or degraded
	Version       string            `json:"version"`
	StorageOpen   bool              `json:"storage_open"`
	PlacesBreaker string            `json:"places_breaker,omitempty"`
	Checks        map[string]string `json:"checks,omitempty"`
	Uptime        float64           `json:"uptime_seconds"`
}
