// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package places

import (
	"errors"
	"fmt"
)

// API status values
const (
	StatusOK             = "OK"
	StatusZeroResults    = "ZERO_RESULTS"
	StatusInvalidRequest = "INVALID_REQUEST"
	StatusNotFound       = "NOT_FOUND"
	StatusRequestDenied  = "REQUEST_DENIED"
	StatusOverQueryLimit = "OVER_QUERY_LIMIT"
)

var (
	// ErrMissingAPIKey indicates the client was built without an API key.
	ErrMissingAPIKey = errors.New("places API key not configured")

	// ErrUnavailable indicates the circuit breaker is rejecting calls.
	ErrUnavailable = errors.New("places API temporarily unavailable")
)

// StatusError is returned when the API answers with a non-success status.
type StatusError struct {
	Endpoint   string
	Status     string
	Message    string
	HTTPStatus int
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "Unknown error"
	}
	if e.Status == "" {
		return fmt.Sprintf("places API %s returned HTTP %d: %s", e.Endpoint, e.HTTPStatus, msg)
	}
	return fmt.Sprintf("places API %s error: %s - %s", e.Endpoint, e.Status, msg)
}

// clientFault reports whether the error is caused by the request rather than
// the upstream's health. These do not count against the circuit breaker.
func clientFault(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.Status == StatusInvalidRequest || se.Status == StatusNotFound
}
