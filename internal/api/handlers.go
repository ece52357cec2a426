// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package api

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/tomtom215/idk/internal/picker"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response, decoding and error mapping helpers
//   - handlers_health.go: liveness and readiness
//   - handlers_select.go: stateless selection and reroll reasons
//   - handlers_users.go: pick, reroll, events, recent, settings, feedback, history
//   - handlers_places.go: places search passthrough
type Handler struct {
	picker       *picker.Service
	storageCheck func(ctx context.Context) error
	breakerState func() string
	version      string
	startTime    time.Time
	draining     atomic.Bool
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithStorageCheck sets the readiness probe for the storage layer.
func WithStorageCheck(check func(ctx context.Context) error) HandlerOption {
	return func(h *Handler) {
		h.storageCheck = check
	}
}

// WithBreakerState reports the places circuit breaker state in health responses.
func WithBreakerState(state func() string) HandlerOption {
	return func(h *Handler) {
		h.breakerState = state
	}
}

// WithVersion sets the version reported by health endpoints.
func WithVersion(version string) HandlerOption {
	return func(h *Handler) {
		h.version = version
	}
}

// MarkDraining fails readiness from now on. Called when graceful shutdown starts.
func (h *Handler) MarkDraining() {
	h.draining.Store(true)
}

// NewHandler creates a new API handler around the picker service.
func NewHandler(svc *picker.Service, opts ...HandlerOption) *Handler {
	h := &Handler{
		picker:    svc,
		version:   "dev",
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
