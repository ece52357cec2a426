// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/idk/internal/models"
)

const readinessTimeout = 2 * time.Second

// HealthLive reports that the process is serving requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondSuccess(w, r, http.StatusOK, models.HealthStatus{
		Status:  "healthy",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Seconds(),
	}, start)
}

// HealthReady reports whether storage is usable and the server is not
// draining. An open places breaker degrades the status but does not fail
// readiness; picks fail fast instead.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	health := models.HealthStatus{
		Status:      "healthy",
		Version:     h.version,
		StorageOpen: true,
		Checks:      map[string]string{"storage": "ok"},
		Uptime:      time.Since(h.startTime).Seconds(),
	}

	if h.storageCheck != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		err := h.storageCheck(ctx)
		cancel()
		if err != nil {
			health.Status = "degraded"
			health.StorageOpen = false
			health.Checks["storage"] = err.Error()
		}
	}

	if h.breakerState != nil {
		health.PlacesBreaker = h.breakerState()
		health.Checks["places"] = health.PlacesBreaker
		if health.PlacesBreaker == "open" && health.StorageOpen {
			health.Status = "degraded"
		}
	}

	status := http.StatusOK
	if !health.StorageOpen {
		status = http.StatusServiceUnavailable
	}
	if h.draining.Load() {
		health.Status = "draining"
		health.Checks["server"] = "draining"
		status = http.StatusServiceUnavailable
	}
	respondSuccess(w, r, status, health, start)
}
