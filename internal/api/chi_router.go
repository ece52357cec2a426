// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/idk/internal/middleware"
)

// Router binds handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil middleware factory uses the defaults.
func NewRouter(handler *Handler, chiMw *ChiMiddleware) *Router {
	if chiMw == nil {
		chiMw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMw,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Applied to every route, in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // must be global to answer OPTIONS preflight
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())

		r.Post("/select", router.handler.Select)
		r.Get("/reroll-reasons", router.handler.RerollReasons)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Post("/pick", router.handler.Pick)
			r.Post("/reroll", router.handler.Reroll)
			r.Post("/events", router.handler.RecordEvent)
			r.Get("/recent", router.handler.Recent)
			r.Delete("/recent", router.handler.ClearRecent)
			r.Get("/settings", router.handler.Settings)
			r.Put("/settings", router.handler.SaveSettings)
			r.Get("/feedback", router.handler.Feedback)
			r.Get("/searches", router.handler.Searches)
			r.Get("/selections", router.handler.Selections)
		})

		r.Route("/places", func(r chi.Router) {
			r.Get("/search", router.handler.PlacesSearch)
			r.Get("/autocomplete", router.handler.PlacesAutocomplete)
			r.Get("/{placeID}", router.handler.PlaceDetails)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
