// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

/*
Package api provides the HTTP REST API for the restaurant picker.

Routes are served by a chi router. Every response uses the models.APIResponse
envelope and is encoded with goccy/go-json.

Endpoints:

  - GET  /api/v1/health/live, /api/v1/health/ready
  - POST /api/v1/select: stateless selection over caller-supplied candidates
  - POST /api/v1/users/{userID}/pick: nearby search plus selection
  - POST /api/v1/users/{userID}/reroll: reject a suggestion
  - POST /api/v1/users/{userID}/events: record a client action
  - GET, DELETE /api/v1/users/{userID}/recent
  - GET, PUT /api/v1/users/{userID}/settings
  - GET  /api/v1/users/{userID}/feedback
  - GET  /api/v1/users/{userID}/searches, /api/v1/users/{userID}/selections: history, newest first
  - GET  /api/v1/reroll-reasons
  - GET  /api/v1/places/search, /api/v1/places/autocomplete, /api/v1/places/{placeID}
  - GET  /metrics

Middleware, outermost first: request ID, RealIP, Recoverer, CORS, access
log and Prometheus instrumentation. The /api/v1 routes are rate limited per
client IP with go-chi/httprate.

Error mapping:

	selection.ErrEmptyInput       422 NO_CANDIDATES
	selection.ErrNoEligibleItems  409 NO_ELIGIBLE_CANDIDATES
	selection.ErrEntropySource    503 ENTROPY_UNAVAILABLE
	places.ErrUnavailable         503 PLACES_UNAVAILABLE
	picker.ErrNoPlaces            404 NO_PLACES_FOUND
	invalid input                 400 VALIDATION_ERROR
*/
package api
