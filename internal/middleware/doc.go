// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

// Package middleware provides net/http middleware shared by the API router:
// request IDs, access logging and Prometheus instrumentation.
//
// All middleware has the func(http.Handler) http.Handler shape used by chi.
package middleware
