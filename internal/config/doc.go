// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

// Package config loads IDK configuration with Koanf v2.
//
// Sources are layered, later layers overriding earlier ones:
//
//  1. Built-in defaults (defaultConfig)
//  2. An optional YAML file: $CONFIG_PATH, ./config.yaml, ./config.yml,
//     /etc/idk/config.yaml or /etc/idk/config.yml
//  3. Environment variables listed in envMappings
//
// Unlisted environment variables are ignored. Comma separated values are
// split for the slice fields named in sliceConfigPaths.
//
// Example config.yaml:
//
//	server:
//	  port: 8080
//	places:
//	  api_key: "..."
//	  rate_per_second: 10
//	selection:
//	  mode: weighted
//	  digest: blake2b
//	recent:
//	  ttl: 168h
//	defaults:
//	  search_radius: 5
//	  price_range: [1, 2, 3]
//
// # Environment Variables
//
//	HTTP_PORT, HTTP_HOST, HTTP_TIMEOUT, ENVIRONMENT
//	LOG_LEVEL, LOG_FORMAT, LOG_CALLER
//	CORS_ORIGINS, RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
//	GOOGLE_PLACES_API_KEY, PLACES_BASE_URL, PLACES_TIMEOUT,
//	PLACES_RATE_PER_SECOND, PLACES_BURST, PLACES_BREAKER_*
//	BADGER_PATH, STORAGE_IN_MEMORY, RECENT_KEY_PREFIX, PROFILE_KEY_PREFIX
//	SELECTION_MODE, ENTROPY_DIGEST, ZERO_WEIGHT_POLICY, RELAX_RECENCY,
//	FETCH_PLACE_DETAILS
//	RECENT_TTL, RECENT_CLEANUP_INTERVAL
//	DEFAULT_SEARCH_RADIUS, DEFAULT_PRICE_RANGE, DEFAULT_EXCLUDED_CUISINES,
//	DEFAULT_LOCATION_ENABLED
//	SUPERVISOR_FAILURE_THRESHOLD, SUPERVISOR_FAILURE_DECAY,
//	SUPERVISOR_FAILURE_BACKOFF, SUPERVISOR_SHUTDOWN_TIMEOUT
//
// Validate reports every invalid field at once.
package config
