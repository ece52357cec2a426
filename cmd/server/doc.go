// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

/*
Package main is the entry point for the IDK restaurant picker server.

The server answers "I don't know, you pick": it searches nearby restaurants,
drops the ones the user saw recently or excluded by cuisine, and draws one
with a cryptographically seeded selector.

# Application Architecture

	RootSupervisor ("idk")
	├── DataSupervisor ("data-layer")
	│   ├── CleanupService (recent-cleanup)
	│   ├── CleanupService (details-cache-cleanup)
	│   └── ValueLogGCService (badger only)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi)

Initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog
 3. Storage: BadgerDB, or in-memory stores when STORAGE_IN_MEMORY=true
 4. Places client: rate limited, behind a circuit breaker, details cached
 5. Selection engine: hashed entropy source (sha256 or blake2b)
 6. Picker service and HTTP API
 7. Supervisor tree

# Configuration

Required:

	GOOGLE_PLACES_API_KEY   places web service key

Common overrides:

	HTTP_PORT               listen port (default 8080)
	BADGER_PATH             storage directory (default /data/idk)
	STORAGE_IN_MEMORY       keep state in memory only
	SELECTION_MODE          uniform or weighted
	ENTROPY_DIGEST          sha256 or blake2b
	RECENT_RESTAURANT_TTL   how long a suggestion stays excluded (default 168h)
	PLACES_DETAILS_CACHE_SIZE  cached place details, 0 disables (default 512)
	LOG_LEVEL, LOG_FORMAT   zerolog level and json/console output

See internal/config for the full list.

# Signal Handling

SIGINT and SIGTERM cancel the supervisor context. The HTTP server drains
in-flight requests, maintenance loops stop and storage is closed last.
*/
package main
