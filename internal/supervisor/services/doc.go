// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

/*
Package services provides suture.Service wrappers for the picker's
long-lived components.

Each wrapper implements suture.Service and fmt.Stringer:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Available services:

  - HTTPServerService: runs *http.Server and shuts it down gracefully on cancel.
  - CleanupService: purges expired entries on an interval. One instance
    sweeps recent suggestions, another the place details cache.
  - ValueLogGCService: runs badger value log GC so expired entries free disk.

Serve returns ctx.Err() on shutdown. Any other return value is treated by
the supervisor as a crash and the service is restarted with backoff.
*/
package services
