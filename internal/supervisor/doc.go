// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

/*
Package supervisor runs the picker's long-lived services under suture v4.

The tree has two layers:

	RootSupervisor ("idk")
	├── DataSupervisor ("data-layer")
	│   ├── CleanupService (recent-cleanup)
	│   ├── CleanupService (details-cache-cleanup)
	│   └── ValueLogGCService (badger storage only)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services restart with suture's backoff. Supervisor events are
written through sutureslog to a log/slog logger, which cmd/server bridges to
zerolog with logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(slogger, supervisor.TreeConfig{
	    ShutdownTimeout: 10 * time.Second,
	})
	tree.AddDataService(services.NewRecentCleanupService(store, time.Hour, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	errCh := tree.ServeBackground(ctx)
*/
package supervisor
