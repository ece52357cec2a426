// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

// Package logging provides the zerolog-based structured logger used across IDK.
//
// A global logger is configured once at startup with Init. Components derive
// child loggers with WithComponent and attach request scoped fields with Ctx:
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logger := logging.WithComponent("picker")
//	logger.Info().Str("place_id", id).Msg("Restaurant picked")
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Pick failed")
//
// # Output
//
// Format "json" writes one JSON object per line and is the production default.
// Format "console" writes human-readable colored output for development.
// The field names are fixed: time, level, message, error, caller.
//
// # slog
//
// Libraries that expect *slog.Logger (sutureslog for the supervisor tree)
// receive NewSlogLogger, which forwards records into zerolog.
//
// Always terminate an event chain with Msg or Send; an unterminated event is
// never written.
package logging
