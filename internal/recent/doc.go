// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

/*
Package recent tracks restaurants suggested to each user so the picker can
avoid repeating them.

Each entry is keyed by (user, place) and carries an expiry. Adding the same
place again refreshes its suggestion time. Expired entries are invisible to
List and IDs immediately and are physically removed by CleanupExpired, which
the supervisor runs on an interval.

Two implementations are provided:
  - MemoryStore: map-backed, lost on restart, used in tests and dev mode
  - BadgerStore: BadgerDB-backed with native key TTLs, shares the process DB

Key layout for BadgerStore is prefix + userID + 0x00 + placeID. User IDs are
validated at the API boundary and never contain NUL.
*/
package recent
