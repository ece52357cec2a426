// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

/*
Package picker runs the pick and reroll flows on top of the selection engine.

A pick loads the user's settings and recent suggestions, searches nearby
restaurants, drops excluded cuisines, draws one restaurant and remembers it
so it is not suggested again for a week:

	svc, _ := picker.NewService(cfg, selector, placesClient, recentStore, profileStore, logger)
	res, err := svc.Pick(ctx, picker.PickRequest{UserID: "u1", Location: geo.Point{Lat: 40.71, Lng: -74.0}})

A reroll records why the user rejected a suggestion and can exclude its
primary cuisine from future picks.

When every nearby restaurant was suggested recently the service can retry
once without the recency exclusion (Config.RelaxRecency). The result is then
flagged Relaxed.
*/
package picker
