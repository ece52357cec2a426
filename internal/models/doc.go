// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

/*
Package models defines the HTTP request and response bodies of the IDK API.

Every endpoint answers with the APIResponse envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "2026-01-02T12:00:00Z", "query_time_ms": 42}
	}

Errors set status to "error" and fill the error object:

	{
	  "status": "error",
	  "error": {"code": "NO_ELIGIBLE_CANDIDATES", "message": "..."},
	  "metadata": {"timestamp": "2026-01-02T12:00:00Z"}
	}

Request bodies carry validate tags checked by internal/validation.
*/
package models
