// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

// Package validation validates request and settings structs with
// go-playground/validator v10.
//
// A single validator instance is shared process-wide. Field names in errors
// use the struct's json tag so messages match the request body:
//
//	type pickRequest struct {
//	    Latitude  float64 `json:"latitude" validate:"latitude"`
//	    Longitude float64 `json:"longitude" validate:"longitude"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError() // Code "VALIDATION_ERROR"
//	}
//
// Custom tags:
//
//	notblank - string is non-empty after trimming whitespace
package validation
