// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

// Package geo provides great-circle distance helpers shared by the selection
// engine and the display layer.
//
// Two unit systems are kept apart on purpose: distance shown to users is in
// miles, while the default selection weight works in kilometers. Each path
// uses its own radius constant.
package geo

import (
	"fmt"
	"math"
)

const (
	// EarthRadiusMiles is the mean Earth radius used for user-facing distances.
	EarthRadiusMiles = 3958.8

	// EarthRadiusKm is the mean Earth radius used for selection weighting.
	EarthRadiusKm = 6371.0

	// FeetPerMile converts short display distances to feet.
	FeetPerMile = 5280.0

	// MetersPerMile converts search radii for the places API.
	MetersPerMile = 1609.34

	// feetThresholdMiles is the distance below which FormatDistance switches to feet.
	feetThresholdMiles = 0.1
)

// Point is a latitude/longitude pair in decimal degrees.
type Point struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// Haversine calculates the great-circle distance between two coordinates
// using the Haversine formula. The result is in the units of radius.
func Haversine(lat1, lon1, lat2, lon2, radius float64) float64 {
	// Convert to radians
	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return radius * c
}

// DistanceMiles returns the distance between a and b in miles.
func DistanceMiles(a, b Point) float64 {
	return Haversine(a.Lat, a.Lng, b.Lat, b.Lng, EarthRadiusMiles)
}

// DistanceKm returns the distance between a and b in kilometers.
func DistanceKm(a, b Point) float64 {
	return Haversine(a.Lat, a.Lng, b.Lat, b.Lng, EarthRadiusKm)
}

// MilesToMeters converts a search radius in miles to whole meters.
func MilesToMeters(miles float64) int {
	return int(math.Round(miles * MetersPerMile))
}

// FormatDistance renders a distance in miles for display.
// Distances under a tenth of a mile are shown in feet.
//
//	FormatDistance(0.05) // "264 ft"
//	FormatDistance(2.34) // "2.3 mi"
func FormatDistance(miles float64) string {
	if miles < feetThresholdMiles {
		return fmt.Sprintf("%d ft", int(math.Round(miles*FeetPerMile)))
	}
	return fmt.Sprintf("%.1f mi", miles)
}
