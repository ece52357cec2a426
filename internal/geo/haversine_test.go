// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package geo

import (
	"math"
	"testing"
)

func TestHaversine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		lat1      float64
		lon1      float64
		lat2      float64
		lon2      float64
		radius    float64
		expected  float64
		tolerance float64
	}{
		{
			name:      "NYC to London km",
			lat1:      40.7128,
			lon1:      -74.0060,
			lat2:      51.5074,
			lon2:      -0.1278,
			radius:    EarthRadiusKm,
			expected:  5570,
			tolerance: 50,
		},
		{
			name:      "NYC to LA km",
			lat1:      40.7128,
			lon1:      -74.0060,
			lat2:      34.0522,
			lon2:      -118.2437,
			radius:    EarthRadiusKm,
			expected:  3940,
			tolerance: 50,
		},
		{
			name:      "NYC to LA miles",
			lat1:      40.7128,
			lon1:      -74.0060,
			lat2:      34.0522,
			lon2:      -118.2437,
			radius:    EarthRadiusMiles,
			expected:  2446,
			tolerance: 30,
		},
		{
			name:      "Same point",
			lat1:      40.7128,
			lon1:      -74.0060,
			lat2:      40.7128,
			lon2:      -74.0060,
			radius:    EarthRadiusKm,
			expected:  0,
			tolerance: 0.001,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Haversine(tt.lat1, tt.lon1, tt.lat2, tt.lon2, tt.radius)
			if math.Abs(got-tt.expected) > tt.tolerance {
				t.Errorf("Haversine() = %.2f, want %.2f ± %.2f", got, tt.expected, tt.tolerance)
			}
		})
	}
}

func TestDistanceUnitsStayIndependent(t *testing.T) {
	t.Parallel()

	a := Point{Lat: 40.7128, Lng: -74.0060}
	b := Point{Lat: 34.0522, Lng: -118.2437}

	km := DistanceKm(a, b)
	mi := DistanceMiles(a, b)

	ratio := km / mi
	want := EarthRadiusKm / EarthRadiusMiles
	if math.Abs(ratio-want) > 1e-9 {
		t.Errorf("km/mi ratio = %f, want %f", ratio, want)
	}
	if EarthRadiusKm == EarthRadiusMiles {
		t.Error("radius constants must differ")
	}
}

func TestFormatDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		miles float64
		want  string
	}{
		{0, "0 ft"},
		{0.05, "264 ft"},
		{0.0999, "527 ft"},
		{0.1, "0.1 mi"},
		{2.34, "2.3 mi"},
		{12.96, "13.0 mi"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := FormatDistance(tt.miles); got != tt.want {
				t.Errorf("FormatDistance(%v) = %q, want %q", tt.miles, got, tt.want)
			}
		})
	}
}

func TestMilesToMeters(t *testing.T) {
	t.Parallel()

	if got := MilesToMeters(5); got != 8047 {
		t.Errorf("MilesToMeters(5) = %d, want 8047", got)
	}
	if got := MilesToMeters(0); got != 0 {
		t.Errorf("MilesToMeters(0) = %d, want 0", got)
	}
}
