// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package selection

import (
	"math"
	"testing"

	"github.com/tomtom215/idk/internal/geo"
)

func TestDefaultWeightOf(t *testing.T) {
	t.Parallel()

	home := &geo.Point{Lat: 40.7128, Lng: -74.0060}
	sameSpot := &geo.Point{Lat: 40.7128, Lng: -74.0060}

	tests := []struct {
		name string
		c    Candidate
		ref  *geo.Point
		want float64
	}{
		{
			name: "missing everything",
			c:    Candidate{ID: "a"},
			want: 0.7*0.5 + 0.3,
		},
		{
			name: "top rating no location",
			c:    Candidate{ID: "a", Rating: ratingPtr(5)},
			ref:  home,
			want: 1.0,
		},
		{
			name: "bottom rating at reference point",
			c:    Candidate{ID: "a", Rating: ratingPtr(1), Location: sameSpot},
			ref:  home,
			want: 0.3,
		},
		{
			name: "location but no reference",
			c:    Candidate{ID: "a", Rating: ratingPtr(3), Location: sameSpot},
			want: 0.65,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := DefaultWeightOf(tt.c, tt.ref)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DefaultWeightOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultWeight_Ordering(t *testing.T) {
	t.Parallel()

	ref := &geo.Point{Lat: 40.7128, Lng: -74.0060}
	near := &geo.Point{Lat: 40.7138, Lng: -74.0070}
	far := &geo.Point{Lat: 40.8128, Lng: -74.1060}
	w := DefaultWeight(ref)

	t.Run("higher rating wins at equal distance", func(t *testing.T) {
		t.Parallel()
		better := w(Candidate{ID: "a", Rating: ratingPtr(4.5), Location: near})
		worse := w(Candidate{ID: "b", Rating: ratingPtr(3.5), Location: near})
		if better <= worse {
			t.Errorf("weight(4.5) = %v, weight(3.5) = %v", better, worse)
		}
	})

	t.Run("closer wins at equal rating", func(t *testing.T) {
		t.Parallel()
		closer := w(Candidate{ID: "a", Rating: ratingPtr(4), Location: near})
		farther := w(Candidate{ID: "b", Rating: ratingPtr(4), Location: far})
		if closer <= farther {
			t.Errorf("weight(near) = %v, weight(far) = %v", closer, farther)
		}
	})

	t.Run("weights stay in unit range", func(t *testing.T) {
		t.Parallel()
		for _, r := range []float64{1, 2.2, 3, 4.9, 5} {
			got := w(Candidate{ID: "a", Rating: ratingPtr(r), Location: far})
			if got < 0 || got > 1 {
				t.Errorf("weight(rating=%v) = %v, outside [0,1]", r, got)
			}
		}
	})
}

func TestUniformWeight(t *testing.T) {
	t.Parallel()
	if got := UniformWeight(Candidate{ID: "a", Rating: ratingPtr(1)}); got != 1 {
		t.Errorf("UniformWeight() = %v, want 1", got)
	}
}

func TestDefaultWeightOf_RatingAndProximityDominate(t *testing.T) {
	t.Parallel()

	ref := &geo.Point{Lat: 0, Lng: 0}
	best := DefaultWeightOf(Candidate{ID: "near", Rating: ratingPtr(5), Location: &geo.Point{Lat: 0, Lng: 0}}, ref)
	// 4.5 degrees of latitude is roughly 500 km.
	worst := DefaultWeightOf(Candidate{ID: "far", Rating: ratingPtr(1), Location: &geo.Point{Lat: 4.5, Lng: 0}}, ref)

	if best > 1 {
		t.Errorf("top-rated candidate at the reference weighs %v, want <= 1", best)
	}
	if best <= worst {
		t.Errorf("near top-rated weight %v not above far low-rated weight %v", best, worst)
	}
	if worst <= 0 || worst > 0.001 {
		t.Errorf("far low-rated weight = %v, want a small positive value", worst)
	}
}
