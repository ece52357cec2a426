// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package selection

import "github.com/tomtom215/idk/internal/geo"

// Default weight policy. The shares sum to 1 so the blended weight stays in [0, 1].
const (
	// RatingWeightShare is the portion of the default weight driven by rating.
	RatingWeightShare = 0.7

	// DistanceWeightShare is the portion of the default weight driven by proximity.
	DistanceWeightShare = 0.3

	// NeutralRating is assumed for candidates without a rating.
	NeutralRating = 3.0

	// MinRating and MaxRating bound the rating scale.
	MinRating = 1.0
	MaxRating = 5.0
)

// WeightFunc maps a candidate to a non-negative selection weight.
// Negative weights are a caller error and are not validated.
type WeightFunc func(Candidate) float64

// UniformWeight gives every candidate the same weight.
func UniformWeight(Candidate) float64 {
	return 1
}

// DefaultWeight returns the rating/proximity weight relative to ref.
// A nil ref disables the distance penalty.
func DefaultWeight(ref *geo.Point) WeightFunc {
	return func(c Candidate) float64 {
		return DefaultWeightOf(c, ref)
	}
}

// DefaultWeightOf blends rating and proximity:
//
//	0.7 * (rating - 1) / 4  +  0.3 * 1 / (1 + distance_km)
//
// Missing ratings count as 3. When either coordinate is missing the distance
// term is 1.
//
//nolint:gocritic // hugeParam: Candidate passed by value to match WeightFunc
func DefaultWeightOf(c Candidate, ref *geo.Point) float64 {
	rating := NeutralRating
	if c.Rating != nil {
		rating = *c.Rating
	}
	ratingTerm := (rating - MinRating) / (MaxRating - MinRating)

	distanceTerm := 1.0
	if ref != nil && c.Location != nil {
		distanceTerm = 1 / (1 + geo.DistanceKm(*ref, *c.Location))
	}

	return RatingWeightShare*ratingTerm + DistanceWeightShare*distanceTerm
}
