// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package selection

import "github.com/tomtom215/idk/internal/geo"

// Candidate is a restaurant eligible for selection.
// Candidates are owned by the caller; the engine returns the chosen one unmodified.
type Candidate struct {
	// ID uniquely identifies the candidate (a places API place_id).
	ID string `json:"id" validate:"required,max=256"`

	// Rating is the optional quality rating on a 1.0 to 5.0 scale.
	Rating *float64 `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`

	// Location is the optional coordinate of the candidate.
	Location *geo.Point `json:"location,omitempty"`

	// Categories are optional ordered tags such as "fast_food_restaurant".
	Categories []string `json:"categories,omitempty" validate:"omitempty,max=64,dive,max=128"`
}

// IDSet is a set of candidate identifiers.
type IDSet map[string]struct{}

// NewIDSet builds an IDSet from a list of identifiers.
func NewIDSet(ids ...string) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Contains reports whether id is in the set. A nil set contains nothing.
func (s IDSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// ExclusionSet bundles the identifier and category exclusions for one call.
type ExclusionSet struct {
	// IDs are recently suggested identifiers that are still fresh.
	IDs IDSet

	// Categories are user-excluded category terms, matched by substring.
	Categories []string
}

// Apply filters candidates through both exclusions.
func (e ExclusionSet) Apply(candidates []Candidate) []Candidate {
	return Filter(candidates, e.IDs, e.Categories)
}
