// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package picker

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/idk/internal/deeplink"
	"github.com/tomtom215/idk/internal/geo"
	"github.com/tomtom215/idk/internal/places"
	"github.com/tomtom215/idk/internal/recent"
)

var (
	// ErrNoPlaces indicates the nearby search returned nothing.
	ErrNoPlaces = errors.New("no restaurants found nearby")

	// ErrInvalidReason indicates a reroll reason outside RerollReasons.
	ErrInvalidReason = errors.New("unknown reroll reason")

	// ErrInvalidAction indicates an unknown selection event action.
	ErrInvalidAction = errors.New("unknown selection action")

	// ErrInvalidRequest indicates a request missing required fields.
	ErrInvalidRequest = errors.New("invalid picker request")
)

// Mode selects the draw strategy.
type Mode string

// Selection modes
const (
	ModeUniform  Mode = "uniform"
	ModeWeighted Mode = "weighted"
)

// ParseMode converts a config or request value. Empty input yields "".
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", ModeUniform, ModeWeighted:
		return m, nil
	default:
		return "", fmt.Errorf("unknown selection mode %q (want uniform or weighted)", s)
	}
}

// Selection event actions
const (
	ActionSearch     = "search"
	ActionView       = "view"
	ActionReroll     = "reroll"
	ActionDirections = "directions"
	ActionOrder      = "order"
	ActionDetails    = "details"
)

var clientActions = map[string]bool{
	ActionView:       true,
	ActionDirections: true,
	ActionOrder:      true,
	ActionDetails:    true,
}

var rerollReasons = []string{
	"Too far",
	"Not in the mood",
	"Don't like this cuisine",
	"Too expensive",
	"Other",
}

// RerollReasons returns the accepted reroll reasons in display order.
func RerollReasons() []string {
	return append([]string(nil), rerollReasons...)
}

func validReason(reason string) bool {
	for _, r := range rerollReasons {
		if r == reason {
			return true
		}
	}
	return false
}

// Config tunes the picker.
type Config struct {
	// Mode is the default selection mode.
	Mode Mode

	// RelaxRecency retries once without recent exclusions when everything nearby was recent.
	RelaxRecency bool

	// RecentTTL is how long a suggestion stays excluded.
	RecentTTL time.Duration

	// FetchDetails loads the full place record for the chosen restaurant.
	FetchDetails bool
}

// DefaultConfig returns the production picker tuning.
func DefaultConfig() Config {
	return Config{
		Mode:         ModeUniform,
		RelaxRecency: true,
		RecentTTL:    recent.DefaultTTL,
		FetchDetails: true,
	}
}

// PickRequest asks for one restaurant near Location.
type PickRequest struct {
	UserID   string
	Location geo.Point

	// Mode overrides the configured mode when set.
	Mode Mode
}

// Links are the actions a client can offer for a pick.
type Links struct {
	Maps     *deeplink.MapsLinks     `json:"maps,omitempty"`
	Delivery []deeplink.DeliveryLink `json:"delivery"`
	Website  string                  `json:"website,omitempty"`
}

// PickResult is the chosen restaurant with display data.
type PickResult struct {
	Place         places.Place `json:"place"`
	DistanceMiles *float64     `json:"distance_miles,omitempty"`
	Distance      string       `json:"distance,omitempty"`
	Links         Links        `json:"links"`
	Mode          Mode         `json:"mode"`
	Relaxed       bool         `json:"relaxed"`
	Found         int          `json:"found"`
	Eligible      int          `json:"eligible"`
}

// RerollRequest rejects a suggestion.
type RerollRequest struct {
	UserID         string
	PlaceID        string
	Reason         string
	ExcludeSimilar bool

	// Types are the rejected place's type tags; the first is its cuisine.
	Types []string
}

// RerollResult reports what a reroll changed.
type RerollResult struct {
	FeedbackID      string   `json:"feedback_id"`
	ExcludedCuisine string   `json:"excluded_cuisine,omitempty"`
	CuisineAdded    bool     `json:"cuisine_added"`
	ExcludedList    []string `json:"excluded_cuisines,omitempty"`
}
