// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package picker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/idk/internal/deeplink"
	"github.com/tomtom215/idk/internal/geo"
	"github.com/tomtom215/idk/internal/logging"
	"github.com/tomtom215/idk/internal/metrics"
	"github.com/tomtom215/idk/internal/places"
	"github.com/tomtom215/idk/internal/profile"
	"github.com/tomtom215/idk/internal/recent"
	"github.com/tomtom215/idk/internal/selection"
)

// Service coordinates settings, recent suggestions, the places API and the
// selector. It is safe for concurrent use.
type Service struct {
	cfg      Config
	selector *selection.Selector
	places   places.Searcher
	recent   recent.Store
	profiles profile.Store
	logger   zerolog.Logger
}

// NewService creates a picker service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(cfg Config, selector *selection.Selector, searcher places.Searcher, recentStore recent.Store, profiles profile.Store, logger zerolog.Logger) (*Service, error) {
	if selector == nil || searcher == nil || recentStore == nil || profiles == nil {
		return nil, errors.New("picker: selector, searcher and stores are required")
	}
	mode, err := ParseMode(string(cfg.Mode))
	if err != nil {
		return nil, err
	}
	if mode == "" {
		mode = ModeUniform
	}
	cfg.Mode = mode
	if cfg.RecentTTL <= 0 {
		cfg.RecentTTL = recent.DefaultTTL
	}

	return &Service{
		cfg:      cfg,
		selector: selector,
		places:   searcher,
		recent:   recentStore,
		profiles: profiles,
		logger:   logger.With().Str("component", "picker").Logger(),
	}, nil
}

func (s *Service) requestLogger(ctx context.Context, userID string) zerolog.Logger {
	return s.logger.With().
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Str("user_id", userID).
		Logger()
}

// Pick chooses one nearby restaurant for the user.
func (s *Service) Pick(ctx context.Context, req PickRequest) (*PickResult, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidRequest)
	}
	mode, err := s.resolveMode(req.Mode)
	if err != nil {
		return nil, err
	}

	logger := s.requestLogger(ctx, req.UserID)

	settings, err := s.profiles.Settings(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	recentIDs, err := recent.IDs(ctx, s.recent, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("load recent suggestions: %w", err)
	}

	found, err := s.places.Nearby(ctx, places.NewNearbyQuery(req.Location, settings.SearchRadius, settings.PriceRange))
	if err != nil {
		return nil, fmt.Errorf("nearby search: %w", err)
	}
	s.recordSearch(ctx, logger, req.UserID, req.Location, &settings, len(found))
	if len(found) == 0 {
		return nil, ErrNoPlaces
	}

	candidates := selection.FilterByCategory(places.Candidates(found), settings.ExcludedCuisines)
	if len(candidates) == 0 {
		metrics.RecordSelection(string(mode), metrics.OutcomeExhausted, 0, 0)
		return nil, fmt.Errorf("all %d nearby restaurants match excluded cuisines: %w", len(found), selection.ErrNoEligibleItems)
	}

	chosen, eligible, relaxed, err := s.choose(ctx, mode, candidates, recentIDs, req.Location)
	if err != nil {
		return nil, err
	}
	if relaxed {
		logger.Info().Int("recent", len(recentIDs)).Msg("All nearby restaurants were recent, picked without recency exclusion")
	}

	place, err := placeByID(found, chosen.ID)
	if err != nil {
		return nil, err
	}
	if s.cfg.FetchDetails {
		place = s.withDetails(ctx, logger, place)
	}

	s.remember(ctx, logger, req.UserID, place)
	s.recordEvent(ctx, logger, req.UserID, place.PlaceID, ActionView)

	res := &PickResult{
		Place:    *place,
		Links:    buildLinks(place),
		Mode:     mode,
		Relaxed:  relaxed,
		Found:    len(found),
		Eligible: eligible,
	}
	if loc := place.Location(); loc != nil {
		miles := geo.DistanceMiles(req.Location, *loc)
		res.DistanceMiles = &miles
		res.Distance = geo.FormatDistance(miles)
	}

	logger.Info().
		Str("place_id", place.PlaceID).
		Str("mode", string(mode)).
		Int("found", len(found)).
		Int("eligible", eligible).
		Bool("relaxed", relaxed).
		Msg("Restaurant picked")
	return res, nil
}

// choose draws from candidates excluding recent IDs, relaxing recency once if allowed.
func (s *Service) choose(ctx context.Context, mode Mode, candidates []selection.Candidate, recentIDs selection.IDSet, ref geo.Point) (selection.Candidate, int, bool, error) {
	chosen, eligible, err := s.draw(ctx, mode, candidates, recentIDs, ref)
	if err == nil || !errors.Is(err, selection.ErrNoEligibleItems) || len(recentIDs) == 0 || !s.cfg.RelaxRecency {
		return chosen, eligible, false, err
	}

	metrics.RecencyRelaxed.Inc()
	chosen, eligible, err = s.draw(ctx, mode, candidates, nil, ref)
	return chosen, eligible, true, err
}

func (s *Service) draw(ctx context.Context, mode Mode, candidates []selection.Candidate, excluded selection.IDSet, ref geo.Point) (selection.Candidate, int, error) {
	eligible := len(selection.FilterByID(candidates, excluded))

	start := time.Now()
	var (
		chosen selection.Candidate
		err    error
	)
	switch mode {
	case ModeWeighted:
		chosen, err = s.selector.Weighted(ctx, candidates, selection.DefaultWeight(&ref), excluded)
	default:
		chosen, err = s.selector.Uniform(ctx, candidates, excluded)
	}
	metrics.RecordSelection(string(mode), selectionOutcome(err), eligible, time.Since(start))
	return chosen, eligible, err
}

// Select runs the stateless engine over caller-supplied candidates.
// Category exclusion is applied before the draw. ref may be nil.
func (s *Service) Select(ctx context.Context, mode Mode, candidates []selection.Candidate, excluded selection.ExclusionSet, ref *geo.Point) (selection.Candidate, error) {
	mode, err := s.resolveMode(mode)
	if err != nil {
		return selection.Candidate{}, err
	}

	pool := candidates
	if len(candidates) > 0 {
		pool = selection.FilterByCategory(candidates, excluded.Categories)
		if len(pool) == 0 {
			metrics.RecordSelection(string(mode), metrics.OutcomeExhausted, 0, 0)
			return selection.Candidate{}, selection.ErrNoEligibleItems
		}
	}

	start := time.Now()
	var chosen selection.Candidate
	if mode == ModeWeighted {
		chosen, err = s.selector.Weighted(ctx, pool, selection.DefaultWeight(ref), excluded.IDs)
	} else {
		chosen, err = s.selector.Uniform(ctx, pool, excluded.IDs)
	}
	metrics.RecordSelection(string(mode), selectionOutcome(err), -1, time.Since(start))
	return chosen, err
}

// Reroll records rejection feedback and optionally excludes the place's cuisine.
func (s *Service) Reroll(ctx context.Context, req RerollRequest) (*RerollResult, error) {
	if req.UserID == "" || req.PlaceID == "" {
		return nil, fmt.Errorf("%w: user id and place id are required", ErrInvalidRequest)
	}
	if !validReason(req.Reason) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReason, req.Reason)
	}

	logger := s.requestLogger(ctx, req.UserID)
	s.recordEvent(ctx, logger, req.UserID, req.PlaceID, ActionReroll)
	metrics.RecordReroll(req.Reason, req.ExcludeSimilar)

	var cuisine string
	if req.ExcludeSimilar && len(req.Types) > 0 {
		cuisine = req.Types[0]
	}

	fb := &profile.Feedback{
		UserID:          req.UserID,
		PlaceID:         req.PlaceID,
		Reason:          req.Reason,
		ExcludedCuisine: cuisine,
	}
	if err := s.profiles.AddFeedback(ctx, fb); err != nil {
		return nil, fmt.Errorf("store feedback: %w", err)
	}

	res := &RerollResult{FeedbackID: fb.ID, ExcludedCuisine: cuisine}
	if cuisine != "" {
		// The feedback is already stored; a failed exclusion is reported
		// through CuisineAdded rather than failing the reroll.
		settings, added, err := s.profiles.AddExcludedCuisine(ctx, req.UserID, cuisine)
		if err != nil {
			logger.Warn().Err(err).Str("cuisine", cuisine).Msg("Failed to exclude cuisine")
		} else {
			res.CuisineAdded = added
			res.ExcludedList = settings.ExcludedCuisines
		}
	}

	logger.Info().
		Str("place_id", req.PlaceID).
		Str("reason", req.Reason).
		Str("excluded_cuisine", cuisine).
		Msg("Suggestion rerolled")
	return res, nil
}

// RecordEvent records a client-side action on a suggestion.
func (s *Service) RecordEvent(ctx context.Context, userID, placeID, action string) error {
	if userID == "" || placeID == "" {
		return fmt.Errorf("%w: user id and place id are required", ErrInvalidRequest)
	}
	if !clientActions[action] {
		return fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}
	s.recordEvent(ctx, s.requestLogger(ctx, userID), userID, placeID, action)
	return nil
}

// Recent returns the user's fresh suggestions, newest first.
func (s *Service) Recent(ctx context.Context, userID string) ([]recent.Entry, error) {
	return s.recent.List(ctx, userID)
}

// Settings returns the user's preferences.
func (s *Service) Settings(ctx context.Context, userID string) (profile.Settings, error) {
	return s.profiles.Settings(ctx, userID)
}

// SaveSettings replaces the user's preferences.
func (s *Service) SaveSettings(ctx context.Context, userID string, settings profile.Settings) error {
	return s.profiles.SaveSettings(ctx, userID, settings)
}

// Feedback returns the user's newest reroll feedback.
func (s *Service) Feedback(ctx context.Context, userID string, limit int) ([]profile.Feedback, error) {
	return s.profiles.Feedback(ctx, userID, limit)
}

// Searches returns the user's newest nearby searches.
func (s *Service) Searches(ctx context.Context, userID string, limit int) ([]profile.SearchRecord, error) {
	return s.profiles.Searches(ctx, userID, limit)
}

// Selections returns the user's newest actions on suggestions.
func (s *Service) Selections(ctx context.Context, userID string, limit int) ([]profile.SelectionRecord, error) {
	return s.profiles.Selections(ctx, userID, limit)
}

// Mode returns the configured default selection mode.
func (s *Service) Mode() Mode {
	return s.cfg.Mode
}

// Places returns the places client used for searches.
func (s *Service) Places() places.Searcher {
	return s.places
}

// ClearRecent forgets the user's suggestions.
func (s *Service) ClearRecent(ctx context.Context, userID string) (int, error) {
	return s.recent.Clear(ctx, userID)
}

// resolveMode normalizes a requested mode, falling back to the configured one.
func (s *Service) resolveMode(requested Mode) (Mode, error) {
	mode, err := ParseMode(string(requested))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if mode == "" {
		mode = s.cfg.Mode
	}
	return mode, nil
}

// recordEvent counts the action and appends it to the user's history.
// History failures are logged only.
//
//nolint:gocritic // hugeParam: zerolog.Logger by value
func (s *Service) recordEvent(ctx context.Context, logger zerolog.Logger, userID, placeID, action string) {
	metrics.RecordSelectionEvent(action)
	logger.Debug().Str("place_id", placeID).Str("action", action).Msg("Selection event")

	rec := &profile.SelectionRecord{UserID: userID, PlaceID: placeID, Action: action}
	if err := s.profiles.AddSelection(ctx, rec); err != nil {
		logger.Warn().Err(err).Str("place_id", placeID).Str("action", action).Msg("Failed to record selection history")
	}
}

//nolint:gocritic // hugeParam: zerolog.Logger by value
func (s *Service) recordSearch(ctx context.Context, logger zerolog.Logger, userID string, loc geo.Point, settings *profile.Settings, results int) {
	metrics.RecordSelectionEvent(ActionSearch)
	logger.Debug().
		Float64("lat", loc.Lat).
		Float64("lng", loc.Lng).
		Float64("radius_miles", settings.SearchRadius).
		Ints("price_range", settings.PriceRange).
		Strs("excluded_cuisines", settings.ExcludedCuisines).
		Int("results", results).
		Msg("Nearby search")

	rec := &profile.SearchRecord{
		UserID:           userID,
		Location:         loc,
		RadiusMiles:      settings.SearchRadius,
		PriceRange:       settings.PriceRange,
		ExcludedCuisines: settings.ExcludedCuisines,
		Results:          results,
	}
	if err := s.profiles.AddSearch(ctx, rec); err != nil {
		logger.Warn().Err(err).Msg("Failed to record search history")
	}
}

// withDetails replaces place with its full record. Failures keep the search result.
//
//nolint:gocritic // hugeParam: zerolog.Logger by value
func (s *Service) withDetails(ctx context.Context, logger zerolog.Logger, place *places.Place) *places.Place {
	details, err := s.places.Details(ctx, place.PlaceID)
	if err != nil {
		logger.Warn().Err(err).Str("place_id", place.PlaceID).Msg("Place details unavailable, using search result")
		return place
	}
	if details.Geometry == nil {
		details.Geometry = place.Geometry
	}
	if details.Vicinity == "" {
		details.Vicinity = place.Vicinity
	}
	return details
}

// remember stores the suggestion. A storage failure does not fail the pick.
//
//nolint:gocritic // hugeParam: zerolog.Logger by value
func (s *Service) remember(ctx context.Context, logger zerolog.Logger, userID string, place *places.Place) {
	entry := &recent.Entry{UserID: userID, PlaceID: place.PlaceID, Name: place.Name}
	if err := s.recent.Add(ctx, entry, s.cfg.RecentTTL); err != nil {
		logger.Error().Err(err).Str("place_id", place.PlaceID).Msg("Failed to record recent suggestion")
	}
}

func placeByID(found []places.Place, id string) (*places.Place, error) {
	for i := range found {
		if found[i].PlaceID == id {
			p := found[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("chosen place %q not in search results", id)
}

func buildLinks(place *places.Place) Links {
	links := Links{Delivery: deeplink.Delivery(place.Name, place.Address())}
	if loc := place.Location(); loc != nil {
		m := deeplink.Maps(place.Name, loc.Lat, loc.Lng)
		links.Maps = &m
	}
	if site, ok := deeplink.Website(place.Website); ok {
		links.Website = site
	}
	return links
}

func selectionOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, selection.ErrEmptyInput):
		return metrics.OutcomeEmpty
	case errors.Is(err, selection.ErrNoEligibleItems):
		return metrics.OutcomeExhausted
	case errors.Is(err, selection.ErrEntropySource):
		return metrics.OutcomeEntropy
	default:
		return metrics.OutcomeFailure
	}
}
