// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package places

import (
	"context"
	"time"

	"github.com/tomtom215/idk/internal/cache"
	"github.com/tomtom215/idk/internal/geo"
	"github.com/tomtom215/idk/internal/metrics"
)

// CachingSearcher memoizes Details lookups in front of another Searcher.
// Nearby, TextSearch and Autocomplete always reach the inner searcher so
// open-now and rating data stay current.
type CachingSearcher struct {
	inner   Searcher
	details *cache.LRU[Place]
}

// NewCachingSearcher wraps inner with a details cache of the given size and TTL.
func NewCachingSearcher(inner Searcher, size int, ttl time.Duration, opts ...cache.Option) *CachingSearcher {
	return &CachingSearcher{
		inner:   inner,
		details: cache.NewLRU[Place](size, ttl, opts...),
	}
}

// Details returns a cached copy when one is fresh. Errors are never cached.
func (s *CachingSearcher) Details(ctx context.Context, placeID string) (*Place, error) {
	if p, ok := s.details.Get(placeID); ok {
		metrics.PlacesCacheLookups.WithLabelValues("hit").Inc()
		return &p, nil
	}
	metrics.PlacesCacheLookups.WithLabelValues("miss").Inc()

	p, err := s.inner.Details(ctx, placeID)
	if err != nil {
		return nil, err
	}
	s.details.Add(placeID, *p)
	return p, nil
}

// Nearby delegates to the inner searcher.
func (s *CachingSearcher) Nearby(ctx context.Context, q NearbyQuery) ([]Place, error) {
	return s.inner.Nearby(ctx, q)
}

// TextSearch delegates to the inner searcher.
func (s *CachingSearcher) TextSearch(ctx context.Context, query string, location geo.Point) ([]Place, error) {
	return s.inner.TextSearch(ctx, query, location)
}

// Autocomplete delegates to the inner searcher.
func (s *CachingSearcher) Autocomplete(ctx context.Context, input string, location geo.Point) ([]Prediction, error) {
	return s.inner.Autocomplete(ctx, input, location)
}

// CleanupExpired drops stale details and returns how many were removed.
func (s *CachingSearcher) CleanupExpired(context.Context) (int, error) {
	return s.details.CleanupExpired(), nil
}
