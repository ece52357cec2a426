// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto and are
exposed at /metrics in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

Selection:
  - idk_selections_total: Selection attempts (counter)
    Labels: mode, outcome
  - idk_selection_duration_seconds: Draw latency (histogram)
  - idk_selection_eligible_candidates: Candidates left after filtering (histogram)
  - idk_entropy_failures_total: Failed secure random draws (counter)
  - idk_recency_relaxed_total: Picks retried without recency exclusion (counter)
  - idk_selection_events_total: User actions per suggestion (counter)
    Labels: action (search, view, reroll, directions, order, details)
  - idk_reroll_feedback_total: Reroll submissions (counter)
    Labels: reason, exclude_similar

Places API:
  - idk_places_requests_total, idk_places_request_duration_seconds
  - idk_places_nearby_results
  - circuit_breaker_state, circuit_breaker_requests_total,
    circuit_breaker_consecutive_failures, circuit_breaker_state_transitions_total

Storage:
  - idk_recent_store_operations_total, idk_recent_store_size, idk_recent_cleaned_up_total
  - idk_profile_store_operations_total

HTTP:
  - api_requests_total, api_request_duration_seconds, api_active_requests

# Usage

Record helpers keep label handling in one place:

	start := time.Now()
	chosen, err := selector.Uniform(ctx, candidates, recent)
	metrics.RecordSelection("uniform", metrics.OutcomeSuccess, len(candidates), time.Since(start))

# Thread Safety

Prometheus collectors are safe for concurrent use.
*/
package metrics
