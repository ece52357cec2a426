// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Selection outcome labels
const (
	OutcomeSuccess   = "success"
	OutcomeEmpty     = "empty_input"
	OutcomeExhausted = "no_eligible"
	OutcomeEntropy   = "entropy_error"
	OutcomeFailure   = "failure"
)

var (
	// Selection Metrics
	SelectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "idk_selections_total",
			Help: "Total number of selection attempts",
		},
		[]string{"mode", "outcome"},
	)

	SelectionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "idk_selection_duration_seconds",
			Help:    "Duration of a single selection draw in seconds",
			Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01},
		},
		[]string{"mode"},
	)

	SelectionEligibleCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "idk_selection_eligible_candidates",
			Help:    "Number of candidates left after exclusion filtering",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 40, 60},
		},
	)

	EntropyFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "idk_entropy_failures_total",
			Help: "Total number of failed secure entropy draws",
		},
	)

	RecencyRelaxed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "idk_recency_relaxed_total",
			Help: "Total number of picks that retried without recent-suggestion exclusion",
		},
	)

	// SelectionEvents mirrors the user actions recorded for a suggestion:
	// search, view, reroll, directions, order, details.
	SelectionEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "idk_selection_events_total",
			Help: "Total number of recorded selection events",
		},
		[]string{"action"},
	)

	RerollFeedback = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "idk_reroll_feedback_total",
			Help: "Total number of reroll feedback submissions",
		},
		[]string{"reason", "exclude_similar"},
	)

	// Places API Metrics
	PlacesRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "idk_places_requests_total",
			Help: "Total number of places API requests",
		},
		[]string{"endpoint", "outcome"},
	)

	PlacesRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "idk_places_request_duration_seconds",
			Help:    "Places API request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint"},
	)

	PlacesResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "idk_places_nearby_results",
			Help:    "Number of places returned by a nearby search",
			Buckets: []float64{0, 1, 5, 10, 20, 40, 60},
		},
	)

	PlacesCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "idk_places_cache_lookups_total",
			Help: "Place details cache lookups by result (hit or miss)",
		},
		[]string{"result"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Recent Suggestion Store Metrics
	RecentStoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "idk_recent_store_operations_total",
			Help: "Total number of recent-suggestion store operations",
		},
		[]string{"operation", "outcome"},
	)

	RecentStoreSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "idk_recent_store_size",
			Help: "Current number of recent suggestions held",
		},
	)

	RecentCleanedUp = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "idk_recent_cleaned_up_total",
			Help: "Total number of expired recent suggestions removed",
		},
	)

	// Profile Store Metrics
	ProfileStoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "idk_profile_store_operations_total",
			Help: "Total number of profile store operations",
		},
		[]string{"operation", "outcome"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordSelection records the outcome and latency of one selection draw.
func RecordSelection(mode, outcome string, eligible int, duration time.Duration) {
	SelectionsTotal.WithLabelValues(mode, outcome).Inc()
	SelectionDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if eligible >= 0 {
		SelectionEligibleCandidates.Observe(float64(eligible))
	}
	if outcome == OutcomeEntropy {
		EntropyFailures.Inc()
	}
}

// RecordSelectionEvent records a user action against a suggestion.
func RecordSelectionEvent(action string) {
	SelectionEvents.WithLabelValues(action).Inc()
}

// RecordReroll records a reroll feedback submission.
func RecordReroll(reason string, excludeSimilar bool) {
	similar := "false"
	if excludeSimilar {
		similar = "true"
	}
	RerollFeedback.WithLabelValues(reason, similar).Inc()
}

// RecordPlacesRequest records a places API call
func RecordPlacesRequest(endpoint string, duration time.Duration, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	PlacesRequests.WithLabelValues(endpoint, outcome).Inc()
	PlacesRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordRecentOperation records a recent store operation
func RecordRecentOperation(operation string, err error) {
	RecentStoreOperations.WithLabelValues(operation, outcomeOf(err)).Inc()
}

// RecordProfileOperation records a profile store operation
func RecordProfileOperation(operation string, err error) {
	ProfileStoreOperations.WithLabelValues(operation, outcomeOf(err)).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

func outcomeOf(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
