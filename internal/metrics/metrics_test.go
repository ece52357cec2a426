// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordSelection(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		outcome string
	}{
		{name: "uniform success", mode: "uniform", outcome: OutcomeSuccess},
		{name: "weighted exhausted", mode: "weighted", outcome: OutcomeExhausted},
		{name: "uniform empty", mode: "uniform", outcome: OutcomeEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(SelectionsTotal.WithLabelValues(tt.mode, tt.outcome))
			RecordSelection(tt.mode, tt.outcome, 3, time.Millisecond)
			after := testutil.ToFloat64(SelectionsTotal.WithLabelValues(tt.mode, tt.outcome))
			if after != before+1 {
				t.Errorf("SelectionsTotal{%s,%s} = %v, want %v", tt.mode, tt.outcome, after, before+1)
			}
		})
	}
}

func TestRecordSelection_EntropyFailure(t *testing.T) {
	before := testutil.ToFloat64(EntropyFailures)
	RecordSelection("uniform", OutcomeEntropy, -1, 0)
	if got := testutil.ToFloat64(EntropyFailures); got != before+1 {
		t.Errorf("EntropyFailures = %v, want %v", got, before+1)
	}
}

func TestRecordReroll(t *testing.T) {
	before := testutil.ToFloat64(RerollFeedback.WithLabelValues("Too far", "true"))
	RecordReroll("Too far", true)
	if got := testutil.ToFloat64(RerollFeedback.WithLabelValues("Too far", "true")); got != before+1 {
		t.Errorf("RerollFeedback = %v, want %v", got, before+1)
	}
}

func TestRecordPlacesRequest(t *testing.T) {
	okBefore := testutil.ToFloat64(PlacesRequests.WithLabelValues("nearby", OutcomeSuccess))
	failBefore := testutil.ToFloat64(PlacesRequests.WithLabelValues("nearby", OutcomeFailure))

	RecordPlacesRequest("nearby", 20*time.Millisecond, nil)
	RecordPlacesRequest("nearby", 20*time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(PlacesRequests.WithLabelValues("nearby", OutcomeSuccess)); got != okBefore+1 {
		t.Errorf("success = %v, want %v", got, okBefore+1)
	}
	if got := testutil.ToFloat64(PlacesRequests.WithLabelValues("nearby", OutcomeFailure)); got != failBefore+1 {
		t.Errorf("failure = %v, want %v", got, failBefore+1)
	}
}

func TestRecordStoreOperations(t *testing.T) {
	before := testutil.ToFloat64(RecentStoreOperations.WithLabelValues("add", OutcomeFailure))
	RecordRecentOperation("add", errors.New("disk full"))
	if got := testutil.ToFloat64(RecentStoreOperations.WithLabelValues("add", OutcomeFailure)); got != before+1 {
		t.Errorf("RecentStoreOperations = %v, want %v", got, before+1)
	}

	before = testutil.ToFloat64(ProfileStoreOperations.WithLabelValues("save_settings", OutcomeSuccess))
	RecordProfileOperation("save_settings", nil)
	if got := testutil.ToFloat64(ProfileStoreOperations.WithLabelValues("save_settings", OutcomeSuccess)); got != before+1 {
		t.Errorf("ProfileStoreOperations = %v, want %v", got, before+1)
	}
}

func TestTrackActiveRequest_RequestLifecycle(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestConcurrentMetricRecording(t *testing.T) {
	const workers = 20
	before := testutil.ToFloat64(SelectionEvents.WithLabelValues("view"))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordSelectionEvent("view")
			RecordAPIRequest("POST", "/api/v1/users/{userID}/pick", "200", time.Millisecond)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(SelectionEvents.WithLabelValues("view")); got != before+workers {
		t.Errorf("SelectionEvents{view} = %v, want %v", got, before+workers)
	}
}

// TestMetricGathering tests that metrics can be gathered using testutil
func TestMetricGathering(t *testing.T) {
	RecordSelection("uniform", OutcomeSuccess, 1, time.Microsecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Fatalf("GatherAndLint() error = %v", err)
	}
	for _, p := range problems {
		t.Logf("lint: %s: %s", p.Metric, p.Text)
	}
}
