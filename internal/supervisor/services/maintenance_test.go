// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/idk/internal/recent"
)

type countingCleaner struct {
	calls atomic.Int32
	err   error
}

func (c *countingCleaner) CleanupExpired(context.Context) (int, error) {
	c.calls.Add(1)
	return 1, c.err
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRecentCleanupService_SweepsOnStartAndTick(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{name: "success"},
		{name: "failures are retried", err: errors.New("disk full")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cleaner := &countingCleaner{err: tt.err}
			svc := NewRecentCleanupService(cleaner, 20*time.Millisecond, zerolog.Nop())

			ctx, cancel := context.WithCancel(context.Background())
			errCh := make(chan error, 1)
			go func() { errCh <- svc.Serve(ctx) }()

			waitFor(t, func() bool { return cleaner.calls.Load() >= 3 })
			cancel()

			if err := <-errCh; !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() = %v, want context.Canceled", err)
			}
		})
	}
}

func TestRecentCleanupService_RemovesExpiredEntries(t *testing.T) {
	t.Parallel()

	now := time.Now()
	clock := func() time.Time { return now }
	store := recent.NewMemoryStore(recent.WithClock(clock))
	ctx := context.Background()

	if err := store.Add(ctx, &recent.Entry{UserID: "u", PlaceID: "old", SuggestedAt: now.Add(-2 * time.Hour)}, time.Hour); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := store.Add(ctx, &recent.Entry{UserID: "u", PlaceID: "fresh"}, time.Hour); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	svc := NewRecentCleanupService(store, time.Hour, zerolog.Nop())
	svc.sweep(ctx)

	size, err := store.Size(ctx)
	if err != nil {
		t.Fatalf("Size() error = %v", err)
	}
	if size != 1 {
		t.Errorf("size after sweep = %d, want 1", size)
	}
}

func TestCleanupService_Names(t *testing.T) {
	t.Parallel()

	tests := []struct {
		svc  *CleanupService
		want string
	}{
		{svc: NewRecentCleanupService(&countingCleaner{}, 0, zerolog.Nop()), want: "recent-cleanup"},
		{svc: NewDetailsCacheCleanupService(&countingCleaner{}, 0, zerolog.Nop()), want: "details-cache-cleanup"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if tt.svc.String() != tt.want {
				t.Errorf("String() = %q, want %q", tt.svc.String(), tt.want)
			}
			if tt.svc.interval != defaultCleanupInterval {
				t.Errorf("interval = %v, want %v", tt.svc.interval, defaultCleanupInterval)
			}
		})
	}
}

// scriptedGC returns the queued results in order, then ErrNoRewrite.
type scriptedGC struct {
	results []error
	calls   int
}

func (g *scriptedGC) RunValueLogGC(float64) error {
	g.calls++
	if len(g.results) == 0 {
		return badger.ErrNoRewrite
	}
	err := g.results[0]
	g.results = g.results[1:]
	return err
}

func TestValueLogGCService_Collect(t *testing.T) {
	t.Parallel()

	boom := errors.New("io error")
	tests := []struct {
		name          string
		results       []error
		wantRewritten int
		wantErr       error
	}{
		{name: "nothing to collect", wantRewritten: 0},
		{name: "rewrites until exhausted", results: []error{nil, nil}, wantRewritten: 2},
		{name: "rejected stops quietly", results: []error{nil, badger.ErrRejected}, wantRewritten: 1},
		{name: "error surfaces", results: []error{boom}, wantErr: boom},
		{
			name:          "bounded rounds",
			results:       make([]error, maxGCRounds+4),
			wantRewritten: maxGCRounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gc := &scriptedGC{results: tt.results}
			svc := NewValueLogGCService(gc, time.Minute, zerolog.Nop())

			rewritten, err := svc.collect(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("collect() error = %v, want %v", err, tt.wantErr)
			}
			if rewritten != tt.wantRewritten {
				t.Errorf("rewritten = %d, want %d", rewritten, tt.wantRewritten)
			}
		})
	}
}

func TestValueLogGCService_RealBadger(t *testing.T) {
	t.Parallel()

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLogger(nil))
	if err != nil {
		t.Fatalf("badger.Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := NewValueLogGCService(db, 0, zerolog.Nop())
	if svc.interval != defaultGCInterval {
		t.Errorf("interval = %v", svc.interval)
	}
	if _, err := svc.collect(context.Background()); err != nil {
		t.Errorf("collect() on fresh db error = %v", err)
	}
}
