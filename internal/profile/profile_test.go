// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package profile

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
)

func openInMemoryBadger(t *testing.T) *badger.DB {
	t.Helper()
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("Failed to open BadgerDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

type tick struct{ now time.Time }

func (c *tick) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func stores(t *testing.T, opts ...Option) map[string]Store {
	t.Helper()
	return map[string]Store{
		"memory": NewMemoryStore(opts...),
		"badger": NewBadgerStore(openInMemoryBadger(t), "", opts...),
	}
}

func TestStore_SettingsDefaults(t *testing.T) {
	ctx := context.Background()
	custom := Settings{SearchRadius: 2, PriceRange: []int{1}, ExcludedCuisines: []string{"bar"}}

	for name, store := range stores(t, WithDefaults(custom)) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			got, err := store.Settings(ctx, "new-user")
			if err != nil {
				t.Fatalf("Settings failed: %v", err)
			}
			if !reflect.DeepEqual(got, custom) {
				t.Errorf("Settings() = %+v, want %+v", got, custom)
			}

			// Mutating the returned copy must not leak into the defaults
			got.ExcludedCuisines[0] = "changed"
			again, _ := store.Settings(ctx, "new-user")
			if again.ExcludedCuisines[0] != "bar" {
				t.Errorf("defaults were mutated: %v", again.ExcludedCuisines)
			}
		})
	}
}

func TestStore_SaveSettings(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			want := Settings{SearchRadius: 10, PriceRange: []int{2, 3}, ExcludedCuisines: []string{"sushi"}, LocationEnabled: false}
			if err := store.SaveSettings(ctx, "u1", want); err != nil {
				t.Fatalf("SaveSettings failed: %v", err)
			}
			got, err := store.Settings(ctx, "u1")
			if err != nil {
				t.Fatalf("Settings failed: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Settings() = %+v, want %+v", got, want)
			}

			if err := store.SaveSettings(ctx, "", want); !errors.Is(err, ErrInvalidUser) {
				t.Errorf("SaveSettings(\"\") error = %v", err)
			}
		})
	}
}

func TestStore_AddExcludedCuisine(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			st, added, err := store.AddExcludedCuisine(ctx, "u1", "fast_food_restaurant")
			if err != nil || !added {
				t.Fatalf("AddExcludedCuisine = %v, %v", added, err)
			}
			if st.SearchRadius != 5 {
				t.Errorf("Expected defaults to seed settings, got radius %v", st.SearchRadius)
			}

			_, added, err = store.AddExcludedCuisine(ctx, "u1", " fast_food_restaurant ")
			if err != nil {
				t.Fatalf("AddExcludedCuisine failed: %v", err)
			}
			if added {
				t.Error("Expected duplicate cuisine to be ignored")
			}

			_, added, _ = store.AddExcludedCuisine(ctx, "u1", "   ")
			if added {
				t.Error("Expected blank cuisine to be ignored")
			}

			got, _ := store.Settings(ctx, "u1")
			if !reflect.DeepEqual(got.ExcludedCuisines, []string{"fast_food_restaurant"}) {
				t.Errorf("ExcludedCuisines = %v", got.ExcludedCuisines)
			}
		})
	}
}

func TestStore_AddExcludedCuisine_CaseAndCap(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			if _, added, _ := store.AddExcludedCuisine(ctx, "u1", "sushi"); !added {
				t.Fatal("Expected first cuisine to be added")
			}
			if _, added, _ := store.AddExcludedCuisine(ctx, "u1", "Sushi"); added {
				t.Error("Expected case-insensitive duplicate to be ignored")
			}

			for i := range MaxExcludedCuisines + 6 {
				if _, _, err := store.AddExcludedCuisine(ctx, "u1", fmt.Sprintf("cuisine_%02d", i)); err != nil {
					t.Fatalf("AddExcludedCuisine failed: %v", err)
				}
			}

			got, err := store.Settings(ctx, "u1")
			if err != nil {
				t.Fatalf("Settings failed: %v", err)
			}
			if len(got.ExcludedCuisines) != MaxExcludedCuisines {
				t.Fatalf("Expected %d cuisines, got %d", MaxExcludedCuisines, len(got.ExcludedCuisines))
			}
			// sushi plus the first six generated entries are the oldest and drop off
			if got.ExcludedCuisines[0] != "cuisine_06" {
				t.Errorf("Expected oldest entries dropped, first is %q", got.ExcludedCuisines[0])
			}
			if last := got.ExcludedCuisines[MaxExcludedCuisines-1]; last != fmt.Sprintf("cuisine_%02d", MaxExcludedCuisines+5) {
				t.Errorf("Expected newest entry kept, last is %q", last)
			}
			if err := store.SaveSettings(ctx, "u2", got); err != nil {
				t.Errorf("Capped settings should still save: %v", err)
			}
		})
	}
}

func TestStore_Feedback(t *testing.T) {
	ctx := context.Background()
	clock := &tick{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}

	for name, store := range stores(t, WithClock(clock.Now)) {
		t.Run(name, func(t *testing.T) {
			defer store.Close()

			for _, reason := range []string{"Too far", "Not in the mood", "Too expensive"} {
				if err := store.AddFeedback(ctx, &Feedback{UserID: "u1", PlaceID: "p", Reason: reason}); err != nil {
					t.Fatalf("AddFeedback failed: %v", err)
				}
			}
			if err := store.AddFeedback(ctx, &Feedback{UserID: "u2", PlaceID: "p", Reason: "Other"}); err != nil {
				t.Fatalf("AddFeedback failed: %v", err)
			}

			list, err := store.Feedback(ctx, "u1", 2)
			if err != nil {
				t.Fatalf("Feedback failed: %v", err)
			}
			if len(list) != 2 {
				t.Fatalf("Expected 2 records, got %d", len(list))
			}
			if list[0].Reason != "Too expensive" || list[1].Reason != "Not in the mood" {
				t.Errorf("Expected newest first, got %q, %q", list[0].Reason, list[1].Reason)
			}
			if list[0].ID == "" {
				t.Error("Expected feedback ID to be assigned")
			}

			all, _ := store.Feedback(ctx, "u1", 0)
			if len(all) != 3 {
				t.Errorf("Expected default limit to return all 3, got %d", len(all))
			}

			if err := store.AddFeedback(ctx, &Feedback{UserID: "u1"}); !errors.Is(err, ErrInvalidFeedback) {
				t.Errorf("AddFeedback(empty) error = %v", err)
			}
		})
	}
}

func TestStore_Closed(t *testing.T) {
	ctx := context.Background()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_ = store.Close()
			if _, err := store.Settings(ctx, "u"); !errors.Is(err, ErrStoreClosed) {
				t.Errorf("Settings error = %v", err)
			}
			if _, _, err := store.AddExcludedCuisine(ctx, "u", "x"); !errors.Is(err, ErrStoreClosed) {
				t.Errorf("AddExcludedCuisine error = %v", err)
			}
			if err := store.AddFeedback(ctx, &Feedback{UserID: "u", PlaceID: "p", Reason: "Other"}); !errors.Is(err, ErrStoreClosed) {
				t.Errorf("AddFeedback error = %v", err)
			}
			if err := store.AddSearch(ctx, &SearchRecord{UserID: "u"}); !errors.Is(err, ErrStoreClosed) {
				t.Errorf("AddSearch error = %v", err)
			}
			if _, err := store.Searches(ctx, "u", 0); !errors.Is(err, ErrStoreClosed) {
				t.Errorf("Searches error = %v", err)
			}
			if err := store.AddSelection(ctx, &SelectionRecord{UserID: "u", PlaceID: "p", Action: "view"}); !errors.Is(err, ErrStoreClosed) {
				t.Errorf("AddSelection error = %v", err)
			}
			if _, err := store.Selections(ctx, "u", 0); !errors.Is(err, ErrStoreClosed) {
				t.Errorf("Selections error = %v", err)
			}
		})
	}
}

func TestSettings_PriceBounds(t *testing.T) {
	tests := []struct {
		name     string
		prices   []int
		min, max int
		ok       bool
	}{
		{name: "default range", prices: []int{1, 2, 3}, min: 1, max: 3, ok: true},
		{name: "unordered", prices: []int{4, 0, 2}, min: 0, max: 4, ok: true},
		{name: "single", prices: []int{2}, min: 2, max: 2, ok: true},
		{name: "empty", prices: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, ok := Settings{PriceRange: tt.prices}.PriceBounds()
			if ok != tt.ok || lo != tt.min || hi != tt.max {
				t.Errorf("PriceBounds() = %d, %d, %v; want %d, %d, %v", lo, hi, ok, tt.min, tt.max, tt.ok)
			}
		})
	}
}
