// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package cache

import (
	"strconv"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestLRU_Eviction(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](3, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	// Touch a so b becomes the oldest.
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get(a) = %d, %v", v, ok)
	}
	c.Add("d", 4)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	for _, k := range []string{"a", "c", "d"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("%s missing", k)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestLRU_UpdateRefreshes(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := NewLRU[string](2, time.Minute, WithClock(clock.Now))

	c.Add("k", "old")
	clock.Advance(45 * time.Second)
	c.Add("k", "new")
	clock.Advance(45 * time.Second)

	v, ok := c.Get("k")
	if !ok || v != "new" {
		t.Errorf("Get(k) = %q, %v; want new, true", v, ok)
	}
}

func TestLRU_Expiration(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := NewLRU[int](10, time.Minute, WithClock(clock.Now))

	c.Add("a", 1)
	clock.Advance(30 * time.Second)
	c.Add("b", 2)
	clock.Advance(40 * time.Second)

	if _, ok := c.Get("a"); ok {
		t.Error("a should have expired")
	}
	if removed := c.CleanupExpired(); removed != 0 {
		t.Errorf("CleanupExpired() = %d, want 0 after lazy removal", removed)
	}

	clock.Advance(time.Minute)
	if removed := c.CleanupExpired(); removed != 1 {
		t.Errorf("CleanupExpired() = %d, want 1", removed)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestLRU_RemoveAndStats(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](0, 0)
	if c.capacity != defaultCapacity || c.ttl != defaultTTL {
		t.Errorf("defaults = %d, %v", c.capacity, c.ttl)
	}

	c.Add("a", 1)
	c.Get("a")
	c.Get("missing")
	if !c.Remove("a") {
		t.Error("Remove(a) = false")
	}
	if c.Remove("a") {
		t.Error("second Remove(a) = true")
	}

	hits, misses, size := c.Stats()
	if hits != 1 || misses != 1 || size != 0 {
		t.Errorf("Stats() = %d, %d, %d; want 1, 1, 0", hits, misses, size)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	t.Parallel()

	c := NewLRU[int](50, time.Minute)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := strconv.Itoa((w * 200) + i)
				c.Add(key, i)
				c.Get(key)
			}
		}(w)
	}
	wg.Wait()

	if n := c.Len(); n > 50 {
		t.Errorf("Len() = %d, exceeds capacity", n)
	}
}
