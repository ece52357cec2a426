// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package supervisor

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/idk/internal/logging"
)

// syncBuffer is a bytes.Buffer safe for the supervisor's logging goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func quietTree(t *testing.T, cfg TreeConfig) *SupervisorTree {
	t.Helper()
	tree, err := NewSupervisorTree(logging.NewSlogLogger(zerolog.Nop()), cfg)
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}
	return tree
}

func TestNewSupervisorTree_Defaults(t *testing.T) {
	t.Parallel()

	tree := quietTree(t, TreeConfig{})
	if tree.Root() == nil {
		t.Fatal("root supervisor is nil")
	}
	if tree.config != DefaultTreeConfig() {
		t.Errorf("config = %+v, want defaults", tree.config)
	}

	custom := quietTree(t, TreeConfig{FailureThreshold: 2, ShutdownTimeout: time.Second})
	if custom.config.FailureThreshold != 2 || custom.config.ShutdownTimeout != time.Second {
		t.Errorf("custom values overwritten: %+v", custom.config)
	}
	if custom.config.FailureDecay != 30 || custom.config.FailureBackoff != 15*time.Second {
		t.Errorf("zero values not defaulted: %+v", custom.config)
	}
}

func TestSupervisorTree_StartsBothLayers(t *testing.T) {
	t.Parallel()

	tree := quietTree(t, TreeConfig{ShutdownTimeout: time.Second})
	dataSvc := newMockService("data-service", 0)
	apiSvc := newMockService("api-service", 0)
	tree.AddDataService(dataSvc)
	tree.AddAPIService(apiSvc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	deadline := time.Now().Add(time.Second)
	for (dataSvc.starts() == 0 || apiSvc.starts() == 0) && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not shut down in time")
	}

	if dataSvc.starts() < 1 || apiSvc.starts() < 1 {
		t.Errorf("starts: data=%d api=%d", dataSvc.starts(), apiSvc.starts())
	}
}

func TestWaitForStop_ReturnsAfterCancel(t *testing.T) {
	t.Parallel()

	tree := quietTree(t, TreeConfig{ShutdownTimeout: time.Second})
	tree.AddDataService(newMockService("recent-cleanup", 0))
	tree.AddAPIService(newMockService("http-server", 0))

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)
	time.Sleep(20 * time.Millisecond)
	cancel()

	done := make(chan error, 1)
	go func() { done <- WaitForStop(ctx, errCh) }()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("WaitForStop() error = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("WaitForStop() did not return after cancel")
	}
}

func TestWaitForStop_TreeStopsOnItsOwn(t *testing.T) {
	t.Parallel()

	want := errors.New("tree terminated")
	errCh := make(chan error, 1)
	errCh <- want

	done := make(chan error, 1)
	go func() { done <- WaitForStop(context.Background(), errCh) }()

	select {
	case err := <-done:
		if !errors.Is(err, want) {
			t.Errorf("WaitForStop() error = %v, want %v", err, want)
		}
	case <-time.After(time.Second):
		t.Fatal("WaitForStop() blocked on a live context")
	}
}

func TestSupervisorTree_RestartsFailingService(t *testing.T) {
	var out syncBuffer
	tree, err := NewSupervisorTree(logging.NewSlogLogger(logging.NewTestLogger(&out)), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}

	failing := newMockService("flaky-cleanup", 2)
	stable := newMockService("stable-http", 0)
	tree.AddDataService(failing)
	tree.AddAPIService(stable)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	_ = tree.Serve(ctx)

	if failing.starts() < 3 {
		t.Errorf("failing service starts = %d, want >= 3", failing.starts())
	}
	if stable.starts() != 1 {
		t.Errorf("stable service starts = %d, want 1", stable.starts())
	}
	if !strings.Contains(out.String(), "flaky-cleanup") {
		t.Errorf("supervisor events not logged: %s", out.String())
	}
}
