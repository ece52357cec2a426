// IDK - Random Restaurant Picker
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/idk

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/idk/internal/api"
	"github.com/tomtom215/idk/internal/config"
	"github.com/tomtom215/idk/internal/logging"
	"github.com/tomtom215/idk/internal/metrics"
	"github.com/tomtom215/idk/internal/picker"
	"github.com/tomtom215/idk/internal/places"
	"github.com/tomtom215/idk/internal/selection"
	"github.com/tomtom215/idk/internal/supervisor"
	"github.com/tomtom215/idk/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Caller:  cfg.Logging.Caller,
		Service: "idk",
	})

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("selection_mode", cfg.Selection.Mode).
		Bool("in_memory", cfg.Storage.InMemory).
		Msg("Starting IDK restaurant picker")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin in production; set CORS_ORIGINS")
	}

	store, err := initStorage(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize storage")
	}
	defer func() {
		if err := store.close(); err != nil {
			logging.Error().Err(err).Msg("Error closing storage")
		}
	}()

	placesClient, err := places.NewClient(places.Config{
		APIKey:        cfg.Places.APIKey,
		BaseURL:       cfg.Places.BaseURL,
		Timeout:       cfg.Places.Timeout,
		RatePerSecond: cfg.Places.RatePerSecond,
		Burst:         cfg.Places.Burst,
		Breaker: places.BreakerConfig{
			MaxRequests:  cfg.Places.Breaker.MaxRequests,
			Interval:     cfg.Places.Breaker.Interval,
			Timeout:      cfg.Places.Breaker.Timeout,
			MinRequests:  cfg.Places.Breaker.MinRequests,
			FailureRatio: cfg.Places.Breaker.FailureRatio,
		},
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create places client")
	}

	var searcher places.Searcher = placesClient
	var detailsCache *places.CachingSearcher
	if cfg.Places.DetailsCacheSize > 0 {
		detailsCache = places.NewCachingSearcher(placesClient, cfg.Places.DetailsCacheSize, cfg.Places.DetailsCacheTTL)
		searcher = detailsCache
	}

	selector, err := newSelector(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create selector")
	}

	mode, _ := picker.ParseMode(cfg.Selection.Mode) // validated by config.Load
	svc, err := picker.NewService(picker.Config{
		Mode:         mode,
		RelaxRecency: cfg.Selection.RelaxRecency,
		RecentTTL:    cfg.Recent.TTL,
		FetchDetails: cfg.Selection.FetchDetails,
	}, selector, searcher, store.recent, store.profiles, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create picker service")
	}

	handler := api.NewHandler(svc,
		api.WithVersion(version),
		api.WithStorageCheck(store.check),
		api.WithBreakerState(placesClient.BreakerState),
	)
	chiMw := api.NewChiMiddlewareFromSecurity(
		cfg.Security.CORSOrigins,
		cfg.Security.RateLimitReqs,
		cfg.Security.RateLimitWindow,
		cfg.Security.RateLimitDisabled,
	)
	router := api.NewRouter(handler, chiMw)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logging.WithComponent("supervisor")), supervisor.TreeConfig{
		FailureThreshold: cfg.Supervisor.FailureThreshold,
		FailureDecay:     cfg.Supervisor.FailureDecay,
		FailureBackoff:   cfg.Supervisor.FailureBackoff,
		ShutdownTimeout:  cfg.Supervisor.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Data layer
	tree.AddDataService(services.NewRecentCleanupService(store.recent, cfg.Recent.CleanupInterval, logging.Logger()))
	if detailsCache != nil {
		tree.AddDataService(services.NewDetailsCacheCleanupService(detailsCache, cfg.Places.DetailsCacheTTL, logging.Logger()))
	}
	if store.db != nil {
		tree.AddDataService(services.NewValueLogGCService(store.db, 0, logging.Logger()))
	}

	// API layer
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Supervisor.ShutdownTimeout,
		services.WithDrainHook(handler.MarkDraining)))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	if err := supervisor.WaitForStop(ctx, errCh); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}
	logging.Info().Msg("Supervisor tree stopped")

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, s := range unstopped {
		logging.Warn().Str("service", s.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// newSelector builds the selection engine from the selection config.
func newSelector(cfg *config.Config) (*selection.Selector, error) {
	digest, err := selection.ParseDigest(cfg.Selection.Digest)
	if err != nil {
		return nil, err
	}
	source, err := selection.NewHashedSource(digest)
	if err != nil {
		return nil, err
	}
	policy, err := selection.ParseZeroWeightPolicy(cfg.Selection.ZeroWeightPolicy)
	if err != nil {
		return nil, err
	}

	logging.Info().
		Str("digest", string(digest)).
		Str("zero_weight_policy", policy.String()).
		Msg("Selection engine ready")
	return selection.NewSelector(source, selection.WithZeroWeightPolicy(policy)), nil
}
