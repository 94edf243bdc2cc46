package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/where2buy/backend/config"
	httpDelivery "github.com/where2buy/backend/internal/delivery/http"
	"github.com/where2buy/backend/internal/infrastructure/gemini"
	"github.com/where2buy/backend/internal/infrastructure/places"
	"github.com/where2buy/backend/internal/infrastructure/session"
	"github.com/where2buy/backend/internal/logger"
	"github.com/where2buy/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	slog.Info("starting where2buy backend",
		"version", "1.0.0",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port)

	upstream := cfg.Upstream

	geminiClient := gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.BaseURL, cfg.Gemini.Model, gemini.Options{
		Timeout:           upstream.Timeout,
		RequestsPerSecond: upstream.RequestsPerSecond,
		Burst:             upstream.Burst,
	})
	placesClient := places.NewClient(cfg.Places.APIKey, cfg.Places.BaseURL, places.Options{
		Timeout:           upstream.Timeout,
		RequestsPerSecond: upstream.RequestsPerSecond,
		Burst:             upstream.Burst,
	})

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		geminiClient.SetDebug(true)
		slog.Debug("gemini client debug mode enabled")
	}

	if !cfg.CredentialsConfigured() {
		slog.Warn("API keys are not configured - searches will fail until they are set",
			"gemini_key_set", cfg.Gemini.APIKey != "",
			"places_key_set", cfg.Places.APIKey != "")
	}

	sessions := session.NewMemoryStore(cfg.Session.TTL)
	defer sessions.Close()

	searchService := usecase.NewSearchService(geminiClient, placesClient, sessions, usecase.SearchServiceConfig{
		RadiusMeters:      cfg.Places.RadiusMeters,
		MaxOfflineResults: cfg.Search.MaxOfflineResults,
		MaxConcurrency:    cfg.Search.MaxConcurrency,
	})

	slog.Info("search configured",
		"model", cfg.Gemini.Model,
		"radius_meters", cfg.Places.RadiusMeters,
		"max_offline_results", cfg.Search.MaxOfflineResults,
		"max_concurrency", cfg.Search.MaxConcurrency,
		"upstream_rps", upstream.RequestsPerSecond)

	handler := httpDelivery.NewHandler(searchService)
	router := httpDelivery.SetupRouter(cfg, handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited properly")
}
