// Package main is the entry point for the travel planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tfield/travel-planner/internal/config"
	"github.com/tfield/travel-planner/internal/enrich"
	"github.com/tfield/travel-planner/internal/handler"
	"github.com/tfield/travel-planner/internal/middleware"
	"github.com/tfield/travel-planner/internal/repo"
	"github.com/tfield/travel-planner/internal/service"
)

// enrichHTTPTimeout bounds each outbound enrichment HTTP request.
const enrichHTTPTimeout = 10 * time.Second

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Storage ----------------------------------------------------------
	// Plans live in a single JSON blob under DATA_DIR; the repo loads it once
	// at startup and rewrites it on every mutation.
	planRepo, err := repo.NewPlanRepo(cfg.DataDir, logger)
	if err != nil {
		slog.Error("failed to open plan store", "error", err, "data_dir", cfg.DataDir)
		os.Exit(1)
	}
	slog.Info("plan store opened", "data_dir", cfg.DataDir)

	// --- Services ---------------------------------------------------------
	planService := service.NewPlanService(planRepo)
	activityService := service.NewActivityService(planRepo)
	dragService := service.NewDragService(planRepo, activityService)
	exportService := service.NewExportService()

	var kicker handler.EnrichKicker
	if cfg.EnrichmentEnabled {
		wikipedia := enrich.NewWikipediaClient(cfg.WikipediaAPIURL, cfg.WikipediaRestURL, enrichHTTPTimeout)
		unsplash := enrich.NewUnsplashClient(cfg.UnsplashAPIURL, cfg.UnsplashAccessKey, enrichHTTPTimeout)
		kicker = service.NewEnrichService(planService, wikipedia, unsplash, logger)
	}

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	server := handler.NewServer(planService, activityService, dragService, exportService, kicker, logger)
	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
