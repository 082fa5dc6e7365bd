package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/motio/analysis-api/internal/api"
	"github.com/motio/analysis-api/internal/clients/openmeteo"
	"github.com/motio/analysis-api/internal/clients/overpass"
	"github.com/motio/analysis-api/internal/config"
	"github.com/motio/analysis-api/internal/lib/enrich"
	"github.com/motio/analysis-api/internal/lib/narrate"
	"github.com/motio/analysis-api/internal/observability"
	"github.com/motio/analysis-api/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	// The timezone index and OpenAI client are expensive to construct;
	// both are built once here and shared read-only across requests.
	localizer, err := enrich.NewLocalizer()
	if err != nil {
		logger.Fatal("Failed to initialize timezone localizer", zap.Error(err))
	}

	narrator := narrate.NewNarrator(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	logger.Info("OpenAI narration enabled", zap.String("model", cfg.OpenAI.Model))

	overpassClient := overpass.NewClient(cfg.Overpass.URL, cfg.Overpass.Timeout)
	meteoClient := openmeteo.NewClient(cfg.OpenMeteo.URL, cfg.OpenMeteo.Timeout)

	metrics := observability.NewMetrics()
	weather := services.InstrumentWeather(meteoClient, metrics)
	roads := services.InstrumentRoads(overpassClient, metrics)
	analyzer := services.NewContextService(weather, roads,
		services.InstrumentNarrator(narrator, metrics), localizer, logger)

	router := api.NewRouter(api.Deps{
		Weather:  weather,
		Roads:    roads,
		Analyzer: analyzer,
		Metrics:  metrics,
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Analysis API server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown did not complete cleanly", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}
