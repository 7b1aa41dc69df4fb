package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"pitchlens/adapters/cache"
	"pitchlens/adapters/postgres"
	"pitchlens/adapters/statcast"
	"pitchlens/app"
	"pitchlens/internal"
	"pitchlens/internal/config"
	"pitchlens/ports"
	"pitchlens/ui"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := internal.DefaultLogger

	source := buildSeasonSource(cfg, logger)
	analysis := app.NewAnalysisService(source)
	batch := app.NewBatchService(analysis, cfg.Batch.Concurrency)

	go func() {
		addr := ":" + cfg.Server.HealthPort
		logger.Info("health server listening on %s", addr)
		if err := http.ListenAndServe(addr, ui.NewHealthRouter()); err != nil {
			logger.Error("health server failed: %v", err)
		}
	}()

	server := ui.NewServer(ui.Config{
		Port:    cfg.Server.Port,
		GinMode: cfg.Server.GinMode,
	}, analysis, batch)

	if err := server.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// buildSeasonSource composes the season pipeline: HTTP fetcher, optional
// postgres persistence, then the in-memory TTL cache in front.
func buildSeasonSource(cfg *config.Config, logger *internal.Logger) ports.SeasonSource {
	var source ports.SeasonSource = statcast.NewReader(statcast.Config{
		BaseURL: cfg.Statcast.BaseURL,
		Timeout: cfg.Statcast.Timeout,
	})

	if cfg.Database.URL != "" {
		db, err := postgres.Connect(context.Background(), cfg.Database.URL)
		if err != nil {
			logger.Warn("postgres unavailable, running without persistence: %v", err)
		} else {
			store := postgres.NewSeasonRepository(db)
			source = app.NewStoredSource(store, source, logger.Warn)
		}
	}

	return cache.NewSeasonCache(source, cfg.Cache.SeasonTTL)
}
