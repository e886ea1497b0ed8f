package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/post-board/internal/config"
	"github.com/MKhiriev/post-board/internal/handler"
	"github.com/MKhiriev/post-board/internal/handler/http"
	"github.com/MKhiriev/post-board/internal/logger"
	"github.com/MKhiriev/post-board/internal/metrics"
	"github.com/MKhiriev/post-board/internal/ratelimit"
	"github.com/MKhiriev/post-board/internal/server"
	"github.com/MKhiriev/post-board/internal/service"
	"github.com/MKhiriev/post-board/internal/store"
	"github.com/MKhiriev/post-board/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("post-board-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Any("admission", cfg.Admission).
		Dur("sweep_interval", cfg.Workers.SweepInterval).
		Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services := service.NewServices(storages, *cfg, log)

	limitStore := ratelimit.NewMemoryStore(cfg.Admission.Window)
	throttleStore := ratelimit.NewMemoryStore(cfg.Admission.Window)

	controller, err := ratelimit.NewController(ratelimit.Policy{
		Window:     cfg.Admission.Window,
		Limit:      cfg.Admission.Limit,
		DelayAfter: cfg.Admission.DelayAfter,
		DelayStep:  cfg.Admission.DelayStep,
		MaxDelay:   cfg.Admission.MaxDelay,
	}, limitStore, throttleStore, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating admission controller")
	}

	resolver, err := ratelimit.NewIPResolver(cfg.Admission.TrustedProxies)
	if err != nil {
		log.Fatal().Err(err).Msg("error parsing trusted proxies")
	}

	appMetrics := metrics.New()

	handlers, err := handler.NewHandlers(services,
		http.Admission{Controller: controller, ClientIP: resolver},
		storages.Health, appMetrics, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	sweeper := workers.NewSweepWorker(map[string]workers.Sweeper{
		"limit":    limitStore,
		"throttle": throttleStore,
	}, cfg.Workers.SweepInterval, appMetrics, log)

	srv, err := server.NewServer(handlers, workers.NewWorkers(sweeper), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
