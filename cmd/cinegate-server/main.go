package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cinegate/cinegate/internal/adapters/httpapi"
	"github.com/cinegate/cinegate/internal/adapters/memory"
	"github.com/cinegate/cinegate/internal/adapters/memorybus"
	"github.com/cinegate/cinegate/internal/app"
	"github.com/cinegate/cinegate/internal/buildinfo"
	"github.com/cinegate/cinegate/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	def := config.Default()
	addr := flag.String("addr", def.Addr, "listen address (e.g. 127.0.0.1:8080)")
	flag.Parse()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("app", "cinegate-server").Logger()
	log.Logger = logger

	logger.Info().Interface("build", buildinfo.Current()).Msg("starting")

	bus := memorybus.New()
	defer bus.Close()

	settingsRepo := memory.NewSettingsRepository(def.Settings)
	settingsSvc := app.NewSettingsService(settingsRepo)

	store := app.NewContentStoreService(settingsSvc.Get)
	catalogSvc := app.NewCatalogService(logger.With().Str("component", "catalog").Logger(), store, bus)
	searchSvc := app.NewAISearchService(settingsSvc.Get)
	posterSvc := app.NewPosterService(settingsSvc.Get)
	credsSvc := app.NewCredentialService(settingsSvc.Get)
	adminSvc := app.NewAdminService(logger.With().Str("component", "admin").Logger(), store, searchSvc, posterSvc, credsSvc, bus)

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Warm the catalog in the background; a dead store only costs a log
	// line and the first /catalog/refresh retries.
	go catalogSvc.Refresh(shutdownCtx)

	srv := httpapi.NewServer(logger, catalogSvc, adminSvc, settingsSvc, bus)
	httpServer := &http.Server{
		Addr:              *addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", *addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server crashed")
			stop()
		}
	}()

	<-shutdownCtx.Done()
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctx)
	logger.Info().Msg("bye")
}
