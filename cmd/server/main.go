// Package main is the entry point for the QAOA portfolio optimizer
// service.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/qoptimizer/internal/config"
	"github.com/aristath/qoptimizer/internal/modules/history"
	qaoahandlers "github.com/aristath/qoptimizer/internal/modules/qaoa/handlers"
	"github.com/aristath/qoptimizer/internal/modules/scheduler"
	"github.com/aristath/qoptimizer/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrapLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootstrapLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()

	log.Info().Msg("Starting QAOA portfolio optimizer")

	historyStore, err := history.Open(cfg.HistoryDBPath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open history store")
	}

	sched := scheduler.New(historyStore, cfg.DefaultLayers, cfg.DefaultGridSize, cfg.DefaultSamples, log)

	qaoaHandler := qaoahandlers.NewHandler(historyStore, log).WithObserver(sched)

	if cfg.SchedulerEnabled {
		if err := sched.Start(cfg.SchedulerCronSpec); err != nil {
			log.Error().Err(err).Msg("Failed to start scheduler")
		} else {
			log.Info().Str("spec", cfg.SchedulerCronSpec).Msg("Scheduler started")
		}
	}

	srv := server.New(server.Config{
		Log:         log,
		Port:        cfg.Port,
		DevMode:     cfg.DevMode,
		QAOAHandler: qaoaHandler,
	})

	go func() {
		if err := srv.Start(); err != nil {
			log.Info().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	if cfg.SchedulerEnabled {
		sched.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	if err := historyStore.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close history store")
	}

	log.Info().Msg("Server stopped")
}
