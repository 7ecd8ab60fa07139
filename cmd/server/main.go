package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wakala/banksync/internal/api"
	"github.com/wakala/banksync/internal/bank"
	"github.com/wakala/banksync/internal/config"
	"github.com/wakala/banksync/internal/ingestion"
	"github.com/wakala/banksync/internal/logger"
	"github.com/wakala/banksync/internal/reconciliation"
	"github.com/wakala/banksync/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		startupLog := logger.New("info")
		startupLog.Fatal().Err(err).Msg("Invalid configuration")
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("db_path", cfg.DBPath).Msg("Initializing database")
	db, err := repository.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init DB")
	}
	defer db.Close()
	store := repository.NewStore(db)

	source, closeSource, err := ingestion.Open(ctx, cfg.SnapshotBucket, cfg.SnapshotPrefix, cfg.SnapshotDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open snapshot source")
	}
	defer closeSource()
	if cfg.SnapshotBucket != "" {
		log.Info().Str("bucket", cfg.SnapshotBucket).Str("prefix", cfg.SnapshotPrefix).Msg("Reading snapshots from Cloud Storage")
	} else {
		log.Info().Str("dir", cfg.SnapshotDir).Msg("Reading snapshots from directory")
	}

	// Create services.
	registry := bank.DefaultRegistry()
	reconSvc := reconciliation.NewService(source, registry, store, log, cfg.SyncWorkers)
	ingestSvc := ingestion.NewService(reconSvc, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(reconSvc, ingestSvc, store, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Int("adapters", len(registry.Variants())).
			Int("sync_workers", cfg.SyncWorkers).
			Msg("Bank sync service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
