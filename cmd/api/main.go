package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bronsonhill/prompting-task-ISLM10002/internal/api"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/infrastructure/config"
	storemongo "github.com/bronsonhill/prompting-task-ISLM10002/internal/infrastructure/db/mongo"
	storeredis "github.com/bronsonhill/prompting-task-ISLM10002/internal/infrastructure/db/redis"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/infrastructure/extract"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/infrastructure/provider"
	"github.com/bronsonhill/prompting-task-ISLM10002/internal/infrastructure/queue"
	"github.com/bronsonhill/prompting-task-ISLM10002/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	mongoClient, db, err := storemongo.Connect(ctx, storemongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect")
		}
	}()

	if err := storemongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create mongodb indexes")
	}

	rdb, err := storeredis.Connect(ctx, storeredis.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close")
		}
	}()

	telemetry := queue.NewDispatcher(cfg.TelemetryWorkers, storemongo.NewAuditRepository(db), log)
	telemetry.Start(ctx)

	chatProvider := provider.NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	extractor := extract.NewExtractor()

	e := api.NewRouter(db, rdb, cfg, telemetry, chatProvider, extractor, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
