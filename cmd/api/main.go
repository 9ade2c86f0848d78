package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tributestream/livestream-api/internal/api"
	"github.com/tributestream/livestream-api/internal/infrastructure/config"
	mongodb "github.com/tributestream/livestream-api/internal/infrastructure/db/mongo"
	redisdb "github.com/tributestream/livestream-api/internal/infrastructure/db/redis"
	"github.com/tributestream/livestream-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// The run log and capability cache are optional: the service runs without
	// them, readiness reports what is actually connected.
	var db *mongo.Database
	var mongoClient *mongo.Client
	if cfg.Mongo.URI != "" {
		var err error
		mongoClient, db, err = mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Warn().Err(err).Msg("mongodb unavailable, workflow run log disabled")
			db = nil
		} else if err := mongodb.NewWorkflowRepository(db).EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("ensure workflow run indexes")
		}
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		var err error
		rdb, err = redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, capability cache disabled")
			rdb = nil
		}
	}

	e := api.NewRouter(cfg, db, rdb, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting livestream-api")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if mongoClient != nil {
		_ = mongoClient.Disconnect(shutdownCtx)
	}
	if rdb != nil {
		_ = rdb.Close()
	}

	log.Info().Msg("stopped")
}
