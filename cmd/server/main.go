package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/pairchat/chat-service/internal/api"
	"github.com/pairchat/chat-service/internal/infrastructure/config"
	mongodb "github.com/pairchat/chat-service/internal/infrastructure/db/mongo"
	redisdb "github.com/pairchat/chat-service/internal/infrastructure/db/redis"
	"github.com/pairchat/chat-service/internal/infrastructure/hub"
	"github.com/pairchat/chat-service/internal/infrastructure/session"
	"github.com/pairchat/chat-service/pkg/logger"
)

// @title           PairChat API
// @version         1.0
// @description     Two-party chat service: passcode pairing, presence tracking, and ordered room messaging.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	sessions, err := session.Open(cfg.Session.Dir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("session store open failed")
	}
	defer func() {
		if err := sessions.Close(); err != nil {
			log.Warn().Err(err).Msg("session store close")
		}
	}()

	directory := mongodb.NewDirectoryRepository(db)
	messages := mongodb.NewMessageRepository(db)
	if err := directory.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("directory index creation failed")
	}
	if err := messages.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("message index creation failed")
	}

	// The dispatcher fans change notifications out to in-process streams;
	// the listener feeds it from the Redis channels other instances publish to.
	dispatcher := hub.NewDispatcher(cfg.Hub.Workers, log)
	dispatcher.Start(ctx)
	listener := redisdb.NewListener(rdb, dispatcher, log)
	go listener.Run(ctx)

	e := api.NewRouter(api.Deps{
		DB:        db,
		Redis:     rdb,
		Sessions:  sessions,
		Notifier:  dispatcher,
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}
