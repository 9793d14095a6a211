package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codecoach-ai/codecoach-api/internal/api"
	"github.com/codecoach-ai/codecoach-api/internal/core/ports"
	"github.com/codecoach-ai/codecoach-api/internal/infrastructure/config"
	"github.com/codecoach-ai/codecoach-api/internal/infrastructure/db/memory"
	mongodb "github.com/codecoach-ai/codecoach-api/internal/infrastructure/db/mongo"
	redisdb "github.com/codecoach-ai/codecoach-api/internal/infrastructure/db/redis"
	"github.com/codecoach-ai/codecoach-api/internal/infrastructure/genai"
	"github.com/codecoach-ai/codecoach-api/internal/infrastructure/pdf"
	"github.com/codecoach-ai/codecoach-api/pkg/logger"
)

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
		Pretty: !cfg.IsProduction(),
	})

	// --- Backing stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})

	var counterStore ports.CounterStore
	var sessionStore ports.SessionStore
	if err != nil {
		// Single-instance fallback: counters live in process memory and
		// sessions cannot survive a restart. Fine for development, a
		// known scaling limitation anywhere else.
		log.Warn().Err(err).Msg("redis unavailable, using in-memory counter store")
		memStore := memory.NewCounterStore()
		memStore.Start(ctx)
		counterStore = memStore
		sessionStore = memory.NewSessionStore()
	} else {
		defer func() { _ = rdb.Close() }()
		counterStore = redisdb.NewCounterStore(rdb)
		sessionStore = redisdb.NewSessionStore(rdb)
	}

	e := api.NewRouter(api.Dependencies{
		Config:       cfg,
		DB:           db,
		Redis:        rdb,
		CounterStore: counterStore,
		SessionStore: sessionStore,
		Generator: genai.NewClient(genai.Config{
			BaseURL: cfg.Generator.URL,
			APIKey:  cfg.Generator.APIKey,
			Model:   cfg.Generator.Model,
		}),
		Renderer: pdf.NewClient(pdf.Config{BaseURL: cfg.Renderer.URL}),
		Log:      log,
	})

	// --- Serve ---
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
