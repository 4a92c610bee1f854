package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aistudybuddy/study-buddy-api/internal/api"
	"github.com/aistudybuddy/study-buddy-api/internal/core/ports"
	"github.com/aistudybuddy/study-buddy-api/internal/infrastructure/completion"
	"github.com/aistudybuddy/study-buddy-api/internal/infrastructure/config"
	mongostore "github.com/aistudybuddy/study-buddy-api/internal/infrastructure/db/mongo"
	redisstore "github.com/aistudybuddy/study-buddy-api/internal/infrastructure/db/redis"
	"github.com/aistudybuddy/study-buddy-api/pkg/logger"
)

// @title        AI Study Buddy API
// @version      1.0
// @description  Backend for the AI Study Buddy tutoring app.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Get()
		l.Fatal().Err(err).Msg("loading configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	// --- MongoDB ---
	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongodb disconnect")
		}
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("creating mongodb indexes")
	}

	// --- Redis ---
	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close")
		}
	}()

	// --- Completion providers, ordered by preference ---
	completer, err := completion.NewFallbackClient(log, geminiProviders(cfg)...)
	if err != nil {
		log.Fatal().Err(err).Msg("configuring completion providers")
	}

	e := api.NewRouter(cfg, db, rdb, completer, log)

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// geminiProviders builds one provider per configured credential, primary
// first. Config validation guarantees at least one key is present.
func geminiProviders(cfg *config.Config) []ports.CompletionProvider {
	var providers []ports.CompletionProvider
	for _, slot := range []struct {
		name string
		key  string
	}{
		{"gemini-primary", cfg.Gemini.APIKey1},
		{"gemini-secondary", cfg.Gemini.APIKey2},
	} {
		if slot.key == "" {
			continue
		}
		providers = append(providers, completion.NewGeminiProvider(completion.GeminiConfig{
			Name:        slot.name,
			APIKey:      slot.key,
			Model:       cfg.Gemini.Model,
			MaxTokens:   cfg.Gemini.MaxTokens,
			Temperature: cfg.Gemini.Temperature,
		}, nil))
	}
	return providers
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, repo := range []interface {
		EnsureIndexes(ctx context.Context) error
	}{
		mongostore.NewUserRepository(db),
		mongostore.NewStatsRepository(db),
		mongostore.NewChatRepository(db),
		mongostore.NewCourseRepository(db),
	} {
		if err := repo.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
