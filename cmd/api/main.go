package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gourmetcare/platform/internal/api"
	"github.com/gourmetcare/platform/internal/core/domain"
	"github.com/gourmetcare/platform/internal/core/otpstore"
	"github.com/gourmetcare/platform/internal/core/ports"
	"github.com/gourmetcare/platform/internal/core/service"
	"github.com/gourmetcare/platform/internal/infrastructure/config"
	mongodb "github.com/gourmetcare/platform/internal/infrastructure/db/mongo"
	redisdb "github.com/gourmetcare/platform/internal/infrastructure/db/redis"
	"github.com/gourmetcare/platform/internal/infrastructure/notify"
	"github.com/gourmetcare/platform/pkg/logger"
)

// @title        GourmetCare Platform API
// @version      1.0
// @description  Multi-tenant facility care backend: OTP authentication, role-gated user management.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	// A missing signing secret is a deployment fault; fail here, never at
	// request time.
	if cfg.AccessTokenSecret == "" {
		log.Fatal().Err(domain.ErrSecretNotConfigured).Msg("refusing to start")
	}

	ctx := context.Background()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	var codes ports.CodeStore
	var rdb *redis.Client
	if cfg.OTPStore == "redis" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() { _ = rdb.Close() }()
		// Redis expiry is a backstop; give it headroom over the service TTL.
		codes = redisdb.NewCodeStore(rdb, cfg.OTPTTL+5*time.Minute)
	} else {
		codes = otpstore.NewMemory()
	}

	tokens := service.NewTokenService(cfg.AccessTokenSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, codes, notify.NewLogSender(log), tokens, cfg.OTPTTL)
	userService := service.NewUserService(userRepo)

	e := api.NewRouter(log, api.Deps{
		Users:      userRepo,
		Tokens:     tokens,
		Auth:       authService,
		UserSvc:    userService,
		Production: cfg.IsProduction(),
		Mongo:      db,
		Redis:      rdb,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("api listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
