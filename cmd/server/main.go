// Command server runs the contact API.
//
// @title           Contact API
// @version         1.0
// @description     Authentication, user-profile, and contact-management API.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/contactdesk/contact-api/docs"
	"github.com/contactdesk/contact-api/internal/api"
	"github.com/contactdesk/contact-api/internal/core/password"
	"github.com/contactdesk/contact-api/internal/core/service"
	"github.com/contactdesk/contact-api/internal/core/token"
	"github.com/contactdesk/contact-api/internal/infrastructure/config"
	mongodb "github.com/contactdesk/contact-api/internal/infrastructure/db/mongo"
	redisdb "github.com/contactdesk/contact-api/internal/infrastructure/db/redis"
	"github.com/contactdesk/contact-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}
	contactRepo := mongodb.NewContactRepository(db)

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	limiter := redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)

	// --- Core wiring ---
	hasher := password.NewHasher()
	tokens, err := token.NewIssuer(
		token.ClassConfig{Secret: cfg.JWT.AccessSecret, TTL: cfg.JWT.AccessTTL},
		token.ClassConfig{Secret: cfg.JWT.RefreshSecret, TTL: cfg.JWT.RefreshTTL},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("token issuer misconfigured")
	}

	authService := service.NewAuthService(userRepo, hasher, tokens, log)
	userService := service.NewUserService(userRepo, hasher, log)
	contactService := service.NewContactService(contactRepo, userRepo, log)

	e := api.NewRouter(api.Dependencies{
		Logger:   log,
		Auth:     authService,
		Users:    userService,
		Contacts: contactService,
		Tokens:   tokens,
		Limiter:  limiter,
		Mongo:    db,
		Redis:    rdb,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
