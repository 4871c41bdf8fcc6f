package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"supportchat-backend/internal/config"
	"supportchat-backend/internal/database"
	"supportchat-backend/internal/handlers"
	"supportchat-backend/internal/middleware"
	"supportchat-backend/internal/repository"
	"supportchat-backend/internal/router"
	"supportchat-backend/internal/services"
	"supportchat-backend/internal/web"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLogger.Fatal().Err(err).Msg("invalid configuration")
	}

	logger := newLogger(cfg, os.Stdout)
	logger.Info().Str("env", cfg.Env).Msg("starting support chat backend")

	ctx := context.Background()

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pool.Close()
	logger.Info().Msg("connected to PostgreSQL")

	// ──── Step 3: Run Database Migrations ────
	if err := database.RunMigrations(pool, database.Migrations(), logger); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}
	logger.Info().Msg("migrations completed")

	// ──── Step 4: Initialize Redis (optional) ────
	var cache services.Cache
	var redisPinger interface {
		Ping(ctx context.Context) error
	}
	if cfg.RedisURL != "" {
		client, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		defer client.Close()
		redisCache := database.NewRedisCache(client)
		cache = redisCache
		redisPinger = redisCache
		logger.Info().Msg("connected to Redis")
	} else {
		logger.Warn().Msg("REDIS_URL not set, caching disabled")
	}

	// ──── Initialize Repositories ────
	configRepo := repository.NewConfigRepo(pool)
	contentRepo := repository.NewContentRepo(pool)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	settingsService := services.NewSettingsService(configRepo, cache, logger)
	contentResolver := services.NewContentResolver(contentRepo, cache, cfg.ContentCacheTTL, cfg.SiteBaseURL, logger)
	botClient := services.NewBotClient(settingsService, contentResolver, cfg.BotUnavailableDelay, logger)
	authService := services.NewAuthService(cfg.AdminUsername, cfg.AdminPasswordHash, jwtAuth, logger)

	// ──── Step 5: Apply Settings Seed ────
	seeded, err := settingsService.Seed(ctx, cfg.SettingsSeedFile)
	if err != nil {
		logger.Fatal().Err(err).Str("file", cfg.SettingsSeedFile).Msg("settings seed failed")
	}
	if seeded {
		logger.Info().Str("file", cfg.SettingsSeedFile).Msg("settings seeded")
	}

	if !cfg.AdminEnabled() {
		logger.Warn().Msg("JWT_SECRET or ADMIN_PASSWORD_HASH not set, admin API disabled")
	}
	if !botClient.SelfCheck(ctx) {
		logger.Warn().Msg("chat settings incomplete, widget will show as not set up")
	}

	// ──── Initialize Handlers ────
	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse templates")
	}

	healthHandler := handlers.NewHealthHandler(contentRepo, redisPinger)
	chatHandler := handlers.NewChatHandler(botClient, renderer, cfg.ChatReplyDelay, router.ChatSubmitPath, logger)
	authHandler := handlers.NewAuthHandler(authService)
	settingsHandler := handlers.NewSettingsHandler(settingsService, logger)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(
		router.Options{
			Logger:         logger,
			AllowedOrigins: cfg.AllowedOrigins,
			ChatRateLimit:  cfg.ChatRateLimit,
		},
		jwtAuth,
		healthHandler,
		chatHandler,
		authHandler,
		settingsHandler,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info().Msg("shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("shutdown failed")
		}
	}()

	logger.Info().Str("port", cfg.Port).Msgf("listening on http://localhost:%s/chat", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server error")
	}
}

// newLogger writes human-readable logs in development and JSON otherwise.
func newLogger(cfg *config.Config, out io.Writer) zerolog.Logger {
	if cfg.IsDevelopment() {
		return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	}
	return zerolog.New(out).
		With().
		Timestamp().
		Logger()
}
