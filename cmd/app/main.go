package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"sahamwatch/configs"
	delivery "sahamwatch/internal/delivery/http"
	"sahamwatch/internal/infra"
	custommiddleware "sahamwatch/internal/middleware"
	"sahamwatch/internal/repository"
	"sahamwatch/internal/service"
	"sahamwatch/internal/storage"
	"sahamwatch/pkg/logger"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	// Load configuration
	cfg := configs.Load()

	// Initialize logger
	log := logger.New(logger.Config{
		Level:  getLogLevel(cfg.Server.Env),
		Pretty: cfg.Server.Env == "development",
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Str("env", cfg.Server.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("Starting sahamwatch")

	// Open the key-value store
	store, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer store.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(store)
	watchlistRepo := repository.NewWatchlistRepository(store)
	quoteCacheRepo := repository.NewQuoteCacheRepository(store, log)
	sessionRepo := repository.NewSessionRepository(store)

	// Initialize services
	fetcher := service.NewPasardanaClient(cfg.Market.BaseURL, cfg.Market.Timeout, log)
	quoteService := service.NewQuoteCacheService(fetcher, quoteCacheRepo, cfg.Market.MaxAge, log)
	watchlistService := service.NewWatchlistService(watchlistRepo, quoteService, log)

	// Initialize session cleanup scheduler
	scheduler := infra.NewScheduler(sessionRepo, log)
	if err := scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}
	defer scheduler.Stop()

	// Initialize HTTP delivery
	jwtSecret := []byte(cfg.Auth.JWTSecret)

	e := echo.New()
	e.HideBanner = true

	delivery.SetupRoutes(e, &delivery.RouterConfig{
		AuthHandler:  delivery.NewAuthHandler(userRepo, sessionRepo, jwtSecret, cfg.Auth.TokenTTL, log),
		StockHandler: delivery.NewStockHandler(watchlistService, log),
		QuoteHandler: delivery.NewQuoteHandler(quoteService, log),
		AuthMW:       custommiddleware.Auth(jwtSecret, sessionRepo),
	})

	// Run server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := e.Start(addr); err != nil {
			log.Info().Err(err).Msg("HTTP server stopped")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}

// openStore opens the configured storage backend
func openStore(cfg *configs.Config) (storage.Store, error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		return storage.NewSQLiteStore(cfg.Storage.SQLitePath)
	default:
		return storage.NewFileStore(cfg.Storage.DataDir)
	}
}

// getLogLevel maps the environment to a default log level
func getLogLevel(env string) string {
	if value := os.Getenv("LOG_LEVEL"); value != "" {
		return value
	}
	if env == "development" {
		return "debug"
	}
	return "info"
}
