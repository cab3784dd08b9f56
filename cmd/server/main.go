package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hjakub/drive-backend/config"
	"github.com/hjakub/drive-backend/internal/app/controller"
	"github.com/hjakub/drive-backend/internal/app/repository"
	"github.com/hjakub/drive-backend/internal/app/service"
	"github.com/hjakub/drive-backend/internal/db"
	"github.com/hjakub/drive-backend/internal/middleware"
	"github.com/hjakub/drive-backend/internal/router"
	"github.com/hjakub/drive-backend/pkg/logger"
	"github.com/hjakub/drive-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting DRIVE Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())

	// Optional product cache
	var productCache service.ProductCache
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Warn("Redis unavailable, running without product cache", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close Redis connection", err)
				}
			}()
			productCache = redis.NewProductCache()
		}
	}

	// Initialize services
	var catalogService service.CatalogService
	if productCache != nil {
		catalogService = service.NewCatalogService(productRepo, productCache)
	} else {
		catalogService = service.NewCatalogService(productRepo)
	}
	cartService := service.NewCartService(cartRepo, productRepo)

	// Seed the baseline catalog (idempotent, keyed by slug)
	if _, err := catalogService.SeedBaseline(); err != nil {
		logger.Fatal("Failed to seed baseline catalog", err)
	}

	// Initialize controllers
	catalogController := controller.NewCatalogController(catalogService)
	cartController := controller.NewCartController(cartService)
	authController := controller.NewAuthController()

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(cfg.Session.CookieName)

	// Setup router
	r := router.NewRouter(
		catalogController,
		cartController,
		authController,
		sessionMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
