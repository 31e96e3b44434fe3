package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	catalogUseCase "github.com/shoppro/storefront/internal/domain/usecase/catalog"
	ledgerUseCase "github.com/shoppro/storefront/internal/domain/usecase/ledger"
	sessionUseCase "github.com/shoppro/storefront/internal/domain/usecase/session"
	walletUseCase "github.com/shoppro/storefront/internal/domain/usecase/wallet"

	"github.com/shoppro/storefront/internal/infrastructure/adapter/api/handler"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/api/routes"
	authAdapter "github.com/shoppro/storefront/internal/infrastructure/adapter/auth"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/database"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/database/migration"
	eventAdapter "github.com/shoppro/storefront/internal/infrastructure/adapter/event"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/logger"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/repository"
	timeProvider "github.com/shoppro/storefront/internal/infrastructure/adapter/time"
	"github.com/shoppro/storefront/internal/infrastructure/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == "production")

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database. The manager falls back to the embedded
	// SQLite store when the hosted database is unreachable.
	dbConfig := database.CreateConfigFromViperConfig(cfg)
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	if dbManager.Offline() {
		appLogger.Warn("Running in offline mode on the local SQLite store", map[string]any{
			"path": dbConfig.SQLitePath,
		})
	}

	// Run migrations
	migrationMgr := migration.NewMigrationManager(dbManager.DB(), appLogger, tp)
	if err := migrationMgr.MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize repositories and the unit of work
	userRepo := repository.NewUserRepository(dbManager.DB(), tp, appLogger)
	productRepo := repository.NewProductRepository(dbManager.DB(), tp, appLogger)
	orderRepo := repository.NewOrderRepository(dbManager.DB(), appLogger)
	txnRepo := repository.NewTransactionRepository(dbManager.DB(), appLogger)
	uow := dbManager.CreateUnitOfWork()

	// Auth adapters
	tokenIssuer := authAdapter.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, tp)
	hasher := authAdapter.NewBcryptHasher()
	googleVerifier := authAdapter.NewGoogleVerifier(cfg.Auth.GoogleClientID, appLogger)

	// Event bus and the admin activity feed
	bus := eventAdapter.NewMemoryBus()
	activity := eventAdapter.NewActivityProjection(cfg.Activity.Capacity)
	activity.Attach(bus)

	// Seed the admin account named in configuration
	if err := migration.SeedAdminUser(
		context.Background(), userRepo, hasher, tp, appLogger,
		cfg.Auth.AdminUsername, cfg.Auth.AdminPassword, cfg.Auth.AdminEmail,
	); err != nil {
		appLogger.Error("Failed to seed admin account", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Initialize use cases
	sessions := sessionUseCase.NewService(userRepo, tokenIssuer, hasher, googleVerifier, tp, bus, appLogger)
	catalog := catalogUseCase.NewService(productRepo, tp, bus, appLogger)
	ledger := ledgerUseCase.NewService(uow, orderRepo, tp, bus, appLogger)
	wallets := walletUseCase.NewService(uow, userRepo, orderRepo, txnRepo, tp, bus, appLogger)

	// Initialize Gin router
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, routes.Handlers{
		Session: handler.NewSessionHandler(sessions, appLogger),
		Catalog: handler.NewCatalogHandler(catalog, appLogger),
		Ledger:  handler.NewLedgerHandler(ledger, appLogger),
		Wallet:  handler.NewWalletHandler(wallets, appLogger),
		Admin:   handler.NewAdminHandler(catalog, wallets, activity, appLogger),
		Health:  handler.NewHealthHandler(dbManager.Offline),
	}, sessions, appLogger)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port":    cfg.Server.Port,
			"env":     cfg.Environment,
			"offline": dbManager.Offline(),
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}
