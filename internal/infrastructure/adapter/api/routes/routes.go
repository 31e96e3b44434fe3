package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/shoppro/storefront/internal/domain/port/core"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/api/handler"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/api/middleware"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	Session *handler.SessionHandler
	Catalog *handler.CatalogHandler
	Ledger  *handler.LedgerHandler
	Wallet  *handler.WalletHandler
	Admin   *handler.AdminHandler
	Health  *handler.HealthHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	handlers Handlers,
	auth middleware.Authenticator,
	logger coreport.Logger,
) {
	router.GET("/healthz", handlers.Health.Health)

	api := router.Group("/api")

	// Public surface: account creation, login, and the storefront
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", handlers.Session.Register)
		authRoutes.POST("/login", handlers.Session.Login)
		authRoutes.POST("/google", handlers.Session.LoginWithGoogle)
	}
	api.GET("/products", handlers.Catalog.ListProducts)

	// Buyer surface: requires a valid session token
	session := api.Group("")
	session.Use(middleware.RequireSession(auth, logger))
	{
		session.GET("/auth/me", handlers.Session.Me)
		session.POST("/purchase/:productId", handlers.Ledger.Purchase)
		session.GET("/orders", handlers.Ledger.ListOrders)
		session.GET("/orders/:orderId", handlers.Ledger.GetOrder)
		session.GET("/wallet", handlers.Wallet.GetBalances)
		session.GET("/transactions", handlers.Wallet.ListTransactions)
	}

	// Admin console: role is checked against the stored user record
	admin := api.Group("/admin")
	admin.Use(middleware.RequireSession(auth, logger), middleware.RequireAdmin())
	{
		admin.POST("/products", handlers.Admin.CreateProduct)
		admin.GET("/products/:productId", handlers.Admin.GetProduct)
		admin.PUT("/products/:productId/credentials", handlers.Admin.RotateCredentials)
		admin.GET("/users", handlers.Admin.ListUsers)
		admin.POST("/users/:userId/deposit", handlers.Admin.Deposit)
		admin.GET("/transactions", handlers.Admin.ListAllTransactions)
		admin.GET("/activity", handlers.Admin.Activity)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
