package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerr "github.com/shoppro/storefront/internal/domain/error"
	coreport "github.com/shoppro/storefront/internal/domain/port/core"
	catalogUseCase "github.com/shoppro/storefront/internal/domain/usecase/catalog"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/api/dto"
	eventadapter "github.com/shoppro/storefront/internal/infrastructure/adapter/event"
)

// ActivityFeed serves the recent-activity window for the admin console
type ActivityFeed interface {
	Recent(limit int) []eventadapter.ActivityEntry
}

// AdminHandler handles the admin console HTTP requests. All routes are
// behind the session and admin-role middlewares.
type AdminHandler struct {
	catalog  CatalogService
	wallets  WalletService
	activity ActivityFeed
	logger   coreport.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(
	catalog CatalogService,
	wallets WalletService,
	activity ActivityFeed,
	logger coreport.Logger,
) *AdminHandler {
	return &AdminHandler{
		catalog:  catalog,
		wallets:  wallets,
		activity: activity,
		logger:   logger,
	}
}

// CreateProduct handles the POST /api/admin/products endpoint
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), catalogUseCase.CreateProductRequest{
		Name:          req.Name,
		OriginalPrice: req.OriginalPrice,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Credentials:   req.Credentials(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromProduct(product))
}

// GetProduct handles the GET /api/admin/products/:productId endpoint
func (h *AdminHandler) GetProduct(c *gin.Context) {
	productID, ok := pathID(c, "productId", "Invalid product ID format")
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromProduct(product))
}

// RotateCredentials handles the PUT /api/admin/products/:productId/credentials
// endpoint. Existing order snapshots keep the old login details.
func (h *AdminHandler) RotateCredentials(c *gin.Context) {
	productID, ok := pathID(c, "productId", "Invalid product ID format")
	if !ok {
		return
	}

	var req dto.RotateCredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := h.catalog.RotateCredentials(c.Request.Context(), productID, req.Credentials())
	if err != nil {
		respondError(c, err)
		return
	}

	h.logger.Info("Credentials rotated via admin console", map[string]any{
		"productId": productID,
	})
	c.JSON(http.StatusOK, dto.FromProduct(product))
}

// ListUsers handles the GET /api/admin/users endpoint
func (h *AdminHandler) ListUsers(c *gin.Context) {
	accounts, err := h.wallets.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAccounts(accounts))
}

// Deposit handles the POST /api/admin/users/:userId/deposit endpoint
func (h *AdminHandler) Deposit(c *gin.Context) {
	userID, ok := pathID(c, "userId", "Invalid user ID format")
	if !ok {
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	balances, err := h.wallets.Deposit(c.Request.Context(), userID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromBalances(balances))
}

// ListAllTransactions handles the GET /api/admin/transactions endpoint
func (h *AdminHandler) ListAllTransactions(c *gin.Context) {
	txns, err := h.wallets.ListAllTransactions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromTransactions(txns))
}

// Activity handles the GET /api/admin/activity endpoint. The feed is a
// bounded in-memory window, newest first.
func (h *AdminHandler) Activity(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
				Message: "Invalid limit format",
			})
			return
		}
		limit = parsed
	}

	c.JSON(http.StatusOK, h.activity.Recent(limit))
}

// pathID parses a numeric path parameter, responding on failure
func pathID(c *gin.Context, param, message string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: message,
		})
		return 0, false
	}
	return id, true
}
