package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shoppro/storefront/internal/domain/entity"
	domainerr "github.com/shoppro/storefront/internal/domain/error"
	coreport "github.com/shoppro/storefront/internal/domain/port/core"
	ledgerUseCase "github.com/shoppro/storefront/internal/domain/usecase/ledger"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/api/dto"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/api/middleware"
)

// LedgerService is the slice of the ledger use case the handler needs
type LedgerService interface {
	Purchase(ctx context.Context, userID, productID uint64) (*ledgerUseCase.PurchaseResult, error)
	ListOrders(ctx context.Context, userID uint64) ([]*entity.Order, error)
	GetOrder(ctx context.Context, userID, orderID uint64) (*entity.Order, error)
}

// LedgerHandler handles purchase and order-history HTTP requests
type LedgerHandler struct {
	ledger LedgerService
	logger coreport.Logger
}

// NewLedgerHandler creates a new ledger handler instance
func NewLedgerHandler(ledger LedgerService, logger coreport.Logger) *LedgerHandler {
	return &LedgerHandler{ledger: ledger, logger: logger}
}

// Purchase handles the POST /api/purchase/:productId endpoint
func (h *LedgerHandler) Purchase(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domainerr.ErrInvalidToken)
		return
	}

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid product ID format",
		})
		return
	}

	result, err := h.ledger.Purchase(c.Request.Context(), user.ID, productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order": dto.FromOrder(result.Order),
		"buyer": dto.FromUser(result.Buyer),
	})
}

// ListOrders handles the GET /api/orders endpoint
func (h *LedgerHandler) ListOrders(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domainerr.ErrInvalidToken)
		return
	}

	orders, err := h.ledger.ListOrders(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromOrders(orders))
}

// GetOrder handles the GET /api/orders/:orderId endpoint.
// Requesting another user's order reads the same as a missing one.
func (h *LedgerHandler) GetOrder(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domainerr.ErrInvalidToken)
		return
	}

	orderID, err := strconv.ParseUint(c.Param("orderId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
			Message: "Invalid order ID format",
		})
		return
	}

	order, err := h.ledger.GetOrder(c.Request.Context(), user.ID, orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromOrder(order))
}
