package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoppro/storefront/internal/domain/entity"
	domainerr "github.com/shoppro/storefront/internal/domain/error"
	coreport "github.com/shoppro/storefront/internal/domain/port/core"
	walletUseCase "github.com/shoppro/storefront/internal/domain/usecase/wallet"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/api/dto"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/api/middleware"
)

// WalletService is the slice of the wallet use case the handler needs
type WalletService interface {
	GetBalances(ctx context.Context, userID uint64) (*walletUseCase.Balances, error)
	ListTransactions(ctx context.Context, userID uint64) ([]*entity.Transaction, error)
	ListAllTransactions(ctx context.Context) ([]*entity.Transaction, error)
	ListUsers(ctx context.Context) ([]*walletUseCase.AccountSummary, error)
	Deposit(ctx context.Context, userID uint64, amount int64) (*walletUseCase.Balances, error)
}

// WalletHandler handles balance and audit-trail HTTP requests
type WalletHandler struct {
	wallets WalletService
	logger  coreport.Logger
}

// NewWalletHandler creates a new wallet handler instance
func NewWalletHandler(wallets WalletService, logger coreport.Logger) *WalletHandler {
	return &WalletHandler{wallets: wallets, logger: logger}
}

// GetBalances handles the GET /api/wallet endpoint
func (h *WalletHandler) GetBalances(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domainerr.ErrInvalidToken)
		return
	}

	balances, err := h.wallets.GetBalances(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromBalances(balances))
}

// ListTransactions handles the GET /api/transactions endpoint
func (h *WalletHandler) ListTransactions(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		respondError(c, domainerr.ErrInvalidToken)
		return
	}

	txns, err := h.wallets.ListTransactions(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromTransactions(txns))
}
