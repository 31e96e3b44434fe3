package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoppro/storefront/internal/domain/entity"
	coreport "github.com/shoppro/storefront/internal/domain/port/core"
	catalogUseCase "github.com/shoppro/storefront/internal/domain/usecase/catalog"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/api/dto"
)

// CatalogService is the slice of the catalog use case the handler needs
type CatalogService interface {
	CreateProduct(ctx context.Context, req catalogUseCase.CreateProductRequest) (*entity.Product, error)
	ListProducts(ctx context.Context) ([]catalogUseCase.Listing, error)
	GetProduct(ctx context.Context, productID uint64) (*entity.Product, error)
	RotateCredentials(ctx context.Context, productID uint64, creds entity.Credentials) (*entity.Product, error)
}

// CatalogHandler serves the public storefront listings
type CatalogHandler struct {
	catalog CatalogService
	logger  coreport.Logger
}

// NewCatalogHandler creates a new catalog handler instance
func NewCatalogHandler(catalog CatalogService, logger coreport.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

// ListProducts handles the GET /api/products endpoint.
// Listings carry today's prorated price and no credentials.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	listings, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list products", map[string]any{
			"error": err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromListings(listings))
}
