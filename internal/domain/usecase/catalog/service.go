package catalog

import (
	"context"
	"time"

	"github.com/shoppro/storefront/internal/domain/entity"
	coreport "github.com/shoppro/storefront/internal/domain/port/core"
	"github.com/shoppro/storefront/internal/domain/port/event"
	"github.com/shoppro/storefront/internal/domain/port/persistence"
)

// Service manages the product catalog. Listings shown to buyers carry
// prorated prices and never include the shared-account credentials.
type Service struct {
	productRepo  persistence.ProductRepository
	timeProvider coreport.TimeProvider
	bus          event.Bus
	logger       coreport.Logger
}

// NewService creates a new catalog Service
func NewService(
	productRepo persistence.ProductRepository,
	timeProvider coreport.TimeProvider,
	bus event.Bus,
	logger coreport.Logger,
) *Service {
	return &Service{
		productRepo:  productRepo,
		timeProvider: timeProvider,
		bus:          bus,
		logger:       logger,
	}
}

// CreateProductRequest represents the input for listing a new product
type CreateProductRequest struct {
	Name          string
	OriginalPrice int64
	StartDate     time.Time
	EndDate       time.Time
	Credentials   entity.Credentials
}

// CreateProduct lists a new product for sale
func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (*entity.Product, error) {
	product, err := entity.NewProduct(req.Name, req.OriginalPrice, req.StartDate, req.EndDate, req.Credentials, s.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", map[string]any{
			"name":  req.Name,
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Product listed", map[string]any{
		"productId": product.ID,
		"name":      product.Name,
		"price":     product.OriginalPrice,
	})
	s.bus.Publish(event.Event{
		Kind:       event.KindProductCreated,
		OccurredAt: s.timeProvider.Now(),
		Fields:     map[string]any{"productId": product.ID, "name": product.Name},
	})

	return product, nil
}

// Listing is a storefront view of a product: priced for right now,
// credentials withheld.
type Listing struct {
	ID            uint64
	Name          string
	OriginalPrice int64
	Price         int64
	DaysRemaining int
	TotalDays     int
	StartDate     time.Time
	EndDate       time.Time
	Expired       bool
}

// ListProducts returns all products as storefront listings
func (s *Service) ListProducts(ctx context.Context) ([]Listing, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	listings := make([]Listing, 0, len(products))
	for _, product := range products {
		quote := entity.Prorate(product, now)
		listings = append(listings, Listing{
			ID:            product.ID,
			Name:          product.Name,
			OriginalPrice: product.OriginalPrice,
			Price:         quote.Price,
			DaysRemaining: quote.DaysRemaining,
			TotalDays:     quote.TotalDays,
			StartDate:     product.StartDate,
			EndDate:       product.EndDate,
			Expired:       product.Expired(now),
		})
	}

	return listings, nil
}

// GetProduct returns the full product record, credentials included.
// Admin console surface only.
func (s *Service) GetProduct(ctx context.Context, productID uint64) (*entity.Product, error) {
	return s.productRepo.GetByID(ctx, productID)
}

// RotateCredentials replaces a product's shared-account login details.
// Orders already placed keep their snapshots of the old credentials.
func (s *Service) RotateCredentials(ctx context.Context, productID uint64, creds entity.Credentials) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.RotateCredentials(creds, s.timeProvider)
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product credentials rotated", map[string]any{
		"productId": productID,
	})

	return product, nil
}
