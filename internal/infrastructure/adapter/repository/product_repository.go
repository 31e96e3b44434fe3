package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shoppro/storefront/internal/domain/entity"
	errs "github.com/shoppro/storefront/internal/domain/error"
	coreport "github.com/shoppro/storefront/internal/domain/port/core"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/model"
)

// ProductRepository implements the product repository interface using GORM
type ProductRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewProductRepository creates a new ProductRepository instance
func NewProductRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *ProductRepository {
	return &ProductRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func productModelToEntity(m *model.Product) *entity.Product {
	return &entity.Product{
		ID:            m.ID,
		Name:          m.Name,
		OriginalPrice: m.OriginalPrice,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		Credentials: entity.Credentials{
			AccountUsername: m.AccountUsername,
			AccountPassword: m.AccountPassword,
			AccountCookie:   m.AccountCookie,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (r *ProductRepository) wrapError(operation string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrProductNotFound
	}
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"error": err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id uint64) (*entity.Product, error) {
	var productModel model.Product
	result := r.db.WithContext(ctx).First(&productModel, id)
	if result.Error != nil {
		return nil, r.wrapError("getting product", result.Error)
	}
	return productModelToEntity(&productModel), nil
}

// Create creates a new product and fills in its assigned ID
func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	productModel := model.Product{
		Name:            product.Name,
		OriginalPrice:   product.OriginalPrice,
		StartDate:       product.StartDate,
		EndDate:         product.EndDate,
		AccountUsername: product.Credentials.AccountUsername,
		AccountPassword: product.Credentials.AccountPassword,
		AccountCookie:   product.Credentials.AccountCookie,
		CreatedAt:       product.CreatedAt,
		UpdatedAt:       product.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&productModel)
	if result.Error != nil {
		return r.wrapError("creating product", result.Error)
	}

	product.ID = productModel.ID
	r.logger.Info("Product created", map[string]any{
		"productId": product.ID,
		"name":      product.Name,
	})
	return nil
}

// Update persists product changes, including credential rotation
func (r *ProductRepository) Update(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":             product.Name,
			"original_price":   product.OriginalPrice,
			"start_date":       product.StartDate,
			"end_date":         product.EndDate,
			"account_username": product.Credentials.AccountUsername,
			"account_password": product.Credentials.AccountPassword,
			"account_cookie":   product.Credentials.AccountCookie,
			"updated_at":       r.timeProvider.Now(),
		})

	if result.Error != nil {
		return r.wrapError("updating product", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrProductNotFound
	}
	return nil
}

// List returns all products ordered by creation time
func (r *ProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	var productModels []model.Product
	result := r.db.WithContext(ctx).Order("created_at ASC").Find(&productModels)
	if result.Error != nil {
		return nil, r.wrapError("listing products", result.Error)
	}

	products := make([]*entity.Product, 0, len(productModels))
	for i := range productModels {
		products = append(products, productModelToEntity(&productModels[i]))
	}
	return products, nil
}
