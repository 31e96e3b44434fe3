package persistence

import (
	"context"

	"github.com/shoppro/storefront/internal/domain/entity"
)

// ProductRepository defines methods to interact with product listings
type ProductRepository interface {
	// GetByID retrieves a product by ID
	//
	// Possible errors:
	// - ErrProductNotFound, ErrDatabaseConnection
	GetByID(ctx context.Context, id uint64) (*entity.Product, error)

	// Create creates a new product and fills in its assigned ID
	Create(ctx context.Context, product *entity.Product) error

	// Update persists product changes, including credential rotation
	//
	// Possible errors:
	// - ErrProductNotFound, ErrDatabaseConnection
	Update(ctx context.Context, product *entity.Product) error

	// List returns all products ordered by creation time
	List(ctx context.Context) ([]*entity.Product, error)
}
