package persistence

import (
	"context"

	"github.com/shoppro/storefront/internal/domain/entity"
)

// OrderRepository defines methods to interact with the order history.
// Orders are append-only; there is no update or delete.
type OrderRepository interface {
	// Create saves a new order and fills in its assigned ID
	Create(ctx context.Context, order *entity.Order) error

	// GetByID retrieves an order by ID
	//
	// Possible errors:
	// - ErrOrderNotFound, ErrDatabaseConnection
	GetByID(ctx context.Context, id uint64) (*entity.Order, error)

	// ListByUser returns a user's orders, most recent first
	ListByUser(ctx context.Context, userID uint64) ([]*entity.Order, error)

	// CountByUser returns the number of orders placed by a user
	CountByUser(ctx context.Context, userID uint64) (int64, error)
}
