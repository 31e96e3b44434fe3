package persistence

import (
	"context"

	"github.com/shoppro/storefront/internal/domain/entity"
)

// TransactionRepository defines methods to interact with the wallet
// audit trail. Rows are append-only.
type TransactionRepository interface {
	// Create saves a new transaction record and fills in its assigned ID
	Create(ctx context.Context, transaction *entity.Transaction) error

	// ListByUser returns a user's transactions, most recent first
	ListByUser(ctx context.Context, userID uint64) ([]*entity.Transaction, error)

	// List returns all transactions, most recent first. Admin console surface.
	List(ctx context.Context) ([]*entity.Transaction, error)
}
