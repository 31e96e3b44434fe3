package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shoppro/storefront/internal/domain/entity"
	errs "github.com/shoppro/storefront/internal/domain/error"
	coreport "github.com/shoppro/storefront/internal/domain/port/core"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/model"
)

// TransactionRepository implements the transaction repository interface
// using GORM. Rows are append-only audit records.
type TransactionRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{db: db, logger: logger}
}

func transactionModelToEntity(m *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:        m.ID,
		UserID:    m.UserID,
		OrderID:   m.OrderID,
		Type:      entity.TransactionType(m.Type),
		Amount:    m.Amount,
		Status:    entity.TransactionStatus(m.Status),
		CreatedAt: m.CreatedAt,
	}
}

func (r *TransactionRepository) wrapError(operation string, err error) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"error": err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create saves a new transaction record and fills in its assigned ID
func (r *TransactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	txnModel := model.Transaction{
		UserID:    txn.UserID,
		OrderID:   txn.OrderID,
		Type:      string(txn.Type),
		Amount:    txn.Amount,
		Status:    string(txn.Status),
		CreatedAt: txn.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&txnModel)
	if result.Error != nil {
		return r.wrapError("creating transaction", result.Error)
	}

	txn.ID = txnModel.ID
	return nil
}

// ListByUser returns a user's transactions, most recent first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.Transaction, error) {
	var txnModels []model.Transaction
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&txnModels)
	if result.Error != nil {
		return nil, r.wrapError("listing transactions", result.Error)
	}

	txns := make([]*entity.Transaction, 0, len(txnModels))
	for i := range txnModels {
		txns = append(txns, transactionModelToEntity(&txnModels[i]))
	}
	return txns, nil
}

// List returns all transactions, most recent first
func (r *TransactionRepository) List(ctx context.Context) ([]*entity.Transaction, error) {
	var txnModels []model.Transaction
	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&txnModels)
	if result.Error != nil {
		return nil, r.wrapError("listing all transactions", result.Error)
	}

	txns := make([]*entity.Transaction, 0, len(txnModels))
	for i := range txnModels {
		txns = append(txns, transactionModelToEntity(&txnModels[i]))
	}
	return txns, nil
}
