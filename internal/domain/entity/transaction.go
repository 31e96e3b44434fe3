package entity

import (
	"time"

	errs "github.com/shoppro/storefront/internal/domain/error"
	coreport "github.com/shoppro/storefront/internal/domain/port/core"
)

// TransactionType categorizes wallet movements in the audit trail
type TransactionType string

// Transaction types
const (
	TypeCommission TransactionType = "commission"
	TypeDeposit    TransactionType = "deposit"
)

// TransactionStatus defines possible status values for a transaction
type TransactionStatus string

// Transaction statuses
const (
	StatusCompleted TransactionStatus = "completed"
)

// IsValidTransactionType validates if the type is one of the allowed values
func IsValidTransactionType(t string) bool {
	return t == string(TypeCommission) || t == string(TypeDeposit)
}

// Transaction is an append-only audit record of a wallet credit.
// Commissions reference the order that produced them.
type Transaction struct {
	ID        uint64
	UserID    uint64
	OrderID   *uint64 // set for commission rows
	Type      TransactionType
	Amount    int64
	Status    TransactionStatus
	CreatedAt time.Time
}

// NewCommissionTransaction records a referral commission credited to userID
// as a side effect of the given order.
func NewCommissionTransaction(userID, orderID uint64, amount int64, timeProvider coreport.TimeProvider) (*Transaction, error) {
	if err := ValidatePositiveAmount(amount); err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, errs.ErrUserNotFound
	}

	oid := orderID
	return &Transaction{
		UserID:    userID,
		OrderID:   &oid,
		Type:      TypeCommission,
		Amount:    amount,
		Status:    StatusCompleted,
		CreatedAt: timeProvider.Now(),
	}, nil
}

// NewDepositTransaction records an admin wallet top-up for userID
func NewDepositTransaction(userID uint64, amount int64, timeProvider coreport.TimeProvider) (*Transaction, error) {
	if err := ValidatePositiveAmount(amount); err != nil {
		return nil, err
	}
	if userID == 0 {
		return nil, errs.ErrUserNotFound
	}

	return &Transaction{
		UserID:    userID,
		Type:      TypeDeposit,
		Amount:    amount,
		Status:    StatusCompleted,
		CreatedAt: timeProvider.Now(),
	}, nil
}
