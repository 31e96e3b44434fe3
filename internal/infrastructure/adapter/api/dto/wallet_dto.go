package dto

import (
	"time"

	"github.com/shoppro/storefront/internal/domain/entity"
	"github.com/shoppro/storefront/internal/domain/usecase/wallet"
)

// BalanceResponse reports both wallets of an account
type BalanceResponse struct {
	Deposit           int64  `json:"deposit"`
	DepositDisplay    string `json:"depositDisplay"`
	Commission        int64  `json:"commission"`
	CommissionDisplay string `json:"commissionDisplay"`
}

// DepositRequest represents the admin request for topping up a wallet
type DepositRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// AccountResponse is the admin console view of an account
type AccountResponse struct {
	UserResponse
	OrderCount int64 `json:"orderCount"`
}

// FromAccounts maps account summaries to their API representation
func FromAccounts(accounts []*wallet.AccountSummary) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, AccountResponse{
			UserResponse: FromUser(account.User),
			OrderCount:   account.OrderCount,
		})
	}
	return out
}

// TransactionResponse is one row of the wallet audit trail
type TransactionResponse struct {
	ID            uint64    `json:"id"`
	UserID        uint64    `json:"userId"`
	OrderID       *uint64   `json:"orderId,omitempty"`
	Type          string    `json:"type"`
	Amount        int64     `json:"amount"`
	AmountDisplay string    `json:"amountDisplay"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromBalances maps wallet balances to their API representation
func FromBalances(balances *wallet.Balances) BalanceResponse {
	return BalanceResponse{
		Deposit:           balances.Deposit,
		DepositDisplay:    entity.FormatVND(balances.Deposit),
		Commission:        balances.Commission,
		CommissionDisplay: entity.FormatVND(balances.Commission),
	}
}

// FromTransaction maps a transaction entity to its API representation
func FromTransaction(txn *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            txn.ID,
		UserID:        txn.UserID,
		OrderID:       txn.OrderID,
		Type:          string(txn.Type),
		Amount:        txn.Amount,
		AmountDisplay: entity.FormatVND(txn.Amount),
		Status:        string(txn.Status),
		CreatedAt:     txn.CreatedAt,
	}
}

// FromTransactions maps a slice of transaction entities
func FromTransactions(txns []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, txn := range txns {
		out = append(out, FromTransaction(txn))
	}
	return out
}
