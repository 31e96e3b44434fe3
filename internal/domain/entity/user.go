package entity

import (
	"strings"
	"time"

	errs "github.com/shoppro/storefront/internal/domain/error"
	coreport "github.com/shoppro/storefront/internal/domain/port/core"
)

// Role identifies the privilege level of an account
type Role string

// Roles
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValidRole validates if the role is one of the allowed values
func IsValidRole(role string) bool {
	return role == string(RoleUser) || role == string(RoleAdmin)
}

// User represents a storefront account with a spendable deposit wallet
// and a separately tracked referral commission wallet.
type User struct {
	ID               uint64
	Username         string
	PasswordHash     string // bcrypt hash; empty for federated-only accounts
	Email            string
	Role             Role
	depositWallet    int64 // whole VND, never negative (private)
	commissionWallet int64 // whole VND, never negative (private)
	RefCode          string
	ReferredBy       string // referrer's RefCode, empty when none
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewUser creates a new user with zero balances
func NewUser(username, passwordHash, email, refCode, referredBy string, role Role, timeProvider coreport.TimeProvider) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errs.ErrInvalidCredentials
	}
	if refCode == "" {
		return nil, errs.ErrInvalidRefCode
	}
	if !IsValidRole(string(role)) {
		role = RoleUser
	}

	now := timeProvider.Now()
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
		Role:         role,
		RefCode:      refCode,
		ReferredBy:   referredBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// IsAdmin reports whether the account holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// DepositWallet returns the spendable balance in whole VND
func (u *User) DepositWallet() int64 {
	return u.depositWallet
}

// CommissionWallet returns the accrued referral balance in whole VND
func (u *User) CommissionWallet() int64 {
	return u.commissionWallet
}

// SetWallets updates both balances directly (for repositories rehydrating state)
func (u *User) SetWallets(deposit, commission int64) {
	u.depositWallet = deposit
	u.commissionWallet = commission
}

// CanAfford checks if the deposit wallet covers the given price
func (u *User) CanAfford(price int64) bool {
	return u.depositWallet >= price
}

// Debit subtracts price from the deposit wallet.
// Returns a detailed insufficient funds error when the wallet is short;
// the wallet is left untouched in that case.
func (u *User) Debit(price int64, timeProvider coreport.TimeProvider) error {
	if err := ValidatePositiveAmount(price); err != nil {
		return err
	}
	if u.depositWallet < price {
		return errs.NewInsufficientFundsError(u.ID, price, u.depositWallet)
	}

	u.depositWallet -= price
	u.UpdatedAt = timeProvider.Now()
	return nil
}

// CreditDeposit adds to the deposit wallet
func (u *User) CreditDeposit(amount int64, timeProvider coreport.TimeProvider) error {
	if err := ValidatePositiveAmount(amount); err != nil {
		return err
	}
	u.depositWallet += amount
	u.UpdatedAt = timeProvider.Now()
	return nil
}

// CreditCommission adds to the commission wallet
func (u *User) CreditCommission(amount int64, timeProvider coreport.TimeProvider) error {
	if err := ValidatePositiveAmount(amount); err != nil {
		return err
	}
	u.commissionWallet += amount
	u.UpdatedAt = timeProvider.Now()
	return nil
}
