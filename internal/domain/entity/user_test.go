package entity

import (
	"testing"
	"time"

	errs "github.com/shoppro/storefront/internal/domain/error"
	timeadapter "github.com/shoppro/storefront/internal/infrastructure/adapter/time"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestUser(t *testing.T) *User {
	t.Helper()
	tp := timeadapter.NewFixedTimeProvider(fixedTime)
	u, err := NewUser("alice", "$2a$10$hash", "alice@example.com", "ALICE42", "", RoleUser, tp)
	require.NoError(t, err)
	u.ID = 1
	return u
}

func TestNewUser(t *testing.T) {
	tp := timeadapter.NewFixedTimeProvider(fixedTime)

	t.Run("Successful creation", func(t *testing.T) {
		u, err := NewUser("bob", "hash", "bob@example.com", "BOB7", "ALICE42", RoleUser, tp)
		require.NoError(t, err)
		assert.Equal(t, "bob", u.Username)
		assert.Equal(t, "ALICE42", u.ReferredBy)
		assert.Zero(t, u.DepositWallet())
		assert.Zero(t, u.CommissionWallet())
		assert.Equal(t, fixedTime, u.CreatedAt)
	})

	t.Run("Blank username rejected", func(t *testing.T) {
		_, err := NewUser("   ", "hash", "", "CODE", "", RoleUser, tp)
		assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
	})

	t.Run("Missing ref code rejected", func(t *testing.T) {
		_, err := NewUser("bob", "hash", "", "", "", RoleUser, tp)
		assert.ErrorIs(t, err, errs.ErrInvalidRefCode)
	})

	t.Run("Unknown role falls back to user", func(t *testing.T) {
		u, err := NewUser("bob", "hash", "", "BOB7", "", Role("superuser"), tp)
		require.NoError(t, err)
		assert.Equal(t, RoleUser, u.Role)
		assert.False(t, u.IsAdmin())
	})
}

func TestUserDebit(t *testing.T) {
	tp := timeadapter.NewFixedTimeProvider(fixedTime)

	t.Run("Sufficient funds", func(t *testing.T) {
		u := newTestUser(t)
		u.SetWallets(150000, 0)

		err := u.Debit(100000, tp)

		require.NoError(t, err)
		assert.Equal(t, int64(50000), u.DepositWallet())
	})

	t.Run("Insufficient funds leaves wallet untouched", func(t *testing.T) {
		u := newTestUser(t)
		u.SetWallets(50000, 0)

		err := u.Debit(100000, tp)

		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		assert.Equal(t, int64(50000), u.DepositWallet())
	})

	t.Run("Non-positive price rejected", func(t *testing.T) {
		u := newTestUser(t)
		u.SetWallets(50000, 0)

		assert.ErrorIs(t, u.Debit(0, tp), errs.ErrInvalidAmount)
		assert.ErrorIs(t, u.Debit(-100, tp), errs.ErrInvalidAmount)
		assert.Equal(t, int64(50000), u.DepositWallet())
	})
}

func TestUserCredits(t *testing.T) {
	tp := timeadapter.NewFixedTimeProvider(fixedTime)

	t.Run("Commission goes to the commission wallet only", func(t *testing.T) {
		u := newTestUser(t)
		u.SetWallets(10000, 5000)

		require.NoError(t, u.CreditCommission(30000, tp))

		assert.Equal(t, int64(10000), u.DepositWallet())
		assert.Equal(t, int64(35000), u.CommissionWallet())
	})

	t.Run("Deposit goes to the deposit wallet only", func(t *testing.T) {
		u := newTestUser(t)

		require.NoError(t, u.CreditDeposit(200000, tp))

		assert.Equal(t, int64(200000), u.DepositWallet())
		assert.Zero(t, u.CommissionWallet())
	})

	t.Run("Non-positive amounts rejected", func(t *testing.T) {
		u := newTestUser(t)
		assert.ErrorIs(t, u.CreditDeposit(0, tp), errs.ErrInvalidAmount)
		assert.ErrorIs(t, u.CreditCommission(-1, tp), errs.ErrInvalidAmount)
	})
}
