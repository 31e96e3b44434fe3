package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoppro/storefront/internal/domain/entity"
	errs "github.com/shoppro/storefront/internal/domain/error"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/logger"
	timeadapter "github.com/shoppro/storefront/internal/infrastructure/adapter/time"
)

func seedTestUser(t *testing.T, uow *UnitOfWork, deposit int64) *entity.User {
	t.Helper()
	ctx := context.Background()

	tp := timeadapter.NewFixedTimeProvider(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	user, err := entity.NewUser("alice", "hash", "alice@example.com", "ref-a", "", entity.RoleUser, tp)
	require.NoError(t, err)
	user.SetWallets(deposit, 0)

	require.NoError(t, uow.GetUserRepository(ctx).Create(ctx, user))
	return user
}

func newTestUoW(t *testing.T) *UnitOfWork {
	t.Helper()
	db := NewTestDB(t)
	tp := timeadapter.NewRealTimeProvider()
	return NewUnitOfWork(db, logger.NewNoopLogger(), tp).(*UnitOfWork)
}

func TestUnitOfWorkCommit(t *testing.T) {
	ctx := context.Background()
	uow := newTestUoW(t)
	user := seedTestUser(t, uow, 100000)

	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)

	_, err = uow.GetUserRepository(txCtx).AdjustWallets(txCtx, user.ID, -40000, 12000)
	require.NoError(t, err)
	require.NoError(t, uow.Commit(txCtx))

	stored, err := uow.GetUserRepository(ctx).GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(60000), stored.DepositWallet())
	assert.Equal(t, int64(12000), stored.CommissionWallet())
}

func TestUnitOfWorkRollback(t *testing.T) {
	ctx := context.Background()
	uow := newTestUoW(t)
	user := seedTestUser(t, uow, 100000)

	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)

	_, err = uow.GetUserRepository(txCtx).AdjustWallets(txCtx, user.ID, -40000, 0)
	require.NoError(t, err)
	require.NoError(t, uow.Rollback(txCtx))

	stored, err := uow.GetUserRepository(ctx).GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), stored.DepositWallet())
}

func TestAdjustWalletsGuardsOverdraft(t *testing.T) {
	ctx := context.Background()
	uow := newTestUoW(t)
	user := seedTestUser(t, uow, 50000)

	repo := uow.GetUserRepository(ctx)

	_, err := repo.AdjustWallets(ctx, user.ID, -60000, 0)
	assert.ErrorIs(t, err, errs.ErrInsufficientFunds)

	stored, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), stored.DepositWallet())

	_, err = repo.AdjustWallets(ctx, 999, 1000, 0)
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestManagerCreateUnitOfWork(t *testing.T) {
	cfg := &Config{
		Driver:       "sqlite",
		SQLitePath:   filepath.Join(t.TempDir(), "shop.db"),
		QueryTimeout: time.Second,
		LogLevel:     "silent",
	}
	mgr := NewManager(cfg, logger.NewNoopLogger(), timeadapter.NewRealTimeProvider())

	if _, err := mgr.Connect(); err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = mgr.Close() })
	assert.True(t, mgr.Offline())

	ctx, cancel := mgr.WithTimeout(context.Background())
	defer cancel()
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(cfg.QueryTimeout), deadline, 500*time.Millisecond)

	uow := mgr.CreateUnitOfWork()
	require.NotNil(t, uow)
	txCtx, err := uow.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, uow.Rollback(txCtx))
}

func TestUserUniqueConstraints(t *testing.T) {
	ctx := context.Background()
	uow := newTestUoW(t)
	seedTestUser(t, uow, 0)

	repo := uow.GetUserRepository(ctx)
	tp := timeadapter.NewRealTimeProvider()

	dupName, err := entity.NewUser("alice", "hash", "", "ref-x", "", entity.RoleUser, tp)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, dupName), errs.ErrDuplicateUsername)

	dupRef, err := entity.NewUser("bob", "hash", "", "ref-a", "", entity.RoleUser, tp)
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, dupRef), errs.ErrDuplicateUsername)
}
