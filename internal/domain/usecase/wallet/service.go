package wallet

import (
	"context"
	"fmt"

	"github.com/shoppro/storefront/internal/domain/entity"
	coreport "github.com/shoppro/storefront/internal/domain/port/core"
	"github.com/shoppro/storefront/internal/domain/port/event"
	"github.com/shoppro/storefront/internal/domain/port/persistence"
)

// Service exposes wallet balances, the audit trail and admin top-ups
type Service struct {
	uow          persistence.UnitOfWork
	userRepo     persistence.UserRepository
	orderRepo    persistence.OrderRepository
	txnRepo      persistence.TransactionRepository
	timeProvider coreport.TimeProvider
	bus          event.Bus
	logger       coreport.Logger
}

// NewService creates a new wallet Service
func NewService(
	uow persistence.UnitOfWork,
	userRepo persistence.UserRepository,
	orderRepo persistence.OrderRepository,
	txnRepo persistence.TransactionRepository,
	timeProvider coreport.TimeProvider,
	bus event.Bus,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		userRepo:     userRepo,
		orderRepo:    orderRepo,
		txnRepo:      txnRepo,
		timeProvider: timeProvider,
		bus:          bus,
		logger:       logger,
	}
}

// Balances is a point-in-time view of both wallets
type Balances struct {
	Deposit    int64
	Commission int64
}

// GetBalances returns the user's current wallet balances
func (s *Service) GetBalances(ctx context.Context, userID uint64) (*Balances, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Balances{
		Deposit:    user.DepositWallet(),
		Commission: user.CommissionWallet(),
	}, nil
}

// ListTransactions returns the user's wallet audit trail
func (s *Service) ListTransactions(ctx context.Context, userID uint64) ([]*entity.Transaction, error) {
	return s.txnRepo.ListByUser(ctx, userID)
}

// ListAllTransactions returns every wallet movement. Admin console surface.
func (s *Service) ListAllTransactions(ctx context.Context) ([]*entity.Transaction, error) {
	return s.txnRepo.List(ctx)
}

// AccountSummary pairs an account with its lifetime order count
type AccountSummary struct {
	User       *entity.User
	OrderCount int64
}

// ListUsers returns all accounts with their order counts. Admin
// console surface.
func (s *Service) ListUsers(ctx context.Context) ([]*AccountSummary, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*AccountSummary, 0, len(users))
	for _, user := range users {
		count, err := s.orderRepo.CountByUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, &AccountSummary{User: user, OrderCount: count})
	}
	return summaries, nil
}

// Deposit credits a user's deposit wallet and records the top-up in the
// audit trail, both inside one unit of work. Deposits are an admin
// operation; there is no self-service payment flow.
func (s *Service) Deposit(ctx context.Context, userID uint64, amount int64) (*Balances, error) {
	if err := entity.ValidatePositiveAmount(amount); err != nil {
		return nil, err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.depositInTx(txCtx, userID, amount)
	if err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Rollback failed", map[string]any{
				"userId": userID,
				"error":  rbErr.Error(),
			})
		}
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, err
	}

	s.logger.Info("Wallet deposit", map[string]any{
		"userId": userID,
		"amount": amount,
	})
	s.bus.Publish(event.Event{
		Kind:       event.KindWalletUpdated,
		UserID:     userID,
		OccurredAt: s.timeProvider.Now(),
		Fields: map[string]any{
			"deposit": user.DepositWallet(),
			"reason":  "admin deposit " + entity.FormatVND(amount),
		},
	})

	return &Balances{
		Deposit:    user.DepositWallet(),
		Commission: user.CommissionWallet(),
	}, nil
}

func (s *Service) depositInTx(ctx context.Context, userID uint64, amount int64) (*entity.User, error) {
	userRepo := s.uow.GetUserRepository(ctx)
	txnRepo := s.uow.GetTransactionRepository(ctx)

	user, err := userRepo.AdjustWallets(ctx, userID, amount, 0)
	if err != nil {
		return nil, err
	}

	txn, err := entity.NewDepositTransaction(userID, amount, s.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := txnRepo.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to record deposit: %w", err)
	}

	return user, nil
}
