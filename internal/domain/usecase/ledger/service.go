package ledger

import (
	"context"

	"github.com/shoppro/storefront/internal/domain/entity"
	errs "github.com/shoppro/storefront/internal/domain/error"
	coreport "github.com/shoppro/storefront/internal/domain/port/core"
	"github.com/shoppro/storefront/internal/domain/port/event"
	"github.com/shoppro/storefront/internal/domain/port/persistence"
)

// Referral commission share of every purchase price
const (
	commissionNumerator   = 30
	commissionDenominator = 100
)

// CommissionFor returns the referral commission owed on a purchase price
func CommissionFor(price int64) int64 {
	return price * commissionNumerator / commissionDenominator
}

// Service coordinates purchases and order history. Every purchase runs
// inside a unit of work so the wallet debit, referral credit, audit row
// and order row commit or roll back together.
type Service struct {
	uow          persistence.UnitOfWork
	orderRepo    persistence.OrderRepository
	timeProvider coreport.TimeProvider
	bus          event.Bus
	logger       coreport.Logger
}

// NewService creates a new ledger Service
func NewService(
	uow persistence.UnitOfWork,
	orderRepo persistence.OrderRepository,
	timeProvider coreport.TimeProvider,
	bus event.Bus,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		orderRepo:    orderRepo,
		timeProvider: timeProvider,
		bus:          bus,
		logger:       logger,
	}
}

// ListOrders returns the user's purchase history, most recent first
func (s *Service) ListOrders(ctx context.Context, userID uint64) ([]*entity.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

// GetOrder returns one order, restricted to its owner
func (s *Service) GetOrder(ctx context.Context, userID, orderID uint64) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	// another user's order reads the same as a missing one
	if order.UserID != userID {
		return nil, errs.ErrOrderNotFound
	}
	return order, nil
}
