package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/shoppro/storefront/internal/domain/entity"
	errs "github.com/shoppro/storefront/internal/domain/error"
	"github.com/shoppro/storefront/internal/domain/port/event"
)

// PurchaseResult carries the committed order and the buyer's wallet
// state after the debit.
type PurchaseResult struct {
	Order *entity.Order
	Quote entity.Quote
	Buyer *entity.User
}

// Purchase buys productID for userID at the current prorated price.
//
// Inside one unit of work it debits the buyer's deposit wallet, writes
// the order with a credential snapshot, and, when the buyer was
// referred, credits the referrer's commission wallet with an audit row.
// The debit is an atomic conditional update in the repository, so two
// concurrent purchases against one wallet can never both succeed on
// funds that cover only one.
func (s *Service) Purchase(ctx context.Context, userID, productID uint64) (*PurchaseResult, error) {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.purchaseInTx(txCtx, userID, productID)
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
		s.logger.Error("Commit failed", map[string]any{
			"userId": userID,
			"error":  err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Purchase completed", map[string]any{
		"userId":    userID,
		"productId": productID,
		"orderRef":  result.Order.Reference,
		"price":     result.Quote.Price,
	})
	s.publishPurchase(result)

	return result, nil
}

func (s *Service) purchaseInTx(ctx context.Context, userID, productID uint64) (*PurchaseResult, error) {
	userRepo := s.uow.GetUserRepository(ctx)
	productRepo := s.uow.GetProductRepository(ctx)
	orderRepo := s.uow.GetOrderRepository(ctx)

	product, err := productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	buyer, err := userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	quote := entity.Prorate(product, s.timeProvider.Now())

	// Reject on the balance just read before attempting the debit. The
	// repository re-checks the committed balance under a row lock, so a
	// stale read here cannot overdraw the wallet either way.
	if !buyer.CanAfford(quote.Price) {
		return nil, errs.NewInsufficientFundsError(buyer.ID, quote.Price, buyer.DepositWallet())
	}

	buyer, err = userRepo.AdjustWallets(ctx, userID, -quote.Price, 0)
	if err != nil {
		if errs.IsInsufficientFundsError(err) {
			return nil, err
		}
		return nil, errs.NewPurchaseError(userID, productID, "wallet debit failed", err)
	}

	order := entity.NewOrder(uuid.NewString(), userID, product, quote, s.timeProvider)
	if err := orderRepo.Create(ctx, order); err != nil {
		return nil, errs.NewPurchaseError(userID, productID, "order write failed", err)
	}

	if buyer.ReferredBy != "" {
		if err := s.creditReferrer(ctx, buyer, order, quote.Price); err != nil {
			return nil, err
		}
	}

	return &PurchaseResult{Order: order, Quote: quote, Buyer: buyer}, nil
}

// creditReferrer pays the referral commission for an order. A referral
// code that no longer resolves is skipped rather than failing the
// purchase; any other error aborts the whole transaction.
func (s *Service) creditReferrer(ctx context.Context, buyer *entity.User, order *entity.Order, price int64) error {
	userRepo := s.uow.GetUserRepository(ctx)
	txnRepo := s.uow.GetTransactionRepository(ctx)

	referrer, err := userRepo.GetByRefCode(ctx, buyer.ReferredBy)
	if err != nil {
		if errs.IsNotFoundError(err) {
			s.logger.Warn("Referrer no longer exists, skipping commission", map[string]any{
				"userId":  buyer.ID,
				"refCode": buyer.ReferredBy,
			})
			return nil
		}
		return err
	}
	if referrer.ID == buyer.ID {
		return nil
	}

	commission := CommissionFor(price)
	if commission <= 0 {
		return nil
	}

	if _, err := userRepo.AdjustWallets(ctx, referrer.ID, 0, commission); err != nil {
		return errs.NewPurchaseError(buyer.ID, order.ProductID, "commission credit failed", err)
	}

	txn, err := entity.NewCommissionTransaction(referrer.ID, order.ID, commission, s.timeProvider)
	if err != nil {
		return err
	}
	if err := txnRepo.Create(ctx, txn); err != nil {
		return errs.NewPurchaseError(buyer.ID, order.ProductID, "commission record failed", err)
	}

	return nil
}

func (s *Service) publishPurchase(result *PurchaseResult) {
	now := s.timeProvider.Now()
	s.bus.Publish(event.Event{
		Kind:       event.KindOrderCreated,
		UserID:     result.Order.UserID,
		OccurredAt: now,
		Fields: map[string]any{
			"orderRef": result.Order.Reference,
			"product":  result.Order.ProductName,
			"price":    entity.FormatVND(result.Order.Price),
		},
	})
	s.bus.Publish(event.Event{
		Kind:       event.KindWalletUpdated,
		UserID:     result.Order.UserID,
		OccurredAt: now,
		Fields: map[string]any{
			"deposit": result.Buyer.DepositWallet(),
			"reason":  fmt.Sprintf("purchase %s", result.Order.Reference),
		},
	})
}
