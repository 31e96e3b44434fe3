package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shoppro/storefront/internal/domain/entity"
	errs "github.com/shoppro/storefront/internal/domain/error"
	coreport "github.com/shoppro/storefront/internal/domain/port/core"
	"github.com/shoppro/storefront/internal/infrastructure/adapter/model"
)

// OrderRepository implements the order repository interface using GORM
type OrderRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewOrderRepository creates a new OrderRepository instance
func NewOrderRepository(db *gorm.DB, logger coreport.Logger) *OrderRepository {
	return &OrderRepository{db: db, logger: logger}
}

func orderModelToEntity(m *model.Order) *entity.Order {
	return &entity.Order{
		ID:           m.ID,
		Reference:    m.Reference,
		UserID:       m.UserID,
		ProductID:    m.ProductID,
		ProductName:  m.ProductName,
		Price:        m.Price,
		Days:         m.Days,
		PurchaseDate: m.PurchaseDate,
		Snapshot: entity.Credentials{
			AccountUsername: m.AccountUsername,
			AccountPassword: m.AccountPassword,
			AccountCookie:   m.AccountCookie,
		},
	}
}

func (r *OrderRepository) wrapError(operation string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrOrderNotFound
	}
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"error": err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create saves a new order and fills in its assigned ID
func (r *OrderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderModel := model.Order{
		Reference:       order.Reference,
		UserID:          order.UserID,
		ProductID:       order.ProductID,
		ProductName:     order.ProductName,
		Price:           order.Price,
		Days:            order.Days,
		PurchaseDate:    order.PurchaseDate,
		AccountUsername: order.Snapshot.AccountUsername,
		AccountPassword: order.Snapshot.AccountPassword,
		AccountCookie:   order.Snapshot.AccountCookie,
	}

	result := r.db.WithContext(ctx).Create(&orderModel)
	if result.Error != nil {
		return r.wrapError("creating order", result.Error)
	}

	order.ID = orderModel.ID
	return nil
}

// GetByID retrieves an order by ID
func (r *OrderRepository) GetByID(ctx context.Context, id uint64) (*entity.Order, error) {
	var orderModel model.Order
	result := r.db.WithContext(ctx).First(&orderModel, id)
	if result.Error != nil {
		return nil, r.wrapError("getting order", result.Error)
	}
	return orderModelToEntity(&orderModel), nil
}

// ListByUser returns a user's orders, most recent first
func (r *OrderRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.Order, error) {
	var orderModels []model.Order
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("purchase_date DESC").
		Find(&orderModels)
	if result.Error != nil {
		return nil, r.wrapError("listing orders", result.Error)
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for i := range orderModels {
		orders = append(orders, orderModelToEntity(&orderModels[i]))
	}
	return orders, nil
}

// CountByUser returns the number of orders placed by a user
func (r *OrderRepository) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("user_id = ?", userID).
		Count(&count)
	if result.Error != nil {
		return 0, r.wrapError("counting orders", result.Error)
	}
	return count, nil
}
