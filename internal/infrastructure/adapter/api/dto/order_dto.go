package dto

import (
	"time"

	"github.com/shoppro/storefront/internal/domain/entity"
)

// OrderResponse is a completed purchase with its credential snapshot.
// The snapshot is the point-in-time copy taken at purchase, so later
// credential rotation on the product does not change it.
type OrderResponse struct {
	ID           uint64              `json:"id"`
	Reference    string              `json:"reference"`
	ProductID    uint64              `json:"productId"`
	ProductName  string              `json:"productName"`
	Price        int64               `json:"price"`
	PriceDisplay string              `json:"priceDisplay"`
	Days         int                 `json:"days"`
	PurchaseDate time.Time           `json:"purchaseDate"`
	Credentials  CredentialsResponse `json:"credentials"`
}

// FromOrder maps an order entity to its API representation
func FromOrder(order *entity.Order) OrderResponse {
	return OrderResponse{
		ID:           order.ID,
		Reference:    order.Reference,
		ProductID:    order.ProductID,
		ProductName:  order.ProductName,
		Price:        order.Price,
		PriceDisplay: entity.FormatVND(order.Price),
		Days:         order.Days,
		PurchaseDate: order.PurchaseDate,
		Credentials: CredentialsResponse{
			AccountUsername: order.Snapshot.AccountUsername,
			AccountPassword: order.Snapshot.AccountPassword,
			AccountCookie:   order.Snapshot.AccountCookie,
		},
	}
}

// FromOrders maps a slice of order entities
func FromOrders(orders []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, FromOrder(order))
	}
	return out
}
