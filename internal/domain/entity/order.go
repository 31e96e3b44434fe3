package entity

import (
	"time"

	coreport "github.com/shoppro/storefront/internal/domain/port/core"
)

// Order records a completed purchase. It is immutable after creation:
// the credential snapshot is a point-in-time copy of the product's
// login details, so later credential rotation does not propagate here.
type Order struct {
	ID           uint64
	Reference    string // public order reference (uuid)
	UserID       uint64
	ProductID    uint64
	ProductName  string
	Price        int64
	Days         int
	PurchaseDate time.Time
	Snapshot     Credentials
}

// NewOrder captures a purchase of product by user at the quoted price.
// The product credentials are copied by value into the snapshot.
func NewOrder(reference string, userID uint64, product *Product, quote Quote, timeProvider coreport.TimeProvider) *Order {
	return &Order{
		Reference:    reference,
		UserID:       userID,
		ProductID:    product.ID,
		ProductName:  product.Name,
		Price:        quote.Price,
		Days:         quote.DaysRemaining,
		PurchaseDate: timeProvider.Now(),
		Snapshot:     product.Credentials,
	}
}
