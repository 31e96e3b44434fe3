package entity

import (
	"strings"
	"time"

	errs "github.com/shoppro/storefront/internal/domain/error"
	coreport "github.com/shoppro/storefront/internal/domain/port/core"
)

// Credentials are the shared-account login details handed over on purchase.
// They are never exposed on storefront listings, only inside order snapshots.
type Credentials struct {
	AccountUsername string
	AccountPassword string
	AccountCookie   string
}

// Product is a time-sliced subscription account listed for sale.
// Pricing is prorated over the [StartDate, EndDate] validity window.
type Product struct {
	ID            uint64
	Name          string
	OriginalPrice int64 // whole VND for the full validity window
	StartDate     time.Time
	EndDate       time.Time
	Credentials   Credentials
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewProduct creates a product after validating its listing data.
// A reversed or empty validity window is rejected outright rather than
// silently priced as a one-day product.
func NewProduct(name string, originalPrice int64, startDate, endDate time.Time, creds Credentials, timeProvider coreport.TimeProvider) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errs.ErrInvalidRequest
	}
	if err := ValidatePositiveAmount(originalPrice); err != nil {
		return nil, err
	}
	if !endDate.After(startDate) {
		return nil, errs.ErrInvalidProductDates
	}

	now := timeProvider.Now()
	return &Product{
		Name:          name,
		OriginalPrice: originalPrice,
		StartDate:     startDate,
		EndDate:       endDate,
		Credentials:   creds,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// RotateCredentials replaces the stored account login details.
// Credential snapshots already captured into orders are unaffected.
func (p *Product) RotateCredentials(creds Credentials, timeProvider coreport.TimeProvider) {
	p.Credentials = creds
	p.UpdatedAt = timeProvider.Now()
}

// Expired reports whether the validity window has closed
func (p *Product) Expired(now time.Time) bool {
	return !now.Before(p.EndDate)
}
